package converter

import (
	dto "issue_tracker/internal/api/dto/auth"
	"issue_tracker/internal/model"
)

func ToSignUp(req dto.SignUpRequest) model.SignUp {
	return model.SignUp{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	}
}

func ToSignIn(req dto.SignInRequest) model.SignIn {
	return model.SignIn{
		Email:    req.Email,
		Password: req.Password,
	}
}

func ToIdentityResponse(identity *model.Identity) dto.IdentityResponse {
	return dto.IdentityResponse{
		ID:    identity.ID,
		Email: identity.Email,
	}
}

func UserToIdentityResponse(user *model.User) dto.IdentityResponse {
	return dto.IdentityResponse{
		ID:    user.ID,
		Email: user.Email,
	}
}
