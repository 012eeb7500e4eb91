package auth

type SignUpRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword,omitempty"` // Необязательное, если передано - должно совпасть с password
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type IdentityResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
