package auth

import (
	"context"
	"net/http"

	dto "issue_tracker/internal/api/dto/auth"
	"issue_tracker/internal/api/errs"
	"issue_tracker/internal/converter"
	"issue_tracker/internal/model"
	"issue_tracker/internal/service"
	"issue_tracker/pkg/req"
	"issue_tracker/pkg/resp"

	"github.com/sirupsen/logrus"
)

type CurrentUserProvider interface {
	CurrentUser(ctx context.Context) (*model.User, error)
}

type HandlerDeps struct {
	Serv       service.AuthService
	Gate       CurrentUserProvider
	SignInPath string
	Log        logrus.FieldLogger
}

type Handler struct {
	serv       service.AuthService
	gate       CurrentUserProvider
	signInPath string
	log        logrus.FieldLogger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		serv:       deps.Serv,
		gate:       deps.Gate,
		signInPath: deps.SignInPath,
		log:        deps.Log,
	}
}

// SignUp создаёт пользователя, открывает сессию через cookie
// и возвращает {id, email}
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.SignUpRequest](r.Body)
	if err != nil {
		resp.WriteMessage(w, http.StatusBadRequest, errs.MsgInvalidRequest)
		return
	}

	identity, err := h.serv.SignUp(r.Context(), converter.ToSignUp(requestBody))
	if err != nil {
		errs.Write(w, r, h.log, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, converter.ToIdentityResponse(identity))
}

// SignIn проверяет email и пароль, открывает сессию через cookie
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.SignInRequest](r.Body)
	if err != nil {
		resp.WriteMessage(w, http.StatusBadRequest, errs.MsgInvalidRequest)
		return
	}

	identity, err := h.serv.SignIn(r.Context(), converter.ToSignIn(requestBody))
	if err != nil {
		errs.Write(w, r, h.log, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToIdentityResponse(identity))
}

// SignOut удаляет cookie сессии и всегда перенаправляет на страницу входа
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.serv.SignOut(r.Context()); err != nil {
		h.log.WithError(err).Warn("sign out cleanup failed")
	}

	http.Redirect(w, r, h.signInPath, http.StatusSeeOther)
}

// Me возвращает пользователя текущей сессии
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.gate.CurrentUser(r.Context())
	if err != nil {
		errs.Write(w, r, h.log, err)
		return
	}
	if user == nil {
		errs.Write(w, r, h.log, model.ErrUnauthorized)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.UserToIdentityResponse(user))
}
