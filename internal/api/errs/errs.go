// Package errs переводит ошибки сервисов в HTTP ответы.
package errs

import (
	"errors"
	"net/http"

	"issue_tracker/internal/model"
	"issue_tracker/pkg/resp"

	"github.com/sirupsen/logrus"
)

const (
	MsgValidationFailed   = "Validation failed"
	MsgInvalidCredentials = "Invalid email or password"
	MsgUserExists         = "User with this email already exists"
	MsgUnauthorized       = "Unauthorized"
	MsgForbidden          = "Forbidden"
	MsgIssueNotFound      = "Issue not found"
	MsgInvalidRequest     = "Invalid request body"
	MsgInternal           = "Internal server error"
)

// Write - пишет ответ по ошибке. Неизвестные ошибки логируются,
// клиенту уходит только общее сообщение.
func Write(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, err error) {
	var verr *model.ValidationError

	switch {
	case errors.As(err, &verr):
		resp.WriteJSONResponse(w, http.StatusBadRequest, resp.Message{
			Message: MsgValidationFailed,
			Errors:  verr.Fields,
		})
	case errors.Is(err, model.ErrInvalidCredentials):
		resp.WriteMessage(w, http.StatusUnauthorized, MsgInvalidCredentials)
	case errors.Is(err, model.ErrUnauthorized):
		resp.WriteMessage(w, http.StatusUnauthorized, MsgUnauthorized)
	case errors.Is(err, model.ErrUserAlreadyExists):
		resp.WriteMessage(w, http.StatusConflict, MsgUserExists)
	case errors.Is(err, model.ErrForbidden):
		resp.WriteMessage(w, http.StatusForbidden, MsgForbidden)
	case errors.Is(err, model.ErrIssueNotFound):
		resp.WriteMessage(w, http.StatusNotFound, MsgIssueNotFound)
	default:
		log.WithError(err).WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("request failed")
		resp.WriteMessage(w, http.StatusInternalServerError, MsgInternal)
	}
}
