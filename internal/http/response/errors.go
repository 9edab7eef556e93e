package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/auth-rbac/internal/lib/sl"
	services "github.com/magabrotheeeer/auth-rbac/internal/services/auth"
)

// Сообщения, которые видит клиент.
const (
	MsgUnauthorized       = "Could not validate credentials"
	MsgInvalidCredentials = "Incorrect username or password"
	MsgForbidden          = "Access denied"
	MsgInternal           = "Internal server error"
)

// WriteError сопоставляет ошибку сервиса с HTTP-статусом и пишет ответ.
// Неизвестные ошибки логируются и отдаются клиенту как 500 без подробностей.
func WriteError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var validationErr *services.ValidationError

	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		writeUnauthorized(w, r, MsgInvalidCredentials)
	case errors.Is(err, services.ErrUnauthorized):
		writeUnauthorized(w, r, MsgUnauthorized)
	case errors.Is(err, services.ErrForbidden):
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, Error(MsgForbidden))
	case errors.Is(err, services.ErrConflict):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, Error("Username already exists"))
	case errors.As(err, &validationErr):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, Error(validationErr.Msg))
	default:
		log.Error("internal error", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, Error(MsgInternal))
	}
}

func writeUnauthorized(w http.ResponseWriter, r *http.Request, msg string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, Error(msg))
}
