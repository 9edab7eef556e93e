// Package me реализует HTTP-обработчик чтения данных текущего пользователя.
package me

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/auth-rbac/internal/http/middlewarectx"
	"github.com/magabrotheeeer/auth-rbac/internal/http/response"
	"github.com/magabrotheeeer/auth-rbac/internal/models"
	services "github.com/magabrotheeeer/auth-rbac/internal/services/auth"
)

// Service описывает чтение публичных данных пользователя.
type Service interface {
	ReadSelf(ctx context.Context, user *models.User) (*models.UserView, error)
}

// Handler обрабатывает GET /auth/me.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Текущий пользователь
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=models.UserView}
// @Failure 401 {object} response.ErrorResponse "Токен отсутствует или невалиден"
// @Failure 500 {object} response.ErrorResponse "Роль пользователя не найдена"
// @Router /auth/me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user missing in context")
		response.WriteError(w, r, log, services.ErrUnauthorized)
		return
	}

	view, err := h.service.ReadSelf(r.Context(), user)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(view))
}
