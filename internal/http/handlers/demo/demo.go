// Package demo содержит демонстрационные маршруты с разными уровнями доступа.
package demo

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/auth-rbac/internal/http/middlewarectx"
)

// Message тело ответа демонстрационных маршрутов.
type Message struct {
	Message string `json:"message"`
}

// Root godoc
// @Summary Приветствие
// @Tags Demo
// @Produce json
// @Success 200 {object} Message
// @Router / [get]
func Root(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, Message{Message: "Hello, Auth RBAC service!"})
}

// Protected godoc
// @Summary Маршрут для любого аутентифицированного пользователя
// @Tags Demo
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Message
// @Failure 401 {object} response.ErrorResponse
// @Router /protected [get]
func Protected(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, Message{Message: fmt.Sprintf("Hello %s, you have access!", username(r))})
}

// Admin godoc
// @Summary Маршрут только для Admin
// @Tags Demo
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Message
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /admin [get]
func Admin(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, Message{Message: "Welcome Admin!"})
}

// AdminOrUser godoc
// @Summary Маршрут для Admin и User
// @Tags Demo
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Message
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /admin-user [get]
func AdminOrUser(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, Message{Message: "Welcome Admin and User!"})
}

// UserData godoc
// @Summary Данные пользователя для ролей User и Admin
// @Tags Demo
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Message
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /user/ [get]
func UserData(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, Message{Message: fmt.Sprintf("Welcome User %s!", username(r))})
}

func username(r *http.Request) string {
	if user, ok := middlewarectx.UserFromContext(r.Context()); ok {
		return user.Username
	}
	return ""
}
