package middlewarectx

import (
	"context"

	"github.com/magabrotheeeer/auth-rbac/internal/models"
)

// Gate определяет пользователя по токену и проверяет его роль.
// Реализуется локальным сервисом авторизации и gRPC-клиентом.
type Gate interface {
	ResolveUser(ctx context.Context, token string) (*models.User, error)
	CheckRole(user *models.User, allowed ...string) error
}
