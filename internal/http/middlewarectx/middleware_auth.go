// Package middlewarectx содержит HTTP middleware проверки доступа.
//
// Authenticate извлекает bearer-токен из заголовка Authorization, определяет
// по нему пользователя и кладёт его в контекст запроса. RequireRole
// дополнительно проверяет, что роль пользователя входит в разрешённый набор.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/auth-rbac/internal/http/response"
	"github.com/magabrotheeeer/auth-rbac/internal/lib/sl"
	"github.com/magabrotheeeer/auth-rbac/internal/metrics"
	"github.com/magabrotheeeer/auth-rbac/internal/models"
	services "github.com/magabrotheeeer/auth-rbac/internal/services/auth"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// User ключ текущего пользователя в контексте.
const User Key = "user"

const bearerScheme = "Bearer"

// UserFromContext возвращает пользователя, положенного Authenticate.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(User).(*models.User)
	return user, ok && user != nil
}

// WithUser кладёт пользователя в контекст.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, User, user)
}

// Authenticate возвращает middleware, пропускающий только запросы с валидным токеном.
func Authenticate(gate Gate, m *metrics.Metrics, log *slog.Logger) func(http.Handler) http.Handler {
	return RequireRole(gate, m, log)
}

// RequireRole возвращает middleware, который сначала определяет пользователя,
// а затем, если allowed не пуст, проверяет его роль.
// Запрос без валидного токена получает 401 до проверки роли.
func RequireRole(gate Gate, m *metrics.Metrics, log *slog.Logger, allowed ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireRole"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				log.Debug("missing or invalid authorization header")
				m.IncGateDecision(metrics.DecisionUnauthorized)
				response.WriteError(w, r, log, services.ErrUnauthorized)
				return
			}

			user, err := gate.ResolveUser(r.Context(), token)
			if err != nil {
				log.Debug("token rejected", sl.Err(err))
				m.IncGateDecision(metrics.DecisionUnauthorized)
				response.WriteError(w, r, log, err)
				return
			}

			if len(allowed) > 0 {
				if err := gate.CheckRole(user, allowed...); err != nil {
					log.Info("access denied",
						slog.String("username", user.Username),
						slog.String("role", user.Role),
					)
					m.IncGateDecision(metrics.DecisionForbidden)
					response.WriteError(w, r, log, err)
					return
				}
			}

			m.IncGateDecision(metrics.DecisionAllowed)
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// bearerToken извлекает токен из заголовка Authorization. Схема сравнивается без учёта регистра.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
