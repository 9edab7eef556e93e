// Package services содержит бизнес-логику регистрации, входа и проверки доступа.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/magabrotheeeer/auth-rbac/internal/events"
	"github.com/magabrotheeeer/auth-rbac/internal/lib/jwt"
	"github.com/magabrotheeeer/auth-rbac/internal/lib/sl"
	"github.com/magabrotheeeer/auth-rbac/internal/metrics"
	"github.com/magabrotheeeer/auth-rbac/internal/models"
	"github.com/magabrotheeeer/auth-rbac/internal/storage"
)

// MinPasswordLength минимальная длина пароля при регистрации.
const MinPasswordLength = 6

// UserStore описывает хранилище пользователей и ролей.
type UserStore interface {
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
	FindRoleByName(ctx context.Context, name string) (*models.Role, error)
	FindRoleByID(ctx context.Context, id int64) (*models.Role, error)
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
}

// TokenMaker выпускает и проверяет токены.
type TokenMaker interface {
	Issue(subject string, ttl time.Duration) (string, error)
	Verify(token string) (*jwt.Claims, error)
}

// PasswordHasher хеширует и сверяет пароли.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// Publisher отправляет доменные события.
type Publisher interface {
	PublishUserRegistered(ctx context.Context, event events.UserRegistered) error
}

// TokenTTL время жизни выпускаемых токенов.
type TokenTTL struct {
	Access  time.Duration
	Refresh time.Duration
}

// RegisterInput данные для регистрации.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// AuthService отвечает за регистрацию, вход и проверку доступа.
type AuthService struct {
	log       *slog.Logger
	users     UserStore
	tokens    TokenMaker
	hasher    PasswordHasher
	ttl       TokenTTL
	publisher Publisher
	metrics   *metrics.Metrics
	now       func() time.Time
}

// Option настраивает AuthService.
type Option func(*AuthService)

// WithPublisher задаёт издателя событий.
func WithPublisher(p Publisher) Option {
	return func(s *AuthService) { s.publisher = p }
}

// WithMetrics задаёт счётчики Prometheus.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *AuthService) { s.metrics = m }
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(
	log *slog.Logger,
	users UserStore,
	tokens TokenMaker,
	hasher PasswordHasher,
	ttl TokenTTL,
	opts ...Option,
) *AuthService {
	s := &AuthService{
		log:       log,
		users:     users,
		tokens:    tokens,
		hasher:    hasher,
		ttl:       ttl,
		publisher: events.NoopPublisher{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register создаёт пользователя с указанной ролью.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.UserView, error) {
	const op = "services.auth.Register"
	log := s.log.With(slog.String("op", op), slog.String("username", in.Username))

	if err := validateRegistration(in); err != nil {
		s.metrics.IncRegistration(metrics.ResultBadRequest)
		return nil, err
	}

	_, err := s.users.FindUserByUsername(ctx, in.Username)
	switch {
	case err == nil:
		s.metrics.IncRegistration(metrics.ResultConflict)
		return nil, ErrConflict
	case !errors.Is(err, storage.ErrUserNotFound):
		s.metrics.IncRegistration(metrics.ResultError)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	role, err := s.users.FindRoleByName(ctx, in.Role)
	if err != nil {
		if errors.Is(err, storage.ErrRoleNotFound) {
			s.metrics.IncRegistration(metrics.ResultBadRequest)
			return nil, ErrInvalidRole
		}
		s.metrics.IncRegistration(metrics.ResultError)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		s.metrics.IncRegistration(metrics.ResultError)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.users.CreateUser(ctx, models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		RoleID:       role.ID,
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUserExists):
			// между проверкой и вставкой имя занял параллельный запрос
			s.metrics.IncRegistration(metrics.ResultConflict)
			return nil, ErrConflict
		case errors.Is(err, storage.ErrRoleNotFound):
			s.metrics.IncRegistration(metrics.ResultBadRequest)
			return nil, ErrInvalidRole
		}
		s.metrics.IncRegistration(metrics.ResultError)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.metrics.IncRegistration(metrics.ResultSuccess)

	view := created.View(role.Name)
	if err := s.publisher.PublishUserRegistered(ctx, events.NewUserRegistered(view, s.now())); err != nil {
		log.Warn("failed to publish user registered event", sl.Err(err))
	}

	log.Info("user registered", slog.Int64("id", view.ID), slog.String("role", view.Role))
	return view, nil
}

func validateRegistration(in RegisterInput) error {
	if in.Username == "" {
		return ErrEmptyUsername
	}
	if !strings.Contains(in.Email, "@") {
		return ErrInvalidEmail
	}
	if utf8.RuneCountInString(in.Password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// Login проверяет пароль и выпускает пару токенов.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.TokenPair, error) {
	const op = "services.auth.Login"

	user, err := s.users.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			s.metrics.IncLogin(metrics.ResultInvalidCredentials)
			return nil, ErrInvalidCredentials
		}
		s.metrics.IncLogin(metrics.ResultError)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.metrics.IncLogin(metrics.ResultInvalidCredentials)
		return nil, ErrInvalidCredentials
	}

	access, err := s.tokens.Issue(user.Username, s.ttl.Access)
	if err != nil {
		s.metrics.IncLogin(metrics.ResultError)
		return nil, fmt.Errorf("%s: access token: %w", op, err)
	}
	refresh, err := s.tokens.Issue(user.Username, s.ttl.Refresh)
	if err != nil {
		s.metrics.IncLogin(metrics.ResultError)
		return nil, fmt.Errorf("%s: refresh token: %w", op, err)
	}
	s.metrics.IncLogin(metrics.ResultSuccess)

	return &models.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    models.TokenTypeBearer,
	}, nil
}

// ResolveUser проверяет токен и находит его владельца.
// Любая ошибка проверки или отсутствие пользователя дают ErrUnauthorized.
func (s *AuthService) ResolveUser(ctx context.Context, token string) (*models.User, error) {
	const op = "services.auth.ResolveUser"

	claims, err := s.tokens.Verify(token)
	if err != nil {
		s.log.Debug("token rejected", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}

	user, err := s.users.FindUserByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// CheckRole проверяет, что роль пользователя входит в allowed. Иерархии ролей нет.
func CheckRole(user *models.User, allowed ...string) error {
	if user == nil || !slices.Contains(allowed, user.Role) {
		return ErrForbidden
	}
	return nil
}

// CheckRole см. пакетную функцию CheckRole.
func (s *AuthService) CheckRole(user *models.User, allowed ...string) error {
	return CheckRole(user, allowed...)
}

// Authorize выполняет ResolveUser и, если allowed не пуст, CheckRole.
func (s *AuthService) Authorize(ctx context.Context, token string, allowed ...string) (*models.User, error) {
	user, err := s.ResolveUser(ctx, token)
	if err != nil {
		return nil, err
	}
	if len(allowed) == 0 {
		return user, nil
	}
	if err := s.CheckRole(user, allowed...); err != nil {
		return nil, err
	}
	return user, nil
}

// ReadSelf возвращает публичное представление текущего пользователя.
func (s *AuthService) ReadSelf(ctx context.Context, user *models.User) (*models.UserView, error) {
	const op = "services.auth.ReadSelf"

	role, err := s.users.FindRoleByID(ctx, user.RoleID)
	if err != nil {
		if errors.Is(err, storage.ErrRoleNotFound) {
			s.log.Error("user references missing role",
				slog.String("op", op),
				slog.Int64("user_id", user.ID),
				slog.Int64("role_id", user.RoleID),
			)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user.View(role.Name), nil
}
