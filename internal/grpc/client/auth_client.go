// Package client реализует gRPC-клиент сервиса авторизации.
//
// AuthClient удовлетворяет тому же контракту, что и локальный сервис,
// поэтому HTTP-гейт может работать в процессе без доступа к базе.
package client

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/magabrotheeeer/auth-rbac/internal/grpc/authpb"
	"github.com/magabrotheeeer/auth-rbac/internal/models"
	services "github.com/magabrotheeeer/auth-rbac/internal/services/auth"
)

const defaultTimeout = 5 * time.Second

type AuthClient struct {
	conn    *grpc.ClientConn
	client  authpb.AuthServiceClient
	timeout time.Duration
}

// NewAuthClient создаёт клиента. Соединение устанавливается лениво при первом вызове.
func NewAuthClient(addr string, opts ...grpc.DialOption) (*AuthClient, error) {
	const op = "grpc.client.NewAuthClient"

	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &AuthClient{
		conn:    conn,
		client:  authpb.NewAuthServiceClient(conn),
		timeout: defaultTimeout,
	}, nil
}

func (a *AuthClient) Close() error {
	return a.conn.Close()
}

// ResolveUser проверяет токен на удалённом сервисе.
func (a *AuthClient) ResolveUser(ctx context.Context, token string) (*models.User, error) {
	const op = "grpc.client.ResolveUser"

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.client.ValidateToken(ctx, wrapperspb.String(token))
	if err != nil {
		return nil, fromStatus(op, err)
	}
	user, err := authpb.UserFromStruct(resp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// Authorize проверяет токен и роль на удалённом сервисе.
func (a *AuthClient) Authorize(ctx context.Context, token string, allowed ...string) (*models.User, error) {
	const op = "grpc.client.Authorize"

	req, err := authpb.NewAuthorizeRequest(token, allowed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.client.Authorize(ctx, req)
	if err != nil {
		return nil, fromStatus(op, err)
	}
	user, err := authpb.UserFromStruct(resp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// CheckRole проверяет роль уже полученного пользователя без обращения к сети.
func (a *AuthClient) CheckRole(user *models.User, allowed ...string) error {
	return services.CheckRole(user, allowed...)
}

func fromStatus(op string, err error) error {
	switch status.Code(err) {
	case codes.Unauthenticated:
		return fmt.Errorf("%s: %w", op, services.ErrUnauthorized)
	case codes.PermissionDenied:
		return fmt.Errorf("%s: %w", op, services.ErrForbidden)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
