// Package server реализует gRPC-сервер проверки доступа.
//
// AuthServer даёт другим процессам проверить bearer-токен и роль
// пользователя, делегируя решение сервису авторизации.
package server

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/magabrotheeeer/auth-rbac/internal/grpc/authpb"
	"github.com/magabrotheeeer/auth-rbac/internal/lib/sl"
	"github.com/magabrotheeeer/auth-rbac/internal/models"
	services "github.com/magabrotheeeer/auth-rbac/internal/services/auth"
)

// AuthServiceInterface часть сервиса авторизации, нужная серверу.
type AuthServiceInterface interface {
	ResolveUser(ctx context.Context, token string) (*models.User, error)
	Authorize(ctx context.Context, token string, allowed ...string) (*models.User, error)
}

// AuthServer реализует authpb.AuthServiceServer.
type AuthServer struct {
	authService AuthServiceInterface
	log         *slog.Logger
}

// NewAuthServer создает новый экземпляр AuthServer.
func NewAuthServer(authService AuthServiceInterface, logger *slog.Logger) *AuthServer {
	return &AuthServer{
		authService: authService,
		log:         logger,
	}
}

// ValidateToken проверяет токен и возвращает его владельца.
func (s *AuthServer) ValidateToken(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	const op = "grpc.server.ValidateToken"

	user, err := s.authService.ResolveUser(ctx, req.GetValue())
	if err != nil {
		return nil, s.toStatus(op, err)
	}
	return s.userResponse(op, user)
}

// Authorize проверяет токен и членство роли пользователя в переданном наборе.
func (s *AuthServer) Authorize(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	const op = "grpc.server.Authorize"

	token, roles, err := authpb.ParseAuthorizeRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	user, err := s.authService.Authorize(ctx, token, roles...)
	if err != nil {
		return nil, s.toStatus(op, err)
	}
	return s.userResponse(op, user)
}

func (s *AuthServer) userResponse(op string, user *models.User) (*structpb.Struct, error) {
	resp, err := authpb.UserToStruct(user)
	if err != nil {
		s.log.Error("failed to encode user", slog.String("op", op), sl.Err(err))
		return nil, status.Error(codes.Internal, "internal error")
	}
	return resp, nil
}

func (s *AuthServer) toStatus(op string, err error) error {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		return status.Error(codes.Unauthenticated, "could not validate credentials")
	case errors.Is(err, services.ErrForbidden):
		return status.Error(codes.PermissionDenied, "access denied")
	default:
		s.log.Error("authorization failed", slog.String("op", op), sl.Err(err))
		return status.Error(codes.Internal, "internal error")
	}
}
