package server

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/magabrotheeeer/auth-rbac/internal/grpc/authpb"
	"github.com/magabrotheeeer/auth-rbac/internal/lib/sl"
	"github.com/magabrotheeeer/auth-rbac/internal/models"
	services "github.com/magabrotheeeer/auth-rbac/internal/services/auth"
)

// MockAuthService - мок для AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) ResolveUser(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockAuthService) Authorize(ctx context.Context, token string, allowed ...string) (*models.User, error) {
	args := m.Called(ctx, token, allowed)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

var _ AuthServiceInterface = (*MockAuthService)(nil)
var _ authpb.AuthServiceServer = (*AuthServer)(nil)

func TestAuthServer_ValidateToken(t *testing.T) {
	alice := &models.User{ID: 1, Username: "alice", Email: "alice@x.com", RoleID: 2, Role: models.RoleUser}

	tests := []struct {
		name     string
		mockUser *models.User
		mockErr  error
		wantCode codes.Code
	}{
		{"valid", alice, nil, codes.OK},
		{"unauthorized", nil, fmt.Errorf("op: %w", services.ErrUnauthorized), codes.Unauthenticated},
		{"store failure", nil, errors.New("db down"), codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAuthService)
			svc.On("ResolveUser", mock.Anything, "tok").Return(tt.mockUser, tt.mockErr).Once()
			srv := NewAuthServer(svc, sl.NewDiscardLogger())

			resp, err := srv.ValidateToken(context.Background(), wrapperspb.String("tok"))
			assert.Equal(t, tt.wantCode, status.Code(err))
			if tt.wantCode == codes.OK {
				user, err := authpb.UserFromStruct(resp)
				require.NoError(t, err)
				assert.Equal(t, alice, user)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestAuthServer_Authorize(t *testing.T) {
	admin := &models.User{ID: 3, Username: "root", RoleID: 1, Role: models.RoleAdmin}

	t.Run("allowed", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Authorize", mock.Anything, "tok", []string{models.RoleAdmin}).Return(admin, nil).Once()

		req, err := authpb.NewAuthorizeRequest("tok", []string{models.RoleAdmin})
		require.NoError(t, err)
		resp, err := NewAuthServer(svc, sl.NewDiscardLogger()).Authorize(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "root", resp.GetFields()["username"].GetStringValue())
	})

	t.Run("forbidden", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Authorize", mock.Anything, "tok", []string{models.RoleAdmin}).Return(nil, services.ErrForbidden).Once()

		req, err := authpb.NewAuthorizeRequest("tok", []string{models.RoleAdmin})
		require.NoError(t, err)
		_, err = NewAuthServer(svc, sl.NewDiscardLogger()).Authorize(context.Background(), req)
		assert.Equal(t, codes.PermissionDenied, status.Code(err))
	})

	t.Run("missing token field", func(t *testing.T) {
		svc := new(MockAuthService)
		req, err := structpb.NewStruct(map[string]any{"roles": []any{"Admin"}})
		require.NoError(t, err)

		_, err = NewAuthServer(svc, sl.NewDiscardLogger()).Authorize(context.Background(), req)
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
		svc.AssertNotCalled(t, "Authorize", mock.Anything, mock.Anything, mock.Anything)
	})
}
