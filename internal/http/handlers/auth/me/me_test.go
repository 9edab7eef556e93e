package me

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/auth-rbac/internal/http/middlewarectx"
	"github.com/magabrotheeeer/auth-rbac/internal/lib/sl"
	"github.com/magabrotheeeer/auth-rbac/internal/models"
	services "github.com/magabrotheeeer/auth-rbac/internal/services/auth"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) ReadSelf(ctx context.Context, user *models.User) (*models.UserView, error) {
	args := m.Called(ctx, user)
	view, _ := args.Get(0).(*models.UserView)
	return view, args.Error(1)
}

func TestHandler_ServeHTTP(t *testing.T) {
	alice := &models.User{ID: 1, Username: "alice", Email: "alice@x.com", RoleID: 2}

	t.Run("success", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("ReadSelf", mock.Anything, alice).
			Return(&models.UserView{ID: 1, Username: "alice", Email: "alice@x.com", Role: models.RoleUser}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req = req.WithContext(middlewarectx.WithUser(req.Context(), alice))
		rr := httptest.NewRecorder()
		New(sl.NewDiscardLogger(), svc).ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var body struct {
			Data models.UserView `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, models.RoleUser, body.Data.Role)
		svc.AssertExpectations(t)
	})

	t.Run("missing role", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("ReadSelf", mock.Anything, alice).
			Return(nil, fmt.Errorf("services.auth.ReadSelf: %w", services.ErrInternal)).Once()

		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req = req.WithContext(middlewarectx.WithUser(req.Context(), alice))
		rr := httptest.NewRecorder()
		New(sl.NewDiscardLogger(), svc).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})

	t.Run("no user in context", func(t *testing.T) {
		rr := httptest.NewRecorder()
		New(sl.NewDiscardLogger(), new(ServiceMock)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/auth/me", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
