package demo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/auth-rbac/internal/http/middlewarectx"
	"github.com/magabrotheeeer/auth-rbac/internal/models"
)

func TestHandlers(t *testing.T) {
	alice := &models.User{Username: "alice", Role: models.RoleUser}

	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    string
	}{
		{"root", Root, "Hello, Auth RBAC service!"},
		{"protected", Protected, "Hello alice, you have access!"},
		{"admin", Admin, "Welcome Admin!"},
		{"admin or user", AdminOrUser, "Welcome Admin and User!"},
		{"user data", UserData, "Welcome User alice!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(middlewarectx.WithUser(req.Context(), alice))
			rr := httptest.NewRecorder()
			tt.handler(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)
			var got Message
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			assert.Equal(t, tt.want, got.Message)
		})
	}
}
