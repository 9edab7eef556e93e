package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/auth-rbac/internal/lib/password"
	"github.com/magabrotheeeer/auth-rbac/internal/lib/sl"
	services "github.com/magabrotheeeer/auth-rbac/internal/services/auth"
)

func TestStatusOKWithData(t *testing.T) {
	data := map[string]string{"key": "value"}
	resp := StatusOKWithData(data)

	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.Equal(t, data, resp.Data)
}

func TestError(t *testing.T) {
	resp := Error("something went wrong")

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "something went wrong", resp.Error)
}

func TestValidationError(t *testing.T) {
	type registerRequest struct {
		Username string `validate:"required"`
		Email    string `validate:"required,contains=@"`
		Password string `validate:"required,min=6,max=72"`
	}

	v := validator.New()
	err := v.Struct(registerRequest{Email: "alice.x.com", Password: "123"})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))

	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Username is a required field")
	assert.Contains(t, resp.Error, `field Email must contain "@"`)
	assert.Contains(t, resp.Error, "field Password must be at least 6 characters long")
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
		wantBearer bool
	}{
		{"unauthorized", fmt.Errorf("op: %w", services.ErrUnauthorized), http.StatusUnauthorized, MsgUnauthorized, true},
		{"invalid credentials", services.ErrInvalidCredentials, http.StatusUnauthorized, MsgInvalidCredentials, true},
		{"forbidden", services.ErrForbidden, http.StatusForbidden, MsgForbidden, false},
		{"conflict", services.ErrConflict, http.StatusBadRequest, "Username already exists", false},
		{"validation", services.ErrInvalidRole, http.StatusBadRequest, "invalid role", false},
		{"internal", fmt.Errorf("op: %w", services.ErrInternal), http.StatusInternalServerError, MsgInternal, false},
		{"hashing", &password.HashingError{Op: "password.Hash", Err: errors.New("boom")}, http.StatusInternalServerError, MsgInternal, false},
		{"unknown", errors.New("db down"), http.StatusInternalServerError, MsgInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rr := httptest.NewRecorder()

			WriteError(rr, req, sl.NewDiscardLogger(), tt.err)

			assert.Equal(t, tt.wantStatus, rr.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, StatusError, body.Status)
			assert.Equal(t, tt.wantMsg, body.Error)
			if tt.wantBearer {
				assert.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))
			} else {
				assert.Empty(t, rr.Header().Get("WWW-Authenticate"))
			}
		})
	}
}
