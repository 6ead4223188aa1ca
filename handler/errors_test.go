package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"resourceshub/usecase"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRespondError(t *testing.T) {
	_, validationErr := usecase.ResolveServerFile(t.TempDir(), "")

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"validation", validationErr, http.StatusBadRequest, "File path is required"},
		{"not found", fmt.Errorf("lookup: %w", usecase.ErrNotFound), http.StatusNotFound, "Not found"},
		{"user not found", usecase.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"forbidden", usecase.ErrForbidden, http.StatusForbidden, "permission"},
		{"email taken", usecase.ErrEmailTaken, http.StatusConflict, "Email is already registered"},
		{"conflict", usecase.ErrConflict, http.StatusConflict, "already exists"},
		{"credentials", usecase.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"2fa code", usecase.ErrInvalid2FACode, http.StatusUnauthorized, "Invalid 2FA code"},
		{"2fa state", usecase.Err2FANotEnabled, http.StatusBadRequest, "2FA is not enabled"},
		{"database down", fmt.Errorf("%w: no reachable servers", usecase.ErrDatabaseUnavailable), http.StatusServiceUnavailable, "Database unavailable"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "fallback message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

			respondError(c, zerolog.Nop(), tt.err, "fallback message")

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}
