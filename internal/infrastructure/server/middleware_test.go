package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	httpHandlers "github.com/todoforge/core/internal/adapters/http"
	"github.com/todoforge/core/internal/application/services"
	"github.com/todoforge/core/internal/infrastructure/config"
	"github.com/todoforge/core/internal/infrastructure/logger"
)

func newAuthTestServer() (*Server, *services.TokenService) {
	tokenService := services.NewTokenService(config.JWTConfig{
		Secret:    "test-secret-key",
		Algorithm: "HS256",
		Issuer:    "test-issuer",
		ExpiresIn: time.Hour,
	})
	s := &Server{logger: logger.NewNop()}
	return s, tokenService
}

func runAuthMiddleware(t *testing.T, s *Server, tokenService *services.TokenService, authorization string) (*httptest.ResponseRecorder, bool, string) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	nextCalled := false
	next := func(c echo.Context) error {
		nextCalled = true
		return c.NoContent(http.StatusOK)
	}

	if err := s.authMiddleware(tokenService)(next)(c); err != nil {
		t.Fatalf("authMiddleware() error = %v", err)
	}

	userID, _ := c.Get("user").(string)
	return rec, nextCalled, userID
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	s, tokenService := newAuthTestServer()

	token, err := tokenService.GenerateToken("user-123", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	rec, nextCalled, userID := runAuthMiddleware(t, s, tokenService, "Bearer "+token)

	if !nextCalled {
		t.Fatal("next handler was not called for a valid credential")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if userID != "user-123" {
		t.Errorf("context user = %q, want %q", userID, "user-123")
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	s, tokenService := newAuthTestServer()

	valid, err := tokenService.GenerateToken("user-123", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	expired, err := tokenService.GenerateToken("user-123", -time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	tests := []struct {
		name       string
		header     string
		wantDetail string
	}{
		{
			name:       "missing header",
			header:     "",
			wantDetail: "Missing authorization header",
		},
		{
			name:       "wrong scheme",
			header:     "Basic " + valid,
			wantDetail: "Invalid authorization header format. Expected: Bearer <token>",
		},
		{
			name:       "bare token",
			header:     valid,
			wantDetail: "Invalid authorization header format. Expected: Bearer <token>",
		},
		{
			name:       "expired token",
			header:     "Bearer " + expired,
			wantDetail: "Invalid or expired JWT token",
		},
		{
			name:       "garbage token",
			header:     "Bearer not.a.token",
			wantDetail: "Invalid or expired JWT token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, nextCalled, _ := runAuthMiddleware(t, s, tokenService, tt.header)

			if nextCalled {
				t.Fatal("next handler was called for a rejected credential")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
			}
			if got := rec.Header().Get(echo.HeaderWWWAuthenticate); got != "Bearer" {
				t.Errorf("WWW-Authenticate = %q, want %q", got, "Bearer")
			}

			var resp httpHandlers.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}
			if resp.ErrorCode != httpHandlers.ErrorCodeUnauthorized {
				t.Errorf("error_code = %q, want %q", resp.ErrorCode, httpHandlers.ErrorCodeUnauthorized)
			}
			if resp.Detail != tt.wantDetail {
				t.Errorf("detail = %q, want %q", resp.Detail, tt.wantDetail)
			}
		})
	}
}

func TestErrorCodeForStatus(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{http.StatusBadRequest, httpHandlers.ErrorCodeValidation},
		{http.StatusUnauthorized, httpHandlers.ErrorCodeUnauthorized},
		{http.StatusForbidden, httpHandlers.ErrorCodeForbidden},
		{http.StatusNotFound, httpHandlers.ErrorCodeNotFound},
		{http.StatusInternalServerError, httpHandlers.ErrorCodeInternal},
		{http.StatusTeapot, httpHandlers.ErrorCodeInternal},
	}

	for _, tt := range tests {
		if got := errorCodeForStatus(tt.code); got != tt.want {
			t.Errorf("errorCodeForStatus(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
