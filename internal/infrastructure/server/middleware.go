package server

import (
	"errors"

	"github.com/labstack/echo/v4"

	httpHandlers "github.com/todoforge/core/internal/adapters/http"
	"github.com/todoforge/core/internal/application/services"
	"github.com/todoforge/core/internal/domain/entities"
)

// authMiddleware verifies the bearer credential on every request and stores
// the extracted user id in the request context. All rejections produce a 401
// with a bearer challenge; the reason only reaches the logs.
func (s *Server) authMiddleware(tokenService *services.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return httpHandlers.Unauthorized(c, "Missing authorization header")
			}

			userID, err := tokenService.VerifyAuthorization(header)
			if err != nil {
				s.logger.LogSecurityEvent("credential_rejected", "", c.RealIP(), map[string]interface{}{
					"error": err.Error(),
				})
				return httpHandlers.Unauthorized(c, credentialDetail(err))
			}

			c.Set("user", userID)

			return next(c)
		}
	}
}

// credentialDetail translates a rejection into the client-facing message.
func credentialDetail(err error) string {
	switch {
	case errors.Is(err, entities.ErrMalformedCredential):
		return "Invalid authorization header format. Expected: Bearer <token>"
	case errors.Is(err, entities.ErrMissingIdentity):
		return "Token does not contain user_id"
	default:
		return "Invalid or expired JWT token"
	}
}
