package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/todoforge/core/internal/domain/entities"
	"github.com/todoforge/core/internal/infrastructure/config"
)

// Claims represents the JWT claims carried by a bearer credential.
type Claims struct {
	UserID string `json:"user_id,omitempty"`
	jwt.RegisteredClaims
}

// TokenService verifies bearer credentials issued by an external identity
// provider. Verification is stateless; the service holds only configuration,
// so a single instance is safe to share across requests.
type TokenService struct {
	cfg config.JWTConfig
}

// NewTokenService creates a new token service
func NewTokenService(cfg config.JWTConfig) *TokenService {
	return &TokenService{cfg: cfg}
}

// VerifyAuthorization validates a raw Authorization header value and returns
// the user id embedded in the credential. The header must be exactly
// "Bearer <token>" with a case-insensitive scheme.
func (s *TokenService) VerifyAuthorization(header string) (string, error) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", entities.ErrMalformedCredential
	}

	return s.VerifyToken(parts[1])
}

// VerifyToken validates a signed token and extracts the user identity from
// the user_id claim, falling back to the registered subject.
func (s *TokenService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	}, jwt.WithValidMethods([]string{s.cfg.Algorithm}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", entities.ErrExpiredCredential
		}
		return "", fmt.Errorf("%w: %v", entities.ErrInvalidCredential, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", entities.ErrInvalidCredential
	}

	if claims.UserID != "" {
		return claims.UserID, nil
	}
	if claims.Subject != "" {
		return claims.Subject, nil
	}

	return "", entities.ErrMissingIdentity
}

// GenerateToken mints a signed token carrying the given user id. Production
// credentials come from the external identity provider; this backs the
// token CLI command and tests.
func (s *TokenService) GenerateToken(userID string, ttl time.Duration) (string, error) {
	method := jwt.GetSigningMethod(s.cfg.Algorithm)
	if method == nil {
		return "", fmt.Errorf("unsupported signing algorithm: %s", s.cfg.Algorithm)
	}

	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(method, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
