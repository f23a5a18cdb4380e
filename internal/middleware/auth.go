package middleware

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/arfandy/journal-backend/internal/apperr"
	"github.com/arfandy/journal-backend/internal/logging"
	"github.com/arfandy/journal-backend/internal/tokens"
)

const (
	ContextUserID = "user_id"
	ContextClaims = "token_claims"
)

// Auth verifies the bearer access token on each request. Verification is
// stateless: only the signature and the embedded expiry are checked, the
// store is never consulted.
type Auth struct {
	Secret []byte
}

func NewAuth(secret []byte) *Auth {
	return &Auth{Secret: secret}
}

func (m *Auth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("middleware", "auth")

		header := c.Request().Header.Get(echo.HeaderAuthorization)
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			l.Warn("auth_failed", "status", 403, "reason", "missing bearer token")
			return apperr.Forbidden("Missing or invalid authorization token")
		}

		if len(m.Secret) == 0 {
			l.Error("auth_failed", "status", 500, "reason", "signing secret unavailable")
			return apperr.Config("JWT secret is not configured")
		}

		claims, err := tokens.ParseAccessToken(parts[1], m.Secret)
		if err != nil {
			if errors.Is(err, tokens.ErrExpired) {
				// Distinct message so clients refresh instead of re-login.
				l.Warn("auth_failed", "status", 401, "reason", "token expired")
				return apperr.Unauthorized("Access token has expired")
			}
			l.Warn("auth_failed", "status", 401, "reason", "invalid token")
			return apperr.Unauthorized("Unauthorized")
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			l.Warn("auth_failed", "status", 401, "reason", "malformed subject")
			return apperr.Unauthorized("Unauthorized")
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextClaims, claims)
		return next(c)
	}
}

// UserID pulls the authenticated identity attached by RequireAuth.
func UserID(c echo.Context) (uuid.UUID, error) {
	id, ok := c.Get(ContextUserID).(uuid.UUID)
	if !ok {
		return uuid.Nil, apperr.Forbidden("Missing or invalid authorization token")
	}
	return id, nil
}
