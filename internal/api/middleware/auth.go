package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/clinilab/auth-service/internal/api/metrics"
	"github.com/clinilab/auth-service/internal/core/domain"
	"github.com/clinilab/auth-service/internal/core/ports"
)

// Context keys set by the guards for downstream handlers. Raw tokens and
// password hashes are never placed in the context.
const (
	ContextAccountID = "account_id"
	ContextRole      = "role"
)

// Auth validates the bearer access token and injects the account id into
// the request context. Missing, malformed, expired or tampered tokens and
// refresh tokens presented as access tokens all yield 401 through the
// domain sentinels.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := BearerToken(c)
			if err != nil {
				return err
			}

			identity, err := tokens.Validate(raw)
			if err != nil {
				metrics.TokenValidationsTotal.WithLabelValues(validationResult(err)).Inc()
				return err
			}
			if identity.Kind != ports.TokenKindAccess {
				metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
				return domain.ErrTokenInvalid
			}
			metrics.TokenValidationsTotal.WithLabelValues("ok").Inc()

			c.Set(ContextAccountID, identity.AccountID)

			return next(c)
		}
	}
}

func validationResult(err error) string {
	if errors.Is(err, domain.ErrTokenExpired) {
		return "expired"
	}
	return "invalid"
}

// BearerToken extracts the credential from the Authorization header. The
// refresh handler uses it too, so the header rules stay in one place.
func BearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", domain.ErrUnauthenticated
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", domain.ErrUnauthenticated
	}
	return parts[1], nil
}
