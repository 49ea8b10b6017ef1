package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/clinilab/auth-service/internal/core/domain"
	"github.com/clinilab/auth-service/internal/core/ports"
)

// RequireRole gates a route on the caller's current role. It must run after
// Auth. Tokens are stateless, so the account is re-read from the store on
// every call: a deactivated or deleted account is cut off here even while
// its token is still within expiry. The fresh role is injected for the
// handler. A store outage is not an authentication verdict and surfaces as
// the repository error.
func RequireRole(repo ports.AccountRepository, allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			accountID, _ := c.Get(ContextAccountID).(string)
			if accountID == "" {
				return domain.ErrUnauthenticated
			}

			account, err := repo.FindByID(c.Request().Context(), accountID)
			if err != nil {
				if errors.Is(err, domain.ErrAccountNotFound) {
					return domain.ErrUnauthenticated
				}
				return err
			}
			if !account.Active {
				return domain.ErrUnauthenticated
			}

			if _, ok := allowed[account.Role]; !ok {
				return domain.ErrForbidden
			}

			c.Set(ContextRole, account.Role)

			return next(c)
		}
	}
}
