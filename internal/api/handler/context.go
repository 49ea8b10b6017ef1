package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/clinilab/auth-service/internal/api/middleware"
	"github.com/clinilab/auth-service/internal/core/domain"
)

// CallerID extracts the account id injected by the Auth middleware and
// fast-fails with 401 if it is absent (which means the guard never ran or
// the route is miswired).
func CallerID(c echo.Context) (string, error) {
	accountID, _ := c.Get(middleware.ContextAccountID).(string)
	if accountID == "" {
		return "", domain.ErrUnauthenticated
	}
	return accountID, nil
}
