package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/webtodo/todo-system/internal/api/middleware"
	"github.com/webtodo/todo-system/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Auth middleware. A
// missing or zero-id principal means the middleware did not run on this
// route; fail closed rather than proceed anonymously.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	principal, _ := c.Get(middleware.PrincipalKey).(domain.Principal)
	if principal.ID == 0 {
		return domain.Principal{}, domain.ErrAuthenticationRequired
	}
	return principal, nil
}
