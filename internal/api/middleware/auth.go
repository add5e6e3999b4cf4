package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/webtodo/todo-system/internal/api/metrics"
	"github.com/webtodo/todo-system/internal/core/domain"
	"github.com/webtodo/todo-system/internal/core/ports"
)

// PrincipalKey is the echo context key holding the resolved domain.Principal
// for authenticated requests.
const PrincipalKey = "principal"

// publicRoutes lists the method+path pairs reachable without a bearer token.
// Everything else behind the gate requires authentication.
var publicRoutes = map[string]struct{}{
	"POST /auth/login":    {},
	"POST /auth/register": {},
	"GET /health":         {},
	"GET /health/ready":   {},
	"GET /metrics":        {},
}

// publicPrefixes lists path prefixes open without authentication (the API
// docs serve many sub-paths).
var publicPrefixes = []string{"/docs"}

func isPublic(method, path string) bool {
	if _, ok := publicRoutes[method+" "+path]; ok {
		return true
	}
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Auth is the authentication gate: it extracts the bearer token, verifies it,
// resolves the subject to a live principal, and stores the principal in the
// request context. Every failure mode collapses to the same 401; the specific
// reason only reaches the logs and metrics.
func Auth(tokens ports.TokenService, principals ports.PrincipalDirectory) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if isPublic(c.Request().Method, c.Path()) {
				return next(c)
			}

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing_token").Inc()
				return domain.ErrAuthenticationRequired
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthFailuresTotal.WithLabelValues("malformed_header").Inc()
				return domain.ErrAuthenticationRequired
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
				return domain.ErrAuthenticationRequired
			}

			// A valid token is not enough: the account must still exist. A
			// deleted account's outstanding tokens stop working here.
			principal, err := principals.Resolve(c.Request().Context(), claims.UserID)
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("unknown_principal").Inc()
				return domain.ErrAuthenticationRequired
			}

			c.Set(PrincipalKey, *principal)
			return next(c)
		}
	}
}
