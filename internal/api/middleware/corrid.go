package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/webtodo/todo-system/internal/pkg/corrid"
)

const (
	// HeaderCorrelationID carries the correlation id on requests and
	// responses. A valid inbound value is echoed back; anything else is
	// replaced with a fresh id.
	HeaderCorrelationID = "X-Correlation-Id"

	// HeaderResponseTime reports the handler duration in milliseconds.
	HeaderResponseTime = "X-Response-Time"
)

// CorrelationID assigns every request a correlation id and stamps the
// response with the id and the elapsed handling time. The id travels in the
// request context so every log line downstream can carry it.
func CorrelationID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			id, ok := corrid.Parse(c.Request().Header.Get(HeaderCorrelationID))
			if !ok {
				id = corrid.New()
			}

			ctx := corrid.WithContext(c.Request().Context(), id)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set(HeaderCorrelationID, strconv.Itoa(id))

			c.Response().Before(func() {
				elapsed := time.Since(start).Milliseconds()
				c.Response().Header().Set(HeaderResponseTime, strconv.FormatInt(elapsed, 10)+"ms")
			})

			return next(c)
		}
	}
}
