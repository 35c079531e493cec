package auth

import (
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"
)

const bearerPrefix = "Bearer "

// Middleware verifies the bearer token, when present, and stores its subject
// in the request context. Requests without a valid token pass through
// unauthenticated; operations that need a caller reject them.
func Middleware(tokens *TokenService, logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, bearerPrefix) {
				return next(c)
			}

			subject, err := tokens.Verify(strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)))
			if err != nil {
				logger.WarnContext(c.Request().Context(), "rejected bearer token",
					"path", c.Path(),
					"error", err,
				)
				return next(c)
			}

			req := c.Request()
			c.SetRequest(req.WithContext(WithSubject(req.Context(), subject)))
			return next(c)
		}
	}
}
