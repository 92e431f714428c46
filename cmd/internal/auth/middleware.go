package auth

import (
	"strings"

	"clinicbook/cmd/internal/utils/apierror"
	"github.com/labstack/echo/v4"
)

const principalKey = "auth.principal"

// Middleware authenticates the request. Absence or malformation of the
// credential is UNAUTHENTICATED (401); role checks happen later and are a
// separate condition.
func (t *Tokens) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return c.JSON(apierror.MissingAuthError.Code(), apierror.MissingAuthError)
			}

			parts := strings.Fields(header)
			if len(parts) != 2 || parts[0] != "Bearer" {
				return c.JSON(apierror.MalformedTokenError.Code(), apierror.MalformedTokenError)
			}

			data, err := t.Parse(parts[1])
			if err != nil {
				return c.JSON(apierror.InvalidAuthTokenError.Code(), apierror.InvalidAuthTokenError)
			}

			c.Set(principalKey, data)
			return next(c)
		}
	}
}

// RequireRole gates a route on the principal's role claim. Valid credential
// with the wrong role is FORBIDDEN (403).
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			data := Principal(c)
			if data == nil {
				return c.JSON(apierror.MissingAuthError.Code(), apierror.MissingAuthError)
			}
			if data.Role != role {
				return c.JSON(apierror.ForbiddenError.Code(), apierror.ForbiddenError)
			}
			return next(c)
		}
	}
}

// Principal returns the authenticated principal set by Middleware, or nil.
func Principal(c echo.Context) *TokenData {
	data, _ := c.Get(principalKey).(*TokenData)
	return data
}
