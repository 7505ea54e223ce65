package middleware

import "github.com/labstack/echo/v4"

// Username returns the authenticated username stored by JWTAuth, or
// "guest" when the request carries no token.
func Username(c echo.Context) string {
	if v, ok := c.Get(CtxUsername).(string); ok && v != "" {
		return v
	}
	return "guest"
}
