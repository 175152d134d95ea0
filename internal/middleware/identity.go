package middleware

// identity.go provides the user identity helper shared by the rate
// limiter and response cache key builders.  It reads the user_id placed
// into context by JWTAuth/OptionalJWTAuth and falls back to "anon" for
// unauthenticated requests.

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// currentUserID renders the authenticated user id from context as a
// string, or "anon" when the request carries no identity.  JWT numeric
// claims are decoded as float64, so the value is formatted rather than
// type-asserted.
func currentUserID(c echo.Context) string {
	v := c.Get("user_id")
	if v == nil {
		return "anon"
	}
	switch t := v.(type) {
	case string:
		if t != "" {
			return t
		}
		return "anon"
	case float64:
		return fmt.Sprintf("%.0f", t)
	default:
		return fmt.Sprint(t)
	}
}
