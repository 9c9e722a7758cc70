package middleware

// identity.go carries the optional identity middleware and the helper
// that reads the caller's identity back out of the context.  Search is
// open to guests but annotates results with the caller's favorites, so
// it needs the identity when present without rejecting anonymous
// requests.

import (
    "strings"

    "github.com/labstack/echo/v4"
)

// Identity returns a middleware that extracts the subject from a
// Bearer token when one is supplied and stores it under "user_id".
// Requests without a token (or with an invalid one) proceed as guests.
func Identity(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if strings.HasPrefix(auth, "Bearer ") {
                if sub, ok := parseSubject(strings.TrimPrefix(auth, "Bearer "), secret); ok {
                    c.Set("user_id", sub)
                }
            }
            return next(c)
        }
    }
}

// UserID returns the authenticated user's identity or "" for guests.
func UserID(c echo.Context) string {
    if v, ok := c.Get("user_id").(string); ok {
        return v
    }
    return ""
}
