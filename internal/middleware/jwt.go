package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
    "github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers
)

// RequireAuth returns an Echo middleware that validates a Bearer access
// token and injects the token's subject into the request context as
// "user_id".  The provided secret must match the one used when issuing
// tokens.  Favorite mutations and the favorites listing are wrapped in
// this middleware so anonymous callers are rejected up front.
func RequireAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            sub, ok := parseSubject(raw, secret)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }
            c.Set("user_id", sub)
            return next(c)
        }
    }
}

// parseSubject validates an HS256 token and extracts its subject.
func parseSubject(raw, secret string) (string, bool) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, echo.ErrUnauthorized
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return "", false
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return "", false
    }
    sub, ok := claims["sub"].(string)
    if !ok || sub == "" {
        return "", false
    }
    return sub, true
}
