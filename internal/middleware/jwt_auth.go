package middleware

import (
	"net/http"
	"strings"

	"github.com/MohamedHisham20/media-sharing-platform/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// ContextUserIDKey is the echo context key the middleware stores the
// authenticated user's id under.
const ContextUserIDKey = "userID"

// JWTAuthMiddleware checks for a valid JWT and injects the authenticated
// user's id into the request context. Core logic never reads ambient
// request state; handlers pass the id on explicitly.
func JWTAuthMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}
			tokenString := parts[1]

			claims := &models.JwtCustomClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
				}
				return []byte(secret), nil
			})

			if err != nil {
				if err == jwt.ErrSignatureInvalid {
					return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token signature")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			if !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			c.Set(ContextUserIDKey, claims.UserID)

			return next(c)
		}
	}
}

// UserIDFromContext returns the authenticated user's id set by
// JWTAuthMiddleware, or "" for unauthenticated requests.
func UserIDFromContext(c echo.Context) string {
	if id, ok := c.Get(ContextUserIDKey).(string); ok {
		return id
	}
	return ""
}
