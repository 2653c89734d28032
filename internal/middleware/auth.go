package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/barber-queue/internal/httperr"
)

const (
	ContextAdmin     = "admin"
	ContextRequestID = "requestID"

	RoleAdmin = "admin"
)

// AuthMiddleware guards the staff routes. The token carries the admin
// username in "sub" and must have role=admin.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Authorization header is required.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Expected a Bearer token.")
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "Token is invalid or expired.")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Unauthorized(c, "invalid_token_claims", "Token claims are unreadable.")
			c.Abort()
			return
		}

		sub, _ := claims["sub"].(string)
		role, _ := claims["role"].(string)
		if sub == "" || role != RoleAdmin {
			httperr.Unauthorized(c, "invalid_token_payload", "Token is not an admin token.")
			c.Abort()
			return
		}

		c.Set(ContextAdmin, sub)
		c.Next()
	}
}

// AdminFrom returns the authenticated admin username, or "" on public routes.
func AdminFrom(c *gin.Context) string {
	return c.GetString(ContextAdmin)
}
