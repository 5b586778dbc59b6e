package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/tribalarts/storefront-service/internal/config"
)

const (
	ContextEmailKey = "auth_email"
	ContextRoleKey  = "auth_role"
)

// Auth parses the bearer token, if any, and stores the email and role claims
// on the request context. Requests without a token pass through; route-level
// guards decide what is required.
func Auth(cfg config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.Next()
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if email, ok := claims["email"].(string); ok {
				c.Set(ContextEmailKey, email)
			}
			if role, ok := claims["role"].(string); ok {
				c.Set(ContextRoleKey, role)
			}
		}

		c.Next()
	}
}

// RequireAdmin aborts the request unless the token carried an admin role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if role, exists := c.Get(ContextRoleKey); !exists || role != "admin" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

// AuthedEmail returns the authenticated email on the context, if any.
func AuthedEmail(c *gin.Context) string {
	if email, exists := c.Get(ContextEmailKey); exists {
		if s, ok := email.(string); ok {
			return s
		}
	}
	return ""
}
