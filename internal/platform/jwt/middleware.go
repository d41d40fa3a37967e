// Package jwtmw provides JWT token generation and the Gin authentication middleware.
package jwtmw

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"fleamarket_backend/internal/feature/auth/domain/entity"
)

// ContextUser is the Gin context key under which the authenticated user is stored.
const ContextUser = "currentUser"

// UserFinder resolves token claims to a stored user.
// It returns (nil, nil) when no user matches; the middleware then rejects the request.
type UserFinder interface {
	FindUser(ctx context.Context, id, username string) (*entity.User, error)
}

// AuthRequired returns a Gin middleware function that validates JWT tokens,
// resolves the claims to a user via the finder, and restricts access to
// authenticated users only.
func AuthRequired(secret string, finder UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		if secret == "" {
			// Server misconfiguration (JWT secret not set)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
			return
		}

		// 2. Parse and verify JWT signature
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			// Check signing algorithm (only HMAC allowed)
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// 3. Extract claims (payload)
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		sub, _ := claims["sub"].(string)
		username, _ := claims["username"].(string)
		if sub == "" || username == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// 4. Resolve the claims to a stored user.
		// An absent user means the token refers to an account that no longer exists.
		user, err := finder.FindUser(c.Request.Context(), sub, username)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		c.Set(ContextUser, user)

		// 5. Pass control to the next handler
		c.Next()
	}
}
