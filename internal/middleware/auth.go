package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/medtrack-dev/medtrack/internal/auth"
	"github.com/medtrack-dev/medtrack/internal/models"
	"github.com/medtrack-dev/medtrack/internal/policy"
	"github.com/medtrack-dev/medtrack/internal/repositories"
	"github.com/medtrack-dev/medtrack/internal/types"
)

type AuthenticatedUser struct {
	ID       uint        `json:"id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

// Every authentication failure returns this same message; the caller learns
// nothing about whether the token was malformed, expired, or orphaned.
const credentialsError = "Could not validate credentials"

// RequireAuth decodes the bearer token, resolves its subject to a stored
// user, and places the authenticated identity in the request context.
func RequireAuth(tokens *auth.TokenManager, users *repositories.UserStore) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": credentialsError})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": credentialsError})
			return
		}

		claims, err := tokens.Parse(parts[1])

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": credentialsError})
			return
		}

		user, err := users.GetByUsername(claims.Subject)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": credentialsError})
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:       user.ID,
			Username: user.Username,
			Role:     user.Role,
		})
		ctx.Next()
	}
}

// RequireOperation rejects authenticated callers whose role is not in the
// operation's allowed set. Must run after RequireAuth.
func RequireOperation(op policy.Operation) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		value, exists := ctx.Get(types.ContextUserKey)

		if !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": credentialsError})
			return
		}

		user, ok := value.(AuthenticatedUser)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": credentialsError})
			return
		}

		if !policy.Allows(op, user.Role) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}

		ctx.Next()
	}
}
