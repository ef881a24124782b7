package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	iauth "github.com/cinetrack/cinetrack/internal/auth"
	"github.com/cinetrack/cinetrack/internal/services"
	"github.com/cinetrack/cinetrack/pkg/errors"
	"github.com/cinetrack/cinetrack/pkg/response"
)

const (
	CtxClaimsKey = "authClaims"
	CtxUserKey   = "currentUser"
	CtxUserIDKey = "userID"
)

// Auth enforces JWT authentication and resolves the token subject to an
// active account. Every failure mode produces the same 401 so callers
// cannot probe which part of the credential was wrong.
func Auth(jwt *iauth.JWTService, users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if len(authz) < 8 || !strings.EqualFold(authz[:7], "Bearer ") {
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		token := strings.TrimSpace(authz[7:])
		claims, err := jwt.ValidateToken(token)
		if err != nil {
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		user, err := users.GetByEmail(c.Request.Context(), claims.Subject)
		if err != nil || !user.IsActive {
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		c.Set(CtxClaimsKey, claims)
		c.Set(CtxUserKey, user)
		c.Set(CtxUserIDKey, user.ID)

		c.Next()
	}
}
