package middleware

import (
	"github.com/gin-gonic/gin"

	"inkwell/auth"
	"inkwell/services"
)

// UserIDKey is the context key the authenticated user's id is stored under.
const UserIDKey = "user_id"

// RequireAuth guards protected routes. It extracts the bearer token, parses
// it, and attaches the decoded user id to the request context. Any failure
// answers 403 with an error JSON body.
func RequireAuth(authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c)
		if err != nil {
			auth.AbortWithForbidden(c, err)
			return
		}

		userID, err := authSvc.ParseAccessToken(token)
		if err != nil {
			auth.AbortWithForbidden(c, auth.ErrInvalidToken)
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}
