package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	// ErrNoToken covers a missing, malformed, or empty Authorization header.
	ErrNoToken = errors.New("No token provided")
	// ErrInvalidToken covers a token that fails verification or expired.
	ErrInvalidToken = errors.New("Access token is invalid")
)

// ExtractBearerToken extracts the Bearer token from the Authorization header.
func ExtractBearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", ErrNoToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrNoToken
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", ErrNoToken
	}

	return token, nil
}

// AbortWithForbidden aborts the request with 403 and an error JSON body.
// Token failures on protected routes answer 403, not 401.
func AbortWithForbidden(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
}
