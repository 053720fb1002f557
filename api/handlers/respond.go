package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"inkwell/services"
)

// respondError maps a service error onto the wire contract: rejections are
// 403 with their message verbatim, a missing blog is 404, everything else
// (duplicate keys and downstream failures included) is 500.
func respondError(c *gin.Context, err error) {
	switch {
	case services.IsRejection(err):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrBlogNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
