package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inkwell/services"
)

// GetUploadURLHandler godoc
// @Summary      Issue a presigned banner upload URL
// @Description  Returns a time-limited URL for a direct client-side jpeg upload to object storage.
// @Tags         uploads
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /get-upload-url [get]
func GetUploadURLHandler(uploadSvc *services.UploadService) gin.HandlerFunc {
	return func(c *gin.Context) {
		url, err := uploadSvc.GenerateUploadURL(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"uploadURL": url})
	}
}
