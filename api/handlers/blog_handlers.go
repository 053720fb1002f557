package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inkwell/api/middleware"
	"inkwell/logger"
	"inkwell/services"
)

// CreateBlogHandler godoc
// @Summary      Create a blog
// @Description  Validates and persists a blog for the authenticated author, then registers it on the author document.
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Param        Authorization  header  string  true  "Bearer access token"
// @Param        body  body  services.CreateBlogInput  true  "Blog payload"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /create-blog [post]
func CreateBlogHandler(blogSvc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authorID := c.GetString(middleware.UserIDKey)

		var in services.CreateBlogInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		blogID, err := blogSvc.Create(c.Request.Context(), authorID, in)
		if err != nil {
			respondError(c, err)
			return
		}

		logger.InfoWithFields("blog created", logger.Fields{
			"blog_id": blogID,
			"author":  authorID,
			"draft":   in.Draft,
		})
		c.JSON(http.StatusOK, gin.H{"id": blogID})
	}
}

// LatestBlogsHandler godoc
// @Summary      List the newest published blogs
// @Tags         blogs
// @Produce      json
// @Success      200  {object}  map[string][]dto.BlogCardDTO
// @Failure      500  {object}  map[string]string
// @Router       /latest-blogs [get]
func LatestBlogsHandler(blogSvc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		blogs, err := blogSvc.Latest(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"blogs": blogs})
	}
}

// TrendingBlogsHandler godoc
// @Summary      List the most-read published blogs
// @Tags         blogs
// @Produce      json
// @Success      200  {object}  map[string][]dto.BlogCardDTO
// @Failure      500  {object}  map[string]string
// @Router       /trending-blogs [get]
func TrendingBlogsHandler(blogSvc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		blogs, err := blogSvc.Trending(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"blogs": blogs})
	}
}

type searchBlogsRequest struct {
	Tag string `json:"tag"`
}

// SearchBlogsHandler godoc
// @Summary      List published blogs carrying a tag
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Param        body  body  searchBlogsRequest  true  "Tag filter"
// @Success      200  {object}  map[string][]dto.BlogCardDTO
// @Failure      500  {object}  map[string]string
// @Router       /search-blogs [post]
func SearchBlogsHandler(blogSvc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in searchBlogsRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		blogs, err := blogSvc.SearchByTag(c.Request.Context(), in.Tag)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"blogs": blogs})
	}
}

// GetBlogHandler godoc
// @Summary      Read a single published blog
// @Tags         blogs
// @Produce      json
// @Param        blog_id  path  string  true  "Public blog id"
// @Success      200  {object}  map[string]dto.BlogDTO
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /blog/{blog_id} [get]
func GetBlogHandler(blogSvc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		blog, err := blogSvc.GetByBlogID(c.Request.Context(), c.Param("blog_id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"blog": blog})
	}
}
