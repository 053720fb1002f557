package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/bson"

	"inkwell/api/handlers"
	"inkwell/api/middleware"
	"inkwell/db"
	_ "inkwell/docs"
	"inkwell/services"
)

// New assembles the engine over the injected services. Route paths and
// status codes are a stable client contract.
func New(authSvc *services.AuthService, blogSvc *services.BlogService, uploadSvc *services.UploadService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestTrace())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := db.Database().RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "mongo": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// auth
	r.POST("/signup", handlers.SignupHandler(authSvc))
	r.POST("/signin", handlers.SigninHandler(authSvc))
	r.POST("/google-auth", handlers.GoogleAuthHandler(authSvc))

	// uploads
	r.GET("/get-upload-url", handlers.GetUploadURLHandler(uploadSvc))

	// blogs
	r.POST("/create-blog", middleware.RequireAuth(authSvc), handlers.CreateBlogHandler(blogSvc))
	r.GET("/latest-blogs", handlers.LatestBlogsHandler(blogSvc))
	r.GET("/trending-blogs", handlers.TrendingBlogsHandler(blogSvc))
	r.POST("/search-blogs", handlers.SearchBlogsHandler(blogSvc))
	r.GET("/blog/:blog_id", handlers.GetBlogHandler(blogSvc))

	return r
}
