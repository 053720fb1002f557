package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/rs/cors"

	"inkwell/api/router"
	"inkwell/auth"
	"inkwell/config"
	"inkwell/db"
	_ "inkwell/docs" // swag will generate this package
	"inkwell/logger"
	"inkwell/repositories"
	"inkwell/services"
	"inkwell/storage"
)

// @title           Inkwell API
// @version         1.0
// @description     Blog platform backend: signup/signin, Google sign-in, blog publishing and feeds
// @BasePath        /
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	ctx := context.Background()
	if err := db.Init(ctx); err != nil {
		log.Fatal("failed to initialize MongoDB:", err)
	}

	jwtManager, err := auth.NewJWTManagerFromEnv()
	if err != nil {
		log.Fatal(err)
	}

	verifier, err := auth.NewFirebaseVerifierFromEnv(ctx)
	if err != nil {
		log.Fatal("failed to initialize Google token verifier:", err)
	}

	uploader, err := storage.NewUploader(ctx, cfg.Upload.Region, cfg.Upload.Bucket,
		time.Duration(cfg.Upload.ExpirySeconds)*time.Second)
	if err != nil {
		log.Fatal("failed to initialize upload URL issuer:", err)
	}

	userRepo := repositories.NewUserRepository(db.Database())
	blogRepo := repositories.NewBlogRepository(db.Database())

	authSvc := services.NewAuthService(userRepo, jwtManager, verifier)
	blogSvc := services.NewBlogService(blogRepo, userRepo)
	uploadSvc := services.NewUploadService(uploader)

	r := router.New(authSvc, blogSvc, uploadSvc)

	port := cfg.Server.Port
	if port == "" {
		port = "3000"
	}

	logger.Log.Infof("listening on port %s", port)
	handler := cors.AllowAll().Handler(r)
	if err := http.ListenAndServe(":"+port, handler); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
