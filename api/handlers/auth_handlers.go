package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inkwell/logger"
	"inkwell/services"
)

// SignupHandler godoc
// @Summary      Register a local-password account
// @Description  Validates fullname/email/password, persists the user, and returns an access token with the public profile fields.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  services.SignupInput  true  "Signup payload"
// @Success      200  {object}  dto.AuthSessionDTO
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /signup [post]
func SignupHandler(authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.SignupInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		session, err := authSvc.Signup(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}

		logger.InfoWithFields("user signed up", logger.Fields{"username": session.Username})
		c.JSON(http.StatusOK, session)
	}
}

// SigninHandler godoc
// @Summary      Sign in with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  services.SigninInput  true  "Signin payload"
// @Success      200  {object}  dto.AuthSessionDTO
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /signin [post]
func SigninHandler(authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.SigninInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		session, err := authSvc.Signin(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, session)
	}
}

type googleAuthRequest struct {
	AccessToken string `json:"access_token"`
}

// GoogleAuthHandler godoc
// @Summary      Sign in with a Google ID token
// @Description  Verifies the client-supplied ID token, finds or creates the matching account, and returns a server-issued access token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  googleAuthRequest  true  "Google ID token"
// @Success      200  {object}  dto.AuthSessionDTO
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /google-auth [post]
func GoogleAuthHandler(authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in googleAuthRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		session, err := authSvc.GoogleAuth(c.Request.Context(), in.AccessToken)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, session)
	}
}
