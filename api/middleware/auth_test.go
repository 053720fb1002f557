package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"inkwell/auth"
	"inkwell/models"
	"inkwell/services"
)

type stubUserStore struct{}

func (stubUserStore) Insert(context.Context, *models.User) (primitive.ObjectID, error) {
	return primitive.NilObjectID, mongo.ErrClientDisconnected
}

func (stubUserStore) FindByEmail(context.Context, string) (*models.User, error) {
	return nil, mongo.ErrNoDocuments
}

func (stubUserStore) UsernameExists(context.Context, string) (bool, error) {
	return false, nil
}

func newProtectedRouter(t *testing.T) (*gin.Engine, *auth.JWTManager) {
	t.Helper()
	t.Setenv("SECRET_ACCESS_KEY", "test-secret")

	manager, err := auth.NewJWTManagerFromEnv()
	if err != nil {
		t.Fatalf("failed to build jwt manager: %v", err)
	}
	authSvc := services.NewAuthService(stubUserStore{}, manager, nil)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireAuth(authSvc), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.GetString(UserIDKey)})
	})
	return r, manager
}

func TestRequireAuthWithoutToken(t *testing.T) {
	r, _ := newProtectedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["error"] != "No token provided" {
		t.Fatalf("unexpected error message: %q", body["error"])
	}
}

func TestRequireAuthWithInvalidToken(t *testing.T) {
	r, _ := newProtectedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["error"] != "Access token is invalid" {
		t.Fatalf("unexpected error message: %q", body["error"])
	}
}

func TestRequireAuthAttachesUserID(t *testing.T) {
	r, manager := newProtectedRouter(t)

	userID := primitive.NewObjectID().Hex()
	token, err := manager.Sign(userID)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["id"] != userID {
		t.Fatalf("expected user id %q attached to the context, got %q", userID, body["id"])
	}
}
