package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTManager signs and verifies access tokens with a single HS256 secret.
// The tokens it issues are the server's own credential, distinct from any
// identity-provider token presented at sign-in.
type JWTManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewJWTManagerFromEnv builds a JWTManager from the environment.
//
// - SECRET_ACCESS_KEY: HS256 signing secret (required)
// - JWT_ISSUER: iss claim value (optional, defaults to "inkwell")
func NewJWTManagerFromEnv() (*JWTManager, error) {
	secret := os.Getenv("SECRET_ACCESS_KEY")
	if secret == "" {
		return nil, fmt.Errorf("SECRET_ACCESS_KEY is required")
	}

	issuer := os.Getenv("JWT_ISSUER")
	if issuer == "" {
		issuer = "inkwell"
	}

	return &JWTManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    24 * time.Hour,
	}, nil
}

// Sign issues an access token embedding the user's document id.
func (m *JWTManager) Sign(userID string) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID,
		"iss": m.issuer,
		"exp": time.Now().Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse verifies a token and returns the embedded user id.
func (m *JWTManager) Parse(tokenString string) (string, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return "", fmt.Errorf("invalid token claims")
	}

	id, _ := claims["id"].(string)
	if id == "" {
		return "", fmt.Errorf("token missing id claim")
	}

	return id, nil
}
