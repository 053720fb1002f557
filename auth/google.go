package auth

import (
	"context"
	"fmt"
	"os"
	"strings"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// GoogleUserInfo is the subset of ID-token claims the platform cares about.
type GoogleUserInfo struct {
	Email   string
	Name    string
	Picture string
}

// IDTokenVerifier verifies a client-supplied Google ID token and returns the
// identity it asserts.
type IDTokenVerifier interface {
	Verify(ctx context.Context, idToken string) (GoogleUserInfo, error)
}

// FirebaseVerifier verifies Google ID tokens through the Firebase Admin SDK.
type FirebaseVerifier struct {
	client *firebaseauth.Client
}

// NewFirebaseVerifierFromEnv initializes the Firebase app from the service
// account file named by FIREBASE_CREDENTIALS_FILE (falling back to the SDK's
// default credential chain when unset).
func NewFirebaseVerifierFromEnv(ctx context.Context) (*FirebaseVerifier, error) {
	var opts []option.ClientOption
	if credFile := os.Getenv("FIREBASE_CREDENTIALS_FILE"); credFile != "" {
		opts = append(opts, option.WithCredentialsFile(credFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to init firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init firebase auth client: %w", err)
	}

	return &FirebaseVerifier{client: client}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (GoogleUserInfo, error) {
	decoded, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return GoogleUserInfo{}, fmt.Errorf("verify id token: %w", err)
	}

	info := GoogleUserInfo{
		Email:   claimString(decoded.Claims, "email"),
		Name:    claimString(decoded.Claims, "name"),
		Picture: claimString(decoded.Claims, "picture"),
	}
	if info.Email == "" {
		return GoogleUserInfo{}, fmt.Errorf("id token carries no email claim")
	}

	// Google serves a 96px avatar by default; swap in the larger variant.
	info.Picture = strings.Replace(info.Picture, "s96-c", "s384-c", 1)

	return info, nil
}

func claimString(claims map[string]interface{}, key string) string {
	s, _ := claims[key].(string)
	return s
}
