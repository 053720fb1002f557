package services

import (
	"context"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"inkwell/auth"
	"inkwell/models"
)

type fakeUserStore struct {
	users     map[string]*models.User // keyed by email
	insertErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*models.User{}}
}

func (f *fakeUserStore) Insert(_ context.Context, u *models.User) (primitive.ObjectID, error) {
	if f.insertErr != nil {
		return primitive.NilObjectID, f.insertErr
	}
	if _, ok := f.users[u.PersonalInfo.Email]; ok {
		return primitive.NilObjectID, mongo.WriteException{
			WriteErrors: mongo.WriteErrors{{Code: 11000}},
		}
	}
	u.ID = primitive.NewObjectID()
	f.users[u.PersonalInfo.Email] = u
	return u.ID, nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserStore) UsernameExists(_ context.Context, username string) (bool, error) {
	for _, u := range f.users {
		if u.PersonalInfo.Username == username {
			return true, nil
		}
	}
	return false, nil
}

type fakeVerifier struct {
	info auth.GoogleUserInfo
	err  error
}

func (f *fakeVerifier) Verify(context.Context, string) (auth.GoogleUserInfo, error) {
	return f.info, f.err
}

func newTestAuthService(t *testing.T, store UserStore, verifier auth.IDTokenVerifier) *AuthService {
	t.Helper()
	t.Setenv("SECRET_ACCESS_KEY", "test-secret")

	manager, err := auth.NewJWTManagerFromEnv()
	if err != nil {
		t.Fatalf("failed to build jwt manager: %v", err)
	}
	return NewAuthService(store, manager, verifier)
}

func TestSignupRejectsInvalidInput(t *testing.T) {
	testCases := []struct {
		name string
		in   SignupInput
	}{
		{
			name: "short fullname",
			in:   SignupInput{Fullname: "Jo", Email: "jo@example.com", Password: "Passw0rd"},
		},
		{
			name: "empty email",
			in:   SignupInput{Fullname: "Jordan", Email: "", Password: "Passw0rd"},
		},
		{
			name: "malformed email",
			in:   SignupInput{Fullname: "Jordan", Email: "not-an-email", Password: "Passw0rd"},
		},
		{
			name: "password too short",
			in:   SignupInput{Fullname: "Jordan", Email: "jordan@example.com", Password: "Ab1"},
		},
		{
			name: "password too long",
			in:   SignupInput{Fullname: "Jordan", Email: "jordan@example.com", Password: "Abcdefgh123456789012345"},
		},
		{
			name: "password without digit",
			in:   SignupInput{Fullname: "Jordan", Email: "jordan@example.com", Password: "Password"},
		},
		{
			name: "password without uppercase",
			in:   SignupInput{Fullname: "Jordan", Email: "jordan@example.com", Password: "passw0rd"},
		},
		{
			name: "password without lowercase",
			in:   SignupInput{Fullname: "Jordan", Email: "jordan@example.com", Password: "PASSW0RD"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			store := newFakeUserStore()
			svc := newTestAuthService(t, store, nil)

			_, err := svc.Signup(context.Background(), testCase.in)
			if !IsRejection(err) {
				t.Fatalf("expected a rejection, got %v", err)
			}
			if len(store.users) != 0 {
				t.Fatalf("expected no user persisted, found %d", len(store.users))
			}
		})
	}
}

func TestSignupCreatesUserAndSession(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(t, store, nil)

	session, err := svc.Signup(context.Background(), SignupInput{
		Fullname: "Jane Doe",
		Email:    "jane@example.com",
		Password: "Sup3rSecret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if session.Username != "jane" {
		t.Fatalf("expected username derived from email local-part, got %q", session.Username)
	}
	if session.Fullname != "Jane Doe" {
		t.Fatalf("expected fullname in session, got %q", session.Fullname)
	}
	if session.ProfileImg == "" {
		t.Fatalf("expected a default profile image")
	}

	saved := store.users["jane@example.com"]
	if saved == nil {
		t.Fatalf("expected user persisted")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(saved.PersonalInfo.Password), []byte("Sup3rSecret")); err != nil {
		t.Fatalf("stored password is not a hash of the input: %v", err)
	}

	// The issued token must decode back to the persisted user's id.
	userID, err := svc.ParseAccessToken(session.AccessToken)
	if err != nil {
		t.Fatalf("failed to parse issued token: %v", err)
	}
	if userID != saved.ID.Hex() {
		t.Fatalf("expected token to embed %s, got %s", saved.ID.Hex(), userID)
	}
}

func TestSignupAppendsSuffixOnUsernameCollision(t *testing.T) {
	store := newFakeUserStore()
	store.users["jane@taken.com"] = &models.User{
		ID:           primitive.NewObjectID(),
		PersonalInfo: models.PersonalInfo{Email: "jane@taken.com", Username: "jane"},
	}
	svc := newTestAuthService(t, store, nil)

	session, err := svc.Signup(context.Background(), SignupInput{
		Fullname: "Jane Smith",
		Email:    "jane@example.com",
		Password: "Sup3rSecret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(session.Username, "jane") {
		t.Fatalf("expected username to keep the local-part prefix, got %q", session.Username)
	}
	if len(session.Username) != len("jane")+5 {
		t.Fatalf("expected a 5-character suffix, got %q", session.Username)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(t, store, nil)

	in := SignupInput{Fullname: "Jane Doe", Email: "jane@example.com", Password: "Sup3rSecret"}
	if _, err := svc.Signup(context.Background(), in); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}

	_, err := svc.Signup(context.Background(), in)
	if err == nil || err.Error() != "email already exists" {
		t.Fatalf("expected duplicate email error, got %v", err)
	}
	if IsRejection(err) {
		t.Fatalf("duplicate email is a server error, not a validation rejection")
	}
}

func TestSigninUnknownEmail(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserStore(), nil)

	_, err := svc.Signin(context.Background(), SigninInput{Email: "ghost@example.com", Password: "Sup3rSecret"})
	if !IsRejection(err) || err.Error() != "email not found" {
		t.Fatalf("expected 'email not found' rejection, got %v", err)
	}
}

func TestSigninWrongPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(t, store, nil)

	if _, err := svc.Signup(context.Background(), SignupInput{
		Fullname: "Jane Doe", Email: "jane@example.com", Password: "Sup3rSecret",
	}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	_, err := svc.Signin(context.Background(), SigninInput{Email: "jane@example.com", Password: "WrongPass1"})
	if !IsRejection(err) || err.Error() != "Incorrect password" {
		t.Fatalf("expected 'Incorrect password' rejection, got %v", err)
	}
}

func TestSigninRejectsGoogleOnlyAccount(t *testing.T) {
	store := newFakeUserStore()
	store.users["jane@example.com"] = &models.User{
		ID:           primitive.NewObjectID(),
		PersonalInfo: models.PersonalInfo{Email: "jane@example.com", Username: "jane"},
		GoogleAuth:   true,
	}
	svc := newTestAuthService(t, store, nil)

	_, err := svc.Signin(context.Background(), SigninInput{Email: "jane@example.com", Password: "Sup3rSecret"})
	if !IsRejection(err) {
		t.Fatalf("expected rejection for password login on a Google account, got %v", err)
	}
}

func TestSigninRoundTrip(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(t, store, nil)

	if _, err := svc.Signup(context.Background(), SignupInput{
		Fullname: "Jane Doe", Email: "jane@example.com", Password: "Sup3rSecret",
	}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	session, err := svc.Signin(context.Background(), SigninInput{Email: "jane@example.com", Password: "Sup3rSecret"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	userID, err := svc.ParseAccessToken(session.AccessToken)
	if err != nil {
		t.Fatalf("failed to parse issued token: %v", err)
	}
	if userID != store.users["jane@example.com"].ID.Hex() {
		t.Fatalf("token does not embed the signed-up user id")
	}
}

func TestGoogleAuthVerificationFailure(t *testing.T) {
	verifier := &fakeVerifier{err: context.DeadlineExceeded}
	svc := newTestAuthService(t, newFakeUserStore(), verifier)

	_, err := svc.GoogleAuth(context.Background(), "bad-token")
	if err == nil || err.Error() != "Try with another Google Account" {
		t.Fatalf("expected generic google failure, got %v", err)
	}
	if IsRejection(err) {
		t.Fatalf("verification failure is a server error, not a rejection")
	}
}

func TestGoogleAuthRejectsPasswordAccount(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(t, store, nil)

	if _, err := svc.Signup(context.Background(), SignupInput{
		Fullname: "Jane Doe", Email: "jane@example.com", Password: "Sup3rSecret",
	}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	svc = newTestAuthService(t, store, &fakeVerifier{info: auth.GoogleUserInfo{
		Email: "jane@example.com", Name: "Jane Doe", Picture: "https://example.com/p.jpg",
	}})

	_, err := svc.GoogleAuth(context.Background(), "id-token")
	if !IsRejection(err) {
		t.Fatalf("expected rejection for google auth on a password account, got %v", err)
	}
	if len(store.users) != 1 {
		t.Fatalf("expected no duplicate user created, found %d", len(store.users))
	}
}

func TestGoogleAuthCreatesAccountOnFirstSignIn(t *testing.T) {
	store := newFakeUserStore()
	verifier := &fakeVerifier{info: auth.GoogleUserInfo{
		Email:   "jane@example.com",
		Name:    "Jane Doe",
		Picture: "https://lh3.googleusercontent.com/a/photo=s384-c",
	}}
	svc := newTestAuthService(t, store, verifier)

	session, err := svc.GoogleAuth(context.Background(), "id-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	saved := store.users["jane@example.com"]
	if saved == nil {
		t.Fatalf("expected user persisted")
	}
	if !saved.GoogleAuth {
		t.Fatalf("expected google_auth flag set")
	}
	if saved.PersonalInfo.Password != "" {
		t.Fatalf("google accounts must not carry a local password")
	}
	if session.ProfileImg != verifier.info.Picture {
		t.Fatalf("expected the google picture as profile image, got %q", session.ProfileImg)
	}

	// Second sign-in reuses the account instead of creating another.
	if _, err := svc.GoogleAuth(context.Background(), "id-token"); err != nil {
		t.Fatalf("second sign-in failed: %v", err)
	}
	if len(store.users) != 1 {
		t.Fatalf("expected a single account, found %d", len(store.users))
	}
}
