package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"unicode"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"inkwell/auth"
	"inkwell/dto"
	"inkwell/models"
)

var emailRegex = regexp.MustCompile(`^\w+([\.-]?\w+)*@\w+([\.-]?\w+)*(\.\w{2,3})+$`)

// Default avatar pool, matching what reader clients already expect.
var (
	profileImgCollections = []string{"notionists-neutral", "adventurer-neutral", "fun-emoji"}
	profileImgNames       = []string{
		"Garfield", "Tinkerbell", "Annie", "Loki", "Cleo", "Angel", "Bob",
		"Mia", "Coco", "Gracie", "Bear", "Bella", "Abby", "Harley",
	}
)

// UserStore is the slice of the user repository the auth flows need.
type UserStore interface {
	Insert(ctx context.Context, u *models.User) (primitive.ObjectID, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// AuthService implements signup, signin, and Google sign-in.
type AuthService struct {
	users  UserStore
	tokens *auth.JWTManager
	google auth.IDTokenVerifier
}

func NewAuthService(users UserStore, tokens *auth.JWTManager, google auth.IDTokenVerifier) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		google: google,
	}
}

// SignupInput is the request body of POST /signup.
type SignupInput struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup validates the input, persists a new local-password user, and
// returns an authenticated session.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (dto.AuthSessionDTO, error) {
	if len(in.Fullname) < 3 {
		return dto.AuthSessionDTO{}, Reject("Full name must be at least 3 letters long")
	}
	if in.Email == "" {
		return dto.AuthSessionDTO{}, Reject("Enter the email address")
	}
	if !emailRegex.MatchString(in.Email) {
		return dto.AuthSessionDTO{}, Reject("Invalid email address")
	}
	if !validPassword(in.Password) {
		return dto.AuthSessionDTO{}, Reject("Password should be 6 to 20 characters long with a numeric digit, 1 lowercase letter, and 1 uppercase letter")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.AuthSessionDTO{}, fmt.Errorf("failed to hash password: %w", err)
	}

	username, err := s.generateUsername(ctx, in.Email)
	if err != nil {
		return dto.AuthSessionDTO{}, err
	}

	user := &models.User{
		PersonalInfo: models.PersonalInfo{
			Fullname:   in.Fullname,
			Email:      in.Email,
			Password:   string(hashed),
			Username:   username,
			ProfileImg: defaultProfileImg(),
		},
	}

	if _, err := s.users.Insert(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return dto.AuthSessionDTO{}, errors.New("email already exists")
		}
		return dto.AuthSessionDTO{}, fmt.Errorf("failed to save user: %w", err)
	}

	return s.newSession(*user)
}

// SigninInput is the request body of POST /signin.
type SigninInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signin checks local-password credentials and returns an authenticated
// session.
func (s *AuthService) Signin(ctx context.Context, in SigninInput) (dto.AuthSessionDTO, error) {
	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return dto.AuthSessionDTO{}, Reject("email not found")
		}
		return dto.AuthSessionDTO{}, fmt.Errorf("failed to load user: %w", err)
	}

	// Accounts created through Google carry no local hash; a password
	// login attempt on one is rejected outright.
	if user.GoogleAuth {
		return dto.AuthSessionDTO{}, Reject("Account was created using Google. Try logging in with Google")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PersonalInfo.Password), []byte(in.Password)); err != nil {
		return dto.AuthSessionDTO{}, Reject("Incorrect password")
	}

	return s.newSession(*user)
}

// GoogleAuth verifies a client-supplied Google ID token, finds or creates
// the matching user, and returns an authenticated session.
func (s *AuthService) GoogleAuth(ctx context.Context, idToken string) (dto.AuthSessionDTO, error) {
	info, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return dto.AuthSessionDTO{}, errors.New("Try with another Google Account")
	}

	user, err := s.users.FindByEmail(ctx, info.Email)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return dto.AuthSessionDTO{}, fmt.Errorf("failed to load user: %w", err)
	}

	if user != nil {
		if !user.GoogleAuth {
			return dto.AuthSessionDTO{}, Reject("This email was signed up without google. Please log in with password to access the account")
		}
		return s.newSession(*user)
	}

	username, err := s.generateUsername(ctx, info.Email)
	if err != nil {
		return dto.AuthSessionDTO{}, err
	}

	user = &models.User{
		PersonalInfo: models.PersonalInfo{
			Fullname:   info.Name,
			Email:      info.Email,
			Username:   username,
			ProfileImg: info.Picture,
		},
		GoogleAuth: true,
	}

	if _, err := s.users.Insert(ctx, user); err != nil {
		return dto.AuthSessionDTO{}, fmt.Errorf("failed to save user: %w", err)
	}

	return s.newSession(*user)
}

// ParseAccessToken verifies a server-issued token and returns the user id
// it embeds.
func (s *AuthService) ParseAccessToken(token string) (string, error) {
	return s.tokens.Parse(token)
}

func (s *AuthService) newSession(user models.User) (dto.AuthSessionDTO, error) {
	token, err := s.tokens.Sign(user.ID.Hex())
	if err != nil {
		return dto.AuthSessionDTO{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return dto.NewAuthSessionDTO(token, user), nil
}

// generateUsername derives a username from the email local-part, appending a
// short random suffix only when the plain local-part is already taken.
func (s *AuthService) generateUsername(ctx context.Context, email string) (string, error) {
	username := strings.Split(email, "@")[0]

	taken, err := s.users.UsernameExists(ctx, username)
	if err != nil {
		return "", fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		suffix, err := gonanoid.New(5)
		if err != nil {
			return "", fmt.Errorf("failed to generate username suffix: %w", err)
		}
		username += suffix
	}
	return username, nil
}

// validPassword enforces the signup password policy: 6-20 characters with at
// least one digit, one lowercase, and one uppercase letter. Spelled out
// because RE2 has no lookahead.
func validPassword(password string) bool {
	if len(password) < 6 || len(password) > 20 {
		return false
	}
	var hasDigit, hasLower, hasUpper bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		}
	}
	return hasDigit && hasLower && hasUpper
}

func defaultProfileImg() string {
	collection := profileImgCollections[rand.Intn(len(profileImgCollections))]
	name := profileImgNames[rand.Intn(len(profileImgNames))]
	return fmt.Sprintf("https://api.dicebear.com/6.x/%s/svg?seed=%s", collection, name)
}
