package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/craftsync/task-activity-api/internal/models"
	"github.com/craftsync/task-activity-api/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrInvalidToken       = errors.New("could not validate credentials")
)

// AuthService exchanges credentials for bearer tokens and resolves tokens
// back to users.
type AuthService struct {
	userRepo      repository.UserRepository
	signingKey    []byte
	tokenLifetime time.Duration
}

// NewAuthService creates a new AuthService. Tokens are HMAC-SHA256 signed
// with the configured secret.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, tokenLifetimeMins int) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		signingKey:    []byte(jwtSecret),
		tokenLifetime: time.Duration(tokenLifetimeMins) * time.Minute,
	}
}

// Authenticate verifies credentials and returns the matching user. The
// username field carries the email address.
func (s *AuthService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	zap.L().Info("authentication successful", zap.String("email", user.Email))
	return user, nil
}

// IssueToken creates a signed access token for a user.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(user.ID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenLifetime)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		zap.L().Error("failed to sign access token",
			zap.Uint64("user_id", user.ID),
			zap.Error(err))
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return signed, nil
}

// ResolveToken validates a bearer token and loads the user it was issued for.
func (s *AuthService) ResolveToken(tokenString string) (*models.User, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return user, nil
}
