package services

import (
	"errors"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"libcatalog/internal/models"
	"libcatalog/internal/repositories"
)

var (
	// ErrUsernameTaken is returned when the requested username is already registered.
	ErrUsernameTaken = errors.New("username already in use")

	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned when a presented bearer token fails validation.
	ErrInvalidToken = errors.New("invalid token")
)

// dummyHash is compared against on unknown usernames so login takes the same
// time whether or not the principal exists.
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8e"

// AuthService issues and validates the opaque bearer tokens that gate the
// catalogue's mutation endpoints. The catalogue itself only ever asks "is this
// caller authenticated"; everything else about the token is private to this
// service.
type AuthService interface {
	// CreatePrincipal registers a credential pair and returns a fresh token.
	CreatePrincipal(username, password string) (string, error)

	// IssueToken returns a fresh token for an existing principal.
	IssueToken(username, password string) (string, error)

	// ValidateToken checks a presented token and returns the principal's username.
	ValidateToken(token string) (string, error)
}

type authService struct {
	principalRepo repositories.PrincipalRepository
	secret        []byte
	tokenTTL      time.Duration
}

func NewAuthService(principalRepo repositories.PrincipalRepository, secret string, tokenTTL time.Duration) AuthService {
	return &authService{
		principalRepo: principalRepo,
		secret:        []byte(secret),
		tokenTTL:      tokenTTL,
	}
}

func (s *authService) CreatePrincipal(username, password string) (string, error) {
	if _, err := s.principalRepo.GetByUsername(nil, username); err == nil {
		return "", ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	principal := &models.Principal{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.principalRepo.Create(nil, principal); err != nil {
		log.Printf("[ERROR] CreatePrincipal: failed to create principal %q: %v", username, err)
		if isUniqueViolation(err) {
			return "", ErrUsernameTaken
		}
		return "", err
	}

	log.Printf("[INFO] CreatePrincipal: registered principal %q", username)
	return s.generateToken(username)
}

func (s *authService) IssueToken(username, password string) (string, error) {
	principal, err := s.principalRepo.GetByUsername(nil, username)
	if err != nil {
		// Dummy compare so lookup misses take as long as password mismatches.
		bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(principal.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.generateToken(username)
}

func (s *authService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func (s *authService) generateToken(username string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
