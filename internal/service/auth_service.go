package service

import (
	"errors"
	"fmt"
	"time"

	"cafe-pos/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is how long an issued bearer token stays valid.
const TokenTTL = 24 * time.Hour

// AuthService issues and verifies stateless HS256 bearer tokens. No issued
// token is stored anywhere; verification depends only on the token itself and
// the users table.
type AuthService struct {
	users  UserRepository
	secret []byte
}

func NewAuthService(users UserRepository, secret []byte) *AuthService {
	return &AuthService{users: users, secret: secret}
}

// Login checks the credentials against the stored bcrypt hash and returns a
// signed token embedding the user id and a 24h expiry.
func (s *AuthService) Login(username, password string) (string, *domain.User, error) {
	user, err := s.users.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(TokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Verify decodes a bearer token and resolves the embedded user id against the
// users table. There is no revocation: any unexpired, well-signed token is
// honored.
func (s *AuthService) Verify(raw string) (*domain.User, error) {
	if raw == "" {
		return nil, domain.ErrMissingToken
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrExpiredToken
		}
		return nil, domain.ErrMalformedToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrMalformedToken
	}
	rawID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, domain.ErrMalformedToken
	}

	user, err := s.users.GetUserByID(int(rawID))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnknownUser
		}
		return nil, err
	}
	return user, nil
}

var _ AuthInterface = (*AuthService)(nil)
