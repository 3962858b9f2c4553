// Package jwtauth implementa login de admin (bcrypt) y tokens HS256.
package jwtauth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"petdoc-id/internal/platform/apperr"
	"petdoc-id/internal/ports/auth"
)

const issuer = "petdoc-id"

var (
	ErrTokenEmpty    = errors.New("token is empty")
	ErrLoginDisabled = errors.New("admin login is not configured")
)

type Config struct {
	Secret    string
	TTL       time.Duration
	AdminUser string
	// hash bcrypt de la contraseña del admin
	AdminPassHash string
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Service implementa auth.AuthVerifier y auth.Authenticator.
type Service struct {
	cfg Config
	key []byte
	now func() time.Time
}

func New(cfg Config) (*Service, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 12 * time.Hour
	}
	return &Service{cfg: cfg, key: []byte(cfg.Secret), now: time.Now}, nil
}

func (s *Service) Login(_ context.Context, username, password string) (auth.Token, error) {
	if s.cfg.AdminUser == "" || s.cfg.AdminPassHash == "" {
		return auth.Token{}, apperr.Wrap(apperr.KindUnauthorized, "invalid credentials", ErrLoginDisabled)
	}

	userOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(username)), []byte(s.cfg.AdminUser)) == 1
	// comparamos siempre el hash para no filtrar por tiempo si el usuario existe
	passErr := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPassHash), []byte(password))
	if !userOK || passErr != nil {
		return auth.Token{}, apperr.New(apperr.KindUnauthorized, "invalid credentials")
	}

	return s.Issue(s.cfg.AdminUser, auth.RoleAdmin)
}

func (s *Service) Issue(subject, role string) (auth.Token, error) {
	now := s.now()
	exp := now.Add(s.cfg.TTL)

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	})
	signed, err := tok.SignedString(s.key)
	if err != nil {
		return auth.Token{}, fmt.Errorf("sign token: %w", err)
	}
	return auth.Token{AccessToken: signed, ExpiresAt: exp.UTC()}, nil
}

func (s *Service) Verify(_ context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.key, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return auth.Claims{}, apperr.Wrap(apperr.KindUnauthorized, "token has expired", err)
		}
		return auth.Claims{}, apperr.Wrap(apperr.KindUnauthorized, "invalid token", err)
	}

	c, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid || c.Subject == "" {
		return auth.Claims{}, apperr.New(apperr.KindUnauthorized, "invalid token")
	}
	return auth.Claims{Subject: c.Subject, Role: c.Role}, nil
}

// HashPassword genera el hash bcrypt para auth.admin_pass_hash.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", apperr.Validation("password cannot be empty")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", apperr.Validation("password is too long")
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}
