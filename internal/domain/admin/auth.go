// Package admin authenticates the single site administrator.
package admin

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	subject = "admin"
	issuer  = "portfolio"
)

// DefaultSessionTTL is how long an admin session stays valid.
const DefaultSessionTTL = 12 * time.Hour

// Authenticator verifies the admin password and issues session tokens.
type Authenticator struct {
	passwordHash string
	secret       []byte
	ttl          time.Duration
	now          func() time.Time
}

// NewAuthenticator creates an authenticator. passwordHash is either a bcrypt
// hash or a hex SHA-256 digest.
func NewAuthenticator(passwordHash, secret string, ttl time.Duration) *Authenticator {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Authenticator{
		passwordHash: strings.TrimSpace(passwordHash),
		secret:       []byte(secret),
		ttl:          ttl,
		now:          time.Now,
	}
}

// WithClock replaces the token clock.
func (a *Authenticator) WithClock(now func() time.Time) *Authenticator {
	a.now = now
	return a
}

// TTL returns the session lifetime.
func (a *Authenticator) TTL() time.Duration {
	return a.ttl
}

// CheckPassword compares password against the configured hash.
func (a *Authenticator) CheckPassword(password string) error {
	if a.passwordHash == "" {
		return ErrNotConfigured
	}
	if password == "" {
		return ErrUnauthorized
	}

	if strings.HasPrefix(a.passwordHash, "$2") {
		if err := bcrypt.CompareHashAndPassword([]byte(a.passwordHash), []byte(password)); err != nil {
			return ErrUnauthorized
		}
		return nil
	}

	sum := sha256.Sum256([]byte(password))
	digest := hex.EncodeToString(sum[:])
	if subtle.ConstantTimeCompare([]byte(digest), []byte(strings.ToLower(a.passwordHash))) != 1 {
		return ErrUnauthorized
	}
	return nil
}

// Login checks password and returns a signed session token.
func (a *Authenticator) Login(password string) (string, error) {
	if err := a.CheckPassword(password); err != nil {
		return "", err
	}
	return a.IssueToken()
}

// IssueToken signs a new session token.
func (a *Authenticator) IssueToken() (string, error) {
	if len(a.secret) == 0 {
		return "", ErrNotConfigured
	}
	now := a.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   subject,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return token, nil
}

// Verify validates a session token.
func (a *Authenticator) Verify(token string) (*jwt.RegisteredClaims, error) {
	if token == "" || len(a.secret) == 0 {
		return nil, ErrUnauthorized
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithSubject(subject),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil || !parsed.Valid {
		return nil, errors.Join(ErrUnauthorized, err)
	}
	return claims, nil
}

// HashPassword returns a bcrypt hash suitable for the admin password setting.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}
