package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session cookie errors
var (
	ErrInvalidSession = errors.New("invalid session cookie")
	ErrExpiredSession = errors.New("session cookie expired")
)

// SessionConfig defines session cookie signing settings
type SessionConfig struct {
	SecretKey string
	TTL       time.Duration
	Issuer    string
}

// SessionSigner signs and verifies session cookies. The cookie is an HS256 JWT whose
// ID claim is the server-side session key and whose subject is the user id.
type SessionSigner struct {
	config SessionConfig
}

// NewSessionSigner creates a new session signer
func NewSessionSigner(config SessionConfig) *SessionSigner {
	return &SessionSigner{config: config}
}

// SessionClaims defines session cookie content
type SessionClaims struct {
	UserID int64 `json:"uid"`
	jwt.RegisteredClaims
}

// TTL returns the configured session lifetime.
func (s *SessionSigner) TTL() time.Duration {
	return s.config.TTL
}

// Sign produces the cookie value for a session.
func (s *SessionSigner) Sign(sessionKey string, userID int64, expiresAt time.Time) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.Issuer,
			Subject:   strconv.FormatInt(userID, 10),
			ID:        sessionKey,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign session cookie: %w", err)
	}
	return signed, nil
}

// Verify checks the cookie signature and expiry and returns its claims.
func (s *SessionSigner) Verify(cookie string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(cookie, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.SecretKey), nil
	}, jwt.WithIssuer(s.config.Issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredSession
		}
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.ID == "" || claims.UserID <= 0 {
		return nil, ErrInvalidSession
	}
	return claims, nil
}
