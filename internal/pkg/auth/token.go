package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// TokenKeyLength is the length of an opaque API token key in hex characters.
const TokenKeyLength = 40

var ErrNoToken = errors.New("no token in authorization header")

// GenerateTokenKey returns a new random opaque token key.
func GenerateTokenKey() (string, error) {
	buf := make([]byte, TokenKeyLength/2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// GenerateSessionKey returns a new random session identifier.
func GenerateSessionKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// ExtractAuthorizationToken reads the key from "Token <key>" or "Bearer <key>".
func ExtractAuthorizationToken(authHeader string) (string, error) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", ErrNoToken
	}

	scheme, key, found := strings.Cut(authHeader, " ")
	if !found {
		return "", ErrNoToken
	}
	switch strings.ToLower(scheme) {
	case "token", "bearer":
	default:
		return "", ErrNoToken
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrNoToken
	}
	return key, nil
}
