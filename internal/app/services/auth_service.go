package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gradnexus/campusconnect/internal/app/auth"
	"github.com/gradnexus/campusconnect/internal/app/models"
	"github.com/gradnexus/campusconnect/internal/pkg/apperrors"
	pkgauth "github.com/gradnexus/campusconnect/internal/pkg/auth"
)

var errBadCredentials = apperrors.NewCustomError(apperrors.ErrInvalidCredentials,
	"Unable to log in with provided credentials.")

// LoginResult carries both credentials issued by a successful login.
type LoginResult struct {
	User          *models.User
	Token         string
	SessionCookie string
	ExpiresAt     time.Time
}

// AuthService handles credentials: login, logout, token issuing and resolving
// incoming tokens and session cookies to an identity.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Logout(ctx context.Context, cookie string) error
	IssueToken(ctx context.Context, userID int64) (string, error)
	AuthenticateToken(ctx context.Context, key string) (*auth.Identity, error)
	AuthenticateSession(ctx context.Context, cookie string) (*auth.Identity, error)
}

type authServiceImpl struct {
	users    UserStore
	tokens   TokenStore
	sessions SessionStore
	hasher   *pkgauth.PasswordHasher
	signer   *pkgauth.SessionSigner
	logger   zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	users UserStore,
	tokens TokenStore,
	sessions SessionStore,
	hasher *pkgauth.PasswordHasher,
	signer *pkgauth.SessionSigner,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		users:    users,
		tokens:   tokens,
		sessions: sessions,
		hasher:   hasher,
		signer:   signer,
		logger:   logger,
	}
}

// Login checks the credentials and opens a session. Missing fields are a validation
// error; wrong credentials are an authentication error.
func (s *authServiceImpl) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	missing := map[string]string{}
	if strings.TrimSpace(username) == "" {
		missing["username"] = "This field is required."
	}
	if password == "" {
		missing["password"] = "This field is required."
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("Username and password are required.", missing)
	}

	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, errBadCredentials
		}
		return nil, err
	}
	if !s.hasher.Check(user.PasswordHash, password) {
		s.logger.Debug().Int64("userID", user.ID).Msg("Login with wrong password")
		return nil, errBadCredentials
	}

	token, err := s.IssueToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	sessionKey, err := pkgauth.GenerateSessionKey()
	if err != nil {
		return nil, err
	}
	expiresAt := time.Now().Add(s.signer.TTL())

	if err := s.sessions.DeleteExpired(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to purge expired sessions")
	}
	if err := s.sessions.Create(ctx, sessionKey, user.ID, expiresAt); err != nil {
		return nil, err
	}
	cookie, err := s.signer.Sign(sessionKey, user.ID, expiresAt)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Msg("User logged in")
	return &LoginResult{User: user, Token: token, SessionCookie: cookie, ExpiresAt: expiresAt}, nil
}

// Logout ends the session named by a session cookie. Token credentials stay valid.
// A cookie that no longer verifies names no live session and is ignored.
func (s *authServiceImpl) Logout(ctx context.Context, cookie string) error {
	if cookie == "" {
		return nil
	}
	claims, err := s.signer.Verify(cookie)
	if err != nil {
		s.logger.Debug().Err(err).Msg("Logout with an unverifiable session cookie")
		return nil
	}
	return s.sessions.Delete(ctx, claims.ID)
}

// IssueToken returns the user's persistent token, creating it on first use.
func (s *authServiceImpl) IssueToken(ctx context.Context, userID int64) (string, error) {
	candidate, err := pkgauth.GenerateTokenKey()
	if err != nil {
		return "", err
	}
	token, err := s.tokens.GetOrCreate(ctx, userID, candidate)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}

func (s *authServiceImpl) AuthenticateToken(ctx context.Context, key string) (*auth.Identity, error) {
	userID, err := s.tokens.GetUserIDByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	return s.identity(ctx, userID, auth.MethodToken, "")
}

func (s *authServiceImpl) AuthenticateSession(ctx context.Context, cookie string) (*auth.Identity, error) {
	claims, err := s.signer.Verify(cookie)
	if err != nil {
		if errors.Is(err, pkgauth.ErrExpiredSession) {
			return nil, apperrors.ErrSessionExpired
		}
		return nil, apperrors.ErrTokenInvalid
	}

	userID, err := s.sessions.GetUserID(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if userID != claims.UserID {
		return nil, apperrors.ErrTokenInvalid
	}
	return s.identity(ctx, userID, auth.MethodSession, claims.ID)
}

func (s *authServiceImpl) identity(ctx context.Context, userID int64, method auth.Method, sessionKey string) (*auth.Identity, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, err
	}
	return &auth.Identity{
		UserID:     user.ID,
		Username:   user.Username,
		Role:       user.Role,
		Method:     method,
		SessionKey: sessionKey,
	}, nil
}
