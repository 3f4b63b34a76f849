package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/gradnexus/campusconnect/internal/app/auth"
	"github.com/gradnexus/campusconnect/internal/app/models"
	"github.com/gradnexus/campusconnect/internal/app/models/dto"
	"github.com/gradnexus/campusconnect/internal/pkg/apperrors"
	pkgauth "github.com/gradnexus/campusconnect/internal/pkg/auth"
)

const (
	identityKey = "identity"
	userIDKey   = "userID"
)

// ErrNoCredentials is returned by a Strategy that found nothing to check in the request.
var ErrNoCredentials = errors.New("no credentials in request")

// Strategy resolves one kind of credential to an identity.
type Strategy interface {
	Authenticate(c *gin.Context) (*auth.Identity, error)
}

// TokenAuthenticator resolves API tokens.
type TokenAuthenticator interface {
	AuthenticateToken(ctx context.Context, key string) (*auth.Identity, error)
}

// SessionAuthenticator resolves session cookies.
type SessionAuthenticator interface {
	AuthenticateSession(ctx context.Context, cookie string) (*auth.Identity, error)
}

// TokenStrategy reads "Authorization: Token <key>" (or Bearer).
type TokenStrategy struct {
	tokens TokenAuthenticator
}

func NewTokenStrategy(tokens TokenAuthenticator) *TokenStrategy {
	return &TokenStrategy{tokens: tokens}
}

func (s *TokenStrategy) Authenticate(c *gin.Context) (*auth.Identity, error) {
	key, err := pkgauth.ExtractAuthorizationToken(c.GetHeader("Authorization"))
	if err != nil {
		return nil, ErrNoCredentials
	}
	return s.tokens.AuthenticateToken(c.Request.Context(), key)
}

// SessionStrategy reads the session cookie.
type SessionStrategy struct {
	sessions   SessionAuthenticator
	cookieName string
}

func NewSessionStrategy(sessions SessionAuthenticator, cookieName string) *SessionStrategy {
	return &SessionStrategy{sessions: sessions, cookieName: cookieName}
}

func (s *SessionStrategy) Authenticate(c *gin.Context) (*auth.Identity, error) {
	cookie, err := c.Cookie(s.cookieName)
	if err != nil || cookie == "" {
		return nil, ErrNoCredentials
	}
	return s.sessions.AuthenticateSession(c.Request.Context(), cookie)
}

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	strategies []Strategy
	logger     zerolog.Logger
}

// NewAuthMiddleware tries the strategies in order. The first one that finds a
// credential decides the outcome.
func NewAuthMiddleware(logger zerolog.Logger, strategies ...Strategy) *AuthMiddleware {
	return &AuthMiddleware{strategies: strategies, logger: logger}
}

func (m *AuthMiddleware) resolve(c *gin.Context) (*auth.Identity, Strategy, error) {
	for _, s := range m.strategies {
		id, err := s.Authenticate(c)
		if errors.Is(err, ErrNoCredentials) {
			continue
		}
		return id, s, err
	}
	return nil, nil, ErrNoCredentials
}

// OptionalAuth attaches the caller's identity when the request carries credentials.
// A stale or forged session cookie leaves the caller anonymous; an invalid token is rejected.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, strategy, err := m.resolve(c)
		_, fromCookie := strategy.(*SessionStrategy)
		switch {
		case err == nil:
			SetIdentity(c, id)
		case errors.Is(err, ErrNoCredentials):
		case fromCookie:
			m.logger.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("Ignoring invalid session cookie")
		default:
			m.logger.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("Rejected credentials")
			HandleAPIError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAuth rejects requests without valid credentials.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _, err := m.resolve(c)
		if err != nil {
			if errors.Is(err, ErrNoCredentials) {
				err = apperrors.NewCustomError(apperrors.ErrUnauthorized, "Authentication credentials were not provided.")
			}
			m.logger.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("Unauthenticated request")
			HandleAPIError(c, err)
			c.Abort()
			return
		}
		SetIdentity(c, id)
		c.Next()
	}
}

// RoleRequired middleware to check if user has required role. It must run after RequireAuth.
func (m *AuthMiddleware) RoleRequired(role models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := GetIdentity(c)
		if !ok {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication credentials were not provided.")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}
		if id.Role != role {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "You do not have permission to perform this action.")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}
		c.Next()
	}
}

// SetIdentity stores the authenticated caller on the request context.
func SetIdentity(c *gin.Context, id *auth.Identity) {
	c.Set(identityKey, id)
	c.Set(userIDKey, id.UserID)
}

// GetIdentity returns the caller attached by RequireAuth or OptionalAuth.
func GetIdentity(c *gin.Context) (*auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(*auth.Identity)
	return id, ok && id != nil
}
