package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradnexus/campusconnect/internal/app/auth"
	"github.com/gradnexus/campusconnect/internal/app/models"
	"github.com/gradnexus/campusconnect/internal/app/models/dto"
	"github.com/gradnexus/campusconnect/internal/pkg/apperrors"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := RegisterValidators(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fakeAuthenticator struct {
	tokens   map[string]*auth.Identity
	sessions map[string]*auth.Identity
}

func (f *fakeAuthenticator) AuthenticateToken(_ context.Context, key string) (*auth.Identity, error) {
	if id, ok := f.tokens[key]; ok {
		return id, nil
	}
	return nil, apperrors.ErrTokenInvalid
}

func (f *fakeAuthenticator) AuthenticateSession(_ context.Context, cookie string) (*auth.Identity, error) {
	if id, ok := f.sessions[cookie]; ok {
		return id, nil
	}
	return nil, apperrors.ErrSessionExpired
}

var (
	student = &auth.Identity{UserID: 1, Username: "stu", Role: models.RoleStudent, Method: auth.MethodToken}
	alumni  = &auth.Identity{UserID: 2, Username: "alum", Role: models.RoleAlumni, Method: auth.MethodSession, SessionKey: "k"}
)

func newTestRouter() *gin.Engine {
	fa := &fakeAuthenticator{
		tokens:   map[string]*auth.Identity{"good": student},
		sessions: map[string]*auth.Identity{"cookie-ok": alumni},
	}
	m := NewAuthMiddleware(zerolog.Nop(), NewTokenStrategy(fa), NewSessionStrategy(fa, "sessionid"))

	r := gin.New()
	who := func(c *gin.Context) {
		id, ok := GetIdentity(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"user": "anonymous"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": id.Username, "method": string(id.Method)})
	}
	r.GET("/open", m.OptionalAuth(), who)
	r.GET("/closed", m.RequireAuth(), who)
	r.GET("/alumni", m.RequireAuth(), m.RoleRequired(models.RoleAlumni), who)
	return r
}

func do(r http.Handler, path string, setup func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if setup != nil {
		setup(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func withToken(key string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set("Authorization", "Token "+key) }
}

func withCookie(value string) func(*http.Request) {
	return func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "sessionid", Value: value}) }
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) *dto.ErrorDetail {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.False(t, resp.Success)
	return resp.Error
}

func TestRequireAuth(t *testing.T) {
	r := newTestRouter()

	w := do(r, "/closed", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrorCodeUnauthorized, decodeError(t, w).Code)

	w = do(r, "/closed", withToken("good"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"stu","method":"token"}`, w.Body.String())

	w = do(r, "/closed", withCookie("cookie-ok"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"alum","method":"session"}`, w.Body.String())

	w = do(r, "/closed", withToken("bad"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrorCodeInvalidToken, decodeError(t, w).Code)

	w = do(r, "/closed", withCookie("stale"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrorCodeExpiredSession, decodeError(t, w).Code)
}

func TestRequireAuth_TokenDecidesBeforeSession(t *testing.T) {
	r := newTestRouter()

	w := do(r, "/closed", func(req *http.Request) {
		withToken("bad")(req)
		withCookie("cookie-ok")(req)
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, "/closed", func(req *http.Request) {
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		withCookie("cookie-ok")(req)
	})
	assert.Equal(t, http.StatusOK, w.Code, "an unknown scheme is not a token credential")
}

func TestOptionalAuth(t *testing.T) {
	r := newTestRouter()

	w := do(r, "/open", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"anonymous"}`, w.Body.String())

	w = do(r, "/open", withToken("good"))
	assert.JSONEq(t, `{"user":"stu","method":"token"}`, w.Body.String())

	w = do(r, "/open", withToken("bad"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, "/open", withCookie("stale"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"anonymous"}`, w.Body.String())

	w = do(r, "/open", func(req *http.Request) {
		withToken("good")(req)
		withCookie("stale")(req)
	})
	assert.JSONEq(t, `{"user":"stu","method":"token"}`, w.Body.String())
}

func TestRoleRequired(t *testing.T) {
	r := newTestRouter()

	w := do(r, "/alumni", withToken("good"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, dto.ErrorCodeForbidden, decodeError(t, w).Code)

	w = do(r, "/alumni", withCookie("cookie-ok"))
	assert.Equal(t, http.StatusOK, w.Code)
}
