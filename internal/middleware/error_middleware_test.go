package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradnexus/campusconnect/internal/app/models/dto"
	"github.com/gradnexus/campusconnect/internal/pkg/apperrors"
)

func serveError(err error) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
	HandleAPIError(c, err)
	return w
}

func TestHandleAPIError_StatusMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   dto.ErrorCode
	}{
		{apperrors.NewValidationError("Validation failed", map[string]string{"title": "required"}), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{apperrors.NewBadRequestError("bad"), http.StatusBadRequest, dto.ErrorCodeInvalidRequest},
		{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
		{apperrors.ErrSessionExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredSession},
		{apperrors.NewForbiddenError("nope"), http.StatusForbidden, dto.ErrorCodeForbidden},
		{apperrors.ErrJobNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{fmt.Errorf("wrapped: %w", apperrors.ErrUsernameTaken), http.StatusConflict, dto.ErrorCodeConflict},
		{apperrors.ErrInvalidTransition, http.StatusConflict, dto.ErrorCodeConflict},
		{errors.New("db exploded"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := serveError(tt.err)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decodeError(t, w).Code)
		})
	}
}

func TestHandleAPIError_CarriesMessageAndFields(t *testing.T) {
	w := serveError(apperrors.NewValidationError("Validation failed", map[string]string{
		"confirm_password": "Passwords do not match.",
	}))
	detail := decodeError(t, w)
	assert.Equal(t, "Validation failed", detail.Message)
	assert.Equal(t, "confirm_password", detail.Field)
	assert.Equal(t, map[string]interface{}{"confirm_password": "Passwords do not match."}, detail.Details)

	w = serveError(fmt.Errorf("error creating user: %w", apperrors.ErrEmailTaken))
	assert.Equal(t, http.StatusConflict, w.Code)
	detail = decodeError(t, w)
	assert.Equal(t, "email", detail.Field)
	assert.Equal(t, "A user with that email already exists.", detail.Message)

	w = serveError(apperrors.ErrInvalidTransition)
	assert.Equal(t, "mentorship request is no longer pending", decodeError(t, w).Message)

	w = serveError(errors.New("pq: secret internals"))
	assert.NotContains(t, w.Body.String(), "secret internals")
}

type bindTarget struct {
	Title string `json:"title" binding:"required,max=5"`
	Time  string `json:"time" binding:"required,eventtime"`
	Name  string `json:"username" binding:"omitempty,username"`
}

func TestHandleBindError_ReportsJSONFieldNames(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"title":"far too long","time":"noon","username":"a b"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var body bindTarget
	err := c.ShouldBindJSON(&body)
	require.Error(t, err)
	HandleBindError(c, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	detail := decodeError(t, w)
	assert.Equal(t, dto.ErrorCodeValidationFailed, detail.Code)
	fields, ok := detail.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "time")
	assert.Contains(t, fields, "username")
}

func TestHandleBindError_MalformedJSON(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"title":`))
	c.Request.Header.Set("Content-Type", "application/json")

	var body bindTarget
	HandleBindError(c, c.ShouldBindJSON(&body))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeInvalidRequest, decodeError(t, w).Code)
}

func corsRequest(r http.Handler, method, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/x", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://app.test/"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := corsRequest(r, http.MethodOptions, "http://app.test")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://app.test", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = corsRequest(r, http.MethodGet, "http://evil.test")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_WildcardNeverSendsCredentials(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"*"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := corsRequest(r, http.MethodGet, "http://anywhere.test")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}
