package middleware_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/todo_api/internal/middleware"
	"github.com/SscSPs/todo_api/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) VerifyAccessToken(token string) (*utils.AccessClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*utils.AccessClaims), args.Error(1)
}

func newAuthRouter(verifier middleware.AccessTokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(slog.Default()))
	r.GET("/protected", middleware.AuthMiddleware(verifier), func(c *gin.Context) {
		userID, ok := middleware.GetUserIDFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": userID})
	})
	return r
}

func doGet(r http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	v := new(MockVerifier)
	w := doGet(newAuthRouter(v), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized", errorBody(t, w))
	v.AssertNotCalled(t, "VerifyAccessToken", mock.Anything)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	v := new(MockVerifier)
	w := doGet(newAuthRouter(v), "Token abc")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	v.AssertNotCalled(t, "VerifyAccessToken", mock.Anything)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	v := new(MockVerifier)
	v.On("VerifyAccessToken", "bad").Return(nil, jwt.ErrTokenSignatureInvalid).Once()

	w := doGet(newAuthRouter(v), "Bearer bad")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", errorBody(t, w))
	v.AssertExpectations(t)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	v := new(MockVerifier)
	v.On("VerifyAccessToken", "old").Return(nil, errors.Join(jwt.ErrTokenInvalidClaims, jwt.ErrTokenExpired)).Once()

	w := doGet(newAuthRouter(v), "Bearer old")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token has expired", errorBody(t, w))
}

func TestAuthMiddleware_MissingUserID(t *testing.T) {
	v := new(MockVerifier)
	v.On("VerifyAccessToken", "anon").Return(&utils.AccessClaims{}, nil).Once()

	w := doGet(newAuthRouter(v), "Bearer anon")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	v := new(MockVerifier)
	v.On("VerifyAccessToken", "good").Return(&utils.AccessClaims{UserID: 42, Email: "a@b.c"}, nil).Once()

	w := doGet(newAuthRouter(v), "bearer good")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":42}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	v.AssertExpectations(t)
}

func TestStructuredLoggingMiddleware_PropagatesRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger))
	r.GET("/ping", func(c *gin.Context) {
		middleware.GetLoggerFromCtx(c.Request.Context()).Info("inside handler")
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
	assert.Contains(t, buf.String(), `"request_id":"req-123"`)
	assert.Contains(t, buf.String(), "inside handler")
	assert.Contains(t, buf.String(), "Request completed")
}

func TestGetLoggerFromCtx_FallsBackToDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, slog.Default(), middleware.GetLoggerFromCtx(req.Context()))
}

func TestRateLimit(t *testing.T) {
	lim, err := middleware.NewMemoryLimiter("2-M")
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/login", middleware.RateLimit(lim), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestNewMemoryLimiter_InvalidRate(t *testing.T) {
	_, err := middleware.NewMemoryLimiter("lots")
	assert.Error(t, err)
}

func TestEventNameForRoute(t *testing.T) {
	assert.Equal(t, "todos", middleware.EventNameForRoute("/todos"))
	assert.Equal(t, "todos_:id_toggle", middleware.EventNameForRoute("/todos/:id/toggle"))
	assert.Equal(t, "", middleware.EventNameForRoute(""))
}

func TestPosthogMiddleware_UninitializedIsPassThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.PosthogMiddleware(&utils.PosthogClientWrapper{}))
	r.GET("/todos", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/todos", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
