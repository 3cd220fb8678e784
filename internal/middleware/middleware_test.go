package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()

	clock := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return clock }

	require.True(t, rl.Allow("10.0.0.1"))
	require.True(t, rl.Allow("10.0.0.1"))
	require.False(t, rl.Allow("10.0.0.1"))
	require.True(t, rl.Allow("10.0.0.2"))

	clock = clock.Add(time.Minute)
	require.True(t, rl.Allow("10.0.0.1"))

	clock = clock.Add(2 * time.Minute)
	rl.prune()
	require.Zero(t, rl.tracked())
}

func TestRateLimiterStopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(1, time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	rl.Stop()
	rl.Stop()
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()

	r := gin.New()
	r.Use(RateLimit(rl))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	require.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil)).Code)
	require.Equal(t, http.StatusTooManyRequests, serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil)).Code)
}

func TestJWTAuth(t *testing.T) {
	const secret = "test-secret"

	r := gin.New()
	r.Use(JWTAuth(secret))
	r.GET("/me", func(c *gin.Context) { c.String(http.StatusOK, Subject(c)) })

	request := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		return serve(r, req)
	}

	t.Run("valid token", func(t *testing.T) {
		token, expires, err := IssueToken(secret, "planner", time.Hour)
		require.NoError(t, err)
		require.True(t, expires.After(time.Now()))

		w := request("Bearer " + token)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "planner", w.Body.String())
	})

	t.Run("missing token", func(t *testing.T) {
		require.Equal(t, http.StatusUnauthorized, request("").Code)
		require.Equal(t, http.StatusUnauthorized, request("Basic abc").Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, _, err := IssueToken("other-secret", "planner", time.Hour)
		require.NoError(t, err)
		require.Equal(t, http.StatusUnauthorized, request("Bearer "+token).Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token, _, err := IssueToken(secret, "planner", -time.Minute)
		require.NoError(t, err)
		require.Equal(t, http.StatusUnauthorized, request("Bearer "+token).Code)
	})

	t.Run("empty secret cannot sign", func(t *testing.T) {
		_, _, err := IssueToken("", "planner", time.Hour)
		require.Error(t, err)
	})
}

func TestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	r := gin.New()
	r.Use(Logger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, RequestID(c)) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	req := httptest.NewRequest(http.MethodGet, "/ok?x=1", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := serve(r, req)
	require.Equal(t, "abc-123", w.Body.String())
	require.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	w = serve(r, httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.Len(t, w.Header().Get(RequestIDHeader), 36)

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	require.Equal(t, zapcore.InfoLevel, entries[0].Level)
	require.Equal(t, "/ok?x=1", entries[0].ContextMap()["path"])
	require.Equal(t, zapcore.WarnLevel, entries[1].Level)
	require.EqualValues(t, http.StatusNotFound, entries[1].ContextMap()["status"])
}
