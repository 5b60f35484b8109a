package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/haierkeys/fast-vault-service/pkg/app"
	"github.com/haierkeys/fast-vault-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) app.Res {
	t.Helper()
	var res app.Res
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestSessionToken(t *testing.T) {
	const secret = "test-secret"
	tm := app.NewTokenManager(app.TokenConfig{SecretKey: secret})
	token, err := tm.Generate("owner-1")
	require.NoError(t, err)

	r := gin.New()
	r.Use(SessionTokenWithConfig(secret))
	r.GET("/who", func(c *gin.Context) {
		id, ok := app.GetOwnerID(c)
		if !ok {
			c.String(http.StatusOK, "public")
			return
		}
		c.String(http.StatusOK, id)
	})

	cases := []struct {
		name   string
		setup  func(req *http.Request)
		status int
		body   string
	}{
		{"anonymous", func(req *http.Request) {}, http.StatusOK, "public"},
		{"authorization header", func(req *http.Request) { req.Header.Set("Authorization", token) }, http.StatusOK, "owner-1"},
		{"bearer prefix", func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+token) }, http.StatusOK, "owner-1"},
		{"token header", func(req *http.Request) { req.Header.Set("Token", token) }, http.StatusOK, "owner-1"},
		{"token query", func(req *http.Request) {
			q := req.URL.Query()
			q.Set("token", token)
			req.URL.RawQuery = q.Encode()
		}, http.StatusOK, "owner-1"},
		{"invalid token", func(req *http.Request) { req.Header.Set("Token", "garbage") }, http.StatusUnauthorized, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/who", nil)
			tc.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			if tc.body != "" {
				assert.Equal(t, tc.body, w.Body.String())
			}
		})
	}
}

func TestSessionToken_WrongKey(t *testing.T) {
	token, err := app.NewTokenManager(app.TokenConfig{SecretKey: "a"}).Generate("owner-1")
	require.NoError(t, err)

	r := gin.New()
	r.Use(SessionTokenWithConfig("b"))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTraceMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(TraceMiddlewareWithConfig(true, ""))
	r.GET("/", func(c *gin.Context) {
		assert.Equal(t, GetTraceIDFromGin(c), GetTraceID(c.Request.Context()))
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(DefaultTraceIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(DefaultTraceIDHeader, "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(DefaultTraceIDHeader))
}

func TestLangWithTranslator(t *testing.T) {
	enLocale, zhLocale := en.New(), zh.New()
	uni := ut.New(enLocale, enLocale, zhLocale)

	r := gin.New()
	r.Use(LangWithTranslator(uni))
	r.NoRoute(NoFound())

	req := httptest.NewRequest(http.MethodGet, "/missing?lang=zh-CN", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "找不到接口", decode(t, w).Message)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, "API not found", decode(t, w).Message)
}

func TestRateLimiter(t *testing.T) {
	l := limiter.NewMethodLimiter().AddBuckets(limiter.BucketRule{
		Key:          "POST /items",
		FillInterval: time.Hour,
		Capacity:     1,
		Quantum:      1,
	})

	r := gin.New()
	r.Use(RateLimiter(l))
	r.POST("/items", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/items", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/items", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRecoveryWithLogger(t *testing.T) {
	r := gin.New()
	r.Use(RecoveryWithLogger(zap.NewNop()))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	res := decode(t, w)
	assert.False(t, res.Status)
	assert.Equal(t, "boom", res.Details)
}

func TestCors(t *testing.T) {
	r := gin.New()
	r.Use(Cors())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestContextTimeout(t *testing.T) {
	r := gin.New()
	r.Use(ContextTimeout(time.Second))
	r.GET("/", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		assert.True(t, ok)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
