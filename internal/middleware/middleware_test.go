package middleware

import (
	"context"
	"crypto/sha1"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-box-office/internal/config"
	"github.com/iliyamo/cinema-box-office/internal/model"
	"github.com/iliyamo/cinema-box-office/internal/utils"
)

const testSecret = "test-secret"

func bearer(t *testing.T, username string, role model.Role) string {
	t.Helper()
	tok, err := utils.NewAccessToken(testSecret, username, string(role), 5)
	require.NoError(t, err)
	return "Bearer " + tok.Token
}

func serve(e *echo.Echo, method, target, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthAndRequireRole(t *testing.T) {
	e := echo.New()
	e.GET("/me", func(c echo.Context) error {
		return c.String(http.StatusOK, Username(c))
	}, JWTAuth(testSecret), RequireRole(model.RoleCustomer))

	rec := serve(e, http.MethodGet, "/me", bearer(t, "customer", model.RoleCustomer))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "customer", rec.Body.String())

	rec = serve(e, http.MethodGet, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(e, http.MethodGet, "/me", "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	other, err := utils.NewAccessToken("other-secret", "customer", "CUSTOMER", 5)
	require.NoError(t, err)
	rec = serve(e, http.MethodGet, "/me", "Bearer "+other.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(e, http.MethodGet, "/me", bearer(t, "admin", model.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUsernameDefaultsToGuest(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Equal(t, "guest", Username(c))
	c.Set(CtxUsername, "alice")
	assert.Equal(t, "alice", Username(c))
}

func cacheConfig() config.CacheConfig {
	return config.CacheConfig{
		Enabled:     true,
		Methods:     map[string]bool{http.MethodGet: true},
		TTL:         time.Minute,
		KeyStrategy: "route_query",
		Prefix:      "cache",
	}
}

func moviesKey(gen int64, query string) string {
	return fmt.Sprintf("cache:%d:%x", gen, sha1.Sum([]byte("route:/v1/movies:q:"+query)))
}

func TestRedisCacheHit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	payload, err := encodePayload(http.StatusOK, http.Header{"Content-Type": {"application/json"}}, []byte(`[{"title":"Inception"}]`))
	require.NoError(t, err)
	mock.ExpectGet("cache:gen").SetVal("3")
	mock.ExpectGet(moviesKey(3, "q=sci")).SetVal(string(payload))

	called := false
	e := echo.New()
	e.GET("/v1/movies", func(c echo.Context) error {
		called = true
		return c.String(http.StatusOK, "fresh")
	}, NewRedisCache(cacheConfig(), db))

	rec := serve(e, http.MethodGet, "/v1/movies?q=sci", "")
	assert.False(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, `[{"title":"Inception"}]`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectGet("cache:gen").RedisNil()
	mock.ExpectGet(moviesKey(0, "")).RedisNil()

	e := echo.New()
	e.GET("/v1/movies", func(c echo.Context) error {
		return c.String(http.StatusOK, "fresh")
	}, NewRedisCache(cacheConfig(), db))

	rec := serve(e, http.MethodGet, "/v1/movies", "")
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, "fresh", rec.Body.String())
}

func TestRedisCacheDisabled(t *testing.T) {
	cfg := cacheConfig()
	cfg.Enabled = false
	e := echo.New()
	e.GET("/v1/movies", func(c echo.Context) error {
		return c.String(http.StatusOK, "fresh")
	}, NewRedisCache(cfg, nil))

	rec := serve(e, http.MethodGet, "/v1/movies", "")
	assert.Empty(t, rec.Header().Get("X-Cache"))
	assert.Equal(t, "fresh", rec.Body.String())
}

func TestRedisCacheSkipsEntriesFromBeforePurge(t *testing.T) {
	db, mock := redismock.NewClientMock()
	payload, err := encodePayload(http.StatusOK, http.Header{}, []byte("stale"))
	require.NoError(t, err)

	mock.ExpectGet("cache:gen").SetVal("1")
	mock.ExpectGet(moviesKey(1, "")).SetVal(string(payload))
	mock.ExpectIncr("cache:gen").SetVal(2)
	mock.ExpectScan(0, "cache:*", 100).SetVal([]string{}, 0)
	mock.ExpectGet("cache:gen").SetVal("2")
	mock.ExpectGet(moviesKey(2, "")).RedisNil()

	e := echo.New()
	e.GET("/v1/movies", func(c echo.Context) error {
		return c.String(http.StatusOK, "fresh")
	}, NewRedisCache(cacheConfig(), db))

	rec := serve(e, http.MethodGet, "/v1/movies", "")
	assert.Equal(t, "stale", rec.Body.String())

	NewCachePurger(cacheConfig(), db, logrus.New()).Purge(context.Background())

	rec = serve(e, http.MethodGet, "/v1/movies", "")
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, "fresh", rec.Body.String())
}

func TestRedisCacheBypassedWhenGenerationUnreadable(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectGet("cache:gen").SetErr(errors.New("connection refused"))

	e := echo.New()
	e.GET("/v1/movies", func(c echo.Context) error {
		return c.String(http.StatusOK, "fresh")
	}, NewRedisCache(cacheConfig(), db))

	rec := serve(e, http.MethodGet, "/v1/movies", "")
	assert.Empty(t, rec.Header().Get("X-Cache"))
	assert.Equal(t, "fresh", rec.Body.String())
}

func TestDecodePayloadRejectsShortInput(t *testing.T) {
	_, _, _, ok := decodePayload([]byte{0, 1})
	assert.False(t, ok)
}

func TestPurgeCache(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectScan(0, "cache:*", 100).SetVal([]string{"cache:a", "cache:gen", "cache:b"}, 7)
	mock.ExpectDel("cache:a", "cache:b").SetVal(2)
	mock.ExpectScan(7, "cache:*", 100).SetVal([]string{}, 0)

	n, err := PurgeCache(context.Background(), db, "cache")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurgeCacheScanError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectScan(0, "cache:*", 100).SetErr(errors.New("connection refused"))

	_, err := PurgeCache(context.Background(), db, "cache")
	assert.ErrorContains(t, err, "connection refused")
}

func TestCachePurger(t *testing.T) {
	var nilPurger *CachePurger
	assert.NotPanics(t, func() { nilPurger.Purge(context.Background()) })
	assert.Nil(t, NewCachePurger(cacheConfig(), nil, logrus.New()))

	db, mock := redismock.NewClientMock()
	mock.ExpectIncr("cache:gen").SetVal(1)
	mock.ExpectScan(0, "cache:*", 100).SetVal([]string{"cache:0:x"}, 0)
	mock.ExpectDel("cache:0:x").SetVal(1)
	p := NewCachePurger(cacheConfig(), db, logrus.New())
	require.NotNil(t, p)
	p.Purge(context.Background())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func rateConfig() config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:        true,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Second,
		TTL:            time.Minute,
		Prefix:         "rl",
	}
}

func TestTokenBucketBlocks(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.CustomMatch(func(expected, actual []interface{}) error { return nil }).
		ExpectEvalSha(limiterScript.Hash(), []string{"any"}).
		SetVal([]interface{}{int64(0), int64(0), int64(1500)})

	called := false
	e := echo.New()
	e.GET("/x", func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	}, NewTokenBucket(rateConfig(), db, logrus.New()))

	rec := serve(e, http.MethodGet, "/x", "")
	assert.False(t, called)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
}

func TestTokenBucketFailsOpen(t *testing.T) {
	db, _ := redismock.NewClientMock()
	log, hook := logtest.NewNullLogger()

	e := echo.New()
	e.GET("/x", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, NewTokenBucket(rateConfig(), db, log))

	rec := serve(e, http.MethodGet, "/x", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/movies/1/book", nil)
	req.RemoteAddr = "192.0.2.7:5555"
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/movies/:id/book")
	c.Set(CtxUsername, "customer")

	cfg := rateConfig()
	assert.Equal(t, "rl:ip:192.0.2.7:user:customer:route:POST /v1/movies/:id/book", buildRateKey(cfg, c))
	cfg.KeyStrategy = "user"
	assert.Equal(t, "rl:user:customer", buildRateKey(cfg, c))
	cfg.KeyStrategy = "ip"
	assert.Equal(t, "rl:ip:192.0.2.7", buildRateKey(cfg, c))
}

func TestRequestLoggerSetsCorrelationID(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	e := echo.New()
	e.Use(RequestLogger(log))
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Correlation-ID", "abc")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "abc", rec.Header().Get("Correlation-ID"))
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, "abc", hook.LastEntry().Data["correlation_id"])
	assert.Equal(t, http.StatusOK, hook.LastEntry().Data["status"])

	rec = serve(e, http.MethodGet, "/healthz", "")
	assert.NotEmpty(t, rec.Header().Get("Correlation-ID"))
}
