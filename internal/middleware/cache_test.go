package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/SamuraiNinja01/movie-catalog/internal/config"
)

// testRedis starts an in-process Redis and returns a client bound to it.
func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run() error = %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

func cacheCfg() config.CacheConfig {
	return config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{"GET": true},
		TTL:          30 * time.Second,
		Prefix:       "cache",
		MaxBodyBytes: 1 << 20,
	}
}

// Without a Redis client the middleware must be a transparent pass-through.
func TestResponseCache_DisabledWithoutRedis(t *testing.T) {
	mw := ResponseCache(cacheCfg(), nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/movies/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("X-Cache"); got != "" {
		t.Errorf("X-Cache = %q, want unset when cache is disabled", got)
	}
}

// TestResponseCache_HitOnSecondGet: the first GET misses, runs the handler
// and stores the response; a second identical GET is served from Redis with
// the exact same body and never reaches the handler.
func TestResponseCache_HitOnSecondGet(t *testing.T) {
	mw := ResponseCache(cacheCfg(), testRedis(t))

	e := echo.New()
	calls := 0
	handler := mw(func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"items": []string{"A", "B"}})
	})

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/movies/?skip=0&limit=10", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/movies/")
		if err := handler(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		return rec
	}

	first := do()
	second := do()

	if calls != 1 {
		t.Errorf("handler ran %d times, want 1", calls)
	}
	if got := first.Header().Get("X-Cache"); got != "MISS" {
		t.Errorf("first X-Cache = %q, want MISS", got)
	}
	if got := second.Header().Get("X-Cache"); got != "HIT" {
		t.Errorf("second X-Cache = %q, want HIT", got)
	}
	if second.Code != http.StatusOK {
		t.Errorf("cached status = %d, want 200", second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Errorf("cached body %q differs from original %q", second.Body.String(), first.Body.String())
	}
	if got := second.Header().Get(echo.HeaderContentType); got != first.Header().Get(echo.HeaderContentType) {
		t.Errorf("cached Content-Type = %q, want %q", got, first.Header().Get(echo.HeaderContentType))
	}
}

// Authenticated requests must bypass the cache in both directions: they are
// not stored, and they do not read another client's entry.
func TestResponseCache_SkipsAuthenticatedRequests(t *testing.T) {
	mw := ResponseCache(cacheCfg(), testRedis(t))

	e := echo.New()
	calls := 0
	handler := mw(func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"n": calls})
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/movies/", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/movies/")
		if err := handler(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if got := rec.Header().Get("X-Cache"); got != "" {
			t.Errorf("X-Cache = %q, want unset for authenticated request", got)
		}
	}
	if calls != 2 {
		t.Errorf("handler ran %d times, want 2", calls)
	}
}

func TestCacheKey_StableAndQuerySensitive(t *testing.T) {
	e := echo.New()

	newCtx := func(target string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/movies/")
		return c
	}

	a1 := cacheKey("cache", newCtx("/movies/?skip=0&limit=10"))
	a2 := cacheKey("cache", newCtx("/movies/?skip=0&limit=10"))
	b := cacheKey("cache", newCtx("/movies/?skip=10&limit=10"))

	if a1 != a2 {
		t.Error("same route+query produced different keys")
	}
	if a1 == b {
		t.Error("different queries produced the same key; pages would collide")
	}
}

func TestBodyRecorder_Limit(t *testing.T) {
	rec := httptest.NewRecorder()
	br := &bodyRecorder{ResponseWriter: rec, status: http.StatusOK, limit: 4}

	if _, err := br.Write([]byte("0123456789")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	// Client still gets the full body; only the cache copy is abandoned.
	if rec.Body.String() != "0123456789" {
		t.Errorf("client body = %q, want full payload", rec.Body.String())
	}
	if br.limit != -1 || br.buf.Len() != 0 {
		t.Errorf("oversized body should abandon recording, limit=%d buffered=%d", br.limit, br.buf.Len())
	}

	// Later small chunks must not revive the recording.
	if _, err := br.Write([]byte("ab")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if br.buf.Len() != 0 {
		t.Errorf("recording resumed after abandonment, buffered=%d", br.buf.Len())
	}
}
