package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/hotel-property-management/internal/config"
)

func cacheTestContext(target string, userID any) echo.Context {
	e := echo.New()
	req := httptest.NewRequest("GET", target, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if userID != nil {
		c.Set("user_id", userID)
	}
	return c
}

func TestCacheKey_SeparatesCallers(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}
	target := "/v1/hotels/7/availability?from=2025-03-01&to=2025-03-31"

	owner := cacheKey(cfg, cacheTestContext(target, uint64(1)))
	other := cacheKey(cfg, cacheTestContext(target, uint64(2)))
	anon := cacheKey(cfg, cacheTestContext(target, nil))

	assert.NotEqual(t, owner, other, "two callers must never share a cached response")
	assert.NotEqual(t, owner, anon)

	again := cacheKey(cfg, cacheTestContext(target, uint64(1)))
	assert.Equal(t, owner, again, "the same caller repeating the request must hit")
}

func TestCacheKey_SeparatesHotelsAndQueries(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

	a := cacheKey(cfg, cacheTestContext("/v1/hotels/7/availability?from=2025-03-01", uint64(1)))
	b := cacheKey(cfg, cacheTestContext("/v1/hotels/8/availability?from=2025-03-01", uint64(1)))
	c := cacheKey(cfg, cacheTestContext("/v1/hotels/7/availability?from=2025-04-01", uint64(1)))

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
}
