package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"sjsage522/pricecompare/config"
	"sjsage522/pricecompare/internal/crawler"
	"sjsage522/pricecompare/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockComparer records queries and returns canned listings
type MockComparer struct {
	mu      sync.Mutex
	queries []string
}

func (m *MockComparer) Compare(ctx context.Context, query string) []crawler.Listing {
	m.mu.Lock()
	m.queries = append(m.queries, query)
	m.mu.Unlock()

	amazon := crawler.NewListing(crawler.StoreAmazon)
	amazon.Title = "Apple iPhone 15 (128GB)"
	amazon.Price = crawler.KnownPrice(79999)
	amazon.URL = "https://www.amazon.in/dp/iphone15"

	myntra := crawler.NewListing(crawler.StoreMyntra)
	myntra.Title = query + " - Myntra"

	return []crawler.Listing{amazon, myntra}
}

func testConfig() *config.Config {
	cfg := config.LoadConfig()
	cfg.RateLimitRPS = 100
	cfg.RateLimitBurst = 100
	return cfg
}

func setupRouter(t *testing.T, cfg *config.Config) (*gin.Engine, *MockComparer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	comparer := &MockComparer{}
	return SetupRouter(cfg, NewHandler(comparer)), comparer
}

func postCompare(router http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/compare", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	router, _ := setupRouter(t, testConfig())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestCompare(t *testing.T) {
	router, comparer := setupRouter(t, testConfig())

	w := postCompare(router, `{"product": "  iphone 15 "}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"iphone 15"}, comparer.queries)

	assert.JSONEq(t, `{
		"table": [
			{"store": "Amazon", "title": "Apple iPhone 15 (128GB)", "price": 79999, "url": "https://www.amazon.in/dp/iphone15", "image": "Not Available"},
			{"store": "Myntra", "title": "iphone 15 - Myntra", "price": null, "url": "Not Available", "image": "Not Available"}
		],
		"chart": [
			{"store": "Amazon", "price": 79999}
		],
		"best_deal": {"store": "Amazon", "title": "Apple iPhone 15 (128GB)", "price": 79999, "url": "https://www.amazon.in/dp/iphone15", "saving": 0}
	}`, w.Body.String())
}

func TestCompareWithoutProduct(t *testing.T) {
	bodies := map[string]string{
		"empty product":   `{"product": ""}`,
		"blank product":   `{"product": "   "}`,
		"missing product": `{}`,
		"invalid json":    `{"product":`,
		"no body":         ``,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			router, comparer := setupRouter(t, testConfig())

			w := postCompare(router, body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "No product provided", resp["error"])
			assert.Empty(t, comparer.queries)
		})
	}
}

func TestCompareRateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRPS = 0.001
	cfg.RateLimitBurst = 2
	router, comparer := setupRouter(t, cfg)

	assert.Equal(t, http.StatusOK, postCompare(router, `{"product": "kurti"}`).Code)
	assert.Equal(t, http.StatusOK, postCompare(router, `{"product": "kurti"}`).Code)

	w := postCompare(router, `{"product": "kurti"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"Too many requests"}`, w.Body.String())
	assert.Len(t, comparer.queries, 2)

	// Health checks are not rate limited
	h := httptest.NewRecorder()
	router.ServeHTTP(h, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, h.Code)
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := SetupRouter(testConfig(), NewHandler(panicComparer{}))

	w := postCompare(router, `{"product": "kurti"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

type panicComparer struct{}

func (panicComparer) Compare(ctx context.Context, query string) []crawler.Listing {
	panic("extractor exploded")
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := testConfig()
	cfg.Port = 0

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, cfg, http.NotFoundHandler())
	}()

	cancel()
	assert.NoError(t, <-done)
}

func TestLoggerMiddlewareRecordsValidationErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer

	router := gin.New()
	router.Use(LoggerMiddleware(logger.New(&buf)))
	router.POST("/compare", NewHandler(&MockComparer{}).Compare)

	w := postCompare(router, `{"product": " "}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, float64(http.StatusBadRequest), entry["status"])
	assert.Equal(t, []interface{}{"[validation] No product provided"}, entry["errors"])
}
