package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "sjsage522/pricecompare/pkg/errors"
)

// Fetch modes accepted by FETCH_MODE
const (
	FetchModeAuto     = "auto"
	FetchModeFile     = "file"
	FetchModeHTTP     = "http"
	FetchModeChrome   = "chrome"
	FetchModeSelenium = "selenium"
)

// Match policies accepted by MATCH_POLICY
const (
	MatchPolicyFirst = "first"
	MatchPolicyQuery = "query"
)

// Cache backends accepted by CACHE_BACKEND
const (
	CacheBackendMemory   = "memory"
	CacheBackendMemcache = "memcache"
)

// Config represents the application configuration
type Config struct {
	// Fetch configuration
	FetchMode      string
	DocumentsDir   string
	HTTPTimeout    time.Duration
	BrowserTimeout time.Duration
	Headless       bool
	ChromeWSURL    string
	SeleniumURL    string
	BlockTime      time.Duration

	// Extraction configuration
	MatchPolicy   string
	MinPrice      float64
	MaxCandidates int
	FallbackFile  string

	// Search URL templates, %s is replaced with the escaped query
	AmazonSearchURL   string
	FlipkartSearchURL string
	MyntraSearchURL   string
	MeeshoSearchURL   string

	// Cache configuration
	CacheBackend string
	MemcacheAddr string

	// Redis configuration, an empty address disables publishing
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamCount     int
	RedisStreamMaxLength int

	// Server configuration
	Port           int
	RateLimitRPS   float64
	RateLimitBurst int

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	httpTimeout, _ := strconv.Atoi(getEnv("HTTP_TIMEOUT_SECONDS", "10"))
	browserTimeout, _ := strconv.Atoi(getEnv("BROWSER_TIMEOUT_SECONDS", "45"))
	blockTime, _ := strconv.Atoi(getEnv("BLOCK_SECONDS", "300"))
	headless, _ := strconv.ParseBool(getEnv("HEADLESS", "true"))
	minPrice, _ := strconv.ParseFloat(getEnv("MIN_PRICE", "50"), 64)
	maxCandidates, _ := strconv.Atoi(getEnv("MAX_CANDIDATES", "0"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	redisStreamCount, _ := strconv.Atoi(getEnv("REDIS_STREAM_COUNT", "1"))
	redisStreamMaxLength, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAX_LENGTH", "1000"))
	port, _ := strconv.Atoi(getEnv("PORT", "5000"))
	rateLimitRPS, _ := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "2"), 64)
	rateLimitBurst, _ := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "5"))

	fetchMode := strings.ToLower(getEnv("FETCH_MODE", FetchModeAuto))

	return &Config{
		FetchMode:            fetchMode,
		DocumentsDir:         getEnv("DOCUMENTS_DIR", "."),
		HTTPTimeout:          time.Duration(httpTimeout) * time.Second,
		BrowserTimeout:       time.Duration(browserTimeout) * time.Second,
		Headless:             headless,
		ChromeWSURL:          getEnv("CHROME_WS_URL", ""),
		SeleniumURL:          getEnv("SELENIUM_URL", "http://localhost:4444/wd/hub"),
		BlockTime:            time.Duration(blockTime) * time.Second,
		MatchPolicy:          strings.ToLower(getEnv("MATCH_POLICY", DefaultMatchPolicy(fetchMode))),
		MinPrice:             minPrice,
		MaxCandidates:        maxCandidates,
		FallbackFile:         getEnv("FALLBACK_FILE", ""),
		AmazonSearchURL:      getEnv("AMAZON_SEARCH_URL", "https://www.amazon.in/s?k=%s"),
		FlipkartSearchURL:    getEnv("FLIPKART_SEARCH_URL", "https://www.flipkart.com/search?q=%s"),
		MyntraSearchURL:      getEnv("MYNTRA_SEARCH_URL", "https://www.myntra.com/%s"),
		MeeshoSearchURL:      getEnv("MEESHO_SEARCH_URL", "https://www.meesho.com/search?q=%s"),
		CacheBackend:         strings.ToLower(getEnv("CACHE_BACKEND", CacheBackendMemory)),
		MemcacheAddr:         getEnv("MEMCACHE_ADDR", "localhost:11211"),
		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "comparisons"),
		RedisStreamCount:     redisStreamCount,
		RedisStreamMaxLength: redisStreamMaxLength,
		Port:                 port,
		RateLimitRPS:         rateLimitRPS,
		RateLimitBurst:       rateLimitBurst,
		Environment:          getEnv("PRICECOMPARE_ENVIRONMENT", "development"),
	}
}

// DefaultMatchPolicy picks the first candidate for stored documents and
// requires a query match for anything fetched live.
func DefaultMatchPolicy(fetchMode string) string {
	if fetchMode == FetchModeFile {
		return MatchPolicyFirst
	}
	return MatchPolicyQuery
}

// Validate checks the configuration for values the application cannot run with
func (c *Config) Validate() error {
	switch c.FetchMode {
	case FetchModeAuto, FetchModeFile, FetchModeHTTP, FetchModeChrome, FetchModeSelenium:
	default:
		return apperrors.NewValidation("", fmt.Sprintf("unknown fetch mode %q", c.FetchMode))
	}

	switch c.MatchPolicy {
	case MatchPolicyFirst, MatchPolicyQuery:
	default:
		return apperrors.NewValidation("", fmt.Sprintf("unknown match policy %q", c.MatchPolicy))
	}

	switch c.CacheBackend {
	case CacheBackendMemory, CacheBackendMemcache:
	default:
		return apperrors.NewValidation("", fmt.Sprintf("unknown cache backend %q", c.CacheBackend))
	}

	if c.HTTPTimeout <= 0 {
		return apperrors.NewValidation("", "HTTP_TIMEOUT_SECONDS must be positive")
	}
	if c.BrowserTimeout <= 0 {
		return apperrors.NewValidation("", "BROWSER_TIMEOUT_SECONDS must be positive")
	}
	if c.MaxCandidates < 0 {
		return apperrors.NewValidation("", "MAX_CANDIDATES must not be negative")
	}
	if c.MinPrice < 0 {
		return apperrors.NewValidation("", "MIN_PRICE must not be negative")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return apperrors.NewValidation("", fmt.Sprintf("PORT %d is out of range", c.Port))
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return apperrors.NewValidation("", "RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	for name, tmpl := range map[string]string{
		"AMAZON_SEARCH_URL":   c.AmazonSearchURL,
		"FLIPKART_SEARCH_URL": c.FlipkartSearchURL,
		"MYNTRA_SEARCH_URL":   c.MyntraSearchURL,
		"MEESHO_SEARCH_URL":   c.MeeshoSearchURL,
	} {
		if !strings.Contains(tmpl, "%s") {
			return apperrors.NewValidation("", fmt.Sprintf("%s must contain a %%s placeholder", name))
		}
	}

	if c.RedisAddr != "" && c.RedisStreamCount <= 0 {
		return apperrors.NewValidation("", "REDIS_STREAM_COUNT must be positive")
	}

	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
