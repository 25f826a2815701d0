package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"sjsage522/pricecompare/config"
	"sjsage522/pricecompare/helpers"
	"sjsage522/pricecompare/logger"
	apperrors "sjsage522/pricecompare/pkg/errors"
	"sjsage522/pricecompare/services/cache"
)

// Fetcher obtains the raw search results markup for a query on one store
type Fetcher interface {
	// Fetch returns the page markup; callers treat any error as an empty page
	Fetch(ctx context.Context, store StoreConfig, query string) (string, error)

	// Mode returns the fetch mode this fetcher implements
	Mode() FetchMode
}

// FileFetcher reads previously saved search pages from a directory
type FileFetcher struct {
	Dir string
}

// NewFileFetcher creates a fetcher reading <dir>/<store>.html
func NewFileFetcher(dir string) *FileFetcher {
	return &FileFetcher{Dir: dir}
}

// Mode returns FetchModeFile
func (f *FileFetcher) Mode() FetchMode {
	return FetchModeFile
}

// Fetch reads the stored document for store; the query is not used
func (f *FileFetcher) Fetch(ctx context.Context, store StoreConfig, query string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(f.Dir, store.DocumentName)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", apperrors.NewDocument(string(store.Store), "no stored document at "+path, err)
	}
	if err != nil {
		return "", apperrors.NewDocument(string(store.Store), "read "+path, err)
	}
	return string(data), nil
}

// HTTPFetcher performs a direct GET on the store search URL.
// A store that answers 429/430 is blocked for BlockTime through the cache.
type HTTPFetcher struct {
	Timeout   time.Duration
	CacheSvc  cache.CacheService
	BlockTime time.Duration
}

// NewHTTPFetcher creates a new HTTP fetcher
func NewHTTPFetcher(timeout time.Duration, cacheSvc cache.CacheService, blockTime time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		Timeout:   timeout,
		CacheSvc:  cacheSvc,
		BlockTime: blockTime,
	}
}

// Mode returns FetchModeHTTP
func (f *HTTPFetcher) Mode() FetchMode {
	return FetchModeHTTP
}

// Fetch fetches the search page with rate limit blocking
func (f *HTTPFetcher) Fetch(ctx context.Context, store StoreConfig, query string) (string, error) {
	name := string(store.Store)

	// Check if the store is rate limited
	if f.CacheSvc != nil && store.CacheKey != "" {
		if _, err := f.CacheSvc.Get(store.CacheKey); err == nil {
			return "", apperrors.NewRateLimit(name, f.BlockTime, nil)
		}
	}

	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	body, err := helpers.FetchWithRandomHeaders(ctx, store.BuildSearchURL(query))
	if err != nil {
		if errors.Is(err, helpers.ErrRateLimited) {
			f.block(store)
			return "", apperrors.NewRateLimit(name, f.BlockTime, err)
		}
		return "", apperrors.NewNetwork(name, "fetch search page", err)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return "", apperrors.NewNetwork(name, "read search page", err)
	}
	return string(data), nil
}

// block marks the store as rate limited for BlockTime
func (f *HTTPFetcher) block(store StoreConfig) {
	if f.CacheSvc == nil || store.CacheKey == "" || f.BlockTime <= 0 {
		return
	}
	seconds := strconv.Itoa(int(f.BlockTime / time.Second))
	if err := f.CacheSvc.Set(store.CacheKey, []byte(seconds), f.BlockTime); err != nil {
		logger.ForStore(string(store.Store)).Warn().
			Err(apperrors.NewCache(string(store.Store), "set rate limit block", err)).
			Msg("Failed to record rate limit")
	}
}

// Router dispatches each store to the fetcher for the configured mode.
// In auto mode a store uses its preferred mode.
type Router struct {
	mode     string
	fetchers map[FetchMode]Fetcher
}

// NewRouter creates a router for mode over the given fetchers
func NewRouter(mode string, fetchers ...Fetcher) *Router {
	r := &Router{
		mode:     mode,
		fetchers: make(map[FetchMode]Fetcher, len(fetchers)),
	}
	for _, f := range fetchers {
		r.fetchers[f.Mode()] = f
	}
	return r
}

// ModeFor returns the fetch mode used for store
func (r *Router) ModeFor(store StoreConfig) FetchMode {
	if r.mode == config.FetchModeAuto || r.mode == "" {
		return store.PreferredMode
	}
	return FetchMode(r.mode)
}

// Fetch fetches store's page through the fetcher for its mode
func (r *Router) Fetch(ctx context.Context, store StoreConfig, query string) (string, error) {
	mode := r.ModeFor(store)
	fetcher, ok := r.fetchers[mode]
	if !ok {
		return "", apperrors.NewConfiguration(fmt.Sprintf("no fetcher for mode %q", mode), nil)
	}
	return fetcher.Fetch(ctx, store, query)
}

// CreateRouter builds every fetcher from the configuration
func CreateRouter(cfg *config.Config, cacheSvc cache.CacheService) *Router {
	return NewRouter(cfg.FetchMode,
		NewFileFetcher(cfg.DocumentsDir),
		NewHTTPFetcher(cfg.HTTPTimeout, cacheSvc, cfg.BlockTime),
		NewChromeFetcher(cfg.BrowserTimeout, cfg.Headless, cfg.ChromeWSURL),
		NewSeleniumFetcher(cfg.SeleniumURL, cfg.BrowserTimeout, cfg.Headless),
	)
}
