package cmd

import (
	"context"
	"os"

	"sjsage522/pricecompare/config"
	"sjsage522/pricecompare/internal/crawler"
	"sjsage522/pricecompare/internal/fallback"
	"sjsage522/pricecompare/logger"
	apperrors "sjsage522/pricecompare/pkg/errors"
	"sjsage522/pricecompare/services/aggregator"
	"sjsage522/pricecompare/services/cache"
	"sjsage522/pricecompare/services/publisher"
)

// Services holds all the initialized services
type Services struct {
	Cache      cache.CacheService
	Publisher  publisher.Publisher
	Aggregator *aggregator.Aggregator
}

// Cleanup cleans up all services
func (s *Services) Cleanup() {
	if s.Publisher != nil {
		s.Publisher.Close()
	}
}

// initializeServices wires the cache, publisher and aggregator from cfg.
// Memcache and Redis are optional; when unreachable the comparison still runs.
func initializeServices(ctx context.Context, cfg *config.Config) (*Services, error) {
	services := &Services{}
	log := logger.ForComponent("app")

	services.Cache = newCache(cfg)

	if cfg.RedisAddr != "" {
		redisPublisher := publisher.NewRedisPublisher(
			cfg.RedisAddr,
			cfg.RedisDB,
			cfg.RedisStream,
			cfg.RedisStreamCount,
			cfg.RedisStreamMaxLength,
		)
		if err := redisPublisher.Ping(ctx); err != nil {
			log.Warn().Err(apperrors.NewPublisher("connect to redis", err)).
				Str("addr", cfg.RedisAddr).
				Msg("Publishing disabled")
			redisPublisher.Close()
		} else {
			services.Publisher = redisPublisher
			log.Info().
				Str("addr", cfg.RedisAddr).
				Int("db", cfg.RedisDB).
				Str("stream", cfg.RedisStream).
				Msg("Connected to Redis")
		}
	}

	table := fallback.Default()
	if cfg.FallbackFile != "" {
		loaded, err := fallback.LoadFile(cfg.FallbackFile)
		if err != nil {
			return nil, apperrors.NewConfiguration("load fallback file "+cfg.FallbackFile, err)
		}
		table = loaded
	}

	stores := crawler.CreateStoreConfigs(cfg)
	services.Aggregator = aggregator.NewAggregator(
		stores,
		crawler.CreateExtractors(stores),
		crawler.CreateRouter(cfg, services.Cache),
		table,
		aggregator.Options{
			Policy:        crawler.MatchPolicy(cfg.MatchPolicy),
			MinPrice:      cfg.MinPrice,
			MaxCandidates: cfg.MaxCandidates,
		},
		services.Publisher,
	)

	log.Info().
		Str("environment", cfg.Environment).
		Str("fetch_mode", cfg.FetchMode).
		Str("match_policy", cfg.MatchPolicy).
		Int("fallback_queries", table.Queries()).
		Msg("Services initialized")

	return services, nil
}

// newCache returns memcache when configured and reachable, else an in-process cache
func newCache(cfg *config.Config) cache.CacheService {
	if cfg.CacheBackend == config.CacheBackendMemcache {
		mc := cache.NewMemcacheService(cfg.MemcacheAddr)
		if err := mc.Ping(); err != nil {
			logger.ForCache().Warn().
				Err(apperrors.NewCache("", "connect to memcache", err)).
				Msg("Falling back to in-memory cache")
			return cache.NewMemoryCache()
		}
		logger.ForCache().Info().Str("addr", cfg.MemcacheAddr).Msg("Connected to Memcache")
		return mc
	}
	return cache.NewMemoryCache()
}

// envSet reports whether key is present and non-empty in the environment
func envSet(key string) bool {
	return os.Getenv(key) != ""
}
