package aggregator

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"sjsage522/pricecompare/internal/crawler"
	"sjsage522/pricecompare/internal/fallback"
	"sjsage522/pricecompare/logger"
	apperrors "sjsage522/pricecompare/pkg/errors"
	"sjsage522/pricecompare/services/publisher"
)

// PageFetcher obtains raw search results markup for one store
type PageFetcher interface {
	Fetch(ctx context.Context, store crawler.StoreConfig, query string) (string, error)
}

// Options controls candidate matching for every comparison
type Options struct {
	Policy        crawler.MatchPolicy
	MinPrice      float64
	MaxCandidates int
}

// Aggregator runs fetch and extraction for each store in a fixed order
type Aggregator struct {
	stores     []crawler.StoreConfig
	extractors map[crawler.Store]crawler.Extractor
	fetcher    PageFetcher
	fallback   *fallback.Table
	opts       Options
	publisher  publisher.Publisher
	log        *logger.Logger
}

// NewAggregator creates a new aggregator; pub may be nil
func NewAggregator(
	stores []crawler.StoreConfig,
	extractors map[crawler.Store]crawler.Extractor,
	fetcher PageFetcher,
	table *fallback.Table,
	opts Options,
	pub publisher.Publisher,
) *Aggregator {
	if table == nil {
		table = fallback.Default()
	}
	return &Aggregator{
		stores:     stores,
		extractors: extractors,
		fetcher:    fetcher,
		fallback:   table,
		opts:       opts,
		publisher:  pub,
		log:        logger.ForAggregator(),
	}
}

// Stores returns the stores compared, in output order
func (a *Aggregator) Stores() []crawler.Store {
	out := make([]crawler.Store, 0, len(a.stores))
	for _, s := range a.stores {
		out = append(out, s.Store)
	}
	return out
}

// Compare returns exactly one listing per configured store, in store order.
// Stores that fail or yield nothing get their fallback listing.
func (a *Aggregator) Compare(ctx context.Context, query string) []crawler.Listing {
	query = strings.TrimSpace(query)
	start := time.Now()

	listings := make([]crawler.Listing, 0, len(a.stores))
	for _, store := range a.stores {
		listings = append(listings, a.compareStore(ctx, store, query))
	}

	a.log.Info().
		Str("query", query).
		Int("stores", len(listings)).
		Dur("elapsed", time.Since(start)).
		Msg("Comparison finished")

	a.publish(ctx, query, listings)

	return listings
}

// compareStore fetches and extracts a single store
func (a *Aggregator) compareStore(ctx context.Context, store crawler.StoreConfig, query string) crawler.Listing {
	log := logger.ForStore(string(store.Store))

	raw, err := a.fetcher.Fetch(ctx, store, query)
	if err != nil {
		event := log.Warn()
		if apperrors.IsType(err, apperrors.ErrorTypeDocument) {
			event = log.Debug()
		}
		event.Err(err).Msg("Fetch failed, continuing with an empty page")
		raw = ""
	}

	extractor, ok := a.extractors[store.Store]
	if !ok {
		log.Warn().Msg("No extractor registered")
		return a.fallback.For(query, store.Store)
	}

	listing, found := extractor.Extract(raw, crawler.MatchOptions{
		Query:         query,
		Policy:        a.opts.Policy,
		MinPrice:      a.opts.MinPrice,
		MaxCandidates: a.opts.MaxCandidates,
	})
	if !found {
		log.Debug().Str("query", query).Msg("Using fallback listing")
		return a.fallback.For(query, store.Store)
	}

	log.Debug().
		Str("title", listing.Title).
		Stringer("price", listing.Price).
		Msg("Extracted listing")
	return listing
}

// Comparison is the record published for a finished comparison
type Comparison struct {
	Query      string            `json:"query"`
	Listings   []crawler.Listing `json:"listings"`
	ComparedAt time.Time         `json:"compared_at"`
}

// publish emits the comparison when a publisher is configured
func (a *Aggregator) publish(ctx context.Context, query string, listings []crawler.Listing) {
	if a.publisher == nil {
		return
	}

	data, err := json.Marshal(Comparison{
		Query:      query,
		Listings:   listings,
		ComparedAt: time.Now().UTC(),
	})
	if err != nil {
		a.log.Error().Err(apperrors.NewPublisher("encode comparison", err)).Msg("Failed to publish comparison")
		return
	}

	if err := a.publisher.Publish(ctx, "comparison", data); err != nil {
		logger.ForPublisher().Warn().Err(apperrors.NewPublisher("publish comparison", err)).Msg("Failed to publish comparison")
		return
	}
	if err := a.publisher.TrimStreams(ctx); err != nil {
		logger.ForPublisher().Warn().Err(err).Msg("Failed to trim comparison streams")
	}
}
