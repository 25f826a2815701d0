package crawler

import (
	"sjsage522/pricecompare/config"
	"sjsage522/pricecompare/logger"
)

// CreateStoreConfigs creates every store configuration in comparison order
func CreateStoreConfigs(cfg *config.Config) []StoreConfig {
	configs := []StoreConfig{
		NewAmazonConfig(cfg.AmazonSearchURL),
		NewFlipkartConfig(cfg.FlipkartSearchURL),
		NewMyntraConfig(cfg.MyntraSearchURL),
		NewMeeshoConfig(cfg.MeeshoSearchURL),
	}

	if logger.IsDebugEnabled() {
		log := logger.ForComponent("factory")
		for i, c := range configs {
			log.Debug().
				Int("index", i).
				Str("store", string(c.Store)).
				Str("search_url", c.SearchURL).
				Str("preferred_mode", string(c.PreferredMode)).
				Msg("Configured store")
		}
	}

	return configs
}

// CreateExtractors maps each configured store to its extractor
func CreateExtractors(configs []StoreConfig) map[Store]Extractor {
	extractors := make(map[Store]Extractor, len(configs))
	for _, c := range configs {
		extractors[c.Store] = NewConfigurableExtractor(c)
	}
	return extractors
}

// MatchOptionsFromConfig builds the match options for query
func MatchOptionsFromConfig(cfg *config.Config, query string) MatchOptions {
	return MatchOptions{
		Query:         query,
		Policy:        MatchPolicy(cfg.MatchPolicy),
		MinPrice:      cfg.MinPrice,
		MaxCandidates: cfg.MaxCandidates,
	}
}
