package crawler

import (
	"strings"

	"sjsage522/pricecompare/helpers"
	"sjsage522/pricecompare/logger"

	"github.com/PuerkitoBio/goquery"
)

// ConfigurableExtractor extracts listings from a results page using a StoreConfig
type ConfigurableExtractor struct {
	Config StoreConfig
	log    *logger.Logger
}

// NewConfigurableExtractor creates a new configurable extractor
func NewConfigurableExtractor(config StoreConfig) *ConfigurableExtractor {
	return &ConfigurableExtractor{
		Config: config,
		log:    logger.ForStore(string(config.Store)),
	}
}

// GetStore returns the store this extractor understands
func (e *ConfigurableExtractor) GetStore() Store {
	return e.Config.Store
}

// Extract returns the first candidate accepted by opts.
// Malformed or empty markup is reported as not found.
func (e *ConfigurableExtractor) Extract(raw string, opts MatchOptions) (Listing, bool) {
	if strings.TrimSpace(raw) == "" {
		return NewListing(e.Config.Store), false
	}

	doc, err := createDocument(e.Config.Store, strings.NewReader(raw))
	if err != nil {
		e.log.Debug().Err(err).Msg("Discarding unparsable document")
		return NewListing(e.Config.Store), false
	}

	candidates := e.locateCandidates(doc)
	if candidates.Length() == 0 {
		e.log.Debug().Msg("No product candidates on page")
		return NewListing(e.Config.Store), false
	}

	limit := e.Config.candidateLimit(opts.MaxCandidates, candidates.Length())
	for i := 0; i < limit; i++ {
		candidate := candidates.Eq(i)
		if e.excluded(candidate) {
			e.log.Debug().Int("position", i).Msg("Skipping sponsored candidate")
			continue
		}
		listing := e.processCandidate(candidate)
		if accepts(opts, listing) {
			return listing, true
		}
	}

	e.log.Debug().
		Int("examined", limit).
		Str("query", opts.Query).
		Msg("No candidate matched the query")
	return NewListing(e.Config.Store), false
}

// locateCandidates applies candidate selectors in order, then the candidate handler
func (e *ConfigurableExtractor) locateCandidates(doc *goquery.Document) *goquery.Selection {
	found := firstDocumentMatch(doc, e.Config.Selectors.Candidates)
	if found.Length() > 0 {
		return found
	}
	if handler := e.Config.CustomHandlers.Candidates; handler != nil {
		if found := handler(doc); found != nil {
			return found
		}
	}
	return found
}

// excluded reports whether a candidate is a sponsored or otherwise unwanted placement
func (e *ConfigurableExtractor) excluded(s *goquery.Selection) bool {
	for _, selector := range e.Config.Selectors.Exclude {
		if s.Is(selector) || s.Find(selector).Length() > 0 {
			return true
		}
	}
	text := s.Text()
	for _, marker := range SponsoredMarkers {
		if helpers.ContainsFold(text, marker) {
			return true
		}
	}
	return false
}

// processElement extracts text for path using a custom handler or the selector list
func (e *ConfigurableExtractor) processElement(s *goquery.Selection, path string, selectors []string) string {
	if e.Config.CustomHandlers.ElementHandlers != nil {
		if handler, exists := e.Config.CustomHandlers.ElementHandlers[path]; exists && handler != nil {
			if text := strings.TrimSpace(handler(s)); text != "" {
				return text
			}
		}
	}

	sel := firstMatch(s, selectors).First()
	if sel.Length() == 0 {
		return ""
	}
	if path == "title" {
		return titleOf(sel)
	}
	return cleanText(sel)
}

// processCandidate builds a listing from a single candidate node
func (e *ConfigurableExtractor) processCandidate(s *goquery.Selection) Listing {
	listing := NewListing(e.Config.Store)

	title := e.processElement(s, "title", e.Config.Selectors.Title)
	if title == "" && e.Config.Selectors.TitleFromText {
		title = helpers.FirstLine(s.Text())
	}
	listing.Title = orNotAvailable(title)

	listing.Price = priceFromText(e.processElement(s, "price", e.Config.Selectors.Price))
	listing.Image = orNotAvailable(imageSource(s, e.Config.Selectors.Image))
	listing.URL = orNotAvailable(ResolveURL(e.Config.BaseURL, hrefOf(s, e.Config.Selectors.Link)))

	return listing
}

// accepts applies the match policy to a candidate listing
func accepts(opts MatchOptions, listing Listing) bool {
	if opts.Policy != MatchQuery {
		return true
	}
	if listing.Title == NotAvailable || !helpers.ContainsFold(listing.Title, strings.TrimSpace(opts.Query)) {
		return false
	}
	price, known := listing.Price.Value()
	return known && price > opts.MinPrice
}
