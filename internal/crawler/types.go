package crawler

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// NotAvailable marks a listing field that could not be determined
const NotAvailable = "Not Available"

// SponsoredMarkers flag paid placements when found in a candidate's text
var SponsoredMarkers = []string{"sponsored", "advertisement", "promoted by"}

// Store identifies a supported e-commerce site
type Store string

const (
	StoreAmazon   Store = "Amazon"
	StoreFlipkart Store = "Flipkart"
	StoreMyntra   Store = "Myntra"
	StoreMeesho   Store = "Meesho"
)

// Stores returns every supported store in comparison order
func Stores() []Store {
	return []Store{StoreAmazon, StoreFlipkart, StoreMyntra, StoreMeesho}
}

// ParseStore resolves a store name case-insensitively
func ParseStore(name string) (Store, error) {
	for _, s := range Stores() {
		if strings.EqualFold(string(s), strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown store %q", name)
}

// Price is a non-negative amount in rupees that may be unknown
type Price struct {
	value float64
	known bool
}

// UnknownPrice is the zero Price
var UnknownPrice = Price{}

// KnownPrice wraps an amount; negative amounts are treated as unknown
func KnownPrice(value float64) Price {
	if value < 0 {
		return UnknownPrice
	}
	return Price{value: value, known: true}
}

// Value returns the amount and whether it is known
func (p Price) Value() (float64, bool) {
	return p.value, p.known
}

// Known reports whether the amount is known
func (p Price) Known() bool {
	return p.known
}

// String renders the price as shown to users
func (p Price) String() string {
	if !p.known {
		return NotAvailable
	}
	return fmt.Sprintf("₹%d", int64(p.value))
}

// MarshalJSON encodes a known price as a number and an unknown one as null
func (p Price) MarshalJSON() ([]byte, error) {
	if !p.known {
		return []byte("null"), nil
	}
	return json.Marshal(p.value)
}

// UnmarshalJSON accepts a number or null
func (p *Price) UnmarshalJSON(data []byte) error {
	var v *float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v == nil {
		*p = UnknownPrice
		return nil
	}
	*p = KnownPrice(*v)
	return nil
}

// Listing is the normalized result for one store
type Listing struct {
	Store Store  `json:"store"`
	Title string `json:"title"`
	Price Price  `json:"price"`
	URL   string `json:"url"`
	Image string `json:"image"`
}

// NewListing returns a listing for store with every other field unavailable
func NewListing(store Store) Listing {
	return Listing{
		Store: store,
		Title: NotAvailable,
		Price: UnknownPrice,
		URL:   NotAvailable,
		Image: NotAvailable,
	}
}

// HasURL reports whether the listing carries a product link
func (l Listing) HasURL() bool {
	return l.URL != "" && l.URL != NotAvailable
}

// HasImage reports whether the listing carries an image reference
func (l Listing) HasImage() bool {
	return l.Image != "" && l.Image != NotAvailable
}

// FetchMode selects how a store's search page is obtained
type FetchMode string

const (
	FetchModeFile     FetchMode = "file"
	FetchModeHTTP     FetchMode = "http"
	FetchModeChrome   FetchMode = "chrome"
	FetchModeSelenium FetchMode = "selenium"
)

// MatchPolicy decides which candidate on a results page is accepted
type MatchPolicy string

const (
	// MatchFirst accepts the first structurally plausible candidate
	MatchFirst MatchPolicy = "first"
	// MatchQuery accepts the first candidate whose title contains the query
	// and whose price exceeds the minimum
	MatchQuery MatchPolicy = "query"
)

// MatchOptions controls candidate selection during extraction
type MatchOptions struct {
	Query         string
	Policy        MatchPolicy
	MinPrice      float64
	MaxCandidates int
}

// Extractor turns a raw search results document into a listing
type Extractor interface {
	// Extract returns the accepted listing, or false when no candidate qualifies
	Extract(raw string, opts MatchOptions) (Listing, bool)

	// GetStore returns the store this extractor understands
	GetStore() Store
}

// CandidateHandlerFunc locates product candidates when no candidate selector matched
type CandidateHandlerFunc func(*goquery.Document) *goquery.Selection

// CustomElementHandlerFunc defines a function to customize extraction logic for elements
type CustomElementHandlerFunc func(*goquery.Selection) string

// Selectors contains CSS selectors for a store's results page.
// Each list is tried in order and the first selector with a match wins.
type Selectors struct {
	Candidates []string
	Title      []string
	Price      []string
	Image      string
	Link       []string

	// Exclude drops candidates that are, or contain, a match
	Exclude []string

	// TitleFromText falls back to the first text line of the candidate
	TitleFromText bool

	// WaitFor is awaited by browser fetchers before the page is captured
	WaitFor string
}

// CustomHandlers contains custom handlers for element processing
type CustomHandlers struct {
	Candidates CandidateHandlerFunc

	// Map paths ("title", "price") to custom handlers
	ElementHandlers map[string]CustomElementHandlerFunc
}

// StoreConfig contains everything needed to search and parse one store
type StoreConfig struct {
	Store          Store
	BaseURL        string
	SearchURL      string
	QueryEscaper   func(string) string
	DocumentName   string
	PreferredMode  FetchMode
	CacheKey       string
	MaxCandidates  int
	Selectors      Selectors
	CustomHandlers CustomHandlers
}

// candidateLimit caps how many of total candidates are examined.
// A positive override wins over the store's own cap.
func (c StoreConfig) candidateLimit(override, total int) int {
	limit := c.MaxCandidates
	if override > 0 {
		limit = override
	}
	if limit <= 0 || limit > total {
		return total
	}
	return limit
}

// BuildSearchURL fills the search URL template with the escaped query
func (c StoreConfig) BuildSearchURL(query string) string {
	escaped := strings.TrimSpace(query)
	if c.QueryEscaper != nil {
		escaped = c.QueryEscaper(escaped)
	}
	return strings.Replace(c.SearchURL, "%s", escaped, 1)
}
