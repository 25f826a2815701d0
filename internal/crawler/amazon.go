package crawler

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// NewAmazonConfig creates the Amazon store configuration
func NewAmazonConfig(searchURL string) StoreConfig {
	return StoreConfig{
		Store:         StoreAmazon,
		BaseURL:       "https://www.amazon.in",
		SearchURL:     searchURL,
		QueryEscaper:  url.QueryEscape,
		DocumentName:  "amazon.html",
		PreferredMode: FetchModeChrome,
		CacheKey:      "amazon_rate_limited",
		MaxCandidates: 8,
		Selectors: Selectors{
			Candidates: []string{
				`div[data-component-type="s-search-result"][data-asin]:not([data-asin=""])`,
				`div[data-asin]:not([data-asin=""])`,
				`div[data-component-type="s-search-result"]`,
			},
			Title: []string{
				"h2 a span",
				"h2",
				"span.a-text-normal",
				`span[class*="a-size-"][class*="title"]`,
			},
			Link: []string{
				"h2 a[href]",
				"a.a-link-normal[href]",
				"a[href]",
			},
			Exclude: []string{
				".puis-sponsored-label-text",
				`[data-component-type="sp-sponsored-result"]`,
			},
			WaitFor: "div.s-main-slot",
		},
		CustomHandlers: CustomHandlers{
			ElementHandlers: map[string]CustomElementHandlerFunc{
				"price": amazonPrice,
			},
		},
	}
}

// amazonPrice prefers the screen-reader price and falls back to whole plus fraction
func amazonPrice(s *goquery.Selection) string {
	if offscreen := s.Find(".a-price .a-offscreen, span.a-offscreen").First(); offscreen.Length() > 0 {
		if text := strings.TrimSpace(offscreen.Text()); text != "" {
			return text
		}
	}

	whole := strings.TrimSpace(s.Find("span.a-price-whole").First().Text())
	if whole == "" {
		return ""
	}
	whole = strings.TrimRight(whole, ".")

	fraction := strings.TrimSpace(s.Find("span.a-price-fraction").First().Text())
	if fraction == "" {
		return whole
	}
	return whole + "." + fraction
}
