package crawler

import (
	"net/url"
	"strings"

	"sjsage522/pricecompare/helpers"

	"github.com/PuerkitoBio/goquery"
)

// NewMyntraConfig creates the Myntra store configuration
func NewMyntraConfig(searchURL string) StoreConfig {
	return StoreConfig{
		Store:         StoreMyntra,
		BaseURL:       "https://www.myntra.com",
		SearchURL:     searchURL,
		QueryEscaper:  myntraSlug,
		DocumentName:  "myntra.html",
		PreferredMode: FetchModeHTTP,
		CacheKey:      "myntra_rate_limited",
		MaxCandidates: 12,
		Selectors: Selectors{
			Candidates: []string{
				"li.product-base",
				`div[data-track="product"]`,
				`a[href*="/product/"]`,
			},
			Title: []string{
				"h3.product-brand",
			},
			Price: []string{
				"span.product-discountedPrice",
				"span.product-price",
				`span[class*="price"]`,
			},
			TitleFromText: true,
			WaitFor:       "li.product-base",
		},
		CustomHandlers: CustomHandlers{
			ElementHandlers: map[string]CustomElementHandlerFunc{
				"title": myntraTitle,
			},
		},
	}
}

// myntraSlug turns a query into Myntra's dashed search path
func myntraSlug(query string) string {
	return url.PathEscape(strings.Join(strings.Fields(query), "-"))
}

// myntraTitle joins brand and product name when both are present
func myntraTitle(s *goquery.Selection) string {
	brand := helpers.NormalizeSpace(s.Find("h3.product-brand").First().Text())
	name := helpers.NormalizeSpace(s.Find("h4.product-product").First().Text())
	if brand == "" || name == "" {
		return ""
	}
	return brand + " " + name
}
