package crawler

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// NewMeeshoConfig creates the Meesho store configuration
func NewMeeshoConfig(searchURL string) StoreConfig {
	return StoreConfig{
		Store:         StoreMeesho,
		BaseURL:       "https://www.meesho.com",
		SearchURL:     searchURL,
		QueryEscaper:  url.PathEscape,
		DocumentName:  "meesho.html",
		PreferredMode: FetchModeHTTP,
		CacheKey:      "meesho_rate_limited",
		MaxCandidates: 12,
		Selectors: Selectors{
			Candidates: []string{
				`div[class*="Card"]`,
				`div[data-testid="product-card"]`,
				"div.sc-dkrFOg",
				`div[role="article"]`,
				`a[href*="/product/"]`,
			},
			Title: []string{
				"p, h3",
			},
			Price: []string{
				"h5",
			},
			TitleFromText: true,
			WaitFor:       `div[class*="Card"]`,
		},
		CustomHandlers: CustomHandlers{
			ElementHandlers: map[string]CustomElementHandlerFunc{
				"price": meeshoPrice,
			},
		},
	}
}

// meeshoPrice returns the first heading, span or paragraph showing a rupee amount
func meeshoPrice(s *goquery.Selection) string {
	var price string
	s.Find("h5, span, p").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		text := strings.TrimSpace(el.Text())
		if strings.Contains(text, "₹") {
			price = text
			return false
		}
		return true
	})
	return price
}
