package crawler

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"
)

// flipkartTitleAnchors are the product anchors used across Flipkart layouts
const flipkartTitleAnchors = "a.s1Q9rs, a._2rpwqI, a._1fQZEK, a.IRpwTa"

// NewFlipkartConfig creates the Flipkart store configuration
func NewFlipkartConfig(searchURL string) StoreConfig {
	return StoreConfig{
		Store:         StoreFlipkart,
		BaseURL:       "https://www.flipkart.com",
		SearchURL:     searchURL,
		QueryEscaper:  url.QueryEscape,
		DocumentName:  "flipkart.html",
		PreferredMode: FetchModeChrome,
		CacheKey:      "flipkart_rate_limited",
		MaxCandidates: 10,
		Selectors: Selectors{
			Candidates: []string{
				"[data-id]",
				"div._1AtVbE",
			},
			Title: []string{
				"a.s1Q9rs",
				"a._2rpwqI",
				"a.IRpwTa",
				"a._1fQZEK",
			},
			Price: []string{
				"div._30jeq3",
				"div._25b18c",
				"div._1vC4OE",
			},
			Link: []string{
				"a.s1Q9rs[href]",
				"a.IRpwTa[href]",
				"a._1fQZEK[href]",
				"a._2rpwqI[href]",
				"a[href]",
			},
			TitleFromText: true,
			WaitFor:       "[data-id]",
		},
		CustomHandlers: CustomHandlers{
			Candidates: flipkartCandidates,
		},
	}
}

// flipkartCandidates falls back to the containers of product anchors
func flipkartCandidates(doc *goquery.Document) *goquery.Selection {
	anchors := doc.Find(flipkartTitleAnchors)
	if anchors.Length() == 0 {
		return nil
	}
	return anchors.Parent()
}
