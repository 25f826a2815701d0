package crawler

import (
	"io"
	"strings"

	"sjsage522/pricecompare/helpers"
	apperrors "sjsage522/pricecompare/pkg/errors"

	"github.com/PuerkitoBio/goquery"
)

// createDocument parses raw markup into a goquery document
func createDocument(store Store, r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, apperrors.NewParsing(string(store), "parse search results", err)
	}
	return doc, nil
}

// ResolveURL turns a scraped href into an absolute URL.
// Protocol-relative links get https, site-relative links get baseURL.
func ResolveURL(baseURL, href string) string {
	href = strings.TrimSpace(href)
	switch {
	case href == "":
		return ""
	case strings.HasPrefix(href, "//"):
		return "https:" + href
	case strings.HasPrefix(href, "/"):
		return strings.TrimSuffix(baseURL, "/") + href
	default:
		return href
	}
}

// firstMatch returns the matches of the first selector that finds anything within s
func firstMatch(s *goquery.Selection, selectors []string) *goquery.Selection {
	for _, selector := range selectors {
		if found := s.Find(selector); found.Length() > 0 {
			return found
		}
	}
	return s.Slice(0, 0)
}

// firstDocumentMatch is firstMatch over a whole document
func firstDocumentMatch(doc *goquery.Document, selectors []string) *goquery.Selection {
	return firstMatch(doc.Selection, selectors)
}

// cleanText returns the whitespace-normalized text of sel
func cleanText(sel *goquery.Selection) string {
	return helpers.NormalizeSpace(sel.Text())
}

// titleOf prefers a non-empty title attribute over the element text
func titleOf(sel *goquery.Selection) string {
	if title, exists := sel.Attr("title"); exists && strings.TrimSpace(title) != "" {
		return helpers.NormalizeSpace(title)
	}
	return cleanText(sel)
}

// imageSource returns src or data-src of the first image in sel
func imageSource(sel *goquery.Selection, selector string) string {
	if selector == "" {
		selector = "img"
	}
	img := sel.Find(selector).First()
	if img.Length() == 0 {
		return ""
	}
	if src, exists := img.Attr("src"); exists && strings.TrimSpace(src) != "" {
		return strings.TrimSpace(src)
	}
	if src, exists := img.Attr("data-src"); exists {
		return strings.TrimSpace(src)
	}
	return ""
}

// hrefOf returns the href of sel itself when it is an anchor, else of the
// first anchor matched by selectors, else of the enclosing anchor
func hrefOf(sel *goquery.Selection, selectors []string) string {
	if goquery.NodeName(sel) == "a" {
		if href, exists := sel.Attr("href"); exists && strings.TrimSpace(href) != "" {
			return href
		}
	}
	if len(selectors) == 0 {
		selectors = []string{"a[href]"}
	}
	if href, exists := firstMatch(sel, selectors).First().Attr("href"); exists {
		return href
	}
	// Cards wrapped in their product anchor
	href, _ := sel.Closest("a[href]").Attr("href")
	return href
}

// orNotAvailable substitutes the sentinel for empty values
func orNotAvailable(value string) string {
	if strings.TrimSpace(value) == "" {
		return NotAvailable
	}
	return value
}
