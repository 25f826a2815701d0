package presenter

import (
	"fmt"
	"io"
	"strings"

	"sjsage522/pricecompare/internal/crawler"
)

// Deal is the cheapest priced listing of a comparison
type Deal struct {
	Store crawler.Store `json:"store"`
	Title string        `json:"title"`
	Price crawler.Price `json:"price"`
	URL   string        `json:"url"`

	// ComparedTo is the first other store with a price, empty when there is none
	ComparedTo crawler.Store `json:"compared_to,omitempty"`
	Saving     float64       `json:"saving"`
}

// BestDeal picks the lowest known price, the earliest store winning ties.
// It returns nil when no listing has a price.
func BestDeal(listings []crawler.Listing) *Deal {
	best := -1
	var lowest float64
	for i, l := range listings {
		price, known := l.Price.Value()
		if known && (best < 0 || price < lowest) {
			best, lowest = i, price
		}
	}
	if best < 0 {
		return nil
	}

	winner := listings[best]
	deal := &Deal{
		Store: winner.Store,
		Title: winner.Title,
		Price: winner.Price,
		URL:   winner.URL,
	}
	for i, l := range listings {
		if i == best {
			continue
		}
		if price, known := l.Price.Value(); known {
			deal.ComparedTo = l.Store
			deal.Saving = price - lowest
			break
		}
	}
	return deal
}

// RenderBestDeal writes the best deal summary, or nothing when no store has a price
func RenderBestDeal(w io.Writer, deal *Deal) error {
	if deal == nil {
		return nil
	}

	link := deal.URL
	if link == "" || link == crawler.NotAvailable {
		link = notProvided
	}

	var b strings.Builder
	b.WriteString("\nBEST DEAL FOUND!\n")
	fmt.Fprintf(&b, "%s - %s\n", deal.Store, deal.Price)
	fmt.Fprintf(&b, "Product Link: %s\n", link)
	if deal.ComparedTo != "" {
		fmt.Fprintf(&b, "You save: %s compared to %s\n", crawler.KnownPrice(deal.Saving), deal.ComparedTo)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
