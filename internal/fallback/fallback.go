// Package fallback holds the read-only sample listings used when a store
// yields nothing for a query.
package fallback

import (
	"fmt"
	"os"
	"strings"

	"sjsage522/pricecompare/internal/crawler"

	"gopkg.in/yaml.v3"
)

// Table maps a normalized query to a listing per store.
// A Table is never mutated after construction.
type Table struct {
	entries map[string]map[crawler.Store]crawler.Listing
}

// Normalize trims and lower-cases a query for lookup
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

func sample(store crawler.Store, title string, price float64, url string) crawler.Listing {
	l := crawler.NewListing(store)
	l.Title = title
	if price > 0 {
		l.Price = crawler.KnownPrice(price)
	}
	if url != "" {
		l.URL = url
	}
	return l
}

// Default returns the built-in sample table
func Default() *Table {
	return &Table{entries: map[string]map[crawler.Store]crawler.Listing{
		"iphone 15": {
			crawler.StoreAmazon:   sample(crawler.StoreAmazon, "Apple iPhone 15 (128GB)", 79999, "https://amazon.example/iphone15"),
			crawler.StoreFlipkart: sample(crawler.StoreFlipkart, "Apple iPhone 15 (128GB)", 59900, "https://flipkart.example/iphone15"),
			crawler.StoreMyntra:   sample(crawler.StoreMyntra, "Apple iPhone 15 - Not Sold", 0, ""),
			crawler.StoreMeesho:   sample(crawler.StoreMeesho, "Apple iPhone 15 - Not Sold", 0, ""),
		},
		"kurti": {
			crawler.StoreAmazon:   sample(crawler.StoreAmazon, "Kurti Cotton", 699, "https://amazon.example/kurti"),
			crawler.StoreFlipkart: sample(crawler.StoreFlipkart, "Veemora Kurti", 500, "https://flipkart.example/kurti"),
			crawler.StoreMyntra:   sample(crawler.StoreMyntra, "Women Kurti", 749, "https://myntra.example/kurti"),
			crawler.StoreMeesho:   sample(crawler.StoreMeesho, "Kurti - Meesho Seller", 450, "https://meesho.example/kurti"),
		},
	}}
}

// Lookup returns the sample listings for query, if any
func (t *Table) Lookup(query string) (map[crawler.Store]crawler.Listing, bool) {
	entry, ok := t.entries[Normalize(query)]
	if !ok {
		return nil, false
	}
	out := make(map[crawler.Store]crawler.Listing, len(entry))
	for store, listing := range entry {
		out[store] = listing
	}
	return out, true
}

// For returns the fallback listing for one store. Stores missing from a
// sample, and queries without a sample, get "<query> - <store>" as title.
func (t *Table) For(query string, store crawler.Store) crawler.Listing {
	if entry, ok := t.entries[Normalize(query)]; ok {
		if listing, ok := entry[store]; ok {
			return listing
		}
	}
	l := crawler.NewListing(store)
	l.Title = fmt.Sprintf("%s - %s", strings.TrimSpace(query), store)
	return l
}

// Queries returns the number of queries with samples
func (t *Table) Queries() int {
	return len(t.entries)
}

// fileEntry is one store sample in a fallback file
type fileEntry struct {
	Title string   `yaml:"title"`
	Price *float64 `yaml:"price"`
	URL   string   `yaml:"url"`
	Image string   `yaml:"image"`
}

// LoadFile reads a YAML table of the form
//
//	iphone 15:
//	  Amazon: {title: Apple iPhone 15, price: 79999, url: https://...}
//
// and returns the defaults with the file's queries layered over them.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fallback file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML fallback data over the defaults
func Parse(data []byte) (*Table, error) {
	var raw map[string]map[string]fileEntry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode fallback file: %w", err)
	}

	table := Default()
	for query, stores := range raw {
		entry := make(map[crawler.Store]crawler.Listing, len(stores))
		for name, e := range stores {
			store, err := crawler.ParseStore(name)
			if err != nil {
				return nil, fmt.Errorf("fallback query %q: %w", query, err)
			}
			l := crawler.NewListing(store)
			if strings.TrimSpace(e.Title) != "" {
				l.Title = e.Title
			}
			if e.Price != nil {
				if *e.Price < 0 {
					return nil, fmt.Errorf("fallback query %q store %s: negative price", query, store)
				}
				l.Price = crawler.KnownPrice(*e.Price)
			}
			if e.URL != "" {
				l.URL = e.URL
			}
			if e.Image != "" {
				l.Image = e.Image
			}
			entry[store] = l
		}
		table.entries[Normalize(query)] = entry
	}
	return table, nil
}
