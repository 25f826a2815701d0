package presenter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"sjsage522/pricecompare/internal/crawler"
	"sjsage522/pricecompare/logger"
)

const (
	barWidth    = 40
	detailsRule = "---------------- PRODUCT DETAILS ----------------"
	noPriceData = "No price data available"
	noImage     = "[no image]"
	notProvided = "N/A"
)

// ChartPoint is one bar of the price chart
type ChartPoint struct {
	Store crawler.Store `json:"store"`
	Price float64       `json:"price"`
}

// Payload is the comparison returned at the service boundary
type Payload struct {
	Table    []crawler.Listing `json:"table"`
	Chart    []ChartPoint      `json:"chart"`
	BestDeal *Deal             `json:"best_deal"`
}

// ChartData returns the listings with a known price, in input order
func ChartData(listings []crawler.Listing) []ChartPoint {
	points := make([]ChartPoint, 0, len(listings))
	for _, l := range listings {
		if price, known := l.Price.Value(); known {
			points = append(points, ChartPoint{Store: l.Store, Price: price})
		}
	}
	return points
}

// NewPayload builds the table, chart and best deal for a comparison
func NewPayload(listings []crawler.Listing) Payload {
	table := make([]crawler.Listing, len(listings))
	copy(table, listings)
	return Payload{
		Table:    table,
		Chart:    ChartData(listings),
		BestDeal: BestDeal(listings),
	}
}

// Presenter renders comparisons for the terminal
type Presenter struct {
	out    io.Writer
	images ImageChecker
}

// New creates a presenter writing to out; images may be nil to skip image checks
func New(out io.Writer, images ImageChecker) *Presenter {
	return &Presenter{out: out, images: images}
}

// Present writes the chart, the best deal, then the per-store details
func (p *Presenter) Present(ctx context.Context, query string, listings []crawler.Listing) error {
	if err := RenderChart(p.out, query, listings); err != nil {
		return err
	}
	if err := RenderBestDeal(p.out, BestDeal(listings)); err != nil {
		return err
	}
	return p.RenderDetails(ctx, listings)
}

// RenderChart writes a horizontal bar chart of the known prices
func RenderChart(w io.Writer, query string, listings []crawler.Listing) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Price Comparison: %s\n\n", strings.TrimSpace(query))

	points := ChartData(listings)
	if len(points) == 0 {
		b.WriteString(noPriceData + "\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	var highest float64
	nameWidth := 0
	for _, pt := range points {
		if pt.Price > highest {
			highest = pt.Price
		}
		if n := len(pt.Store); n > nameWidth {
			nameWidth = n
		}
	}

	for _, pt := range points {
		length := 0
		if highest > 0 {
			length = int(pt.Price / highest * barWidth)
		}
		if length == 0 && pt.Price > 0 {
			length = 1
		}
		fmt.Fprintf(&b, "%-*s |%s %s\n", nameWidth, pt.Store, strings.Repeat("█", length), crawler.KnownPrice(pt.Price))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderDetails lists every store with name, price, link and image status.
// Image problems only change the status line.
func (p *Presenter) RenderDetails(ctx context.Context, listings []crawler.Listing) error {
	var b strings.Builder
	b.WriteString("\n" + detailsRule + "\n")

	for _, l := range listings {
		link := l.URL
		if !l.HasURL() {
			link = notProvided
		}
		fmt.Fprintf(&b, "\n[%s]\n", l.Store)
		fmt.Fprintf(&b, "Name : %s\n", l.Title)
		fmt.Fprintf(&b, "Price: %s\n", l.Price)
		fmt.Fprintf(&b, "Link : %s\n", link)
		fmt.Fprintf(&b, "Image: %s\n", p.imageStatus(ctx, l))
	}

	_, err := io.WriteString(p.out, b.String())
	return err
}

// imageStatus checks the listing image and describes the outcome
func (p *Presenter) imageStatus(ctx context.Context, l crawler.Listing) string {
	if p.images == nil || !l.HasImage() {
		return noImage
	}

	url, ok := NormalizeImageURL(l.Image)
	if !ok {
		return noImage
	}

	size, err := p.images.Check(ctx, url)
	if err != nil {
		logger.ForStore(string(l.Store)).Debug().Err(err).Str("image", url).Msg("Thumbnail unavailable")
		return noImage
	}
	return fmt.Sprintf("%s (%.1f KB)", url, float64(size)/1024)
}
