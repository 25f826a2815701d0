package presenter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sjsage522/pricecompare/internal/crawler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubImages answers image checks from a fixed table
type stubImages struct {
	sizes map[string]int
	calls []string
}

func (s *stubImages) Check(ctx context.Context, url string) (int, error) {
	s.calls = append(s.calls, url)
	size, ok := s.sizes[url]
	if !ok {
		return 0, errors.New("404")
	}
	return size, nil
}

func sampleListings() []crawler.Listing {
	amazon := crawler.NewListing(crawler.StoreAmazon)
	amazon.Title = "Apple iPhone 15 (128GB)"
	amazon.Price = crawler.KnownPrice(79999)
	amazon.URL = "https://amazon.example/iphone15"
	amazon.Image = "//m.media-amazon.com/iphone15.jpg"

	flipkart := crawler.NewListing(crawler.StoreFlipkart)
	flipkart.Title = "Apple iPhone 15 (128GB)"
	flipkart.Price = crawler.KnownPrice(59900)
	flipkart.URL = "https://flipkart.example/iphone15"
	flipkart.Image = "https://rukminim2.flixcart.com/missing.jpeg"

	myntra := crawler.NewListing(crawler.StoreMyntra)
	myntra.Title = "Apple iPhone 15 - Not Sold"
	myntra.Image = "data:image/gif;base64,R0lGOD"

	meesho := crawler.NewListing(crawler.StoreMeesho)
	meesho.Title = "Apple iPhone 15 - Not Sold"

	return []crawler.Listing{amazon, flipkart, myntra, meesho}
}

func TestChartData(t *testing.T) {
	listings := sampleListings()
	chart := ChartData(listings)

	assert.Equal(t, []ChartPoint{
		{Store: crawler.StoreAmazon, Price: 79999},
		{Store: crawler.StoreFlipkart, Price: 59900},
	}, chart)
	assert.LessOrEqual(t, len(chart), len(listings))

	assert.Empty(t, ChartData(nil))
}

func TestNewPayloadJSON(t *testing.T) {
	payload := NewPayload(sampleListings())
	assert.Len(t, payload.Table, 4)
	assert.Len(t, payload.Chart, 2)

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	var decoded struct {
		Table    []map[string]interface{} `json:"table"`
		Chart    []map[string]interface{} `json:"chart"`
		BestDeal map[string]interface{}   `json:"best_deal"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Amazon", decoded.Table[0]["store"])
	assert.Equal(t, 79999.0, decoded.Table[0]["price"])
	assert.Nil(t, decoded.Table[2]["price"])
	assert.Equal(t, crawler.NotAvailable, decoded.Table[3]["url"])
	assert.Equal(t, "Flipkart", decoded.Chart[1]["store"])
	assert.Equal(t, 59900.0, decoded.Chart[1]["price"])
	assert.Equal(t, "Flipkart", decoded.BestDeal["store"])
	assert.Equal(t, "Amazon", decoded.BestDeal["compared_to"])
	assert.Equal(t, 20099.0, decoded.BestDeal["saving"])
}

func TestNewPayloadWithoutPricesHasNoBestDeal(t *testing.T) {
	payload := NewPayload([]crawler.Listing{crawler.NewListing(crawler.StoreAmazon)})
	assert.Nil(t, payload.BestDeal)

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"best_deal":null`)
}

func TestRenderChart(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderChart(&buf, " iphone 15 ", sampleListings()))

	out := buf.String()
	assert.Contains(t, out, "Price Comparison: iphone 15")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Price Comparison: iphone 15", lines[0])
	assert.True(t, strings.HasPrefix(lines[2], "Amazon   |"))
	assert.Contains(t, lines[2], strings.Repeat("█", barWidth)+" ₹79999")
	assert.True(t, strings.HasPrefix(lines[3], "Flipkart |"))
	assert.Contains(t, lines[3], "₹59900")
	assert.NotContains(t, out, "Myntra")
}

func TestRenderChartWithoutPrices(t *testing.T) {
	var buf bytes.Buffer
	listings := []crawler.Listing{crawler.NewListing(crawler.StoreAmazon), crawler.NewListing(crawler.StoreMeesho)}
	require.NoError(t, RenderChart(&buf, "tv", listings))
	assert.Contains(t, buf.String(), noPriceData)
}

func TestRenderDetails(t *testing.T) {
	images := &stubImages{sizes: map[string]int{"https://m.media-amazon.com/iphone15.jpg": 2048}}
	var buf bytes.Buffer
	p := New(&buf, images)

	require.NoError(t, p.RenderDetails(context.Background(), sampleListings()))
	out := buf.String()

	assert.Contains(t, out, detailsRule)
	for _, store := range crawler.Stores() {
		assert.Contains(t, out, "["+string(store)+"]")
	}
	assert.Contains(t, out, "Price: ₹79999")
	assert.Contains(t, out, "Price: Not Available")
	assert.Contains(t, out, "Link : N/A")
	assert.Contains(t, out, "Image: https://m.media-amazon.com/iphone15.jpg (2.0 KB)")
	assert.Equal(t, 3, strings.Count(out, "Image: "+noImage))

	// Data URIs and missing images are never fetched
	assert.Equal(t, []string{
		"https://m.media-amazon.com/iphone15.jpg",
		"https://rukminim2.flixcart.com/missing.jpeg",
	}, images.calls)
}

func TestPresentWithoutImageChecker(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, nil)

	require.NoError(t, p.Present(context.Background(), "iphone 15", sampleListings()))
	out := buf.String()
	assert.Less(t, strings.Index(out, "Price Comparison"), strings.Index(out, "BEST DEAL FOUND!"))
	assert.Less(t, strings.Index(out, "BEST DEAL FOUND!"), strings.Index(out, detailsRule))
	assert.Equal(t, 4, strings.Count(out, "Image: "+noImage))
}

func TestNormalizeImageURL(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"https://images.meesho.com/kurti.jpg", "https://images.meesho.com/kurti.jpg", true},
		{"//assets.myntassets.com/kurti.jpg", "https://assets.myntassets.com/kurti.jpg", true},
		{"/images/kurti.jpg", "", false},
		{"data:image/png;base64,iVBOR", "", false},
		{crawler.NotAvailable, "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := NormalizeImageURL(tt.raw)
		assert.Equal(t, tt.ok, ok, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func TestHTTPImageChecker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/thumb.jpg" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write(make([]byte, 1536))
	}))
	defer server.Close()

	checker := NewHTTPImageChecker(2 * time.Second)

	size, err := checker.Check(context.Background(), server.URL+"/thumb.jpg")
	assert.NoError(t, err)
	assert.Equal(t, 1536, size)

	_, err = checker.Check(context.Background(), server.URL+"/gone.jpg")
	assert.Error(t, err)
}
