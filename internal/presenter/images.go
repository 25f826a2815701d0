package presenter

import (
	"context"
	"strings"
	"time"

	"sjsage522/pricecompare/helpers"
)

// ImageChecker downloads a thumbnail and reports its size in bytes
type ImageChecker interface {
	Check(ctx context.Context, url string) (int, error)
}

// HTTPImageChecker fetches thumbnails over HTTP
type HTTPImageChecker struct {
	Timeout time.Duration
}

// NewHTTPImageChecker creates a checker bounded by timeout per image
func NewHTTPImageChecker(timeout time.Duration) *HTTPImageChecker {
	return &HTTPImageChecker{Timeout: timeout}
}

// Check downloads url and returns the number of bytes received
func (c *HTTPImageChecker) Check(ctx context.Context, url string) (int, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	data, err := helpers.FetchSimply(ctx, url)
	if err != nil {
		return 0, err
	}
	return len(data), nil
}

// NormalizeImageURL returns a fetchable image URL. Inline data URIs and
// site-relative paths cannot be fetched; protocol-relative ones get https.
func NormalizeImageURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return "", false
	case strings.HasPrefix(raw, "data:"):
		return "", false
	case strings.HasPrefix(raw, "//"):
		return "https:" + raw, true
	case strings.HasPrefix(raw, "/"):
		return "", false
	case strings.HasPrefix(raw, "http://"), strings.HasPrefix(raw, "https://"):
		return raw, true
	default:
		return "", false
	}
}
