package crawler

import (
	"context"
	"time"

	"sjsage522/pricecompare/helpers"
	"sjsage522/pricecompare/logger"
	apperrors "sjsage522/pricecompare/pkg/errors"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// waitForTimeout bounds how long a browser waits for a store's result selector
const waitForTimeout = 10 * time.Second

// ChromeFetcher renders search pages in Chrome through the DevTools protocol.
// With RemoteURL set it attaches to a running browser instead of launching one.
type ChromeFetcher struct {
	Timeout   time.Duration
	Headless  bool
	RemoteURL string
}

// NewChromeFetcher creates a new chromedp fetcher
func NewChromeFetcher(timeout time.Duration, headless bool, remoteURL string) *ChromeFetcher {
	return &ChromeFetcher{
		Timeout:   timeout,
		Headless:  headless,
		RemoteURL: remoteURL,
	}
}

// Mode returns FetchModeChrome
func (f *ChromeFetcher) Mode() FetchMode {
	return FetchModeChrome
}

// allocator creates the browser allocator for one fetch
func (f *ChromeFetcher) allocator(ctx context.Context) (context.Context, context.CancelFunc) {
	if f.RemoteURL != "" {
		return chromedp.NewRemoteAllocator(ctx, f.RemoteURL)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", f.Headless),
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1200, 800),
		chromedp.UserAgent(helpers.RandomUserAgent()),
	)
	return chromedp.NewExecAllocator(ctx, opts...)
}

// Fetch opens the search page in a fresh browser session and returns its outer HTML
func (f *ChromeFetcher) Fetch(ctx context.Context, store StoreConfig, query string) (string, error) {
	name := string(store.Store)

	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	allocCtx, cancel := f.allocator(ctx)
	defer cancel()

	taskCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	headers := network.Headers{
		"Accept-Language": "en-US,en;q=0.9",
	}

	err := chromedp.Run(taskCtx,
		network.Enable(),
		network.SetExtraHTTPHeaders(headers),
		chromedp.Navigate(store.BuildSearchURL(query)),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return "", apperrors.NewBrowser(name, "chromedp navigation", err)
	}

	if store.Selectors.WaitFor != "" {
		waitCtx, cancel := context.WithTimeout(taskCtx, waitForTimeout)
		if err := chromedp.Run(waitCtx, chromedp.WaitReady(store.Selectors.WaitFor, chromedp.ByQuery)); err != nil {
			logger.ForStore(name).Debug().
				Err(err).
				Str("selector", store.Selectors.WaitFor).
				Msg("Results selector did not appear, capturing page anyway")
		}
		cancel()
	}

	var htmlContent string
	if err := chromedp.Run(taskCtx, chromedp.OuterHTML("html", &htmlContent, chromedp.ByQuery)); err != nil {
		return "", apperrors.NewBrowser(name, "chromedp capture", err)
	}

	return htmlContent, nil
}
