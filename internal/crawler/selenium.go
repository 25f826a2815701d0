package crawler

import (
	"context"
	"fmt"
	"time"

	"sjsage522/pricecompare/helpers"
	"sjsage522/pricecompare/logger"
	apperrors "sjsage522/pricecompare/pkg/errors"

	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
)

// SeleniumFetcher renders search pages through a remote WebDriver endpoint
type SeleniumFetcher struct {
	RemoteURL string
	Timeout   time.Duration
	Headless  bool
}

// NewSeleniumFetcher creates a new Selenium fetcher
func NewSeleniumFetcher(remoteURL string, timeout time.Duration, headless bool) *SeleniumFetcher {
	return &SeleniumFetcher{
		RemoteURL: remoteURL,
		Timeout:   timeout,
		Headless:  headless,
	}
}

// Mode returns FetchModeSelenium
func (f *SeleniumFetcher) Mode() FetchMode {
	return FetchModeSelenium
}

// capabilities builds the Chrome capabilities for one session
func (f *SeleniumFetcher) capabilities() selenium.Capabilities {
	args := []string{
		"--no-sandbox",
		"--disable-dev-shm-usage",
		"--window-size=1200,800",
		fmt.Sprintf("--user-agent=%s", helpers.RandomUserAgent()),
	}
	if f.Headless {
		args = append(args, "--headless=new")
	}

	caps := selenium.Capabilities{"browserName": "chrome"}
	caps.AddChrome(chrome.Capabilities{Args: args})
	return caps
}

// Fetch opens the search page in a fresh WebDriver session and returns the page source
func (f *SeleniumFetcher) Fetch(ctx context.Context, store StoreConfig, query string) (string, error) {
	name := string(store.Store)

	if err := ctx.Err(); err != nil {
		return "", err
	}

	driver, err := selenium.NewRemote(f.capabilities(), f.RemoteURL)
	if err != nil {
		return "", apperrors.NewBrowser(name, "create WebDriver session", err)
	}
	defer driver.Quit()

	if f.Timeout > 0 {
		if err := driver.SetPageLoadTimeout(f.Timeout); err != nil {
			return "", apperrors.NewBrowser(name, "set page load timeout", err)
		}
	}

	if err := driver.Get(store.BuildSearchURL(query)); err != nil {
		return "", apperrors.NewBrowser(name, "navigate", err)
	}

	if selector := store.Selectors.WaitFor; selector != "" {
		err := driver.WaitWithTimeout(func(wd selenium.WebDriver) (bool, error) {
			_, err := wd.FindElement(selenium.ByCSSSelector, selector)
			return err == nil, nil
		}, waitForTimeout)
		if err != nil {
			logger.ForStore(name).Debug().
				Err(err).
				Str("selector", selector).
				Msg("Results selector did not appear, capturing page anyway")
		}
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	html, err := driver.PageSource()
	if err != nil {
		return "", apperrors.NewBrowser(name, "page source", err)
	}
	return html, nil
}
