package presenter

import (
	"bytes"
	"testing"

	"sjsage522/pricecompare/internal/crawler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func priced(store crawler.Store, price float64) crawler.Listing {
	l := crawler.NewListing(store)
	l.Title = "Cotton Kurti"
	l.Price = crawler.KnownPrice(price)
	l.URL = "https://" + string(store) + ".example/kurti"
	return l
}

func TestBestDeal(t *testing.T) {
	deal := BestDeal(sampleListings())
	require.NotNil(t, deal)
	assert.Equal(t, crawler.StoreFlipkart, deal.Store)
	assert.Equal(t, crawler.KnownPrice(59900), deal.Price)
	assert.Equal(t, "https://flipkart.example/iphone15", deal.URL)
	assert.Equal(t, crawler.StoreAmazon, deal.ComparedTo)
	assert.Equal(t, 20099.0, deal.Saving)
}

func TestBestDealTieKeepsStoreOrder(t *testing.T) {
	listings := []crawler.Listing{
		crawler.NewListing(crawler.StoreAmazon),
		priced(crawler.StoreFlipkart, 499),
		priced(crawler.StoreMyntra, 899),
		priced(crawler.StoreMeesho, 499),
	}

	deal := BestDeal(listings)
	require.NotNil(t, deal)
	assert.Equal(t, crawler.StoreFlipkart, deal.Store)
	assert.Equal(t, crawler.StoreMyntra, deal.ComparedTo)
	assert.Equal(t, 400.0, deal.Saving)
}

func TestBestDealSinglePrice(t *testing.T) {
	listings := []crawler.Listing{crawler.NewListing(crawler.StoreAmazon), priced(crawler.StoreMeesho, 450)}

	deal := BestDeal(listings)
	require.NotNil(t, deal)
	assert.Equal(t, crawler.StoreMeesho, deal.Store)
	assert.Empty(t, deal.ComparedTo)
	assert.Zero(t, deal.Saving)
}

func TestBestDealWithoutPrices(t *testing.T) {
	assert.Nil(t, BestDeal(nil))
	assert.Nil(t, BestDeal([]crawler.Listing{crawler.NewListing(crawler.StoreAmazon), crawler.NewListing(crawler.StoreMyntra)}))
}

func TestRenderBestDeal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderBestDeal(&buf, BestDeal(sampleListings())))

	assert.Equal(t, "\nBEST DEAL FOUND!\n"+
		"Flipkart - ₹59900\n"+
		"Product Link: https://flipkart.example/iphone15\n"+
		"You save: ₹20099 compared to Amazon\n", buf.String())
}

func TestRenderBestDealWithoutPrices(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderBestDeal(&buf, nil))
	assert.Empty(t, buf.String())

	single := BestDeal([]crawler.Listing{priced(crawler.StoreMeesho, 450)})
	require.NoError(t, RenderBestDeal(&buf, single))
	assert.NotContains(t, buf.String(), "You save")
}
