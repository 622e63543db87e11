package pricing

import (
	"context"
	"math/rand"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/adikemitra/adike-go/internal/datastore"
	"github.com/adikemitra/adike-go/internal/errors"
	"github.com/adikemitra/adike-go/internal/observability/metrics"
)

// fakeProvider returns a canned quote, or fails when quote is nil.
type fakeProvider struct {
	quote *PriceQuote
	calls int
}

func (f *fakeProvider) Fetch(ctx context.Context) (*PriceQuote, error) {
	f.calls++
	if f.quote == nil {
		return nil, errors.NewStd("scrape failed")
	}
	return f.quote, nil
}

func newTestStore(t *testing.T) datastore.Interface {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	require.NoError(t, db.AutoMigrate(&datastore.MarketPrice{}))
	return &datastore.SQLiteStore{DataStore: datastore.DataStore{DB: db}}
}

func newTestService(t *testing.T, provider Provider) (*Service, datastore.Interface) {
	t.Helper()
	ds := newTestStore(t)
	settings := testSettings()
	settings.Pricing.SeedHistoryDays = 30
	settings.Pricing.CacheTTLMinutes = 30
	return NewService(settings, ds, provider, rand.New(rand.NewSource(1))), ds
}

func TestRefreshCreatesThenUpdates(t *testing.T) {
	provider := &fakeProvider{quote: &PriceQuote{RedPrice: 150, WhitePrice: 160, Source: "CAMPCO Mangalore", Grade: "Grade A"}}
	svc, ds := newTestService(t, provider)

	result := svc.Refresh(context.Background())
	require.True(t, result.Success)
	assert.Equal(t, datastore.PriceActionCreated, result.Action)
	assert.Equal(t, "Prices created successfully", result.Message)

	result = svc.Refresh(context.Background())
	require.True(t, result.Success)
	assert.Equal(t, datastore.PriceActionUpdated, result.Action)

	count, err := ds.CountPrices()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRefreshFallsBackWhenScrapeFails(t *testing.T) {
	svc, ds := newTestService(t, &fakeProvider{})

	result := svc.Refresh(context.Background())
	require.True(t, result.Success)
	assert.Equal(t, "fallback - scraping failed", result.Data.Source)
	assert.InDelta(t, 145, result.Data.RedPrice, 0.001)
	assert.InDelta(t, 155, result.Data.WhitePrice, 0.001)

	latest, err := ds.LatestPrice()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.InDelta(t, 145, latest.RedPrice, 0.001)
}

func TestRefreshRecordsMetrics(t *testing.T) {
	svc, _ := newTestService(t, &fakeProvider{})

	m, err := metrics.NewPricingMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	svc.SetMetrics(m)

	result := svc.Refresh(context.Background())
	require.True(t, result.Success)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.ScrapeFallbacks))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RefreshTotal.WithLabelValues(datastore.PriceActionCreated)))
	assert.InDelta(t, 145, testutil.ToFloat64(m.LatestRedPrice), 0.001)
}

func TestQuoteIsCached(t *testing.T) {
	provider := &fakeProvider{quote: &PriceQuote{RedPrice: 150, WhitePrice: 160}}
	svc, _ := newTestService(t, provider)

	svc.Refresh(context.Background())
	svc.Refresh(context.Background())
	svc.Refresh(context.Background())

	assert.Equal(t, 1, provider.calls)
}

func TestSeedHistory(t *testing.T) {
	provider := &fakeProvider{quote: &PriceQuote{RedPrice: 150, WhitePrice: 160, Grade: "Grade A"}}
	svc, ds := newTestService(t, provider)

	require.NoError(t, svc.SeedHistory(context.Background()))

	count, err := ds.CountPrices()
	require.NoError(t, err)
	assert.Equal(t, int64(30), count)

	history, err := svc.History(60)
	require.NoError(t, err)
	require.Len(t, history, 30)

	for i := 1; i < len(history); i++ {
		assert.True(t, history[i].Date.After(history[i-1].Date), "history must be ordered by date")
	}
	for _, p := range history {
		assert.GreaterOrEqual(t, p.RedPrice, 150*0.95)
		assert.LessOrEqual(t, p.RedPrice, 150*1.05)
	}
}

func TestSeedHistorySkipsNonEmptyTable(t *testing.T) {
	provider := &fakeProvider{quote: &PriceQuote{RedPrice: 150, WhitePrice: 160}}
	svc, ds := newTestService(t, provider)

	require.NoError(t, ds.InsertPrice(&datastore.MarketPrice{RedPrice: 100, WhitePrice: 110, Date: ds.Now()}))
	require.NoError(t, svc.SeedHistory(context.Background()))

	count, err := ds.CountPrices()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestEnsureFreshOnlyRefreshesStaleData(t *testing.T) {
	provider := &fakeProvider{quote: &PriceQuote{RedPrice: 150, WhitePrice: 160}}
	svc, ds := newTestService(t, provider)

	// Empty table, first call refreshes.
	svc.EnsureFresh(context.Background())
	count, err := ds.CountPrices()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Today's row exists, second call is a no-op.
	before, err := ds.LatestPrice()
	require.NoError(t, err)
	svc.EnsureFresh(context.Background())
	after, err := ds.LatestPrice()
	require.NoError(t, err)
	assert.Equal(t, before.Date, after.Date)
}
