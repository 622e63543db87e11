package pricing

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/adikemitra/adike-go/internal/conf"
	"github.com/adikemitra/adike-go/internal/datastore"
	"github.com/adikemitra/adike-go/internal/logging"
	"github.com/adikemitra/adike-go/internal/observability/metrics"
)

const quoteCacheKey = "latest_quote"

// RefreshResult reports the outcome of a price refresh.
type RefreshResult struct {
	Success bool        `json:"success"`
	Action  string      `json:"action,omitempty"`
	Data    *PriceQuote `json:"data,omitempty"`
	Message string      `json:"message"`
}

// Service keeps the market price table current. Scraped quotes are
// memoized for the configured TTL so the dashboard does not hammer the
// market site.
type Service struct {
	ds       datastore.Interface
	provider Provider
	settings *conf.Settings
	cache    *gocache.Cache
	rng      *rand.Rand
	logger   *slog.Logger
	metrics  *metrics.PricingMetrics
}

// SetMetrics attaches pricing metrics to the service. Safe to skip in
// tests and tools that run without an observability stack.
func (s *Service) SetMetrics(m *metrics.PricingMetrics) {
	s.metrics = m
}

// NewService wires a price service over the given store and provider.
func NewService(settings *conf.Settings, ds datastore.Interface, provider Provider, rng *rand.Rand) *Service {
	ttl := time.Duration(settings.Pricing.CacheTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Service{
		ds:       ds,
		provider: provider,
		settings: settings,
		cache:    gocache.New(ttl, 2*ttl),
		rng:      rng,
		logger:   logging.ForService("pricing"),
	}
}

// fetchQuote returns the current market quote, from cache when fresh,
// falling back to the configured static prices when scraping fails.
func (s *Service) fetchQuote(ctx context.Context) *PriceQuote {
	if cached, found := s.cache.Get(quoteCacheKey); found {
		return cached.(*PriceQuote)
	}

	quote, err := s.provider.Fetch(ctx)
	if err != nil {
		s.logger.Warn("price scrape failed, using fallback prices", "error", err)
		quote = FallbackQuote(s.settings)
		if s.metrics != nil {
			s.metrics.RecordFallback()
		}
	}

	s.cache.Set(quoteCacheKey, quote, gocache.DefaultExpiration)
	return quote
}

// Refresh fetches the current quote and writes it into today's price
// row, creating or updating as needed. Never returns an error to the
// caller; failures are reported in the result.
func (s *Service) Refresh(ctx context.Context) *RefreshResult {
	start := time.Now()
	quote := s.fetchQuote(ctx)

	action, err := s.ds.UpsertDailyPrice(&datastore.MarketPrice{
		RedPrice:   quote.RedPrice,
		WhitePrice: quote.WhitePrice,
		Source:     s.settings.Pricing.SourceName,
		Grade:      quote.Grade,
	})
	if err != nil {
		s.logger.Error("failed to store market price", "error", err)
		return &RefreshResult{
			Success: false,
			Message: fmt.Sprintf("Failed to update prices: %v", err),
		}
	}

	s.logger.Info("market prices refreshed",
		"action", action,
		"red", quote.RedPrice,
		"white", quote.WhitePrice,
		"source", quote.Source)

	if s.metrics != nil {
		s.metrics.RecordRefresh(action, time.Since(start).Seconds(), quote.RedPrice)
	}

	return &RefreshResult{
		Success: true,
		Action:  action,
		Data:    quote,
		Message: fmt.Sprintf("Prices %s successfully", action),
	}
}

// EnsureFresh refreshes only when today's row is missing. Called on
// page loads so a user always sees a quote for the current day.
func (s *Service) EnsureFresh(ctx context.Context) {
	latest, err := s.ds.LatestPrice()
	if err != nil {
		s.logger.Error("failed to read latest price", "error", err)
		return
	}
	if latest != nil && !latest.Date.Before(s.ds.StartOfDay(s.ds.Now())) {
		return
	}
	s.Refresh(ctx)
}

// SeedHistory backfills the price table with the configured number of
// days of history, each day varied within ±5% of the current quote.
// No-op when any prices already exist.
func (s *Service) SeedHistory(ctx context.Context) error {
	count, err := s.ds.CountPrices()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	days := s.settings.Pricing.SeedHistoryDays
	if days <= 0 {
		days = 30
	}
	quote := s.fetchQuote(ctx)
	now := s.ds.Now()

	s.logger.Info("seeding market price history", "days", days, "source", quote.Source)

	for i := days; i > 0; i-- {
		variation := 0.95 + s.rng.Float64()*0.10
		entry := &datastore.MarketPrice{
			RedPrice:   round2(quote.RedPrice * variation),
			WhitePrice: round2(quote.WhitePrice * variation),
			Source:     s.settings.Pricing.SourceName,
			Grade:      quote.Grade,
			Date:       now.AddDate(0, 0, -i),
		}
		if err := s.ds.InsertPrice(entry); err != nil {
			return err
		}
	}
	return nil
}

// History returns the stored prices for the trailing number of days,
// oldest first.
func (s *Service) History(days int) ([]datastore.MarketPrice, error) {
	since := s.ds.Now().AddDate(0, 0, -days)
	return s.ds.PricesSince(since)
}

// Latest returns the most recent stored price, or nil when the table
// is empty.
func (s *Service) Latest() (*datastore.MarketPrice, error) {
	return s.ds.LatestPrice()
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
