// Package pricing fetches arecanut market prices from the configured
// market source and keeps the stored price history fresh, one row per day.
package pricing

import (
	"context"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/adikemitra/adike-go/internal/conf"
	"github.com/adikemitra/adike-go/internal/errors"
)

// PriceQuote is one scraped market snapshot.
type PriceQuote struct {
	RedPrice   float64 `json:"red_arecanut_price"`
	WhitePrice float64 `json:"white_arecanut_price"`
	Source     string  `json:"source"`
	Grade      string  `json:"grade"`
}

// Provider fetches the current market quote.
type Provider interface {
	Fetch(ctx context.Context) (*PriceQuote, error)
}

// ScrapeProvider pulls quotes off the market listing page. Rows are
// matched by commodity name, prices by the first number in the row's
// price cell.
type ScrapeProvider struct {
	URL    string
	Source string
	Grade  string
	Client *http.Client
}

// NewScrapeProvider builds a provider against the configured source.
func NewScrapeProvider(settings *conf.Settings) *ScrapeProvider {
	return &ScrapeProvider{
		URL:    settings.Pricing.SourceURL,
		Source: settings.Pricing.SourceName,
		Grade:  settings.Pricing.Grade,
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

var priceRe = regexp.MustCompile(`[\d,]+(?:\.\d+)?`)

// Fetch downloads and parses the market page. Both the red and white
// quote must be found for the result to count.
func (p *ScrapeProvider) Fetch(ctx context.Context) (*PriceQuote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, http.NoBody)
	if err != nil {
		return nil, errors.New(err).
			Component("pricing").
			Category(errors.CategoryNetwork).
			Context("url", p.URL).
			Build()
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; adike-go/1.0)")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, errors.New(err).
			Component("pricing").
			Category(errors.CategoryNetwork).
			Context("url", p.URL).
			Build()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("market source returned status %d", resp.StatusCode).
			Component("pricing").
			Category(errors.CategoryScrape).
			Context("url", p.URL).
			Build()
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errors.New(err).
			Component("pricing").
			Category(errors.CategoryScrape).
			Build()
	}

	quote := &PriceQuote{Source: p.Source, Grade: p.Grade}
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		label := strings.ToLower(row.Find("td").First().Text())
		if !strings.Contains(label, "arecanut") && !strings.Contains(label, "areca nut") {
			return
		}
		price, ok := parsePrice(row.Find("td").Eq(1).Text())
		if !ok {
			return
		}
		switch {
		case strings.Contains(label, "white"):
			quote.WhitePrice = price
		case strings.Contains(label, "red"):
			quote.RedPrice = price
		}
	})

	if quote.RedPrice <= 0 || quote.WhitePrice <= 0 {
		return nil, errors.Newf("market page did not contain arecanut quotes").
			Component("pricing").
			Category(errors.CategoryScrape).
			Context("url", p.URL).
			Build()
	}

	return quote, nil
}

func parsePrice(text string) (float64, bool) {
	m := priceRe.FindString(text)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// FallbackQuote returns the static quote used when scraping fails.
func FallbackQuote(settings *conf.Settings) *PriceQuote {
	return &PriceQuote{
		RedPrice:   settings.Pricing.Fallback.Red,
		WhitePrice: settings.Pricing.Fallback.White,
		Source:     "fallback - scraping failed",
		Grade:      settings.Pricing.Grade,
	}
}
