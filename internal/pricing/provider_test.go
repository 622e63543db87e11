package pricing

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adikemitra/adike-go/internal/conf"
)

const marketPage = `<html><body><table>
<tr><th>Commodity</th><th>Price (Rs/kg)</th></tr>
<tr><td>Arecanut (Red)</td><td>Rs 150</td></tr>
<tr><td>Arecanut (White)</td><td>Rs 160</td></tr>
<tr><td>Coconut</td><td>Rs 25</td></tr>
<tr><td>Banana</td><td>Rs 40</td></tr>
</table></body></html>`

func testSettings() *conf.Settings {
	s := &conf.Settings{}
	s.Pricing.SourceURL = "https://market.example.com/mangalore"
	s.Pricing.SourceName = "CAMPCO Mangalore"
	s.Pricing.Grade = "Grade A"
	s.Pricing.Fallback.Red = 145
	s.Pricing.Fallback.White = 155
	return s
}

func newMockProvider(t *testing.T) *ScrapeProvider {
	t.Helper()
	p := NewScrapeProvider(testSettings())
	httpmock.ActivateNonDefault(p.Client)
	t.Cleanup(httpmock.DeactivateAndReset)
	return p
}

func TestFetchParsesBothQuotes(t *testing.T) {
	p := newMockProvider(t)
	httpmock.RegisterResponder(http.MethodGet, p.URL,
		httpmock.NewStringResponder(http.StatusOK, marketPage))

	quote, err := p.Fetch(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 150, quote.RedPrice, 0.001)
	assert.InDelta(t, 160, quote.WhitePrice, 0.001)
	assert.Equal(t, "CAMPCO Mangalore", quote.Source)
	assert.Equal(t, "Grade A", quote.Grade)
}

func TestFetchMissingQuotes(t *testing.T) {
	p := newMockProvider(t)
	httpmock.RegisterResponder(http.MethodGet, p.URL,
		httpmock.NewStringResponder(http.StatusOK, "<html><body><p>maintenance</p></body></html>"))

	_, err := p.Fetch(context.Background())
	assert.Error(t, err)
}

func TestFetchServerError(t *testing.T) {
	p := newMockProvider(t)
	httpmock.RegisterResponder(http.MethodGet, p.URL,
		httpmock.NewStringResponder(http.StatusBadGateway, "bad gateway"))

	_, err := p.Fetch(context.Background())
	assert.Error(t, err)
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"Rs 150", 150, true},
		{"₹ 1,234.50 / quintal", 1234.50, true},
		{"560.25", 560.25, true},
		{"no price here", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := parsePrice(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if ok {
			assert.InDelta(t, tt.want, got, 0.001, tt.in)
		}
	}
}

func TestFallbackQuote(t *testing.T) {
	q := FallbackQuote(testSettings())
	assert.InDelta(t, 145, q.RedPrice, 0.001)
	assert.InDelta(t, 155, q.WhitePrice, 0.001)
	assert.Equal(t, "fallback - scraping failed", q.Source)
}
