// Package forecast implements the price forecast command.
package forecast

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/adikemitra/adike-go/internal/conf"
	"github.com/adikemitra/adike-go/internal/datastore"
	pricefc "github.com/adikemitra/adike-go/internal/forecast"
)

// Command creates the forecast command.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Print a 15 day arecanut price forecast",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForecast(settings)
		},
	}
	return cmd
}

func runForecast(settings *conf.Settings) error {
	ds := datastore.New(settings)
	if ds == nil {
		return fmt.Errorf("no database output enabled in configuration")
	}
	if err := ds.Open(); err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer ds.Close()

	history, err := ds.PricesSince(ds.Now().AddDate(0, 0, -30))
	if err != nil {
		return fmt.Errorf("failed to read price history: %w", err)
	}
	if len(history) == 0 {
		return fmt.Errorf("no price history available, run the server once to seed prices")
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	forecaster := pricefc.New(settings, rng)
	defer forecaster.Delete()

	predictions := forecaster.Forecast(history, ds.Now())
	if len(predictions) == 0 {
		return fmt.Errorf("forecast produced no predictions")
	}

	method := "trend"
	if forecaster.HasModel() {
		method = "model"
	}
	fmt.Printf("Price forecast (%s) based on %d days of history:\n\n", method, len(history))
	fmt.Printf("%-12s %10s %10s\n", "Date", "Red (₹)", "White (₹)")
	for _, p := range predictions {
		fmt.Printf("%-12s %10.2f %10.2f\n", p.Date.Format("2006-01-02"), p.Red, p.White)
	}
	return nil
}
