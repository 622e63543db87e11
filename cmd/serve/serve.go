// Package serve implements the web server command.
package serve

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/adikemitra/adike-go/internal/classifier"
	"github.com/adikemitra/adike-go/internal/conf"
	"github.com/adikemitra/adike-go/internal/datastore"
	"github.com/adikemitra/adike-go/internal/forecast"
	"github.com/adikemitra/adike-go/internal/httpcontroller"
	"github.com/adikemitra/adike-go/internal/httpcontroller/handlers"
	"github.com/adikemitra/adike-go/internal/logging"
	"github.com/adikemitra/adike-go/internal/observability"
	"github.com/adikemitra/adike-go/internal/pricing"
)

// Command creates the serve command.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the farm management web server",
		Long:  "Start the web interface, daily price refresh and metrics endpoint.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(settings)
		},
	}

	if err := setupFlags(cmd, settings); err != nil {
		fmt.Printf("error setting up flags: %v\n", err)
		os.Exit(1)
	}
	return cmd
}

func setupFlags(cmd *cobra.Command, settings *conf.Settings) error {
	cmd.Flags().StringVar(&settings.WebServer.Port, "port", viper.GetString("webserver.port"), "Port to listen on")
	cmd.Flags().StringVar(&settings.Pricing.SourceURL, "pricesource", viper.GetString("pricing.sourceurl"), "Market price source URL")
	cmd.Flags().StringVar(&settings.Pricing.RefreshSchedule, "priceschedule", viper.GetString("pricing.refreshschedule"), "Cron schedule for the daily price refresh")

	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("error binding flags: %v", err)
	}
	return nil
}

func runServer(settings *conf.Settings) error {
	logger := logging.ForService("serve")

	ds := datastore.New(settings)
	if ds == nil {
		return fmt.Errorf("no database output enabled in configuration")
	}
	if err := ds.Open(); err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer ds.Close()

	if err := ds.SeedDefaultSettings(handlers.DefaultSettings()); err != nil {
		logger.Warn("failed to seed default settings", "error", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	diagnoser, err := classifier.New(settings)
	if err != nil {
		return fmt.Errorf("failed to initialize disease models: %w", err)
	}
	defer diagnoser.Delete()

	forecaster := forecast.New(settings, rng)
	defer forecaster.Delete()

	priceService := pricing.NewService(settings, ds, pricing.NewScrapeProvider(settings), rng)
	if err := priceService.SeedHistory(context.Background()); err != nil {
		logger.Warn("failed to seed price history", "error", err)
	}

	metrics, err := observability.NewMetrics()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	priceService.SetMetrics(metrics.Pricing)

	// Daily price refresh.
	scheduler := cron.New(cron.WithLocation(settings.TimeLocation()))
	schedule := settings.Pricing.RefreshSchedule
	if schedule == "" {
		schedule = "0 6 * * *"
	}
	if _, err := scheduler.AddFunc(schedule, func() {
		result := priceService.Refresh(context.Background())
		logger.Info("scheduled price refresh", "success", result.Success, "action", result.Action)
	}); err != nil {
		return fmt.Errorf("invalid price refresh schedule %q: %w", schedule, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	server := httpcontroller.New(settings, ds, diagnoser, forecaster, priceService, metrics, rng)
	server.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
