// internal/httpcontroller/server.go
package httpcontroller

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/labstack/echo/v4"

	"github.com/adikemitra/adike-go/internal/conf"
	"github.com/adikemitra/adike-go/internal/datastore"
	"github.com/adikemitra/adike-go/internal/forecast"
	"github.com/adikemitra/adike-go/internal/httpcontroller/handlers"
	"github.com/adikemitra/adike-go/internal/irrigation"
	"github.com/adikemitra/adike-go/internal/logging"
	"github.com/adikemitra/adike-go/internal/observability"
	"github.com/adikemitra/adike-go/internal/pricing"
	"github.com/adikemitra/adike-go/internal/security"
	"github.com/adikemitra/adike-go/internal/weather"
)

// Server encapsulates the Echo server and related configuration.
type Server struct {
	Echo     *echo.Echo
	DS       datastore.Interface
	Settings *conf.Settings
	Handlers *handlers.Handlers
	Sessions *security.SessionManager
	Metrics  *observability.Metrics

	webLogger      *slog.Logger
	webLoggerClose func() error
}

// New initializes a new HTTP server with the given services.
func New(
	settings *conf.Settings,
	ds datastore.Interface,
	diagnoser handlers.Diagnoser,
	forecaster *forecast.Forecaster,
	pricingService *pricing.Service,
	metrics *observability.Metrics,
	rng *rand.Rand,
) *Server {
	sessions := security.NewSessionManager(settings)
	irrigationService := irrigation.NewService(settings, ds)

	var weatherProvider weather.Provider
	switch settings.Weather.Provider {
	case "", "simulated":
		weatherProvider = weather.NewSimulatedProvider(rng)
	default:
		logging.Warn("unknown weather provider, using simulated", "provider", settings.Weather.Provider)
		weatherProvider = weather.NewSimulatedProvider(rng)
	}

	s := &Server{
		Echo:     echo.New(),
		DS:       ds,
		Settings: settings,
		Sessions: sessions,
		Metrics:  metrics,
		Handlers: handlers.New(
			settings, ds, sessions,
			diagnoser, forecaster, pricingService, irrigationService,
			weatherProvider, metrics, rng,
		),
	}

	s.Echo.IPExtractor = echo.ExtractIPFromXFFHeader()
	s.initializeServer()
	return s
}

// initializeServer configures and initializes the server.
func (s *Server) initializeServer() {
	s.Echo.HideBanner = true
	s.initLogger()
	s.configureMiddleware()
	s.initRoutes()
}

// initLogger sets up the web request log.
func (s *Server) initLogger() {
	logger, closer, err := logging.NewFileLogger(&s.Settings.WebServer.Log, "web", slog.LevelInfo)
	if err != nil {
		logging.ForService("web").Warn("failed to initialize web log file, logging to stdout", "error", err)
		s.webLogger = logging.ForService("web")
		return
	}
	s.webLogger = logger
	s.webLoggerClose = closer
}

// Start begins listening and serving HTTP requests.
func (s *Server) Start() {
	errChan := make(chan error)

	go func() {
		if err := s.Echo.Start(":" + s.Settings.WebServer.Port); err != nil {
			errChan <- err
		}
	}()

	go func() {
		err := <-errChan
		s.webLogger.Error("web server error", "error", err)
	}()

	fmt.Printf("HTTP server started on port %s\n", s.Settings.WebServer.Port)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.Echo.Shutdown(ctx)
	if s.webLoggerClose != nil {
		_ = s.webLoggerClose()
	}
	return err
}
