// Package handlers implements the HTTP request handlers for the web
// interface.
package handlers

import (
	"log/slog"
	"math/rand"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/adikemitra/adike-go/internal/classifier"
	"github.com/adikemitra/adike-go/internal/conf"
	"github.com/adikemitra/adike-go/internal/datastore"
	"github.com/adikemitra/adike-go/internal/forecast"
	"github.com/adikemitra/adike-go/internal/irrigation"
	"github.com/adikemitra/adike-go/internal/logging"
	"github.com/adikemitra/adike-go/internal/observability"
	"github.com/adikemitra/adike-go/internal/pricing"
	"github.com/adikemitra/adike-go/internal/security"
	"github.com/adikemitra/adike-go/internal/weather"
)

// Diagnoser runs the disease models against a preprocessed image.
type Diagnoser interface {
	Diagnose(sample []float32, kind classifier.DiseaseKind) (*classifier.Diagnosis, error)
}

// Handlers holds the shared services used by all HTTP handlers.
type Handlers struct {
	DS         datastore.Interface
	Settings   *conf.Settings
	Sessions   *security.SessionManager
	Classifier Diagnoser
	Forecaster *forecast.Forecaster
	Pricing    *pricing.Service
	Irrigation *irrigation.Service
	Weather    weather.Provider
	Metrics    *observability.Metrics

	rng    *rand.Rand
	logger *slog.Logger
}

// New creates the handler set.
func New(
	settings *conf.Settings,
	ds datastore.Interface,
	sessions *security.SessionManager,
	diagnoser Diagnoser,
	forecaster *forecast.Forecaster,
	pricingService *pricing.Service,
	irrigationService *irrigation.Service,
	weatherProvider weather.Provider,
	metrics *observability.Metrics,
	rng *rand.Rand,
) *Handlers {
	return &Handlers{
		DS:         ds,
		Settings:   settings,
		Sessions:   sessions,
		Classifier: diagnoser,
		Forecaster: forecaster,
		Pricing:    pricingService,
		Irrigation: irrigationService,
		Weather:    weatherProvider,
		Metrics:    metrics,
		rng:        rng,
		logger:     logging.ForService("web"),
	}
}

// DefaultSettings is the seed set for the admin console. Reset restores
// a key to its value here.
func DefaultSettings() []datastore.SystemSetting {
	return []datastore.SystemSetting{
		{SettingKey: "site_name", SettingValue: "Adike Mitra", SettingType: "text", Category: "general", Description: "Application name"},
		{SettingKey: "site_tagline", SettingValue: "Smart Arecanut Farm Management", SettingType: "text", Category: "general", Description: "Site tagline"},
		{SettingKey: "max_upload_size", SettingValue: "16", SettingType: "number", Category: "general", Description: "Maximum file upload size in MB"},
		{SettingKey: "detection_confidence_threshold", SettingValue: "0.75", SettingType: "number", Category: "detection", Description: "Minimum confidence for disease detection"},
		{SettingKey: "enable_notifications", SettingValue: "true", SettingType: "boolean", Category: "notifications", Description: "Enable system notifications"},
		{SettingKey: "irrigation_auto_mode", SettingValue: "true", SettingType: "boolean", Category: "irrigation", Description: "Enable automatic irrigation"},
		{SettingKey: "soil_moisture_threshold", SettingValue: "30", SettingType: "number", Category: "irrigation", Description: "Soil moisture threshold for irrigation (%)"},
		{SettingKey: "maintenance_mode", SettingValue: "false", SettingType: "boolean", Category: "general", Description: "Enable maintenance mode"},
		{SettingKey: "user_registration", SettingValue: "true", SettingType: "boolean", Category: "general", Description: "Allow new user registration"},
		{SettingKey: "session_timeout", SettingValue: "60", SettingType: "number", Category: "general", Description: "Session timeout in minutes"},
		{SettingKey: "ai_model_version", SettingValue: "v3.0", SettingType: "text", Category: "detection", Description: "AI model version"},
		{SettingKey: "backup_frequency", SettingValue: "daily", SettingType: "text", Category: "general", Description: "Database backup frequency"},
	}
}

// render executes a template with flashes and the logged-in user merged
// into the data map.
func (h *Handlers) render(c echo.Context, template string, data map[string]any) error {
	if data == nil {
		data = map[string]any{}
	}
	data["Flashes"] = h.Sessions.Flashes(c)
	if user, ok := security.CurrentUser(c); ok {
		data["User"] = user
	} else {
		data["UserName"] = h.Sessions.UserName(c)
	}
	return c.Render(http.StatusOK, template, data)
}

// flashRedirect queues a notification and redirects.
func (h *Handlers) flashRedirect(c echo.Context, message, category, target string) error {
	h.Sessions.AddFlash(c, message, category)
	return c.Redirect(http.StatusFound, target)
}

// currentUser returns the user stored by the auth middleware. Handlers
// behind LoginRequired can rely on it being present.
func (h *Handlers) currentUser(c echo.Context) datastore.User {
	user, _ := security.CurrentUser(c)
	return user
}
