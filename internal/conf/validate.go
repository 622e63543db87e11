// conf/validate.go settings validation
package conf

import (
	"errors"
	"fmt"
	"time"
)

// ValidateSettings checks the loaded settings for obvious misconfiguration.
func ValidateSettings(settings *Settings) error {
	var errs []error

	if _, err := time.LoadLocation(settings.Main.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("invalid main.timezone %q: %w", settings.Main.Timezone, err))
	}

	if settings.WebServer.Enabled && settings.WebServer.Port == "" {
		errs = append(errs, errors.New("webserver.port must be set when web server is enabled"))
	}

	if !settings.Output.SQLite.Enabled && !settings.Output.MySQL.Enabled {
		errs = append(errs, errors.New("at least one of output.sqlite or output.mysql must be enabled"))
	}

	if settings.Uploads.MaxSizeMB <= 0 {
		errs = append(errs, fmt.Errorf("uploads.maxsizemb must be positive, got %d", settings.Uploads.MaxSizeMB))
	}
	if len(settings.Uploads.AllowedTypes) == 0 {
		errs = append(errs, errors.New("uploads.allowedtypes must not be empty"))
	}

	if settings.Irrigation.MoistureLow >= settings.Irrigation.MoistureHigh {
		errs = append(errs, fmt.Errorf("irrigation.moisturelow (%.1f) must be below irrigation.moisturehigh (%.1f)",
			settings.Irrigation.MoistureLow, settings.Irrigation.MoistureHigh))
	}

	if settings.Pricing.SeedHistoryDays < 0 {
		errs = append(errs, fmt.Errorf("pricing.seedhistorydays must not be negative, got %d", settings.Pricing.SeedHistoryDays))
	}

	return errors.Join(errs...)
}
