package datastore

import (
	"time"

	"github.com/adikemitra/adike-go/internal/errors"
	"gorm.io/gorm"
)

// performAutoMigration automates database migrations with error handling.
func performAutoMigration(db *gorm.DB, debug bool, dbType string) error {
	migrationStart := time.Now()
	migrationLogger := getLogger().With("db_type", dbType)

	migrationLogger.Debug("Starting database migration")

	tableMappings := []struct {
		model any
		name  string
	}{
		{&User{}, "users"},
		{&DiseaseDetection{}, "disease_detections"},
		{&IrrigationLog{}, "irrigation_logs"},
		{&MarketPrice{}, "market_prices"},
		{&PumpStatus{}, "pump_statuses"},
		{&SystemSetting{}, "system_settings"},
	}

	for _, table := range tableMappings {
		tableStart := time.Now()
		tableExists := db.Migrator().HasTable(table.model)

		if err := db.AutoMigrate(table.model); err != nil {
			enhancedErr := errors.New(err).
				Component("datastore").
				Category(errors.CategoryDatabase).
				Context("operation", "auto_migrate_table").
				Context("db_type", dbType).
				Context("table", table.name).
				Build()
			migrationLogger.Error("Table migration failed", "table", table.name, "error", enhancedErr)
			return enhancedErr
		}

		action := "updated"
		if !tableExists {
			action = "created"
		}
		if debug {
			migrationLogger.Debug("Table migration completed",
				"table", table.name,
				"action", action,
				"duration", time.Since(tableStart))
		}
	}

	migrationLogger.Debug("Database migration completed successfully",
		"total_duration", time.Since(migrationStart),
		"tables_migrated", len(tableMappings))

	return nil
}
