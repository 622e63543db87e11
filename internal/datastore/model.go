// model.go defines the database entities for the farm management service.
package datastore

import "time"

// User types stored in User.UserType.
const (
	UserTypeFarmer    = "Farmer"
	UserTypeDeveloper = "Developer"
)

// Pump states stored in PumpStatus.Status and IrrigationLog.PumpStatus.
const (
	PumpOn  = "ON"
	PumpOff = "OFF"
)

// Irrigation log action types.
const (
	ActionManual     = "Manual"
	ActionSimulation = "Simulation"
)

// User represents a registered account. Phone is the login identifier.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Phone        string `gorm:"size:15;uniqueIndex;not null"`
	Email        *string `gorm:"size:120;uniqueIndex"`
	Name         string `gorm:"size:100;not null"`
	Location     string `gorm:"size:200"`
	FarmSize     string `gorm:"size:50"`
	UserType     string `gorm:"size:20;not null"`
	PasswordHash string `gorm:"size:200;not null"`
	CreatedAt    time.Time

	Detections     []DiseaseDetection `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	IrrigationLogs []IrrigationLog    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// DiseaseDetection is one classifier invocation result for an uploaded image.
type DiseaseDetection struct {
	ID             uint   `gorm:"primaryKey"`
	UserID         uint   `gorm:"index;not null"`
	ImagePath      string `gorm:"size:300;not null"`
	DiseaseName    string `gorm:"size:100;index:idx_detections_disease"`
	Severity       string `gorm:"size:50"`
	Confidence     float64
	Location       string `gorm:"size:200"`
	DetectedAt     time.Time `gorm:"index:idx_detections_detected_at"`
	Recommendation string    `gorm:"type:text"`
	WeatherWarning string    `gorm:"type:text"`

	User *User `gorm:"foreignKey:UserID"`
}

// IrrigationLog records one pump action or moisture simulation for a user.
// SoilMoisture is set only for Simulation entries.
type IrrigationLog struct {
	ID           uint     `gorm:"primaryKey"`
	UserID       uint     `gorm:"index;not null"`
	SoilMoisture *float64
	PumpStatus   string    `gorm:"size:10"`
	ActionType   string    `gorm:"size:50"`
	Message      string    `gorm:"type:text"`
	LoggedAt     time.Time `gorm:"index:idx_irrigation_logged_at"`
}

// MarketPrice holds one day's arecanut prices from a source. At most one
// record per calendar day is canonical, history is retained for trend charts.
type MarketPrice struct {
	ID         uint    `gorm:"primaryKey"`
	Source     string  `gorm:"size:100"`
	RedPrice   float64 `gorm:"column:red_arecanut_price"`
	WhitePrice float64 `gorm:"column:white_arecanut_price"`
	Grade      string  `gorm:"size:50"`
	Date       time.Time `gorm:"index:idx_prices_date"`
}

// PumpStatus is the per-user pump state singleton, created lazily on first
// irrigation page visit.
type PumpStatus struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"uniqueIndex;not null"`
	Status    string `gorm:"size:10;default:OFF"`
	UpdatedAt time.Time
}

// SystemSetting is one admin-tunable configuration value. Keys come from a
// fixed default set seeded at first startup.
type SystemSetting struct {
	ID           uint   `gorm:"primaryKey"`
	SettingKey   string `gorm:"size:100;uniqueIndex;not null"`
	SettingValue string `gorm:"type:text"`
	SettingType  string `gorm:"size:50"`
	Category     string `gorm:"size:100;index:idx_settings_category"`
	Description  string `gorm:"type:text"`
	UpdatedAt    time.Time
	UpdatedBy    string `gorm:"size:100"`
}
