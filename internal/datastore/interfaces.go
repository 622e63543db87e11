// interfaces.go: this code defines the interface for the database operations
package datastore

import (
	"fmt"
	"time"

	"github.com/adikemitra/adike-go/internal/conf"
	"gorm.io/gorm"
)

// Interface abstracts the underlying database implementation and defines the
// operations the application needs.
type Interface interface {
	Open() error
	Close() error
	Now() time.Time
	StartOfDay(t time.Time) time.Time

	// users
	CreateUser(user *User) error
	GetUser(id uint) (User, error)
	GetUserByPhone(phone string) (User, error)
	GetUserByEmail(email string) (User, error)
	UpdateUser(user *User) error
	AllUsers() ([]User, error)
	RecentUsers(limit int) ([]User, error)
	CountUsers() (int64, error)
	CountUsersByType(userType string) (int64, error)

	// disease detections
	SaveDetection(detection *DiseaseDetection) error
	GetDetection(id uint) (DiseaseDetection, error)
	UserDetections(userID uint) ([]DiseaseDetection, error)
	AllDetections() ([]DiseaseDetection, error)
	RecentDetections(userID uint, limit int) ([]DiseaseDetection, error)
	DeleteDetection(id uint) error
	DeleteUserDetections(userID uint) ([]string, error)
	CountDetections() (int64, error)
	CountUserDetectionsByDisease(userID uint, diseaseName string) (int64, error)

	// irrigation
	SaveIrrigationLog(logEntry *IrrigationLog) error
	UserIrrigationLogs(userID uint, limit int) ([]IrrigationLog, error)
	ClearUserIrrigationLogs(userID uint) error
	CountIrrigationLogs() (int64, error)
	GetOrCreatePumpStatus(userID uint) (PumpStatus, error)
	SetPumpStatus(userID uint, status string) error

	// market prices
	LatestPrice() (*MarketPrice, error)
	PricesSince(since time.Time) ([]MarketPrice, error)
	UpsertDailyPrice(price *MarketPrice) (action string, err error)
	InsertPrice(price *MarketPrice) error
	CountPrices() (int64, error)

	// system settings
	SeedDefaultSettings(defaults []SystemSetting) error
	AllSettings() ([]SystemSetting, error)
	SettingsByCategory(category string) ([]SystemSetting, error)
	GetSetting(key string) (SystemSetting, error)
	UpdateSetting(key, value, updatedBy string) error
	CountSettings() (int64, error)
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB  *gorm.DB       // GORM database instance
	loc *time.Location // timezone for calendar-day calculations
}

// New creates a new datastore instance based on the provided configuration.
func New(settings *conf.Settings) Interface {
	switch {
	case settings.Output.SQLite.Enabled:
		return &SQLiteStore{
			DataStore: DataStore{loc: settings.TimeLocation()},
			Settings:  settings,
		}
	case settings.Output.MySQL.Enabled:
		return &MySQLStore{
			DataStore: DataStore{loc: settings.TimeLocation()},
			Settings:  settings,
		}
	default:
		return nil
	}
}

// Now returns the current time in the datastore's configured timezone.
func (ds *DataStore) Now() time.Time {
	if ds.loc == nil {
		return time.Now()
	}
	return time.Now().In(ds.loc)
}

// StartOfDay truncates t to midnight in the datastore's timezone.
func (ds *DataStore) StartOfDay(t time.Time) time.Time {
	loc := ds.loc
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func (ds *DataStore) checkConnection() error {
	if ds.DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	return nil
}
