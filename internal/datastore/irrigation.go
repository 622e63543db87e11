// irrigation.go: irrigation log and pump status persistence operations
package datastore

import (
	"github.com/adikemitra/adike-go/internal/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SaveIrrigationLog appends one irrigation log entry.
func (ds *DataStore) SaveIrrigationLog(logEntry *IrrigationLog) error {
	if err := ds.checkConnection(); err != nil {
		return err
	}
	if logEntry.LoggedAt.IsZero() {
		logEntry.LoggedAt = ds.Now()
	}
	if err := ds.DB.Create(logEntry).Error; err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "save_irrigation_log").
			Context("user_id", logEntry.UserID).
			Build()
	}
	return nil
}

// UserIrrigationLogs returns a user's irrigation history, newest first.
// A limit of 0 returns all entries.
func (ds *DataStore) UserIrrigationLogs(userID uint, limit int) ([]IrrigationLog, error) {
	var logs []IrrigationLog
	query := ds.DB.Where("user_id = ?", userID).Order("logged_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&logs).Error
	return logs, err
}

// ClearUserIrrigationLogs removes all of a user's irrigation log entries.
func (ds *DataStore) ClearUserIrrigationLogs(userID uint) error {
	return ds.DB.Where("user_id = ?", userID).Delete(&IrrigationLog{}).Error
}

// CountIrrigationLogs returns the total number of irrigation log entries.
func (ds *DataStore) CountIrrigationLogs() (int64, error) {
	var count int64
	err := ds.DB.Model(&IrrigationLog{}).Count(&count).Error
	return count, err
}

// GetOrCreatePumpStatus returns the user's pump row, creating it in the OFF
// state on first access. The unique index on user_id makes concurrent lazy
// creation safe.
func (ds *DataStore) GetOrCreatePumpStatus(userID uint) (PumpStatus, error) {
	var pump PumpStatus
	err := ds.DB.
		Clauses(clause.OnConflict{DoNothing: true}).
		Where(PumpStatus{UserID: userID}).
		Attrs(PumpStatus{Status: PumpOff, UpdatedAt: ds.Now()}).
		FirstOrCreate(&pump).Error
	if err != nil {
		return PumpStatus{}, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "get_or_create_pump_status").
			Context("user_id", userID).
			Build()
	}
	// A conflicting concurrent insert leaves pump zero-valued, re-read it.
	if pump.ID == 0 {
		if err := ds.DB.Where("user_id = ?", userID).First(&pump).Error; err != nil {
			return PumpStatus{}, err
		}
	}
	return pump, nil
}

// SetPumpStatus updates the user's pump state.
func (ds *DataStore) SetPumpStatus(userID uint, status string) error {
	result := ds.DB.Model(&PumpStatus{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{"status": status, "updated_at": ds.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
