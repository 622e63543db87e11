// settings.go: system settings persistence operations
package datastore

import (
	"github.com/adikemitra/adike-go/internal/errors"
	"gorm.io/gorm"
)

// SeedDefaultSettings inserts the default setting set when the table is
// empty. Existing settings are left untouched.
func (ds *DataStore) SeedDefaultSettings(defaults []SystemSetting) error {
	if err := ds.checkConnection(); err != nil {
		return err
	}
	return ds.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&SystemSetting{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		for i := range defaults {
			if defaults[i].UpdatedAt.IsZero() {
				defaults[i].UpdatedAt = ds.Now()
			}
		}
		return tx.Create(&defaults).Error
	})
}

// AllSettings returns every system setting ordered by category and key.
func (ds *DataStore) AllSettings() ([]SystemSetting, error) {
	var settings []SystemSetting
	err := ds.DB.Order("category ASC, setting_key ASC").Find(&settings).Error
	return settings, err
}

// SettingsByCategory returns the settings in one category.
func (ds *DataStore) SettingsByCategory(category string) ([]SystemSetting, error) {
	var settings []SystemSetting
	err := ds.DB.Where("category = ?", category).Order("setting_key ASC").Find(&settings).Error
	return settings, err
}

// GetSetting retrieves one setting by key.
func (ds *DataStore) GetSetting(key string) (SystemSetting, error) {
	var setting SystemSetting
	err := ds.DB.Where("setting_key = ?", key).First(&setting).Error
	return setting, err
}

// UpdateSetting changes one setting's value, recording who changed it.
// The write runs in a transaction and is rolled back on failure.
func (ds *DataStore) UpdateSetting(key, value, updatedBy string) error {
	err := ds.DB.Transaction(func(tx *gorm.DB) error {
		var setting SystemSetting
		if err := tx.Where("setting_key = ?", key).First(&setting).Error; err != nil {
			return err
		}
		setting.SettingValue = value
		setting.UpdatedBy = updatedBy
		setting.UpdatedAt = ds.Now()
		return tx.Save(&setting).Error
	})
	if err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "update_setting").
			Context("setting_key", key).
			Build()
	}
	return nil
}

// CountSettings returns the number of stored settings.
func (ds *DataStore) CountSettings() (int64, error) {
	var count int64
	err := ds.DB.Model(&SystemSetting{}).Count(&count).Error
	return count, err
}
