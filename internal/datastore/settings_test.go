package datastore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDataStore(t *testing.T) *DataStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}, &DiseaseDetection{}, &SystemSetting{}))
	return &DataStore{DB: db}
}

func TestCountSettings(t *testing.T) {
	ds := newTestDataStore(t)

	count, err := ds.CountSettings()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	require.NoError(t, ds.SeedDefaultSettings([]SystemSetting{
		{SettingKey: "app_name", SettingValue: "Adike Mitra", SettingType: "string", Category: "general"},
		{SettingKey: "maintenance_mode", SettingValue: "false", SettingType: "boolean", Category: "general"},
	}))

	count, err = ds.CountSettings()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestIsNotFound(t *testing.T) {
	ds := newTestDataStore(t)

	_, err := ds.GetDetection(42)
	require.Error(t, err)
	assert.True(t, IsNotFound(err), "missing detection must report not-found through the wrap")

	_, err = ds.GetSetting("no_such_key")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	assert.False(t, IsNotFound(gorm.ErrInvalidDB))
	assert.False(t, IsNotFound(nil))
}
