package irrigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/adikemitra/adike-go/internal/conf"
	"github.com/adikemitra/adike-go/internal/datastore"
)

func newTestService(t *testing.T) (*Service, datastore.Interface) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&datastore.User{}, &datastore.PumpStatus{}, &datastore.IrrigationLog{}))

	ds := &datastore.SQLiteStore{DataStore: datastore.DataStore{DB: db}}
	settings := &conf.Settings{}
	settings.Irrigation.MoistureLow = 30
	settings.Irrigation.MoistureHigh = 80
	return NewService(settings, ds), ds
}

func TestClassify(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name       string
		moisture   float64
		wantStatus string
	}{
		{"very dry", 10, MoistureLow},
		{"just below low threshold", 29.9, MoistureLow},
		{"low threshold is optimal", 30, MoistureOptimal},
		{"mid range", 55, MoistureOptimal},
		{"high threshold is optimal", 80, MoistureOptimal},
		{"just above high threshold", 80.1, MoistureHigh},
		{"waterlogged", 95, MoistureHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := svc.Classify(tt.moisture)
			assert.Equal(t, tt.wantStatus, result.Status)
			assert.NotEmpty(t, result.Message)
		})
	}
}

func TestTogglePump(t *testing.T) {
	svc, ds := newTestService(t)

	message, err := svc.TogglePump(1, datastore.PumpOn)
	require.NoError(t, err)
	assert.Equal(t, "💡 Pump turned ON.", message)

	pump, err := ds.GetOrCreatePumpStatus(1)
	require.NoError(t, err)
	assert.Equal(t, datastore.PumpOn, pump.Status)

	logs, err := svc.History(1, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, datastore.ActionManual, logs[0].ActionType)
	assert.Nil(t, logs[0].SoilMoisture)
	assert.Equal(t, datastore.PumpOn, logs[0].PumpStatus)
}

func TestTogglePumpRejectsInvalidStatus(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.TogglePump(1, "MAYBE")
	assert.Error(t, err)

	logs, err := svc.History(1, 10)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestSimulateLogsReading(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.Simulate(1, 22.5)
	require.NoError(t, err)
	assert.Equal(t, MoistureLow, result.Status)

	logs, err := svc.History(1, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, datastore.ActionSimulation, logs[0].ActionType)
	require.NotNil(t, logs[0].SoilMoisture)
	assert.InDelta(t, 22.5, *logs[0].SoilMoisture, 0.001)
	// Pump defaults to OFF on first access.
	assert.Equal(t, datastore.PumpOff, logs[0].PumpStatus)
}

func TestSimulateRecordsCurrentPumpState(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.TogglePump(1, datastore.PumpOn)
	require.NoError(t, err)

	_, err = svc.Simulate(1, 50)
	require.NoError(t, err)

	logs, err := svc.History(1, 1)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, datastore.PumpOn, logs[0].PumpStatus)
}

func TestClearHistory(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Simulate(1, 50)
	require.NoError(t, err)
	_, err = svc.Simulate(2, 50)
	require.NoError(t, err)

	require.NoError(t, svc.ClearHistory(1))

	logs, err := svc.History(1, 10)
	require.NoError(t, err)
	assert.Empty(t, logs)

	// Other users' logs are untouched.
	logs, err = svc.History(2, 10)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestHistoryLimit(t *testing.T) {
	svc, _ := newTestService(t)

	for i := 0; i < 15; i++ {
		_, err := svc.Simulate(1, 50)
		require.NoError(t, err)
	}

	logs, err := svc.History(1, 10)
	require.NoError(t, err)
	assert.Len(t, logs, 10)
}
