// Package irrigation manages per-user pump state and soil moisture
// simulations, keeping an audit log of every action.
package irrigation

import (
	"fmt"
	"log/slog"

	"github.com/adikemitra/adike-go/internal/conf"
	"github.com/adikemitra/adike-go/internal/datastore"
	"github.com/adikemitra/adike-go/internal/errors"
	"github.com/adikemitra/adike-go/internal/logging"
)

// Moisture level classifications.
const (
	MoistureLow     = "Low"
	MoistureHigh    = "High"
	MoistureOptimal = "Optimal"
)

// Advisory messages shown to the user. Kept in sync with the moisture
// classification.
const (
	msgLow     = "⚠️ Water required now. Soil moisture is low."
	msgHigh    = "🚨 Waterlogging detected — stop irrigation immediately!"
	msgOptimal = "✅ Soil moisture is optimal. No action needed."
)

// SimulationResult is the outcome of a soil moisture simulation.
type SimulationResult struct {
	Moisture float64
	Status   string
	Message  string
}

// Service implements the irrigation operations over the datastore.
type Service struct {
	ds       datastore.Interface
	settings *conf.Settings
	logger   *slog.Logger
}

// NewService creates an irrigation service.
func NewService(settings *conf.Settings, ds datastore.Interface) *Service {
	return &Service{
		ds:       ds,
		settings: settings,
		logger:   logging.ForService("irrigation"),
	}
}

// PumpStatus returns the user's pump row, creating it in the OFF state
// on first access.
func (s *Service) PumpStatus(userID uint) (datastore.PumpStatus, error) {
	return s.ds.GetOrCreatePumpStatus(userID)
}

// TogglePump switches the user's pump to the requested state and logs
// the manual action. status must be ON or OFF.
func (s *Service) TogglePump(userID uint, status string) (string, error) {
	if status != datastore.PumpOn && status != datastore.PumpOff {
		return "", errors.Newf("invalid pump status: %q", status).
			Component("irrigation").
			Category(errors.CategoryValidation).
			Build()
	}

	// Pump row may not exist yet for users who toggle before ever
	// visiting the page.
	if _, err := s.ds.GetOrCreatePumpStatus(userID); err != nil {
		return "", err
	}
	if err := s.ds.SetPumpStatus(userID, status); err != nil {
		return "", err
	}

	message := fmt.Sprintf("💡 Pump turned %s.", status)
	logEntry := &datastore.IrrigationLog{
		UserID:     userID,
		PumpStatus: status,
		ActionType: datastore.ActionManual,
		Message:    message,
	}
	if err := s.ds.SaveIrrigationLog(logEntry); err != nil {
		return "", err
	}

	s.logger.Info("pump toggled", "user_id", userID, "status", status)
	return message, nil
}

// Simulate classifies a soil moisture reading against the configured
// thresholds and logs it with the pump's current state.
func (s *Service) Simulate(userID uint, moisture float64) (*SimulationResult, error) {
	pump, err := s.ds.GetOrCreatePumpStatus(userID)
	if err != nil {
		return nil, err
	}

	result := s.Classify(moisture)

	logEntry := &datastore.IrrigationLog{
		UserID:       userID,
		SoilMoisture: &moisture,
		PumpStatus:   pump.Status,
		ActionType:   datastore.ActionSimulation,
		Message:      result.Message,
	}
	if err := s.ds.SaveIrrigationLog(logEntry); err != nil {
		return nil, err
	}

	return result, nil
}

// Classify maps a moisture percentage onto the Low/Optimal/High scale.
func (s *Service) Classify(moisture float64) *SimulationResult {
	low, high := s.thresholds()
	result := &SimulationResult{Moisture: moisture}
	switch {
	case moisture < low:
		result.Status = MoistureLow
		result.Message = msgLow
	case moisture > high:
		result.Status = MoistureHigh
		result.Message = msgHigh
	default:
		result.Status = MoistureOptimal
		result.Message = msgOptimal
	}
	return result
}

func (s *Service) thresholds() (low, high float64) {
	low, high = s.settings.Irrigation.MoistureLow, s.settings.Irrigation.MoistureHigh
	if low <= 0 {
		low = 30
	}
	if high <= 0 || high <= low {
		high = 80
	}
	return low, high
}

// History returns the user's most recent irrigation log entries.
func (s *Service) History(userID uint, limit int) ([]datastore.IrrigationLog, error) {
	return s.ds.UserIrrigationLogs(userID, limit)
}

// ClearHistory deletes all of the user's irrigation log entries.
func (s *Service) ClearHistory(userID uint) error {
	return s.ds.ClearUserIrrigationLogs(userID)
}
