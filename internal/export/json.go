package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/adikemitra/adike-go/internal/datastore"
	"github.com/adikemitra/adike-go/internal/errors"
)

const exportTimeLayout = "2006-01-02 15:04:05"

// Data types accepted by the admin export endpoint.
const (
	TypeUsers      = "users"
	TypeDetections = "detections"
	TypeSettings   = "settings"
)

// ExportName builds the download filename for a bulk JSON export.
func ExportName(dataType string, now time.Time) string {
	return fmt.Sprintf("%s_export_%s.json", dataType, now.Format("20060102_150405"))
}

// UsersJSON serializes all user accounts. Password hashes are never
// included.
func UsersJSON(users []datastore.User) ([]byte, error) {
	type row struct {
		ID        uint    `json:"id"`
		Name      string  `json:"name"`
		Phone     string  `json:"phone"`
		Email     *string `json:"email"`
		Location  string  `json:"location"`
		FarmSize  string  `json:"farm_size"`
		UserType  string  `json:"user_type"`
		CreatedAt string  `json:"created_at"`
	}
	rows := make([]row, 0, len(users))
	for i := range users {
		u := &users[i]
		rows = append(rows, row{
			ID:        u.ID,
			Name:      u.Name,
			Phone:     u.Phone,
			Email:     u.Email,
			Location:  u.Location,
			FarmSize:  u.FarmSize,
			UserType:  u.UserType,
			CreatedAt: u.CreatedAt.Format(exportTimeLayout),
		})
	}
	return marshal(rows)
}

// DetectionsJSON serializes all disease detections.
func DetectionsJSON(detections []datastore.DiseaseDetection) ([]byte, error) {
	type row struct {
		ID          uint    `json:"id"`
		UserID      uint    `json:"user_id"`
		DiseaseName string  `json:"disease_name"`
		Severity    string  `json:"severity"`
		Confidence  float64 `json:"confidence"`
		Location    string  `json:"location"`
		DetectedAt  string  `json:"detected_at"`
	}
	rows := make([]row, 0, len(detections))
	for i := range detections {
		d := &detections[i]
		rows = append(rows, row{
			ID:          d.ID,
			UserID:      d.UserID,
			DiseaseName: d.DiseaseName,
			Severity:    d.Severity,
			Confidence:  d.Confidence,
			Location:    d.Location,
			DetectedAt:  d.DetectedAt.Format(exportTimeLayout),
		})
	}
	return marshal(rows)
}

// SettingsJSON serializes all system settings.
func SettingsJSON(settings []datastore.SystemSetting) ([]byte, error) {
	type row struct {
		Key         string `json:"key"`
		Value       string `json:"value"`
		Type        string `json:"type"`
		Category    string `json:"category"`
		Description string `json:"description"`
		UpdatedAt   string `json:"updated_at"`
		UpdatedBy   string `json:"updated_by"`
	}
	rows := make([]row, 0, len(settings))
	for i := range settings {
		s := &settings[i]
		rows = append(rows, row{
			Key:         s.SettingKey,
			Value:       s.SettingValue,
			Type:        s.SettingType,
			Category:    s.Category,
			Description: s.Description,
			UpdatedAt:   s.UpdatedAt.Format(exportTimeLayout),
			UpdatedBy:   s.UpdatedBy,
		})
	}
	return marshal(rows)
}

func marshal(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errors.New(err).
			Component("export").
			Category(errors.CategoryExport).
			Build()
	}
	return data, nil
}
