package export

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/adikemitra/adike-go/internal/datastore"
)

var testTime = time.Date(2026, 8, 29, 14, 30, 5, 0, time.UTC)

func testDetection() *datastore.DiseaseDetection {
	d := &datastore.DiseaseDetection{
		UserID:         7,
		DiseaseName:    "Yellow Leaf Disease",
		Severity:       "moderate",
		Confidence:     92.5,
		Location:       "Sirsi",
		DetectedAt:     testTime,
		Recommendation: "Apply Bordeaux mixture (1%) or Copper oxychloride (0.3%). Ensure proper drainage and avoid waterlogging.",
	}
	d.ID = 12
	d.User = &datastore.User{ID: 7, Name: "Ramesh"}
	return d
}

func TestDetectionReportName(t *testing.T) {
	assert.Equal(t, "detection_report_12_20260829.pdf", DetectionReportName(12, testTime))
}

func TestDetectionReportPDF(t *testing.T) {
	data, err := DetectionReportPDF(testDetection(), testTime)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output must be a PDF document")
	assert.Greater(t, len(data), 1000)
}

func TestDetectionReportPDFHealthy(t *testing.T) {
	d := testDetection()
	d.DiseaseName = "Healthy"
	d.Severity = "None"
	d.Recommendation = "No treatment required. Your crop looks healthy!"

	data, err := DetectionReportPDF(d, testTime)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestDetectionReportPDFWithoutOwner(t *testing.T) {
	d := testDetection()
	d.User = nil

	data, err := DetectionReportPDF(d, testTime)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestExportName(t *testing.T) {
	assert.Equal(t, "users_export_20260829_143005.json", ExportName(TypeUsers, testTime))
	assert.Equal(t, "detections_export_20260829_143005.json", ExportName(TypeDetections, testTime))
}

func TestUsersJSONExcludesPasswordHash(t *testing.T) {
	email := "ramesh@example.com"
	user := datastore.User{
		Phone:        "9999999999",
		Email:        &email,
		Name:         "Ramesh",
		PasswordHash: "$2a$10$secret",
		UserType:     datastore.UserTypeFarmer,
		Location:     "Sirsi",
		FarmSize:     "2 acres",
	}
	user.ID = 7
	user.CreatedAt = testTime

	data, err := UsersJSON([]datastore.User{user})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "9999999999", rows[0]["phone"])
	assert.Equal(t, "2026-08-29 14:30:05", rows[0]["created_at"])
	assert.NotContains(t, rows[0], "password_hash")
}

func TestDetectionsJSON(t *testing.T) {
	data, err := DetectionsJSON([]datastore.DiseaseDetection{*testDetection()})
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Yellow Leaf Disease", rows[0]["disease_name"])
	assert.InDelta(t, 92.5, rows[0]["confidence"].(float64), 0.001)
}

func TestSettingsJSON(t *testing.T) {
	settings := []datastore.SystemSetting{{
		SettingKey:   "site_name",
		SettingValue: "Adike Mitra",
		SettingType:  "text",
		Category:     "general",
		Description:  "Application name",
		UpdatedAt:    testTime,
		UpdatedBy:    "system",
	}}

	data, err := SettingsJSON(settings)
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "site_name", rows[0]["key"])
	assert.Equal(t, "Adike Mitra", rows[0]["value"])
}

func TestDetectionsXLSX(t *testing.T) {
	data, err := DetectionsXLSX([]datastore.DiseaseDetection{*testDetection()})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Disease Detections")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Disease", rows[0][1])
	assert.Equal(t, "Yellow Leaf Disease", rows[1][1])
	assert.Equal(t, "92.5", rows[1][3])
}

func TestPriceHistoryXLSX(t *testing.T) {
	prices := []datastore.MarketPrice{
		{RedPrice: 150, WhitePrice: 160, Source: "CAMPCO Mangalore", Grade: "Grade A", Date: testTime.AddDate(0, 0, -1)},
		{RedPrice: 152.5, WhitePrice: 162, Source: "CAMPCO Mangalore", Grade: "Grade A", Date: testTime},
	}

	data, err := PriceHistoryXLSX(prices)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Market Prices")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Date", rows[0][0])
	assert.Equal(t, "2026-08-28", rows[1][0])
	assert.Equal(t, "150", rows[1][1])
	assert.Equal(t, "152.5", rows[2][1])
}
