package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/adikemitra/adike-go/internal/datastore"
	"github.com/adikemitra/adike-go/internal/errors"
)

// PriceHistoryName builds the download filename for a price history sheet.
func PriceHistoryName(now time.Time) string {
	return fmt.Sprintf("market_prices_%s.xlsx", now.Format("20060102"))
}

// PriceHistoryXLSX renders the price history as a spreadsheet, one row
// per day, oldest first.
func PriceHistoryXLSX(prices []datastore.MarketPrice) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Market Prices"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, exportErr(err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Date", "Red Arecanut (Rs/kg)", "White Arecanut (Rs/kg)", "Source", "Grade"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, exportErr(err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"667EEA"}},
	})
	if err == nil {
		_ = f.SetCellStyle(sheet, "A1", "E1", headerStyle)
	}

	for i := range prices {
		p := &prices[i]
		row := i + 2
		values := []any{
			p.Date.Format("2006-01-02"),
			p.RedPrice,
			p.WhitePrice,
			p.Source,
			p.Grade,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, exportErr(err)
			}
		}
	}

	_ = f.SetColWidth(sheet, "A", "E", 22)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, exportErr(err)
	}
	return buf.Bytes(), nil
}

// DetectionHistoryName builds the download filename for a detection sheet.
func DetectionHistoryName(now time.Time) string {
	return fmt.Sprintf("disease_detections_%s.xlsx", now.Format("20060102"))
}

// DetectionsXLSX renders detection records as a spreadsheet.
func DetectionsXLSX(detections []datastore.DiseaseDetection) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Disease Detections"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, exportErr(err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Date", "Disease", "Severity", "Confidence (%)", "Location", "Recommendation"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, exportErr(err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"10B981"}},
	})
	if err == nil {
		_ = f.SetCellStyle(sheet, "A1", "F1", headerStyle)
	}

	for i := range detections {
		d := &detections[i]
		row := i + 2
		values := []any{
			d.DetectedAt.Format("2006-01-02 15:04"),
			d.DiseaseName,
			d.Severity,
			d.Confidence,
			d.Location,
			d.Recommendation,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, exportErr(err)
			}
		}
	}

	_ = f.SetColWidth(sheet, "A", "E", 22)
	_ = f.SetColWidth(sheet, "F", "F", 48)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, exportErr(err)
	}
	return buf.Bytes(), nil
}

func exportErr(err error) error {
	return errors.New(err).
		Component("export").
		Category(errors.CategoryExport).
		Build()
}
