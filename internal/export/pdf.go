// Package export renders detection reports and bulk data exports in
// PDF, JSON and XLSX formats.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/adikemitra/adike-go/internal/classifier"
	"github.com/adikemitra/adike-go/internal/datastore"
	"github.com/adikemitra/adike-go/internal/errors"
)

// Brand colors used across reports.
var (
	colorBrand     = rgb{102, 126, 234} // indigo header
	colorHeading   = rgb{51, 51, 51}
	colorTableHead = rgb{16, 185, 129} // green
	colorBeige     = rgb{245, 245, 220}
	colorHealthyBG = rgb{209, 250, 229}
	colorDiseaseBG = rgb{254, 226, 226}
	colorHealthy   = rgb{0, 128, 0}
	colorDisease   = rgb{220, 38, 38}
	colorFooter    = rgb{128, 128, 128}
)

type rgb struct{ r, g, b int }

// DetectionReportName builds the download filename for a detection report.
func DetectionReportName(detectionID uint, now time.Time) string {
	return fmt.Sprintf("detection_report_%d_%s.pdf", detectionID, now.Format("20060102"))
}

// DetectionReportPDF renders a single detection as a printable report.
func DetectionReportPDF(detection *datastore.DiseaseDetection, now time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(colorBrand.r, colorBrand.g, colorBrand.b)
	pdf.CellFormat(0, 14, "Adike Mitra - Disease Detection Report", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	// Report details
	// The User association may be absent when the record was loaded
	// without a preload or the owner row is gone.
	userName := ""
	if detection.User != nil && detection.User.ID != 0 {
		userName = detection.User.Name
	}
	location := detection.Location
	if location == "" {
		location = "Not specified"
	}
	writeTableHeader(pdf, "Report Details", colorBrand)
	writeTableRow(pdf, "Detection ID:", fmt.Sprintf("%d", detection.ID), colorBeige, nil)
	writeTableRow(pdf, "Date & Time:", detection.DetectedAt.Format("January 2, 2006 at 3:04 PM"), colorBeige, nil)
	writeTableRow(pdf, "User:", userName, colorBeige, nil)
	writeTableRow(pdf, "Location:", location, colorBeige, nil)
	pdf.Ln(8)

	// Results
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(colorHeading.r, colorHeading.g, colorHeading.b)
	pdf.CellFormat(0, 9, "Detection Results", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	isHealthy := detection.DiseaseName == classifier.DiseaseHealthy
	status, statusColor, statusBG := "DISEASE DETECTED", colorDisease, colorDiseaseBG
	if isHealthy {
		status, statusColor, statusBG = "HEALTHY", colorHealthy, colorHealthyBG
	}
	severity := detection.Severity
	if severity == "None" || severity == "" {
		severity = "N/A"
	}

	writeTableHeader(pdf, "Parameter / Value", colorTableHead)
	writeTableRow(pdf, "Disease Status:", status, statusBG, &statusColor)
	writeTableRow(pdf, "Disease Name:", detection.DiseaseName, colorBeige, nil)
	writeTableRow(pdf, "Confidence Score:", fmt.Sprintf("%.2f%%", detection.Confidence), colorBeige, nil)
	writeTableRow(pdf, "Severity:", severity, colorBeige, nil)
	pdf.Ln(8)

	// Treatment recommendations, only for diseased samples
	if !isHealthy && detection.Recommendation != "" {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.SetTextColor(colorHeading.r, colorHeading.g, colorHeading.b)
		pdf.CellFormat(0, 9, "Treatment Recommendations", "", 1, "L", false, 0, "")
		pdf.Ln(2)

		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(0, 0, 0)
		pdf.MultiCell(0, 6, detection.Recommendation, "", "L", false)
		pdf.Ln(6)
	}

	// Footer
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(colorFooter.r, colorFooter.g, colorFooter.b)
	pdf.CellFormat(0, 5, "This is an automated report generated by Adike Mitra AI System", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Report Generated: %s", now.Format("January 2, 2006 at 3:04 PM")), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.New(err).
			Component("export").
			Category(errors.CategoryExport).
			Context("detection_id", detection.ID).
			Build()
	}
	return buf.Bytes(), nil
}

func writeTableHeader(pdf *fpdf.Fpdf, title string, bg rgb) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetFillColor(bg.r, bg.g, bg.b)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetDrawColor(128, 128, 128)
	pdf.CellFormat(170, 10, title, "1", 1, "L", true, 0, "")
}

func writeTableRow(pdf *fpdf.Fpdf, label, value string, bg rgb, valueColor *rgb) {
	pdf.SetFillColor(bg.r, bg.g, bg.b)
	pdf.SetDrawColor(128, 128, 128)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(60, 9, label, "1", 0, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	if valueColor != nil {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(valueColor.r, valueColor.g, valueColor.b)
	}
	pdf.CellFormat(110, 9, value, "1", 1, "L", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
}
