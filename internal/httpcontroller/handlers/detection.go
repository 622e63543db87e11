package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/adikemitra/adike-go/internal/classifier"
	"github.com/adikemitra/adike-go/internal/datastore"
	"github.com/adikemitra/adike-go/internal/export"
	"github.com/adikemitra/adike-go/internal/weather"
)

// DetectionForm renders the image upload page.
func (h *Handlers) DetectionForm(c echo.Context) error {
	return h.render(c, "disease_detection", map[string]any{"Title": "Disease Detection"})
}

// Detect processes an uploaded crop image: saves the file, runs the
// requested models, derives the verdict and stores the detection record.
func (h *Handlers) Detect(c echo.Context) error {
	user := h.currentUser(c)

	file, err := c.FormFile("image")
	if err != nil {
		return h.flashRedirect(c, "No image uploaded.", "danger", "/disease-detection")
	}
	if file.Filename == "" {
		return h.flashRedirect(c, "No image selected.", "danger", "/disease-detection")
	}
	if !h.allowedFile(file.Filename) {
		return h.flashRedirect(c, "Invalid file type. Allowed: png, jpg, jpeg, gif.", "danger", "/disease-detection")
	}
	if h.Settings.Uploads.MaxSizeMB > 0 && file.Size > int64(h.Settings.Uploads.MaxSizeMB)<<20 {
		return h.flashRedirect(c, "File too large.", "danger", "/disease-detection")
	}

	kind := c.FormValue("detection_type")
	if kind == "" {
		kind = string(classifier.Both)
	}
	if !classifier.ValidKind(kind) {
		return h.flashRedirect(c, "Invalid detection type.", "danger", "/disease-detection")
	}

	imagePath, err := h.saveUpload(file, user.ID)
	if err != nil {
		h.logger.Error("upload save failed", "error", err, "user_id", user.ID)
		return h.flashRedirect(c, "Error processing image. Please upload a clear image of an arecanut leaf or fruit.", "danger", "/disease-detection")
	}

	start := time.Now()
	diagnosis, err := h.diagnoseFile(imagePath, classifier.DiseaseKind(kind))
	if err != nil {
		// Keep no orphan files around for failed predictions.
		_ = os.Remove(imagePath)
		h.logger.Error("diagnosis failed", "error", err, "user_id", user.ID)
		if h.Metrics != nil {
			h.Metrics.Classifier.RecordPrediction(kind, 0, err)
		}
		return h.flashRedirect(c, "Error processing image. Please upload a clear image of an arecanut leaf or fruit.", "danger", "/disease-detection")
	}
	if h.Metrics != nil {
		h.Metrics.Classifier.RecordPrediction(kind, time.Since(start).Seconds(), nil)
	}

	disease, confidence := diagnosis.Primary()
	rec := classifier.RecommendationFor(disease, confidence)
	warning := weather.SprayWarning(h.rng.Intn(101))

	detection := &datastore.DiseaseDetection{
		UserID:         user.ID,
		ImagePath:      filepath.ToSlash(imagePath),
		DiseaseName:    disease,
		Severity:       rec.Severity,
		Confidence:     confidence,
		Location:       c.FormValue("location"),
		DetectedAt:     h.DS.Now(),
		Recommendation: rec.Treatment,
		WeatherWarning: warning,
	}
	if err := h.DS.SaveDetection(detection); err != nil {
		_ = os.Remove(imagePath)
		h.logger.Error("detection save failed", "error", err, "user_id", user.ID)
		return h.flashRedirect(c, "Error saving detection. Please try again.", "danger", "/disease-detection")
	}

	if h.Metrics != nil {
		status := "Infected"
		if disease == classifier.DiseaseHealthy {
			status = "Healthy"
		}
		h.Metrics.Classifier.RecordDetection(disease, status)
	}
	h.logger.Info("detection stored",
		"detection_id", detection.ID,
		"user_id", user.ID,
		"disease", disease,
		"confidence", confidence)

	return h.render(c, "disease_detection", map[string]any{
		"Title":     "Disease Detection",
		"Diagnosis": diagnosis,
		"Detection": detection,
	})
}

func (h *Handlers) diagnoseFile(path string, kind classifier.DiseaseKind) (*classifier.Diagnosis, error) {
	sample, err := classifier.PreprocessFile(path)
	if err != nil {
		return nil, err
	}
	return h.Classifier.Diagnose(sample, kind)
}

// allowedFile checks the extension against the configured allow list.
func (h *Handlers) allowedFile(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return false
	}
	allowed := h.Settings.Uploads.AllowedTypes
	if len(allowed) == 0 {
		allowed = []string{"png", "jpg", "jpeg", "gif"}
	}
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}

// saveUpload writes the file under the uploads directory with a
// collision-proof name.
func (h *Handlers) saveUpload(file *multipart.FileHeader, userID uint) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dir := h.Settings.Uploads.Path
	if dir == "" {
		dir = filepath.Join("static", "uploads")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%d_%s_%s", userID, time.Now().Format("20060102_150405"), sanitizeFilename(file.Filename))
	path := filepath.Join(dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return path, nil
}

// sanitizeFilename keeps only characters safe for a filesystem path.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// DetectionResult renders a stored detection record.
func (h *Handlers) DetectionResult(c echo.Context) error {
	user := h.currentUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.NoContent(http.StatusNotFound)
	}
	detection, err := h.DS.GetDetection(uint(id))
	if err != nil {
		if datastore.IsNotFound(err) {
			return c.NoContent(http.StatusNotFound)
		}
		h.logger.Error("failed to load detection", "error", err, "detection_id", id)
		return c.NoContent(http.StatusInternalServerError)
	}
	if detection.UserID != user.ID && user.UserType != datastore.UserTypeDeveloper {
		return h.flashRedirect(c, "Access denied.", "danger", "/dashboard")
	}

	return h.render(c, "detection_result", map[string]any{
		"Title":     "Detection Result",
		"Detection": detection,
	})
}

// History renders the detection history. Developers see all records,
// farmers only their own.
func (h *Handlers) History(c echo.Context) error {
	user := h.currentUser(c)

	var (
		detections []datastore.DiseaseDetection
		err        error
	)
	if user.UserType == datastore.UserTypeDeveloper {
		detections, err = h.DS.AllDetections()
	} else {
		detections, err = h.DS.UserDetections(user.ID)
	}
	if err != nil {
		h.logger.Error("failed to load detections", "error", err, "user_id", user.ID)
	}

	return h.render(c, "disease_history", map[string]any{
		"Title":      "Disease History",
		"Detections": detections,
	})
}

// DeleteDetection removes one of the user's own detection records along
// with its image file.
func (h *Handlers) DeleteDetection(c echo.Context) error {
	user := h.currentUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.NoContent(http.StatusNotFound)
	}

	detection, err := h.DS.GetDetection(uint(id))
	if err != nil {
		if datastore.IsNotFound(err) {
			return c.NoContent(http.StatusNotFound)
		}
		h.logger.Error("failed to load detection", "error", err, "detection_id", id)
		return c.NoContent(http.StatusInternalServerError)
	}
	if detection.UserID != user.ID {
		return h.flashRedirect(c, "Access denied.", "danger", "/dashboard")
	}

	if detection.ImagePath != "" {
		if err := os.Remove(filepath.FromSlash(detection.ImagePath)); err != nil && !os.IsNotExist(err) {
			h.logger.Warn("failed to delete image file", "error", err, "path", detection.ImagePath)
		}
	}
	if err := h.DS.DeleteDetection(detection.ID); err != nil {
		h.logger.Error("detection delete failed", "error", err, "detection_id", detection.ID)
		return h.flashRedirect(c, "Failed to delete detection.", "danger", "/disease-history")
	}

	return h.flashRedirect(c, "Detection record deleted successfully.", "success", "/disease-history")
}

// ClearDetections removes all of the user's detection records and their
// image files.
func (h *Handlers) ClearDetections(c echo.Context) error {
	user := h.currentUser(c)

	paths, err := h.DS.DeleteUserDetections(user.ID)
	if err != nil {
		h.logger.Error("clear detections failed", "error", err, "user_id", user.ID)
		return h.flashRedirect(c, "Failed to clear detections.", "danger", "/dashboard")
	}
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(filepath.FromSlash(p)); err != nil && !os.IsNotExist(err) {
			h.logger.Warn("failed to delete image file", "error", err, "path", p)
		}
	}

	return h.flashRedirect(c, "All detection records cleared successfully.", "success", "/dashboard")
}

// DownloadDetectionHistory streams the detection history as a spreadsheet.
// Developers get all records, farmers their own.
func (h *Handlers) DownloadDetectionHistory(c echo.Context) error {
	user := h.currentUser(c)

	var (
		detections []datastore.DiseaseDetection
		err        error
	)
	if user.UserType == datastore.UserTypeDeveloper {
		detections, err = h.DS.AllDetections()
	} else {
		detections, err = h.DS.UserDetections(user.ID)
	}
	if err != nil {
		h.logger.Error("failed to load detections", "error", err, "user_id", user.ID)
		return h.flashRedirect(c, "Failed to export detections.", "danger", "/disease-history")
	}

	now := h.DS.Now()
	data, err := export.DetectionsXLSX(detections)
	if err != nil {
		h.logger.Error("detection export failed", "error", err, "user_id", user.ID)
		return h.flashRedirect(c, "Failed to export detections.", "danger", "/disease-history")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", export.DetectionHistoryName(now)))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// DownloadReport streams a PDF report for one of the user's detections.
func (h *Handlers) DownloadReport(c echo.Context) error {
	user := h.currentUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.NoContent(http.StatusNotFound)
	}
	detection, err := h.DS.GetDetection(uint(id))
	if err != nil {
		if datastore.IsNotFound(err) {
			return c.NoContent(http.StatusNotFound)
		}
		h.logger.Error("failed to load detection", "error", err, "detection_id", id)
		return c.NoContent(http.StatusInternalServerError)
	}
	if detection.UserID != user.ID && user.UserType != datastore.UserTypeDeveloper {
		return h.flashRedirect(c, "Access denied.", "danger", "/dashboard")
	}

	now := h.DS.Now()
	data, err := export.DetectionReportPDF(&detection, now)
	if err != nil {
		h.logger.Error("report generation failed", "error", err, "detection_id", detection.ID)
		return h.flashRedirect(c, "Failed to generate report.", "danger", "/disease-history")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", export.DetectionReportName(detection.ID, now)))
	return c.Blob(http.StatusOK, "application/pdf", data)
}

// ServeUpload serves a stored image, only to its owner or a developer.
func (h *Handlers) ServeUpload(c echo.Context) error {
	user := h.currentUser(c)

	name := filepath.Base(c.Param("name"))
	dir := h.Settings.Uploads.Path
	if dir == "" {
		dir = filepath.Join("static", "uploads")
	}
	path := filepath.Join(dir, name)

	// Filenames are prefixed with the owner's user ID.
	if user.UserType != datastore.UserTypeDeveloper &&
		!strings.HasPrefix(name, fmt.Sprintf("%d_", user.ID)) {
		return c.NoContent(http.StatusForbidden)
	}

	return c.File(path)
}
