package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/adikemitra/adike-go/internal/classifier"
	"github.com/adikemitra/adike-go/internal/datastore"
)

// Insights summarizes a user's detection history for the dashboard.
type Insights struct {
	Total         int64
	Healthy       int64
	Diseased      int64
	HealthRate    float64
	RecentDisease string
}

// Dashboard renders the farmer's landing page with recent activity and
// detection insights.
func (h *Handlers) Dashboard(c echo.Context) error {
	user := h.currentUser(c)

	recentDetections, err := h.DS.RecentDetections(user.ID, 5)
	if err != nil {
		h.logger.Error("failed to load recent detections", "error", err, "user_id", user.ID)
	}
	recentIrrigation, err := h.DS.UserIrrigationLogs(user.ID, 5)
	if err != nil {
		h.logger.Error("failed to load irrigation logs", "error", err, "user_id", user.ID)
	}
	latestPrice, err := h.Pricing.Latest()
	if err != nil {
		h.logger.Error("failed to load latest price", "error", err)
	}

	insights := h.buildInsights(user.ID, recentDetections)

	return h.render(c, "dashboard", map[string]any{
		"Title":            "Dashboard",
		"RecentDetections": recentDetections,
		"RecentIrrigation": recentIrrigation,
		"LatestPrice":      latestPrice,
		"Insights":         insights,
	})
}

func (h *Handlers) buildInsights(userID uint, recent []datastore.DiseaseDetection) Insights {
	insights := Insights{}

	total, err := h.DS.CountUserDetectionsByDisease(userID, "")
	if err != nil {
		h.logger.Error("failed to count detections", "error", err, "user_id", userID)
		return insights
	}
	healthy, err := h.DS.CountUserDetectionsByDisease(userID, classifier.DiseaseHealthy)
	if err != nil {
		return insights
	}

	insights.Total = total
	insights.Healthy = healthy
	insights.Diseased = total - healthy
	if total > 0 {
		insights.HealthRate = round1(float64(healthy) / float64(total) * 100)
	}
	for i := range recent {
		if recent[i].DiseaseName != classifier.DiseaseHealthy {
			insights.RecentDisease = recent[i].DiseaseName
			break
		}
	}
	return insights
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
