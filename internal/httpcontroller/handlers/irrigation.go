package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/adikemitra/adike-go/internal/datastore"
)

// IrrigationPage renders the smart irrigation page.
func (h *Handlers) IrrigationPage(c echo.Context) error {
	return h.renderIrrigation(c, nil)
}

// IrrigationAction applies the posted form: a moisture simulation or a
// pump toggle.
func (h *Handlers) IrrigationAction(c echo.Context) error {
	user := h.currentUser(c)
	action := c.FormValue("action")

	switch action {
	case "simulate":
		moisture, err := strconv.ParseFloat(c.FormValue("moisture_level"), 64)
		if err != nil {
			moisture = 50
		}
		result, err := h.Irrigation.Simulate(user.ID, moisture)
		if err != nil {
			h.logger.Error("moisture simulation failed", "error", err, "user_id", user.ID)
			return h.flashRedirect(c, "Simulation failed. Please try again.", "danger", "/smart-irrigation")
		}
		return h.renderIrrigation(c, result)

	case datastore.PumpOn, datastore.PumpOff:
		message, err := h.Irrigation.TogglePump(user.ID, action)
		if err != nil {
			h.logger.Error("pump toggle failed", "error", err, "user_id", user.ID)
			return h.flashRedirect(c, "Pump control failed. Please try again.", "danger", "/smart-irrigation")
		}
		return h.flashRedirect(c, message, "success", "/smart-irrigation")

	default:
		return h.renderIrrigation(c, nil)
	}
}

func (h *Handlers) renderIrrigation(c echo.Context, result any) error {
	user := h.currentUser(c)

	pump, err := h.Irrigation.PumpStatus(user.ID)
	if err != nil {
		h.logger.Error("failed to load pump status", "error", err, "user_id", user.ID)
	}
	history, err := h.Irrigation.History(user.ID, 10)
	if err != nil {
		h.logger.Error("failed to load irrigation history", "error", err, "user_id", user.ID)
	}

	return h.render(c, "smart_irrigation", map[string]any{
		"Title":      "Smart Irrigation",
		"Pump":       pump,
		"History":    history,
		"Simulation": result,
	})
}

// ClearIrrigation removes all of the user's irrigation logs.
func (h *Handlers) ClearIrrigation(c echo.Context) error {
	user := h.currentUser(c)
	if err := h.Irrigation.ClearHistory(user.ID); err != nil {
		h.logger.Error("clear irrigation logs failed", "error", err, "user_id", user.ID)
		return h.flashRedirect(c, "Failed to clear irrigation logs.", "danger", "/dashboard")
	}
	return h.flashRedirect(c, "All irrigation logs cleared successfully.", "success", "/dashboard")
}
