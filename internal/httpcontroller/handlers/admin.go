package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/adikemitra/adike-go/internal/datastore"
	"github.com/adikemitra/adike-go/internal/export"
)

// AdminDashboard renders the admin console with system-wide counters.
func (h *Handlers) AdminDashboard(c echo.Context) error {
	users, _ := h.DS.CountUsers()
	detections, _ := h.DS.CountDetections()
	irrigationLogs, _ := h.DS.CountIrrigationLogs()

	return h.render(c, "admin_dashboard", map[string]any{
		"Title":          "Admin Dashboard",
		"TotalUsers":     users,
		"TotalDetections": detections,
		"TotalIrrigation": irrigationLogs,
	})
}

// AdminUsers lists all accounts.
func (h *Handlers) AdminUsers(c echo.Context) error {
	users, err := h.DS.AllUsers()
	if err != nil {
		h.logger.Error("failed to load users", "error", err)
	}
	return h.render(c, "admin_users", map[string]any{
		"Title": "All Users",
		"Users": users,
	})
}

// AdminDetections lists every detection in the system.
func (h *Handlers) AdminDetections(c echo.Context) error {
	detections, err := h.DS.AllDetections()
	if err != nil {
		h.logger.Error("failed to load detections", "error", err)
	}
	return h.render(c, "admin_detections", map[string]any{
		"Title":      "All Detections",
		"Detections": detections,
	})
}

// AdminUpdatePrices stores a manually entered price row.
func (h *Handlers) AdminUpdatePrices(c echo.Context) error {
	red, err := strconv.ParseFloat(c.FormValue("red_price"), 64)
	if err != nil {
		return h.flashRedirect(c, "Invalid red price.", "danger", "/admin")
	}
	white, err := strconv.ParseFloat(c.FormValue("white_price"), 64)
	if err != nil {
		return h.flashRedirect(c, "Invalid white price.", "danger", "/admin")
	}

	price := &datastore.MarketPrice{
		RedPrice:   red,
		WhitePrice: white,
		Source:     c.FormValue("source"),
		Grade:      c.FormValue("grade"),
		Date:       h.DS.Now(),
	}
	if err := h.DS.InsertPrice(price); err != nil {
		h.logger.Error("manual price insert failed", "error", err)
		return h.flashRedirect(c, "Failed to update prices.", "danger", "/admin")
	}

	return h.flashRedirect(c, "Market prices updated successfully!", "success", "/admin")
}

// AdminSettings renders the system settings console grouped by category,
// with statistics and recent activity.
func (h *Handlers) AdminSettings(c echo.Context) error {
	data := map[string]any{"Title": "System Settings"}

	categories := map[string]string{
		"general":       "GeneralSettings",
		"detection":     "DetectionSettings",
		"irrigation":    "IrrigationSettings",
		"notifications": "NotificationSettings",
	}
	for category, key := range categories {
		settings, err := h.DS.SettingsByCategory(category)
		if err != nil {
			h.logger.Error("failed to load settings", "error", err, "category", category)
		}
		data[key] = settings
	}

	users, _ := h.DS.CountUsers()
	detections, _ := h.DS.CountDetections()
	irrigationLogs, _ := h.DS.CountIrrigationLogs()
	prices, _ := h.DS.CountPrices()
	settingsCount, _ := h.DS.CountSettings()
	data["TotalUsers"] = users
	data["TotalDetections"] = detections
	data["TotalIrrigation"] = irrigationLogs
	data["TotalPrices"] = prices
	data["TotalSettings"] = settingsCount

	recentUsers, _ := h.DS.RecentUsers(5)
	recentDetections, _ := h.DS.RecentDetections(0, 5)
	data["RecentUsers"] = recentUsers
	data["RecentDetections"] = recentDetections

	return h.render(c, "admin_settings", data)
}

// AdminUpdateSettings applies the settings form. Form fields are named
// setting_<key>; boolean settings post "on" when checked.
func (h *Handlers) AdminUpdateSettings(c echo.Context) error {
	user := h.currentUser(c)

	form, err := c.FormParams()
	if err != nil {
		return h.flashRedirect(c, "Error updating settings.", "danger", "/admin/settings")
	}

	updated := 0
	for key, values := range form {
		if !strings.HasPrefix(key, "setting_") || len(values) == 0 {
			continue
		}
		settingKey := strings.TrimPrefix(key, "setting_")

		setting, err := h.DS.GetSetting(settingKey)
		if err != nil {
			continue
		}

		value := values[0]
		if setting.SettingType == "boolean" {
			if value == "on" {
				value = "true"
			} else {
				value = "false"
			}
		}

		if err := h.DS.UpdateSetting(settingKey, value, user.Name); err != nil {
			h.logger.Error("setting update failed", "error", err, "key", settingKey)
			continue
		}
		updated++
	}

	return h.flashRedirect(c, fmt.Sprintf("Successfully updated %d settings!", updated), "success", "/admin/settings")
}

// AdminResetSetting restores one setting to its seed value.
func (h *Handlers) AdminResetSetting(c echo.Context) error {
	user := h.currentUser(c)
	key := c.Param("key")

	if _, err := h.DS.GetSetting(key); err != nil {
		return h.flashRedirect(c, fmt.Sprintf("Setting %q not found!", key), "danger", "/admin/settings")
	}

	for _, def := range DefaultSettings() {
		if def.SettingKey != key {
			continue
		}
		if err := h.DS.UpdateSetting(key, def.SettingValue, user.Name); err != nil {
			h.logger.Error("setting reset failed", "error", err, "key", key)
			return h.flashRedirect(c, "Error resetting setting.", "danger", "/admin/settings")
		}
		return h.flashRedirect(c, fmt.Sprintf("Setting %q reset to default value!", key), "success", "/admin/settings")
	}

	return h.flashRedirect(c, fmt.Sprintf("No default value defined for %q", key), "warning", "/admin/settings")
}

// AdminExport streams a bulk JSON export of users, detections or
// settings.
func (h *Handlers) AdminExport(c echo.Context) error {
	dataType := c.Param("type")

	var (
		data []byte
		err  error
	)
	switch dataType {
	case export.TypeUsers:
		var users []datastore.User
		if users, err = h.DS.AllUsers(); err == nil {
			data, err = export.UsersJSON(users)
		}
	case export.TypeDetections:
		var detections []datastore.DiseaseDetection
		if detections, err = h.DS.AllDetections(); err == nil {
			data, err = export.DetectionsJSON(detections)
		}
	case export.TypeSettings:
		var settings []datastore.SystemSetting
		if settings, err = h.DS.AllSettings(); err == nil {
			data, err = export.SettingsJSON(settings)
		}
	default:
		return h.flashRedirect(c, "Invalid export type!", "danger", "/admin/settings")
	}
	if err != nil {
		h.logger.Error("export failed", "error", err, "type", dataType)
		return h.flashRedirect(c, "Error exporting data.", "danger", "/admin/settings")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", export.ExportName(dataType, h.DS.Now())))
	return c.Blob(http.StatusOK, "application/json", data)
}
