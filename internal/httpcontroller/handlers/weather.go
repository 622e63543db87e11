package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/adikemitra/adike-go/internal/weather"
)

// WeatherAdvisory renders current conditions, the 7-day outlook and
// spraying guidance for the user's farm location.
func (h *Handlers) WeatherAdvisory(c echo.Context) error {
	user := h.currentUser(c)

	location := user.Location
	if location == "" {
		location = weather.DefaultLocation
	}

	current := h.Weather.Current(location)
	outlook := h.Weather.Forecast(location, weather.ForecastDays)
	advisory := weather.AdvisoryFor(current)

	return h.render(c, "weather_advisory", map[string]any{
		"Title":    "Weather Advisory",
		"Location": location,
		"Current":  current,
		"Forecast": outlook,
		"Advisory": advisory,
	})
}
