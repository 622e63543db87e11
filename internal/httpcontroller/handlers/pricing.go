package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/adikemitra/adike-go/internal/export"
)

// MarketPrices renders the price page, refreshing first when today's
// quote is missing.
func (h *Handlers) MarketPrices(c echo.Context) error {
	h.Pricing.EnsureFresh(c.Request().Context())

	latest, err := h.Pricing.Latest()
	if err != nil {
		h.logger.Error("failed to load latest price", "error", err)
	}
	history, err := h.Pricing.History(30)
	if err != nil {
		h.logger.Error("failed to load price history", "error", err)
	}

	return h.render(c, "market_prices", map[string]any{
		"Title":   "Market Prices",
		"Latest":  latest,
		"History": history,
	})
}

// UpdatePrices is the manual refresh endpoint, returning the result as
// JSON for the page's update button.
func (h *Handlers) UpdatePrices(c echo.Context) error {
	result := h.Pricing.Refresh(c.Request().Context())
	return c.JSON(http.StatusOK, result)
}

// PricePrediction renders the 15-day forecast alongside the 30-day
// history.
func (h *Handlers) PricePrediction(c echo.Context) error {
	history, err := h.Pricing.History(30)
	if err != nil {
		h.logger.Error("failed to load price history", "error", err)
	}

	predictions := h.Forecaster.Forecast(history, h.DS.Now())

	return h.render(c, "price_prediction", map[string]any{
		"Title":       "Price Prediction",
		"History":     history,
		"Predictions": predictions,
	})
}

// DownloadPriceHistory streams the stored history as a spreadsheet.
func (h *Handlers) DownloadPriceHistory(c echo.Context) error {
	history, err := h.Pricing.History(30)
	if err != nil {
		h.logger.Error("failed to load price history", "error", err)
		return h.flashRedirect(c, "Failed to export price history.", "danger", "/market-prices")
	}

	now := h.DS.Now()
	data, err := export.PriceHistoryXLSX(history)
	if err != nil {
		h.logger.Error("price export failed", "error", err)
		return h.flashRedirect(c, "Failed to export price history.", "danger", "/market-prices")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", export.PriceHistoryName(now)))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
