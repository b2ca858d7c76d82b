package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dashdeck/internal/service"
)

// WeatherHandler serves the dashboard weather tile.
type WeatherHandler struct {
	weatherService service.WeatherService
}

// NewWeatherHandler creates a new weather handler.
func NewWeatherHandler(weatherService service.WeatherService) *WeatherHandler {
	return &WeatherHandler{weatherService: weatherService}
}

// Current godoc
// @Summary Current weather conditions
// @Tags weather
// @Produce json
// @Param q query string false "Location query, defaults to auto:ip"
// @Success 200 {object} model.Weather
// @Router /weather [get]
func (h *WeatherHandler) Current(c echo.Context) error {
	weather, err := h.weatherService.Current(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch weather data")
	}
	return c.JSON(http.StatusOK, weather)
}
