package controller

import (
	"errors"
	"net/http"

	"forecast-api/internal/domain/model"
	"forecast-api/internal/domain/usecase/forecast"
	"forecast-api/pkg/log"
	"forecast-api/pkg/msg"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ForecastController struct {
	api     *echo.Group
	useCase forecast.UseCase
}

func NewForecastController(api *echo.Group, useCase forecast.UseCase) *ForecastController {
	return &ForecastController{api: api, useCase: useCase}
}

// InitForecastRoutes initializes forecast routes
func (controller *ForecastController) InitForecastRoutes() {
	controller.api.GET("/forecast", controller.GetForecast)
}

// GetForecast godoc
// @Summary Get the current forecast for a coordinate
// @Description Resolves the NWS grid point for the coordinate and returns the first forecast period with a hot/cold/moderate characterization
// @Tags forecast
// @Produce json
// @Param latitude query number true "Latitude in decimal degrees (-90 to 90)"
// @Param longitude query number true "Longitude in decimal degrees (-180 to 180)"
// @Success 200 {object} model.ForecastResponse "Simplified forecast"
// @Failure 400 {object} model.ErrorResponse "Missing, non numeric or out of range coordinate"
// @Failure 429 {object} model.ErrorResponse "Upstream request budget exhausted"
// @Failure 500 {object} model.ErrorResponse "Unexpected error"
// @Failure 502 {object} model.ErrorResponse "NWS failure or unexpected NWS data"
// @Router /forecast [get]
func (controller *ForecastController) GetForecast(c echo.Context) error {
	var latitude, longitude float64
	err := echo.QueryParamsBinder(c).
		MustFloat64("latitude", &latitude).
		MustFloat64("longitude", &longitude).
		BindError()
	if err != nil {
		field := "latitude"
		var bindingErr *echo.BindingError
		if errors.As(err, &bindingErr) {
			field = bindingErr.Field
		}
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: msg.GetMessage("forecast.error.invalid-param", field)})
	}

	response, err := controller.useCase.GetForecast(c.Request().Context(), latitude, longitude)
	if err != nil {
		return controller.handleError(c, latitude, longitude, err)
	}
	return c.JSON(http.StatusOK, response)
}

func (controller *ForecastController) handleError(c echo.Context, latitude, longitude float64, err error) error {
	var validationErr *model.ValidationError
	var upstreamErr *model.UpstreamError

	switch {
	case errors.As(err, &validationErr):
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: validationErr.Message})
	case errors.As(err, &upstreamErr):
		log.Warn(msg.GetMessage("forecast.error.upstream", latitude, longitude, upstreamErr.Message), zap.Error(upstreamErr.Unwrap()))
		return c.JSON(http.StatusBadGateway, model.ErrorResponse{Error: upstreamErr.Message})
	case errors.Is(err, model.ErrRateLimited):
		log.Warn(err.Error())
		return c.JSON(http.StatusTooManyRequests, model.ErrorResponse{Error: msg.GetMessage("forecast.error.rate-limited")})
	default:
		log.Error(msg.GetMessage("forecast.error.unexpected"), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: msg.GetMessage("forecast.error.unexpected")})
	}
}
