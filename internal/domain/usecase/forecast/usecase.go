package forecast

import (
	"context"

	"forecast-api/internal/domain/model"
)

type UseCase interface {
	// GetForecast returns the current forecast for the coordinate. Errors are
	// *model.ValidationError, *model.UpstreamError or model.ErrRateLimited.
	GetForecast(ctx context.Context, latitude, longitude float64) (*model.ForecastResponse, error)
}
