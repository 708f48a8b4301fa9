package api

import (
	"context"

	"forecast-api/internal/domain/entity"
	"forecast-api/internal/domain/model"
	"forecast-api/internal/domain/model/external"
)

// ForecastGateway defines the interface for weather provider calls
type ForecastGateway interface {
	// FetchForecastPeriod resolves the grid point for the coordinate and returns the first
	// forecast period. Every failure is a *model.UpstreamError.
	FetchForecastPeriod(ctx context.Context, coordinate entity.Coordinate) (*external.ForecastPeriod, error)

	// Health reports whether the provider answers its status document
	Health(ctx context.Context) model.ComponentHealthStatus
}
