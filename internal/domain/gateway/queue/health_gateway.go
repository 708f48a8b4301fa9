package queue

import (
	"context"

	"forecast-api/internal/domain/model"
)

type HealthGateway interface {
	Health(ctx context.Context) model.ComponentHealthStatus
}
