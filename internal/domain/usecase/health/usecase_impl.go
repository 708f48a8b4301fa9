package health

import (
	"context"
	"sync"

	"forecast-api/internal/domain/gateway/api"
	"forecast-api/internal/domain/gateway/cache"
	"forecast-api/internal/domain/gateway/queue"
	"forecast-api/internal/domain/model"
)

type healthUseCase struct {
	forecastGateway api.ForecastGateway
	cacheGateway    cache.HealthGateway
	queueGateway    queue.HealthGateway
}

func NewHealthUseCase(forecastGateway api.ForecastGateway, cacheGateway cache.HealthGateway, queueGateway queue.HealthGateway) UseCase {
	return &healthUseCase{
		forecastGateway: forecastGateway,
		cacheGateway:    cacheGateway,
		queueGateway:    queueGateway,
	}
}

// CheckHealth probes every component concurrently. Disabled components report UNKNOWN and
// do not bring the service down.
func (useCase *healthUseCase) CheckHealth(ctx context.Context) model.HealthResponse {
	var providerHealth, cacheHealth, queueHealth model.ComponentHealthStatus

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		providerHealth = useCase.forecastGateway.Health(ctx)
	}()
	go func() {
		defer wg.Done()
		cacheHealth = useCase.cacheGateway.Health(ctx)
	}()
	go func() {
		defer wg.Done()
		queueHealth = useCase.queueGateway.Health(ctx)
	}()
	wg.Wait()

	overallStatus := model.StatusUp
	for _, component := range []model.ComponentHealthStatus{providerHealth, cacheHealth, queueHealth} {
		if component.Status == model.StatusDown {
			overallStatus = model.StatusDown
		}
	}

	return model.HealthResponse{
		Status:      overallStatus,
		Provider:    providerHealth,
		RateLimiter: cacheHealth,
		Queue:       queueHealth,
	}
}
