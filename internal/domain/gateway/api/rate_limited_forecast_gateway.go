package api

import (
	"context"
	"errors"
	"fmt"

	"forecast-api/internal/domain/entity"
	"forecast-api/internal/domain/model"
	"forecast-api/internal/domain/model/external"
	"forecast-api/pkg/log"
	"forecast-api/pkg/msg"
	"forecast-api/pkg/redis"
)

// RateLimiter hands out upstream call slots
type RateLimiter interface {
	Acquire(ctx context.Context) (string, error)
	Release(ctx context.Context, transactionID string) error
}

// rateLimitedForecastGateway spends one slot of the shared upstream budget per forecast
type rateLimitedForecastGateway struct {
	next    ForecastGateway
	limiter RateLimiter
}

// NewRateLimitedForecastGateway wraps next so that every forecast fetch holds a limiter slot.
// A limiter store failure lets the call through.
func NewRateLimitedForecastGateway(next ForecastGateway, limiter RateLimiter) ForecastGateway {
	return &rateLimitedForecastGateway{
		next:    next,
		limiter: limiter,
	}
}

func (g *rateLimitedForecastGateway) FetchForecastPeriod(ctx context.Context, coordinate entity.Coordinate) (*external.ForecastPeriod, error) {
	transactionID, err := g.limiter.Acquire(ctx)
	if err != nil {
		if errors.Is(err, redis.ErrLimitReached) {
			return nil, fmt.Errorf("%w: %v", model.ErrRateLimited, err)
		}
		log.Warn(msg.GetMessage("rate-limit.store-failure", err))
		return g.next.FetchForecastPeriod(ctx, coordinate)
	}

	defer func() {
		if releaseErr := g.limiter.Release(context.WithoutCancel(ctx), transactionID); releaseErr != nil {
			log.Warn(msg.GetMessage("rate-limit.release-failure", transactionID, releaseErr))
		}
	}()

	return g.next.FetchForecastPeriod(ctx, coordinate)
}

func (g *rateLimitedForecastGateway) Health(ctx context.Context) model.ComponentHealthStatus {
	return g.next.Health(ctx)
}
