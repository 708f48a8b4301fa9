package cache

import (
	"context"

	"forecast-api/internal/domain/model"
	"forecast-api/pkg/redis"
)

// HealthGateway reports the state of the rate limiter store
type HealthGateway interface {
	Health(ctx context.Context) model.ComponentHealthStatus
}

// RedisChecker is satisfied by *redis.HealthChecker
type RedisChecker interface {
	HealthCheck(ctx context.Context) redis.RedisHealthCheck
}

type redisHealthGateway struct {
	checker RedisChecker
}

func NewRedisHealthGateway(checker RedisChecker) HealthGateway {
	return &redisHealthGateway{checker: checker}
}

func (gateway *redisHealthGateway) Health(ctx context.Context) model.ComponentHealthStatus {
	result := gateway.checker.HealthCheck(ctx)

	status := model.StatusDown
	switch result.Status {
	case redis.StatusUp:
		status = model.StatusUp
	case redis.StatusUnknown:
		status = model.StatusUnknown
	}

	return model.ComponentHealthStatus{
		Status:  status,
		Details: result.Details,
	}
}

type disabledHealthGateway struct{}

// NewDisabledHealthGateway is used when rate limiting is switched off
func NewDisabledHealthGateway() HealthGateway {
	return disabledHealthGateway{}
}

func (disabledHealthGateway) Health(context.Context) model.ComponentHealthStatus {
	return model.DisabledComponent("rate limiting disabled")
}
