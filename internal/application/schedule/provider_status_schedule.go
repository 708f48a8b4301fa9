package schedule

import (
	"context"
	"sync"
	"time"

	"forecast-api/internal/domain/gateway/api"
	"forecast-api/internal/domain/model"
	"forecast-api/pkg/log"
	"forecast-api/pkg/msg"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ProviderStatusScheduler polls the weather provider status and logs transitions
type ProviderStatusScheduler struct {
	cron           *cron.Cron
	gateway        api.ForecastGateway
	cronExpression string
	timeout        time.Duration

	mu         sync.Mutex
	lastStatus model.HealthStatus
}

// NewProviderStatusScheduler creates a scheduler that checks the provider on cronExpression
func NewProviderStatusScheduler(gateway api.ForecastGateway, cronExpression string, timeout time.Duration) *ProviderStatusScheduler {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ProviderStatusScheduler{
		cron:           cron.New(),
		gateway:        gateway,
		cronExpression: cronExpression,
		timeout:        timeout,
		lastStatus:     model.StatusUnknown,
	}
}

// InitProviderStatusTasks registers the status check and starts the cron
func (s *ProviderStatusScheduler) InitProviderStatusTasks() error {
	if _, err := s.cron.AddFunc(s.cronExpression, s.ExecuteScheduledTask); err != nil {
		return err
	}

	s.cron.Start()
	log.Info(msg.GetMessage("nws.status.cron-start", s.cronExpression))
	return nil
}

// ExecuteScheduledTask checks the provider once
func (s *ProviderStatusScheduler) ExecuteScheduledTask() {
	requestID := uuid.New().String()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	health := s.gateway.Health(ctx)

	s.mu.Lock()
	previous := s.lastStatus
	s.lastStatus = health.Status
	s.mu.Unlock()

	if previous != health.Status {
		log.Info(msg.GetMessage("nws.status.changed", previous, health.Status), zap.String("request_id", requestID))
	}
	if health.Status == model.StatusDown {
		log.Warn(msg.GetMessage("nws.status.down", health.Details), zap.String("request_id", requestID))
	}
}

// LastStatus returns the status seen by the latest check
func (s *ProviderStatusScheduler) LastStatus() model.HealthStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastStatus
}

// Stop gracefully stops the scheduler
func (s *ProviderStatusScheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
}
