package redis

import (
	"context"
	"strconv"
	"sync"
	"time"
)

// RedisHealthCheck represents the health check response for Redis
type RedisHealthCheck struct {
	Status  HealthStatus      `json:"status"`
	Details map[string]string `json:"details"`
}

// HealthChecker provides Redis health checking functionality
type HealthChecker struct {
	client    *Client
	timeout   time.Duration
	mu        sync.Mutex
	lastCheck time.Time
	lastError string
}

// NewHealthChecker creates a new Redis health checker
func NewHealthChecker(client *Client) *HealthChecker {
	return &HealthChecker{
		client:  client,
		timeout: 2 * time.Second,
	}
}

// HealthCheck pings Redis and reports pool statistics and the registered rate limiters
func (h *HealthChecker) HealthCheck(ctx context.Context) RedisHealthCheck {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	status := StatusUp
	if err := h.client.Ping(ctx); err != nil {
		status = StatusDown
		h.lastError = "ping failed: " + err.Error()
	} else {
		h.lastError = ""
	}
	h.lastCheck = time.Now()

	config := h.client.GetConfig()
	stats := h.client.Stats()
	details := map[string]string{
		"host":        config.Host,
		"port":        strconv.Itoa(config.Port),
		"database":    strconv.Itoa(config.Database),
		"total_conns": strconv.FormatUint(uint64(stats.TotalConns), 10),
		"idle_conns":  strconv.FormatUint(uint64(stats.IdleConns), 10),
		"last_check":  h.lastCheck.Format(time.RFC3339),
	}
	if h.lastError != "" {
		details["last_error"] = h.lastError
	}

	if status == StatusUp {
		for name, metrics := range GetRateLimiterMetrics(ctx) {
			for key, value := range metrics {
				details[name+"."+key] = value
			}
		}
	}

	return RedisHealthCheck{
		Status:  status,
		Details: details,
	}
}
