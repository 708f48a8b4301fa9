package model

// HealthStatus represents the possible health status values
type HealthStatus string

const (
	StatusUp      HealthStatus = "UP"
	StatusDown    HealthStatus = "DOWN"
	StatusUnknown HealthStatus = "UNKNOWN"
)

// ComponentHealthStatus represents the health check structure of a application component
type ComponentHealthStatus struct {
	Status  HealthStatus      `json:"status"`
	Details map[string]string `json:"details"`
}

// HealthResponse represents the health check response of all application
type HealthResponse struct {
	Status      HealthStatus          `json:"status"`
	Provider    ComponentHealthStatus `json:"provider"`
	RateLimiter ComponentHealthStatus `json:"rateLimiter"`
	Queue       ComponentHealthStatus `json:"queue"`
}

// DisabledComponent is the status of an optional component that is switched off
func DisabledComponent(reason string) ComponentHealthStatus {
	return ComponentHealthStatus{
		Status:  StatusUnknown,
		Details: map[string]string{"message": reason},
	}
}
