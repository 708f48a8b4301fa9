package http

import (
	"forecast-api/pkg/log"

	"go.uber.org/zap"
)

// HTTPLogger interface defines methods for logging HTTP requests and responses
type HTTPLogger interface {
	// LogRequest is called before the request is sent with all request data formed
	LogRequest(method, url string, headers map[string]string, body string)

	// LogResponseSuccess is called immediately after receiving a successful response (non-error HTTP status)
	LogResponseSuccess(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64)

	// LogResponseError is called after a transport failure or an error HTTP status
	LogResponseError(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64, err error)
}

// ZapLogger logs outbound calls through pkg/log. Response bodies go out at debug level only.
type ZapLogger struct {
	// MaxBodyLength truncates logged response bodies, 0 means 2048
	MaxBodyLength int
}

func NewZapLogger() *ZapLogger {
	return &ZapLogger{MaxBodyLength: 2048}
}

func (l *ZapLogger) LogRequest(method, url string, headers map[string]string, body string) {
	log.Debug("outbound request",
		zap.String("method", method),
		zap.String("url", url),
		zap.Any("headers", headers))
}

func (l *ZapLogger) LogResponseSuccess(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64) {
	log.Info("outbound request completed",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency))
	log.Debug("outbound response body",
		zap.String("url", url),
		zap.String("body", l.truncate(responseBody)))
}

func (l *ZapLogger) LogResponseError(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64, err error) {
	log.Warn("outbound request failed",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency),
		zap.String("body", l.truncate(responseBody)),
		zap.Error(err))
}

func (l *ZapLogger) truncate(body string) string {
	limit := l.MaxBodyLength
	if limit <= 0 {
		limit = 2048
	}
	if len(body) <= limit {
		return body
	}
	return body[:limit] + "..."
}
