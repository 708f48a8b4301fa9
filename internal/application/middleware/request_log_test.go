package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"forecast-api/pkg/log"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedEcho(t *testing.T) (*echo.Echo, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	log.SetLogger(zap.New(core))
	t.Cleanup(func() { log.Configure("forecast-api", "info") })

	e := echo.New()
	SetupRequestID(e)
	SetupRequestLogger(e)
	SetupRecover(e)
	e.GET("/forecast", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/health", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/fail", func(c echo.Context) error { return c.String(http.StatusBadGateway, "upstream") })
	e.GET("/panic", func(c echo.Context) error { panic("handler bug") })
	return e, logs
}

func TestRequestIDIsGenerated(t *testing.T) {
	e, _ := newObservedEcho(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/forecast", nil))

	if len(rec.Header().Get(echo.HeaderXRequestID)) != 36 {
		t.Errorf("request id = %q, want a uuid", rec.Header().Get(echo.HeaderXRequestID))
	}
}

func TestRequestIDIsPropagated(t *testing.T) {
	e, logs := newObservedEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/forecast", nil)
	req.Header.Set(echo.HeaderXRequestID, "caller-id")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Header().Get(echo.HeaderXRequestID) != "caller-id" {
		t.Errorf("request id = %q", rec.Header().Get(echo.HeaderXRequestID))
	}
	entries := logs.FilterField(zap.String("request_id", "caller-id")).All()
	if len(entries) != 1 || entries[0].Level != zapcore.InfoLevel {
		t.Errorf("log entries = %+v", entries)
	}
}

func TestRequestLoggerLevels(t *testing.T) {
	e, logs := newObservedEcho(t)

	for _, path := range []string{"/forecast", "/health", "/fail"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := logs.FilterField(zap.String("uri", "/health")).Len(); got != 0 {
		t.Errorf("health requests logged %d times", got)
	}
	failures := logs.FilterField(zap.String("uri", "/fail")).All()
	if len(failures) != 1 || failures[0].Level != zapcore.ErrorLevel {
		t.Errorf("failure entries = %+v", failures)
	}
}

func TestPanicIsRecoveredAndLogged(t *testing.T) {
	e, logs := newObservedEcho(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	entries := logs.FilterField(zap.String("uri", "/panic")).All()
	if len(entries) != 1 || entries[0].Level != zapcore.ErrorLevel {
		t.Fatalf("panic entries = %+v", entries)
	}
	if status := entries[0].ContextMap()["status"]; status != int64(http.StatusInternalServerError) {
		t.Errorf("logged status = %v, want 500", status)
	}
}
