package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"forecast-api/internal/domain/entity"
	"forecast-api/internal/domain/model"

	"github.com/labstack/echo/v4"
)

type mockForecastUseCase struct {
	response *model.ForecastResponse
	err      error
	calls    int
	lat, lon float64
}

func (m *mockForecastUseCase) GetForecast(ctx context.Context, latitude, longitude float64) (*model.ForecastResponse, error) {
	m.calls++
	m.lat, m.lon = latitude, longitude
	if m.err != nil {
		return nil, m.err
	}
	if m.response != nil {
		return m.response, nil
	}

	coordinate := entity.Coordinate{Latitude: latitude, Longitude: longitude}
	if err := coordinate.Validate(); err != nil {
		return nil, &model.ValidationError{Message: err.Error()}
	}
	return nil, errors.New("no response configured")
}

func serveForecast(t *testing.T, useCase *mockForecastUseCase, query string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	NewForecastController(e.Group(""), useCase).InitForecastRoutes()

	req := httptest.NewRequest(http.MethodGet, "/forecast"+query, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGetForecastOk(t *testing.T) {
	useCase := &mockForecastUseCase{response: &model.ForecastResponse{
		Latitude:                    39.7456,
		Longitude:                   -97.0892,
		ShortForecast:               "Mostly Sunny",
		TemperatureF:                72,
		TemperatureCharacterization: entity.TemperatureModerate,
	}}

	rec := serveForecast(t, useCase, "?latitude=39.7456&longitude=-97.0892")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	want := `{"latitude":39.7456,"longitude":-97.0892,"shortForecast":"Mostly Sunny","temperatureF":72,"temperatureCharacterization":"moderate"}`
	if got := strings.TrimSpace(rec.Body.String()); got != want {
		t.Errorf("body = %s, want %s", got, want)
	}
	if useCase.lat != 39.7456 || useCase.lon != -97.0892 {
		t.Errorf("use case called with %v,%v", useCase.lat, useCase.lon)
	}
}

func TestGetForecastBadRequest(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantMsg string
	}{
		{"latitude out of range", "?latitude=999&longitude=-97.0", "Latitude must be between -90 and 90."},
		{"longitude out of range", "?latitude=0&longitude=200", "Longitude must be between -180 and 180."},
		{"both out of range reports latitude", "?latitude=-91&longitude=181", "Latitude must be between -90 and 90."},
		{"latitude NaN", "?latitude=NaN&longitude=0", "Latitude must be between -90 and 90."},
		{"longitude infinite", "?latitude=0&longitude=Inf", "Longitude must be between -180 and 180."},
		{"missing latitude", "?longitude=-97.0", "Query parameter 'latitude' is required and must be a number."},
		{"missing longitude", "?latitude=39.7", "Query parameter 'longitude' is required and must be a number."},
		{"non numeric latitude", "?latitude=abc&longitude=-97.0", "Query parameter 'latitude' is required and must be a number."},
		{"non numeric longitude", "?latitude=39.7&longitude=west", "Query parameter 'longitude' is required and must be a number."},
		{"no parameters", "", "Query parameter 'latitude' is required and must be a number."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serveForecast(t, &mockForecastUseCase{}, tt.query)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			want := fmt.Sprintf(`{"error":%q}`, tt.wantMsg)
			if got := strings.TrimSpace(rec.Body.String()); got != want {
				t.Errorf("body = %s, want %s", got, want)
			}
		})
	}
}

func TestGetForecastBindingErrorSkipsUseCase(t *testing.T) {
	useCase := &mockForecastUseCase{}
	serveForecast(t, useCase, "?latitude=abc&longitude=1")
	if useCase.calls != 0 {
		t.Errorf("use case called %d times", useCase.calls)
	}
}

func TestGetForecastErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "upstream error",
			err:        model.NewUpstreamError("NWS error", nil),
			wantStatus: http.StatusBadGateway,
			wantMsg:    "NWS error",
		},
		{
			name:       "wrapped upstream error",
			err:        fmt.Errorf("fetch: %w", model.NewUpstreamError("NWS returned no forecast periods.", errors.New("cause"))),
			wantStatus: http.StatusBadGateway,
			wantMsg:    "NWS returned no forecast periods.",
		},
		{
			name:       "rate limited",
			err:        fmt.Errorf("%w: transactions per second limit (5 TPS)", model.ErrRateLimited),
			wantStatus: http.StatusTooManyRequests,
			wantMsg:    "Upstream request budget exhausted, try again later.",
		},
		{
			name:       "unexpected",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Unexpected error while retrieving the forecast.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serveForecast(t, &mockForecastUseCase{err: tt.err}, "?latitude=0.0&longitude=0.0")

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			want := fmt.Sprintf(`{"error":%q}`, tt.wantMsg)
			if got := strings.TrimSpace(rec.Body.String()); got != want {
				t.Errorf("body = %s, want %s", got, want)
			}
		})
	}
}
