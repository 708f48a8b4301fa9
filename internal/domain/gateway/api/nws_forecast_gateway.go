package api

import (
	"context"
	"fmt"
	"strconv"

	"forecast-api/internal/domain/entity"
	"forecast-api/internal/domain/model"
	"forecast-api/internal/domain/model/external"
	"forecast-api/pkg/http"
	"forecast-api/pkg/log"
	"forecast-api/pkg/msg"
)

const (
	msgPointsFailed   = "Failed to resolve grid point from NWS. The coordinates may be outside US coverage. Detail: "
	msgNoForecastURL  = "NWS did not return a forecast URL for the given coordinates."
	msgForecastFailed = "Failed to fetch forecast from NWS. Detail: "
	msgNoPeriods      = "NWS returned no forecast periods."
	nwsStatusOK       = "OK"
)

// nwsForecastGateway implements ForecastGateway against api.weather.gov
type nwsForecastGateway struct {
	httpClient *http.Client
	baseUrl    string
}

// NewNWSForecastGateway creates a new instance of ForecastGateway with HTTP client. The client
// options must carry the User-Agent and Accept default headers NWS requires.
func NewNWSForecastGateway(baseUrl string, clientOptions http.ClientOptions) ForecastGateway {
	clientOptions.FollowRedirect = true
	httpClient := http.NewHttpClient(baseUrl, clientOptions)

	return &nwsForecastGateway{
		httpClient: httpClient,
		baseUrl:    baseUrl,
	}
}

// FetchForecastPeriod calls /points and then the forecast URL it returns
func (g *nwsForecastGateway) FetchForecastPeriod(ctx context.Context, coordinate entity.Coordinate) (*external.ForecastPeriod, error) {
	forecastUrl, err := g.resolveForecastUrl(ctx, coordinate)
	if err != nil {
		return nil, err
	}

	successResp, errResp, _, err := g.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithPath(forecastUrl).
		WithSuccessResp(&external.ForecastResponse{}).
		WithErrorResp(&external.ProblemResponse{}).
		Execute()
	if err != nil {
		return nil, model.NewUpstreamError(msgForecastFailed+problemDetail(errResp, err), err)
	}

	forecast, ok := successResp.(*external.ForecastResponse)
	if !ok || forecast == nil || forecast.Properties == nil || len(forecast.Properties.Periods) == 0 {
		return nil, model.NewUpstreamError(msgNoPeriods, nil)
	}

	// the first period is the current one, even when it is "Tonight"
	period := forecast.Properties.Periods[0]
	return &period, nil
}

func (g *nwsForecastGateway) resolveForecastUrl(ctx context.Context, coordinate entity.Coordinate) (string, error) {
	path := fmt.Sprintf("/points/%.4f,%.4f", coordinate.Latitude, coordinate.Longitude)

	successResp, errResp, _, err := g.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithPath(path).
		WithSuccessResp(&external.PointResponse{}).
		WithErrorResp(&external.ProblemResponse{}).
		Execute()
	if err != nil {
		return "", model.NewUpstreamError(msgPointsFailed+problemDetail(errResp, err), err)
	}

	point, ok := successResp.(*external.PointResponse)
	if !ok || point == nil || point.Properties == nil || point.Properties.Forecast == "" {
		return "", model.NewUpstreamError(msgNoForecastURL, nil)
	}

	log.Debug(msg.GetMessage("nws.points", point.Properties.GridID, point.Properties.GridX, point.Properties.GridY,
		coordinate.Latitude, coordinate.Longitude))

	return point.Properties.Forecast, nil
}

// Health fetches the API root, NWS answers {"status":"OK"} when it is serving
func (g *nwsForecastGateway) Health(ctx context.Context) model.ComponentHealthStatus {
	details := map[string]string{"base_url": g.baseUrl}

	successResp, errResp, statusCode, err := g.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithPath("/").
		WithSuccessResp(&external.StatusResponse{}).
		WithErrorResp(&external.ProblemResponse{}).
		Execute()
	details["http_status"] = strconv.Itoa(statusCode)

	if err != nil {
		details["error"] = problemDetail(errResp, err)
		return model.ComponentHealthStatus{Status: model.StatusDown, Details: details}
	}

	status, ok := successResp.(*external.StatusResponse)
	if !ok || status == nil {
		return model.ComponentHealthStatus{Status: model.StatusDown, Details: details}
	}
	details["provider_status"] = status.Status
	if status.Status != nwsStatusOK {
		return model.ComponentHealthStatus{Status: model.StatusDown, Details: details}
	}

	return model.ComponentHealthStatus{Status: model.StatusUp, Details: details}
}

// problemDetail prefers the problem+json detail, then its title, then the error text
func problemDetail(errResp any, err error) string {
	if problem, ok := errResp.(*external.ProblemResponse); ok && problem != nil {
		if problem.Detail != "" {
			return problem.Detail
		}
		if problem.Title != "" {
			return problem.Title
		}
	}
	return err.Error()
}
