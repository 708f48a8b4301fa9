package forecast

import (
	"context"
	"errors"
	"time"

	"forecast-api/internal/domain/entity"
	"forecast-api/internal/domain/gateway/api"
	"forecast-api/internal/domain/gateway/queue"
	"forecast-api/internal/domain/model"
	"forecast-api/pkg/log"
	"forecast-api/pkg/msg"

	"github.com/google/uuid"
)

const (
	msgMissingShortForecast = "NWS forecast period is missing shortForecast."
	msgMissingTemperature   = "NWS forecast period is missing temperature."

	defaultPublishTimeout = 2 * time.Second
)

type forecastUseCase struct {
	forecastGateway api.ForecastGateway
	eventPublisher  queue.EventPublisher
	publishTimeout  time.Duration
	now             func() time.Time
}

func NewForecastUseCase(forecastGateway api.ForecastGateway, eventPublisher queue.EventPublisher) UseCase {
	return &forecastUseCase{
		forecastGateway: forecastGateway,
		eventPublisher:  eventPublisher,
		publishTimeout:  defaultPublishTimeout,
		now:             time.Now,
	}
}

func (useCase *forecastUseCase) GetForecast(ctx context.Context, latitude, longitude float64) (*model.ForecastResponse, error) {
	coordinate := entity.Coordinate{Latitude: latitude, Longitude: longitude}
	if err := coordinate.Validate(); err != nil {
		return nil, &model.ValidationError{Field: fieldOf(err), Message: err.Error()}
	}

	log.Debug(msg.GetMessage("forecast.request", latitude, longitude))

	period, err := useCase.forecastGateway.FetchForecastPeriod(ctx, coordinate)
	if err != nil {
		return nil, err
	}

	if period.ShortForecast == nil {
		return nil, model.NewUpstreamError(msgMissingShortForecast, nil)
	}
	if period.Temperature == nil {
		return nil, model.NewUpstreamError(msgMissingTemperature, nil)
	}

	temperatureF := *period.Temperature
	response := &model.ForecastResponse{
		Latitude:                    latitude,
		Longitude:                   longitude,
		ShortForecast:               *period.ShortForecast,
		TemperatureF:                temperatureF,
		TemperatureCharacterization: entity.CharacterizeTemperature(temperatureF),
	}

	log.Info(msg.GetMessage("forecast.served", latitude, longitude, response.ShortForecast,
		response.TemperatureF, response.TemperatureCharacterization))

	useCase.publishServed(ctx, response)

	return response, nil
}

// publishServed never fails the request, a lost event is only logged. The publish outlives a
// cancelled request but is bounded by publishTimeout.
func (useCase *forecastUseCase) publishServed(ctx context.Context, response *model.ForecastResponse) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), useCase.publishTimeout)
	defer cancel()

	event := model.ForecastServedEvent{
		EventID:                     uuid.NewString(),
		Latitude:                    response.Latitude,
		Longitude:                   response.Longitude,
		ShortForecast:               response.ShortForecast,
		TemperatureF:                response.TemperatureF,
		TemperatureCharacterization: response.TemperatureCharacterization,
		ServedAt:                    useCase.now().UTC(),
	}

	if err := useCase.eventPublisher.PublishForecastServed(ctx, event); err != nil {
		log.Warn(msg.GetMessage("forecast.event.failed", event.EventID, err))
	}
}

func fieldOf(err error) string {
	if errors.Is(err, entity.ErrLongitudeOutOfRange) {
		return "longitude"
	}
	return "latitude"
}
