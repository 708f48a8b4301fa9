package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"forecast-api/configs"
	"forecast-api/docs"
	"forecast-api/internal/application/controller"
	"forecast-api/internal/application/middleware"
	"forecast-api/internal/application/schedule"
	"forecast-api/internal/domain/gateway/api"
	"forecast-api/internal/domain/gateway/cache"
	"forecast-api/internal/domain/gateway/queue"
	"forecast-api/internal/domain/usecase/forecast"
	"forecast-api/internal/domain/usecase/health"
	awsinfra "forecast-api/internal/infra/aws"
	pkghttp "forecast-api/pkg/http"
	"forecast-api/pkg/log"
	"forecast-api/pkg/msg"
	"forecast-api/pkg/redis"
	"forecast-api/pkg/resource"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// @title Forecast API
// @version 1.0
// @description Simplified National Weather Service forecast for a coordinate.
// @BasePath /
func main() {
	appName := resource.GetString("app.name")
	log.Configure(appName, resource.GetString("app.log.level"))
	defer log.Sync()

	log.Info(msg.GetMessage("app.start", appName), zap.String("properties", configs.Env.PropertiesFilePath))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Init infra
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	middleware.SetupRequestID(e)
	middleware.SetupRequestLogger(e)
	middleware.SetupRecover(e)

	contextPath := resource.GetString("app.server.context-path")
	router := e.Group(contextPath)
	if contextPath != "" {
		docs.SwaggerInfo.BasePath = contextPath
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Init ForecastGateway
	nwsGateway := api.NewNWSForecastGateway(resource.GetString("app.nws.base-url"), pkghttp.ClientOptions{
		FollowRedirect: true,
		ReadTimeout:    resource.GetDuration("app.nws.timeout"),
		DefaultHeaders: map[string]string{
			"User-Agent": resource.GetString("app.nws.user-agent"),
			"Accept":     resource.GetString("app.nws.accept"),
		},
		Logger: pkghttp.NewZapLogger(),
	})
	forecastGateway := nwsGateway

	// Init rate limiter
	cacheGateway := cache.NewDisabledHealthGateway()
	var redisClient *redis.Client
	if resource.GetBool("app.rate-limit.enabled") {
		var limiter *redis.RateLimiter
		redisClient, limiter = newRateLimiter()
		forecastGateway = api.NewRateLimitedForecastGateway(nwsGateway, limiter)
		cacheGateway = cache.NewRedisHealthGateway(redis.NewHealthChecker(redisClient))
	}

	// Init event publisher
	eventPublisher := queue.NewNoopEventPublisher()
	if resource.GetBool("app.events.enabled") {
		eventPublisher = newSQSEventPublisher(ctx)
	}

	// Init UseCase
	forecastUseCase := forecast.NewForecastUseCase(forecastGateway, eventPublisher)
	healthUseCase := health.NewHealthUseCase(nwsGateway, cacheGateway, eventPublisher)

	// Init Controller
	forecastController := controller.NewForecastController(router, forecastUseCase)
	healthController := controller.NewHealthController(router, healthUseCase)

	// Init Routes
	forecastController.InitForecastRoutes()
	healthController.InitHealthRoutes()

	// Init Schedule
	var statusScheduler *schedule.ProviderStatusScheduler
	if resource.GetBool("app.nws.status.enabled") {
		statusScheduler = schedule.NewProviderStatusScheduler(nwsGateway, resource.GetString("app.nws.status.cron"), resource.GetDuration("app.nws.timeout"))
		if err := statusScheduler.InitProviderStatusTasks(); err != nil {
			log.Fatal("Failed to start provider status scheduler", zap.Error(err))
		}
	}

	// Start Routes
	port := resource.GetString("app.server.port")
	go func() {
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server stopped unexpectedly", zap.Error(err))
		}
	}()
	log.Info(msg.GetMessage("app.started", appName, port))

	<-ctx.Done()
	log.Info(msg.GetMessage("app.stop", appName))

	if statusScheduler != nil {
		statusScheduler.Stop()
	}

	shutdownTimeout := resource.GetDuration("app.server.shutdown-timeout")
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Redis close error", zap.Error(err))
		}
	}

	log.Info(msg.GetMessage("app.stopped", appName))
}

func newRateLimiter() (*redis.Client, *redis.RateLimiter) {
	redisClient, err := redis.NewClient(redis.NewRedisConfig().
		WithHost(resource.GetString("app.redis.host")).
		WithPort(resource.GetInt("app.redis.port")).
		WithPassword(resource.GetString("app.redis.password")).
		WithDatabase(resource.GetInt("app.redis.database")))
	if err != nil {
		log.Fatal("Failed to create Redis client", zap.Error(err))
	}

	limiter, err := redis.NewRateLimiter(redisClient, resource.GetString("app.rate-limit.key"), redis.NewRateLimiterOptions().
		WithNamespace(resource.GetString("app.rate-limit.namespace")).
		WithCacheName(resource.GetString("app.rate-limit.key")).
		WithMaxTransactionsPerSecond(resource.GetInt("app.rate-limit.max-per-second")).
		WithMaxTransactionsPerMinute(resource.GetInt("app.rate-limit.max-per-minute")).
		WithMaxActiveTransactions(resource.GetInt("app.rate-limit.max-active")).
		WithTransactionTTL(resource.GetDuration("app.rate-limit.transaction-ttl")))
	if err != nil {
		log.Fatal("Failed to create rate limiter", zap.Error(err))
	}

	return redisClient, limiter
}

func newSQSEventPublisher(ctx context.Context) queue.EventPublisher {
	settings := awsinfra.SettingsFromProperties()

	cfg, err := awsinfra.LoadConfig(ctx, settings)
	if err != nil {
		log.Fatal("Failed to load AWS configuration", zap.Error(err))
	}

	sqsClient := awsinfra.NewSqsClient(cfg, settings.Endpoint)
	return queue.NewSQSEventPublisher(awsinfra.NewSQSSenderAdapter(sqsClient), resource.GetString("app.events.queue-name"))
}
