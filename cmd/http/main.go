package main

import (
	"chart-service/internal/app/config"
	"chart-service/internal/app/delivery/http/controllers"
	"chart-service/internal/app/delivery/http/middlewares"
	"chart-service/internal/app/delivery/http/routers"
	"chart-service/internal/app/drivers/database"
	"chart-service/internal/app/drivers/logger"
	"chart-service/internal/app/drivers/messaging"
	"chart-service/internal/app/drivers/storage"
	"chart-service/internal/app/services/core/conditions"
	"chart-service/internal/app/services/core/dimensions"
	"chart-service/internal/app/services/core/workspace"
	"chart-service/internal/app/services/fhir_spark"
	conditionsFhir "chart-service/internal/app/services/fhir_spark/conditions"
	observationsFhir "chart-service/internal/app/services/fhir_spark/observations"
	"chart-service/internal/app/services/shared/locker"
	"chart-service/internal/app/services/shared/redis"
	"chart-service/internal/app/services/shared/refreshqueue"
	sharedStorage "chart-service/internal/app/services/shared/storage"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatal("Error loading location", zap.Error(err))
	}
	time.Local = location

	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig, internalConfig.Minio.BucketName)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		Redis:          redisClient,
		Logger:         log,
		RabbitMQ:       rabbitMQ,
		Minio:          minioClient,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	err = bootstrapingTheApp(bootstrap)
	if err != nil {
		log.Fatal("Error bootstrapping the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", internalConfig.App.Address, internalConfig.App.Port),
		Handler: chiRouter,
	}

	go func() {
		log.Info("Server started", zap.String("addr", server.Addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Error shutting down dependencies", zap.Error(err))
	}

	log.Info("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	internalConfig := bootstrap.InternalConfig
	log := bootstrap.Logger

	// Shared
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockService := locker.NewLockService(redisRepository, log)
	minioStorage := sharedStorage.NewMinioStorage(bootstrap.Minio)
	refreshQueue, err := refreshqueue.NewDimensionsRefreshQueue(
		bootstrap.RabbitMQ,
		internalConfig.RabbitMQ.DimensionsRefreshQueue,
		1,
		log,
	)
	if err != nil {
		return err
	}

	// FHIR
	requester := fhir_spark.NewRequester(
		internalConfig.FHIR.BaseUrl,
		time.Duration(internalConfig.FHIR.RequestTimeoutInSecond)*time.Second,
		internalConfig.FHIR.MaxRequestsPerSecond,
	)
	observationFhirClient := observationsFhir.NewObservationFhirClient(requester, log)
	conditionFhirClient := conditionsFhir.NewConditionFhirClient(requester, log)

	// Workspace
	workspaceService := workspace.NewWorkspaceService(redisRepository, lockService, internalConfig, log)

	// Dimensions
	dimensionUsecase := dimensions.NewDimensionUsecase(
		observationFhirClient,
		redisRepository,
		minioStorage,
		refreshQueue,
		internalConfig,
		log,
	)
	refresher := dimensions.NewRefresher(log, refreshQueue, dimensionUsecase)
	stopRefresher, err := refresher.Start(context.Background())
	if err != nil {
		return err
	}
	bootstrap.WorkerStop = func() {
		stopRefresher()
		if err := refreshQueue.Close(); err != nil {
			log.Warn("Error closing dimensions refresh queue", zap.Error(err))
		}
	}

	// Conditions
	conditionUsecase := conditions.NewConditionUsecase(conditionFhirClient, workspaceService, internalConfig, log)

	// Delivery
	routers.SetupRoutes(
		bootstrap.Router,
		internalConfig,
		middlewares.NewMiddlewares(log, internalConfig),
		controllers.NewDimensionController(log, dimensionUsecase),
		controllers.NewConditionController(log, conditionUsecase),
		controllers.NewWorkspaceController(log, workspaceService),
		controllers.NewHealthController(log, bootstrap.Redis, internalConfig.App.Version),
	)

	return nil
}
