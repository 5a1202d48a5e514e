package config

import (
	"chart-service/internal/pkg/constvars"
	"chart-service/internal/pkg/utils"
)

type InternalConfig struct {
	App       App          `mapstructure:"app"`
	FHIR      AppFHIR      `mapstructure:"fhir"`
	JWT       AppJWT       `mapstructure:"jwt"`
	Minio     AppMinio     `mapstructure:"minio"`
	RabbitMQ  AppRabbitMQ  `mapstructure:"rabbitmq"`
	Dimension AppDimension `mapstructure:"dimension"`
	Workspace AppWorkspace `mapstructure:"workspace"`
}

type App struct {
	Env                                      string   `mapstructure:"env"`
	Port                                     string   `mapstructure:"port"`
	Version                                  string   `mapstructure:"version"`
	Address                                  string   `mapstructure:"address"`
	Timezone                                 string   `mapstructure:"timezone"`
	EndpointPrefix                           string   `mapstructure:"endpoint_prefix"`
	AllowedOrigins                           []string `mapstructure:"allowed_origins"`
	MaxRequests                              int      `mapstructure:"max_requests"`
	ShutdownTimeoutInSeconds                 int      `mapstructure:"shutdown_timeout_in_seconds"`
	RequestBodyLimitInMegabyte               int      `mapstructure:"request_body_limit_in_megabyte"`
	MinioPreSignedUrlObjectExpiryTimeInHours int      `mapstructure:"minio_pre_signed_url_object_expiry_time_in_hours"`
}

type AppFHIR struct {
	BaseUrl                string `mapstructure:"base_url"`
	MaxRequestsPerSecond   int    `mapstructure:"max_requests_per_second"`
	RequestTimeoutInSecond int    `mapstructure:"request_timeout_in_second"`
	PageSize               int    `mapstructure:"page_size"`
}

type AppJWT struct {
	Secret string `mapstructure:"secret"`
}

type AppMinio struct {
	BucketName string `mapstructure:"bucket_name"`
}

type AppRabbitMQ struct {
	DimensionsRefreshQueue string `mapstructure:"dimensions_refresh_queue"`
}

// AppDimension holds the concept codes used to tell weight readings from height readings.
type AppDimension struct {
	WeightConcept         string `mapstructure:"weight_concept"`
	HeightConcept         string `mapstructure:"height_concept"`
	CacheTTLInSeconds     int    `mapstructure:"cache_ttl_in_seconds"`
	RefreshTimeoutSeconds int    `mapstructure:"refresh_timeout_seconds"`
}

type AppWorkspace struct {
	TTLInHours int `mapstructure:"ttl_in_hours"`
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                                      utils.GetEnvString("APP_ENV", constvars.AppEnvDevelopment),
			Port:                                     utils.GetEnvString("APP_PORT", "8080"),
			Version:                                  utils.GetEnvString("APP_VERSION", "v1"),
			Address:                                  utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                                 utils.GetEnvString("APP_TIMEZONE", "UTC"),
			EndpointPrefix:                           utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			AllowedOrigins:                           utils.GetEnvStringSlice("APP_ALLOWED_ORIGINS", []string{"*"}),
			MaxRequests:                              utils.GetEnvInt("APP_MAX_REQUEST", 20),
			ShutdownTimeoutInSeconds:                 utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			RequestBodyLimitInMegabyte:               utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 1),
			MinioPreSignedUrlObjectExpiryTimeInHours: utils.GetEnvInt("APP_MINIO_PRE_SIGNED_URL_OBJECT_EXPIRY_TIME_IN_HOURS", 1),
		},
		FHIR: AppFHIR{
			BaseUrl:                utils.GetEnvString("FHIR_BASE_URL", "http://localhost:8080/openmrs/ws/fhir2/R4"),
			MaxRequestsPerSecond:   utils.GetEnvInt("FHIR_MAX_REQUESTS_PER_SECOND", 20),
			RequestTimeoutInSecond: utils.GetEnvInt("FHIR_REQUEST_TIMEOUT_IN_SECOND", 15),
			PageSize:               utils.GetEnvInt("FHIR_PAGE_SIZE", constvars.FhirDefaultPageSize),
		},
		JWT: AppJWT{
			Secret: utils.GetEnvString("JWT_SECRET", "anyjwt"),
		},
		Minio: AppMinio{
			BucketName: utils.GetEnvString("MINIO_BUCKET_NAME", "chart-exports"),
		},
		RabbitMQ: AppRabbitMQ{
			DimensionsRefreshQueue: utils.GetEnvString("APP_RABBITMQ_DIMENSIONS_REFRESH_QUEUE", constvars.QueueDimensionsRefresh),
		},
		Dimension: AppDimension{
			WeightConcept:         utils.GetEnvString("APP_DIMENSION_WEIGHT_CONCEPT", constvars.FhirConceptWeight),
			HeightConcept:         utils.GetEnvString("APP_DIMENSION_HEIGHT_CONCEPT", constvars.FhirConceptHeight),
			CacheTTLInSeconds:     utils.GetEnvInt("APP_DIMENSIONS_CACHE_TTL_IN_SECONDS", 300),
			RefreshTimeoutSeconds: utils.GetEnvInt("APP_DIMENSIONS_REFRESH_TIMEOUT_IN_SECONDS", 30),
		},
		Workspace: AppWorkspace{
			TTLInHours: utils.GetEnvInt("APP_WORKSPACE_TTL_IN_HOURS", 12),
		},
	}
}
