package controllers

import (
	"chart-service/internal/pkg/constvars"
	"chart-service/internal/pkg/exceptions"
	"chart-service/internal/pkg/utils"
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type HealthController struct {
	Log     *zap.Logger
	Redis   *redis.Client
	Version string
}

func NewHealthController(logger *zap.Logger, redisClient *redis.Client, version string) *HealthController {
	return &HealthController{
		Log:     logger,
		Redis:   redisClient,
		Version: version,
	}
}

// Check reports the service as healthy when Redis answers a ping.
func (ctrl *HealthController) Check(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{
		"version": ctrl.Version,
		"redis":   constvars.ResponseSuccess,
	}

	if ctrl.Redis != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := ctrl.Redis.Ping(ctx).Err(); err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrDependencyUnavailable(err, "redis"))
			return
		}
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthCheckSuccessMessage, status)
}
