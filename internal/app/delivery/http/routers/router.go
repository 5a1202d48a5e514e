package routers

import (
	"chart-service/internal/app/config"
	"chart-service/internal/app/delivery/http/controllers"
	"chart-service/internal/app/delivery/http/middlewares"
	"fmt"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	dimensionController *controllers.DimensionController,
	conditionController *controllers.ConditionController,
	workspaceController *controllers.WorkspaceController,
	healthController *controllers.HealthController,
) {
	allowedOrigins := internalConfig.App.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	corsOptions := cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	if internalConfig.App.MaxRequests > 0 {
		router.Use(httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second))
	}

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.BodyLimit)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Get("/health", healthController.Check)

			r.Route("/patients/{patient_id}/dimensions", func(r chi.Router) {
				attachDimensionRoutes(r, middlewares, dimensionController)
			})

			r.Route("/conditions", func(r chi.Router) {
				attachConditionRoutes(r, middlewares, conditionController)
			})

			r.Route("/workspace/tabs", func(r chi.Router) {
				attachWorkspaceRoutes(r, middlewares, workspaceController)
			})
		})
	})
}
