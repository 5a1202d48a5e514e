package routers

import (
	"chart-service/internal/app/delivery/http/controllers"
	"chart-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachDimensionRoutes(router chi.Router, middlewares *middlewares.Middlewares, dimensionController *controllers.DimensionController) {
	router.With(middlewares.Authenticate).Get("/", dimensionController.GetDimensions)
	router.With(middlewares.Authenticate).Post("/", dimensionController.RecordDimensions)
	router.With(middlewares.Authenticate).Get("/export", dimensionController.ExportDimensions)
	router.With(middlewares.Authenticate).Put("/{observation_id}", dimensionController.UpdateDimension)
	router.With(middlewares.Authenticate).Delete("/{observation_id}", dimensionController.DeleteDimension)
}
