package routers

import (
	"chart-service/internal/app/delivery/http/controllers"
	"chart-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachConditionRoutes(router chi.Router, middlewares *middlewares.Middlewares, conditionController *controllers.ConditionController) {
	router.With(middlewares.Authenticate).Get("/{condition_id}", conditionController.GetConditionRecord)
	router.With(middlewares.Authenticate).Post("/{condition_id}/edit-tab", conditionController.EditConditionTab)
}
