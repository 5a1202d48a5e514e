package routers

import (
	"chart-service/internal/app/delivery/http/controllers"
	"chart-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachWorkspaceRoutes(router chi.Router, middlewares *middlewares.Middlewares, workspaceController *controllers.WorkspaceController) {
	router.Use(middlewares.Authenticate)
	router.Get("/", workspaceController.ListTabs)
	router.Post("/", workspaceController.OpenTab)
	router.Get("/{component}", workspaceController.FindTab)
	router.Delete("/{tab_id}", workspaceController.CloseTab)
}
