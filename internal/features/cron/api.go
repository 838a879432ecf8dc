package cron_feature

import (
	"patient-reports/internal/common/api"
	"patient-reports/internal/config"
	"patient-reports/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type RetentionApi struct {
	controller *RetentionController
	config     *config.Config
}

func NewRetentionApi(controller *RetentionController, config *config.Config) api.Route {
	return &RetentionApi{
		controller: controller,
		config:     config,
	}
}

func (h *RetentionApi) Setup(app *fiber.App) {
	jobs := app.Group("/api/jobs/retention",
		middleware.AuthMiddleware(h.config.SkipAuth),
		middleware.RequireRole(middleware.RoleAdmin),
	)

	jobs.Post("/run", h.controller.RunRetention)
	jobs.Get("/runs", h.controller.ListRuns)
}
