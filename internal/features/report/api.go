package report

import (
	"patient-reports/internal/common/api"
	"patient-reports/internal/config"
	"patient-reports/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ReportApi struct {
	ReportController *ReportController
	Config           *config.Config
}

func NewReportApi(reportController *ReportController, config *config.Config) api.Route {
	return &ReportApi{
		ReportController: reportController,
		Config:           config,
	}
}

func (api *ReportApi) Setup(app *fiber.App) {
	auth := middleware.AuthMiddleware(api.Config.SkipAuth)
	locale := middleware.LocaleMiddleware()
	write := middleware.RequireRole(middleware.RoleAnalyst)
	read := middleware.RequireRole(middleware.RoleAnalyst, middleware.RoleClinician)

	reports := app.Group("/api/reports", auth, locale)
	reports.Post("/", write, api.ReportController.Create)
	reports.Get("/", read, api.ReportController.List)
	reports.Get("/:id", read, api.ReportController.Get)
	reports.Put("/:id", write, api.ReportController.Update)
	reports.Delete("/:id", middleware.RequireRole(middleware.RoleAdmin), api.ReportController.Delete)
	reports.Post("/:id/generated", write, api.ReportController.SaveGenerated)
	reports.Get("/:id/generated", read, api.ReportController.ListGenerated)
	reports.Get("/:id/render", read, api.ReportController.RenderLatest)

	generated := app.Group("/api/generated", auth, locale, read)
	generated.Get("/:id/render", api.ReportController.RenderGenerated)
	generated.Get("/:id/export", api.ReportController.ExportExcel)
	generated.Get("/:id/charts/:index/image", api.ReportController.ChartImage)

	app.Post("/api/render", auth, locale, read, api.ReportController.RenderPayload)
}
