package system

import (
	"patient-reports/internal/common/api"
	"patient-reports/internal/config"
	"patient-reports/internal/middleware"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type WebSocketApi struct {
	Controller *WebSocketController
	Config     *config.Config
}

func NewWebSocketApi(controller *WebSocketController, cfg *config.Config) api.Route {
	return &WebSocketApi{
		Controller: controller,
		Config:     cfg,
	}
}

func (h *WebSocketApi) Setup(app *fiber.App) {
	app.Get("/api/ws/reports/:id",
		requireUpgrade,
		middleware.AuthMiddleware(h.Config.SkipAuth),
		middleware.RequireRole(middleware.RoleAnalyst, middleware.RoleClinician),
		websocket.New(h.Controller.HandleReportStream),
	)
}

func requireUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}
