package system

import (
	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

type WebSocketController struct {
	Hub    *ReportHub
	Logger *zap.Logger
}

func NewWebSocketController(hub *ReportHub, logger *zap.Logger) *WebSocketController {
	return &WebSocketController{Hub: hub, Logger: logger}
}

// HandleReportStream pushes every newly generated rendering of one report to the
// client until either side closes.
func (h *WebSocketController) HandleReportStream(c *websocket.Conn) {
	topic := c.Params("id")
	id, messages := h.Hub.Subscribe(topic)
	defer h.Hub.Unsubscribe(topic, id)

	h.Logger.Debug("Report stream opened", zap.String("reportId", topic), zap.String("subscriber", id))

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg, ok := <-messages:
			if !ok {
				return
			}
			if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.Logger.Debug("Report stream write failed", zap.String("reportId", topic), zap.Error(err))
				return
			}
		case <-closed:
			h.Logger.Debug("Report stream closed", zap.String("reportId", topic), zap.String("subscriber", id))
			return
		}
	}
}
