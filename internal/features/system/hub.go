package system

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const subscriberBuffer = 16

// ReportHub fans rendered reports out to websocket subscribers, keyed by report ID.
type ReportHub struct {
	logger *zap.Logger

	mu     sync.RWMutex
	topics map[string]map[string]chan []byte
}

func NewReportHub(logger *zap.Logger) *ReportHub {
	return &ReportHub{
		logger: logger,
		topics: make(map[string]map[string]chan []byte),
	}
}

// Subscribe registers a subscriber on topic. The channel is closed by Unsubscribe.
func (h *ReportHub) Subscribe(topic string) (string, <-chan []byte) {
	id := uuid.NewString()
	ch := make(chan []byte, subscriberBuffer)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.topics[topic] == nil {
		h.topics[topic] = make(map[string]chan []byte)
	}
	h.topics[topic][id] = ch
	return id, ch
}

func (h *ReportHub) Unsubscribe(topic, id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs := h.topics[topic]
	if ch, ok := subs[id]; ok {
		close(ch)
		delete(subs, id)
	}
	if len(subs) == 0 {
		delete(h.topics, topic)
	}
}

// Publish sends payload as JSON to every subscriber of topic. Slow subscribers
// miss messages instead of blocking the publisher.
func (h *ReportHub) Publish(topic string, payload any) {
	msg, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to encode hub message", zap.String("reportId", topic), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, ch := range h.topics[topic] {
		select {
		case ch <- msg:
		default:
			h.logger.Warn("Dropping message for slow subscriber",
				zap.String("reportId", topic),
				zap.String("subscriber", id))
		}
	}
}

func (h *ReportHub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}
