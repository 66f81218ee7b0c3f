package canvas

import (
	"encoding/json"
	"sync"
	"time"
)

// StreamMessage is the envelope sent over the canvas realtime stream.
type StreamMessage struct {
	Type      string          `json:"type"`
	CanvasID  string          `json:"canvas_id"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp time.Time       `json:"ts"`
}

// Hub manages realtime subscribers for canvases.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan StreamMessage]struct{}
}

// NewHub creates a new hub.
func NewHub() *Hub {
	return &Hub{subscribers: make(map[string]map[chan StreamMessage]struct{})}
}

// Subscribe registers a listener for a canvas.
func (h *Hub) Subscribe(canvasID string) (chan StreamMessage, func()) {
	ch := make(chan StreamMessage, 16)
	h.mu.Lock()
	listeners := h.subscribers[canvasID]
	if listeners == nil {
		listeners = make(map[chan StreamMessage]struct{})
		h.subscribers[canvasID] = listeners
	}
	listeners[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		listeners := h.subscribers[canvasID]
		if listeners != nil {
			delete(listeners, ch)
			if len(listeners) == 0 {
				delete(h.subscribers, canvasID)
			}
		}
		h.mu.Unlock()
		close(ch)
	}
	return ch, cancel
}

// Broadcast delivers a message to all subscribers for the canvas.
// Slow subscribers are skipped rather than blocking a plan step.
func (h *Hub) Broadcast(msg StreamMessage) {
	if h == nil {
		return
	}
	h.mu.RLock()
	listeners := h.subscribers[msg.CanvasID]
	for ch := range listeners {
		select {
		case ch <- msg:
		default:
		}
	}
	h.mu.RUnlock()
}
