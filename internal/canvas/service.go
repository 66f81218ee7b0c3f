package canvas

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"
)

// Service coordinates object persistence and realtime broadcasts. It is
// the only mutation path into the store; every applied mutation is
// mirrored onto the hub so viewers converge without polling.
type Service struct {
	store   Store
	hub     *Hub
	logger  *slog.Logger
	metrics *Metrics
}

// NewService creates a canvas service.
func NewService(store Store, logger *slog.Logger) *Service {
	if store == nil {
		store = NewMemoryStore()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  store,
		hub:    NewHub(),
		logger: logger.With("component", "canvas"),
	}
}

// Store returns the configured store.
func (s *Service) Store() Store {
	if s == nil {
		return nil
	}
	return s.store
}

// Hub returns the realtime hub.
func (s *Service) Hub() *Hub {
	if s == nil {
		return nil
	}
	return s.hub
}

func (s *Service) SetMetrics(metrics *Metrics) {
	if s == nil {
		return
	}
	s.metrics = metrics
}

// Create inserts a new object and broadcasts it.
func (s *Service) Create(ctx context.Context, obj *Object) (*Object, error) {
	if s == nil || s.store == nil {
		return nil, errors.New("canvas service unavailable")
	}
	if obj == nil || !obj.Type.Valid() {
		return nil, errors.New("canvas: invalid object")
	}
	if err := s.store.Insert(ctx, obj); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RecordCreate()
	}
	s.broadcast(obj.CanvasID, "object_created", obj)
	return obj.Clone(), nil
}

// Get returns a single object.
func (s *Service) Get(ctx context.Context, canvasID, id string) (*Object, error) {
	if s == nil || s.store == nil {
		return nil, errors.New("canvas service unavailable")
	}
	return s.store.Get(ctx, canvasID, id)
}

// List returns all objects on a canvas in creation order.
func (s *Service) List(ctx context.Context, canvasID string) ([]*Object, error) {
	if s == nil || s.store == nil {
		return nil, errors.New("canvas service unavailable")
	}
	return s.store.List(ctx, canvasID)
}

// Patch applies a partial update to an object and broadcasts the result.
// An empty patch is accepted and leaves the object unchanged.
func (s *Service) Patch(ctx context.Context, canvasID, id string, patch Patch) (*Object, error) {
	if s == nil || s.store == nil {
		return nil, errors.New("canvas service unavailable")
	}
	obj, err := s.store.Get(ctx, canvasID, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(obj)
	obj.UpdatedAt = time.Now()
	if err := s.store.Update(ctx, obj); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RecordUpdate()
	}
	s.broadcast(canvasID, "object_updated", obj)
	return obj.Clone(), nil
}

// Delete removes an object and broadcasts the removal.
func (s *Service) Delete(ctx context.Context, canvasID, id string) error {
	if s == nil || s.store == nil {
		return errors.New("canvas service unavailable")
	}
	if err := s.store.Delete(ctx, canvasID, id); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.RecordDelete()
	}
	s.broadcast(canvasID, "object_deleted", map[string]string{"id": id})
	return nil
}

// Clear removes every object from a canvas and returns how many were removed.
func (s *Service) Clear(ctx context.Context, canvasID string) (int, error) {
	if s == nil || s.store == nil {
		return 0, errors.New("canvas service unavailable")
	}
	removed, err := s.store.Clear(ctx, canvasID)
	if err != nil {
		return 0, err
	}
	if s.metrics != nil {
		s.metrics.RecordClear()
	}
	s.broadcast(canvasID, "canvas_cleared", map[string]int{"removed": removed})
	return removed, nil
}

func (s *Service) broadcast(canvasID, msgType string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		s.logger.Warn("encode stream payload", "type", msgType, "error", err)
		return
	}
	s.hub.Broadcast(StreamMessage{
		Type:      msgType,
		CanvasID:  canvasID,
		Payload:   raw,
		Timestamp: time.Now(),
	})
}
