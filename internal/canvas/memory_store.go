package canvas

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore provides an in-memory canvas store for testing and local usage.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]map[string]*Object
}

// NewMemoryStore creates a new in-memory canvas store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: map[string]map[string]*Object{}}
}

func (s *MemoryStore) Insert(_ context.Context, obj *Object) error {
	if obj == nil || obj.CanvasID == "" {
		return ErrNotFound
	}
	if obj.ID == "" {
		obj.ID = uuid.NewString()
	}
	now := time.Now()
	if obj.CreatedAt.IsZero() {
		obj.CreatedAt = now
	}
	if obj.UpdatedAt.IsZero() {
		obj.UpdatedAt = obj.CreatedAt
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	byID := s.objects[obj.CanvasID]
	if byID == nil {
		byID = map[string]*Object{}
		s.objects[obj.CanvasID] = byID
	}
	if _, exists := byID[obj.ID]; exists {
		return ErrAlreadyExists
	}
	byID[obj.ID] = obj.Clone()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, canvasID, id string) (*Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[canvasID][id]
	if !ok {
		return nil, ErrNotFound
	}
	return obj.Clone(), nil
}

func (s *MemoryStore) List(_ context.Context, canvasID string) ([]*Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byID := s.objects[canvasID]
	listed := make([]*Object, 0, len(byID))
	for _, obj := range byID {
		listed = append(listed, obj.Clone())
	}
	sort.Slice(listed, func(i, j int) bool {
		if listed[i].CreatedAt.Equal(listed[j].CreatedAt) {
			return listed[i].ID < listed[j].ID
		}
		return listed[i].CreatedAt.Before(listed[j].CreatedAt)
	})
	return listed, nil
}

func (s *MemoryStore) Update(_ context.Context, obj *Object) error {
	if obj == nil || obj.CanvasID == "" || obj.ID == "" {
		return ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.objects[obj.CanvasID][obj.ID]
	if !ok {
		return ErrNotFound
	}
	if obj.CreatedAt.IsZero() {
		obj.CreatedAt = stored.CreatedAt
	}
	if obj.UpdatedAt.IsZero() {
		obj.UpdatedAt = time.Now()
	}
	s.objects[obj.CanvasID][obj.ID] = obj.Clone()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, canvasID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[canvasID][id]; !ok {
		return ErrNotFound
	}
	delete(s.objects[canvasID], id)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, canvasID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := len(s.objects[canvasID])
	delete(s.objects, canvasID)
	return removed, nil
}
