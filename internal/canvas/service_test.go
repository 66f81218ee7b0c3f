package canvas

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestServiceCreateBroadcasts(t *testing.T) {
	svc := NewService(nil, nil)
	messages, cancel := svc.Hub().Subscribe("c1")
	defer cancel()

	created, err := svc.Create(context.Background(), &Object{CanvasID: "c1", Type: ShapeRectangle, Width: 10, Height: 10})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("Create must return an identified object")
	}

	select {
	case msg := <-messages:
		if msg.Type != "object_created" || msg.CanvasID != "c1" {
			t.Fatalf("message = %+v", msg)
		}
		var obj Object
		if err := json.Unmarshal(msg.Payload, &obj); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if obj.ID != created.ID {
			t.Fatalf("payload id = %q, want %q", obj.ID, created.ID)
		}
	case <-time.After(time.Second):
		t.Fatal("no broadcast for create")
	}
}

func TestServicePatchAppliesPartialUpdate(t *testing.T) {
	svc := NewService(nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, &Object{CanvasID: "c1", Type: ShapeRectangle, X: 5, Fill: "#ff0000", Opacity: 1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	var patch Patch
	if err := json.Unmarshal([]byte(`{"x":50,"fill":null}`), &patch); err != nil {
		t.Fatalf("unmarshal patch: %v", err)
	}
	updated, err := svc.Patch(ctx, "c1", created.ID, patch)
	if err != nil {
		t.Fatalf("Patch: %v", err)
	}
	if updated.X != 50 || updated.Fill != "" || updated.Opacity != 1 {
		t.Fatalf("updated = %+v", updated)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) && !updated.UpdatedAt.Equal(updated.CreatedAt) {
		t.Fatal("UpdatedAt must move forward")
	}
}

func TestServicePatchMissingObject(t *testing.T) {
	svc := NewService(nil, nil)
	_, err := svc.Patch(context.Background(), "c1", "ghost", Patch{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestServiceClearReportsCountAndBroadcasts(t *testing.T) {
	svc := NewService(nil, nil)
	ctx := context.Background()
	for range 4 {
		if _, err := svc.Create(ctx, &Object{CanvasID: "c1", Type: ShapeCircle, Width: 2, Height: 2}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	messages, cancel := svc.Hub().Subscribe("c1")
	defer cancel()

	removed, err := svc.Clear(ctx, "c1")
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if removed != 4 {
		t.Fatalf("removed = %d, want 4", removed)
	}

	select {
	case msg := <-messages:
		if msg.Type != "canvas_cleared" {
			t.Fatalf("message type = %q", msg.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("no broadcast for clear")
	}
}

func TestServiceRejectsInvalidObject(t *testing.T) {
	svc := NewService(nil, nil)
	if _, err := svc.Create(context.Background(), &Object{CanvasID: "c1", Type: "hexagon"}); err == nil {
		t.Fatal("unknown shape type must be rejected")
	}
}

func TestHubSkipsSlowSubscribers(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe("c1")
	defer cancel()

	// Fill the buffer and keep broadcasting; Broadcast must not block.
	done := make(chan struct{})
	go func() {
		for range 64 {
			hub.Broadcast(StreamMessage{Type: "x", CanvasID: "c1"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Broadcast blocked on a slow subscriber")
	}
	if len(ch) == 0 {
		t.Fatal("subscriber should still have buffered messages")
	}
}
