package canvas

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

func newMockPostgresStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresStore(db), mock
}

func objectRows(obj *Object) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "canvas_id", "type", "x", "y", "width", "height", "x2", "y2",
		"fill", "stroke", "stroke_width", "rotation", "opacity", "text", "font_size",
		"created_at", "updated_at",
	}).AddRow(
		obj.ID, obj.CanvasID, string(obj.Type), obj.X, obj.Y, obj.Width, obj.Height,
		obj.X2, obj.Y2, obj.Fill, obj.Stroke, obj.StrokeWidth, obj.Rotation,
		obj.Opacity, obj.Text, obj.FontSize, obj.CreatedAt, obj.UpdatedAt,
	)
}

func TestPostgresStoreInsert(t *testing.T) {
	store, mock := newMockPostgresStore(t)

	mock.ExpectExec("INSERT INTO canvas_objects").
		WillReturnResult(sqlmock.NewResult(0, 1))

	obj := &Object{CanvasID: "c1", Type: ShapeRectangle, Width: 10, Height: 10}
	if err := store.Insert(context.Background(), obj); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if obj.ID == "" {
		t.Fatal("Insert must assign an identifier")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgresStoreInsertUniqueViolation(t *testing.T) {
	store, mock := newMockPostgresStore(t)

	mock.ExpectExec("INSERT INTO canvas_objects").
		WillReturnError(&pq.Error{Code: "23505"})

	err := store.Insert(context.Background(), &Object{ID: "dup", CanvasID: "c1", Type: ShapeCircle})
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("err = %v, want ErrAlreadyExists", err)
	}
}

func TestPostgresStoreGet(t *testing.T) {
	store, mock := newMockPostgresStore(t)

	now := time.Now()
	want := &Object{
		ID: "obj-1", CanvasID: "c1", Type: ShapeText,
		X: 5, Y: 6, Width: 48, Height: 20, Text: "hi", FontSize: 16,
		Opacity: 1, CreatedAt: now, UpdatedAt: now,
	}
	mock.ExpectQuery("SELECT (.+) FROM canvas_objects WHERE canvas_id").
		WithArgs("c1", "obj-1").
		WillReturnRows(objectRows(want))

	got, err := store.Get(context.Background(), "c1", "obj-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != "obj-1" || got.Type != ShapeText || got.Text != "hi" {
		t.Fatalf("Get returned %+v", got)
	}
}

func TestPostgresStoreGetNotFound(t *testing.T) {
	store, mock := newMockPostgresStore(t)

	mock.ExpectQuery("SELECT (.+) FROM canvas_objects WHERE canvas_id").
		WithArgs("c1", "ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := store.Get(context.Background(), "c1", "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPostgresStoreUpdateNotFound(t *testing.T) {
	store, mock := newMockPostgresStore(t)

	mock.ExpectExec("UPDATE canvas_objects").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Update(context.Background(), &Object{ID: "ghost", CanvasID: "c1", Type: ShapeRectangle})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPostgresStoreClear(t *testing.T) {
	store, mock := newMockPostgresStore(t)

	mock.ExpectExec("DELETE FROM canvas_objects WHERE canvas_id").
		WithArgs("c1").
		WillReturnResult(sqlmock.NewResult(0, 7))

	removed, err := store.Clear(context.Background(), "c1")
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if removed != 7 {
		t.Fatalf("removed = %d, want 7", removed)
	}
}
