package canvas

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore implements Store using a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS canvas_objects (
	id TEXT PRIMARY KEY,
	canvas_id TEXT NOT NULL,
	type TEXT NOT NULL,
	x REAL NOT NULL,
	y REAL NOT NULL,
	width REAL NOT NULL,
	height REAL NOT NULL,
	x2 REAL NOT NULL DEFAULT 0,
	y2 REAL NOT NULL DEFAULT 0,
	fill TEXT NOT NULL DEFAULT '',
	stroke TEXT NOT NULL DEFAULT '',
	stroke_width REAL NOT NULL DEFAULT 0,
	rotation REAL NOT NULL DEFAULT 0,
	opacity REAL NOT NULL DEFAULT 1,
	text TEXT NOT NULL DEFAULT '',
	font_size REAL NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_canvas_objects_canvas ON canvas_objects(canvas_id);
`

// NewSQLiteStore opens (creating if necessary) a SQLite-backed canvas
// store at the given path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// modernc sqlite serializes writes itself; a single connection avoids
	// SQLITE_BUSY under concurrent plans.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate canvas schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

const objectColumns = `id, canvas_id, type, x, y, width, height, x2, y2, fill, stroke, stroke_width, rotation, opacity, text, font_size, created_at, updated_at`

func (s *SQLiteStore) Insert(ctx context.Context, obj *Object) error {
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
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO canvas_objects (`+objectColumns+`)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	`,
		obj.ID, obj.CanvasID, string(obj.Type),
		obj.X, obj.Y, obj.Width, obj.Height, obj.X2, obj.Y2,
		obj.Fill, obj.Stroke, obj.StrokeWidth,
		obj.Rotation, obj.Opacity, obj.Text, obj.FontSize,
		obj.CreatedAt, obj.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return ErrAlreadyExists
		}
		return fmt.Errorf("insert canvas object: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, canvasID, id string) (*Object, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+objectColumns+` FROM canvas_objects WHERE canvas_id = ? AND id = ?
	`, canvasID, id)
	obj, err := scanObject(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get canvas object: %w", err)
	}
	return obj, nil
}

func (s *SQLiteStore) List(ctx context.Context, canvasID string) ([]*Object, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+objectColumns+` FROM canvas_objects
		WHERE canvas_id = ? ORDER BY created_at ASC, id ASC
	`, canvasID)
	if err != nil {
		return nil, fmt.Errorf("list canvas objects: %w", err)
	}
	defer rows.Close()

	objects := []*Object{}
	for rows.Next() {
		obj, err := scanObject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan canvas object: %w", err)
		}
		objects = append(objects, obj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list canvas objects: %w", err)
	}
	return objects, nil
}

func (s *SQLiteStore) Update(ctx context.Context, obj *Object) error {
	if obj == nil || obj.CanvasID == "" || obj.ID == "" {
		return ErrNotFound
	}
	if obj.UpdatedAt.IsZero() {
		obj.UpdatedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE canvas_objects
		SET type = ?, x = ?, y = ?, width = ?, height = ?, x2 = ?, y2 = ?,
			fill = ?, stroke = ?, stroke_width = ?, rotation = ?, opacity = ?,
			text = ?, font_size = ?, updated_at = ?
		WHERE canvas_id = ? AND id = ?
	`,
		string(obj.Type), obj.X, obj.Y, obj.Width, obj.Height, obj.X2, obj.Y2,
		obj.Fill, obj.Stroke, obj.StrokeWidth, obj.Rotation, obj.Opacity,
		obj.Text, obj.FontSize, obj.UpdatedAt,
		obj.CanvasID, obj.ID,
	)
	if err != nil {
		return fmt.Errorf("update canvas object: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, canvasID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM canvas_objects WHERE canvas_id = ? AND id = ?`, canvasID, id)
	if err != nil {
		return fmt.Errorf("delete canvas object: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context, canvasID string) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM canvas_objects WHERE canvas_id = ?`, canvasID)
	if err != nil {
		return 0, fmt.Errorf("clear canvas: %w", err)
	}
	rows, _ := res.RowsAffected()
	return int(rows), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanObject(row rowScanner) (*Object, error) {
	var obj Object
	var shapeType string
	if err := row.Scan(
		&obj.ID, &obj.CanvasID, &shapeType,
		&obj.X, &obj.Y, &obj.Width, &obj.Height, &obj.X2, &obj.Y2,
		&obj.Fill, &obj.Stroke, &obj.StrokeWidth,
		&obj.Rotation, &obj.Opacity, &obj.Text, &obj.FontSize,
		&obj.CreatedAt, &obj.UpdatedAt,
	); err != nil {
		return nil, err
	}
	obj.Type = ShapeType(shapeType)
	return &obj, nil
}
