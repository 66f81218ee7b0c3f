package canvas

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PostgresStore implements Store using Postgres for shared deployments.
type PostgresStore struct {
	db *sql.DB
}

// PostgresConfig tunes the connection pool.
type PostgresConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectTimeout  time.Duration
}

// DefaultPostgresConfig returns pool settings suitable for a small service.
func DefaultPostgresConfig() *PostgresConfig {
	return &PostgresConfig{
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
		ConnectTimeout:  5 * time.Second,
	}
}

// NewPostgresStoreFromDSN creates a canvas store using a DSN.
func NewPostgresStoreFromDSN(dsn string, config *PostgresConfig) (*PostgresStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("dsn is required")
	}
	if config == nil {
		config = DefaultPostgresConfig()
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), config.ConnectTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// NewPostgresStore wraps an existing connection, primarily for tests.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *PostgresStore) Insert(ctx context.Context, obj *Object) error {
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
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
	`,
		obj.ID, obj.CanvasID, string(obj.Type),
		obj.X, obj.Y, obj.Width, obj.Height, obj.X2, obj.Y2,
		obj.Fill, obj.Stroke, obj.StrokeWidth,
		obj.Rotation, obj.Opacity, obj.Text, obj.FontSize,
		obj.CreatedAt, obj.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("insert canvas object: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, canvasID, id string) (*Object, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+objectColumns+` FROM canvas_objects WHERE canvas_id = $1 AND id = $2
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

func (s *PostgresStore) List(ctx context.Context, canvasID string) ([]*Object, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+objectColumns+` FROM canvas_objects
		WHERE canvas_id = $1 ORDER BY created_at ASC, id ASC
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

func (s *PostgresStore) Update(ctx context.Context, obj *Object) error {
	if obj == nil || obj.CanvasID == "" || obj.ID == "" {
		return ErrNotFound
	}
	if obj.UpdatedAt.IsZero() {
		obj.UpdatedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE canvas_objects
		SET type = $1, x = $2, y = $3, width = $4, height = $5, x2 = $6, y2 = $7,
			fill = $8, stroke = $9, stroke_width = $10, rotation = $11, opacity = $12,
			text = $13, font_size = $14, updated_at = $15
		WHERE canvas_id = $16 AND id = $17
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

func (s *PostgresStore) Delete(ctx context.Context, canvasID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM canvas_objects WHERE canvas_id = $1 AND id = $2`, canvasID, id)
	if err != nil {
		return fmt.Errorf("delete canvas object: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Clear(ctx context.Context, canvasID string) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM canvas_objects WHERE canvas_id = $1`, canvasID)
	if err != nil {
		return 0, fmt.Errorf("clear canvas: %w", err)
	}
	rows, _ := res.RowsAffected()
	return int(rows), nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	pqErr, ok := err.(*pq.Error)
	if ok && pqErr.Code == "23505" {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate")
}
