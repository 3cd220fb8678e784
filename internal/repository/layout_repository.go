package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jengzang/slotting-backend-go/internal/models"
)

// LayoutRepository handles database operations for layouts
type LayoutRepository struct {
	db *sql.DB
}

// NewLayoutRepository creates a new layout repository
func NewLayoutRepository(db *sql.DB) *LayoutRepository {
	return &LayoutRepository{db: db}
}

const layoutColumns = `id, name, description, canvas_width, canvas_height, created_at, updated_at`

func scanLayout(row interface{ Scan(...any) error }) (models.Layout, error) {
	var l models.Layout
	err := row.Scan(&l.ID, &l.Name, &l.Description, &l.CanvasWidth, &l.CanvasHeight, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

// List returns all layouts, most recently updated first
func (r *LayoutRepository) List(ctx context.Context) ([]models.Layout, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+layoutColumns+` FROM layouts ORDER BY updated_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query layouts: %w", err)
	}
	defer rows.Close()

	layouts := []models.Layout{}
	for rows.Next() {
		l, err := scanLayout(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan layout: %w", err)
		}
		layouts = append(layouts, l)
	}
	return layouts, rows.Err()
}

// GetByID retrieves a single layout, returning models.ErrNotFound when absent
func (r *LayoutRepository) GetByID(ctx context.Context, id int64) (*models.Layout, error) {
	l, err := scanLayout(r.db.QueryRowContext(ctx, `SELECT `+layoutColumns+` FROM layouts WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("layout %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get layout: %w", err)
	}
	return &l, nil
}

// Create inserts a layout and returns it with its id
func (r *LayoutRepository) Create(ctx context.Context, l models.Layout) (*models.Layout, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO layouts (name, description, canvas_width, canvas_height) VALUES (?, ?, ?, ?)`,
		l.Name, l.Description, l.CanvasWidth, l.CanvasHeight)
	if err != nil {
		return nil, fmt.Errorf("failed to insert layout: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read layout id: %w", err)
	}
	return r.GetByID(ctx, id)
}

// Update overwrites the editable fields of a layout
func (r *LayoutRepository) Update(ctx context.Context, l models.Layout) (*models.Layout, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE layouts SET name = ?, description = ?, canvas_width = ?, canvas_height = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		l.Name, l.Description, l.CanvasWidth, l.CanvasHeight, l.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update layout: %w", err)
	}
	if err := expectAffected(res, "layout", l.ID); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, l.ID)
}

// Touch bumps the updated_at timestamp of a layout
func (r *LayoutRepository) Touch(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE layouts SET updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to touch layout: %w", err)
	}
	return nil
}

// Delete removes a layout and, through cascades, everything in it
func (r *LayoutRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM layouts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete layout: %w", err)
	}
	return expectAffected(res, "layout", id)
}

// expectAffected maps a zero-row write to models.ErrNotFound
func expectAffected(res sql.Result, what string, id any) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %v: %w", what, id, models.ErrNotFound)
	}
	return nil
}
