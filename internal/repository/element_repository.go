package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jengzang/slotting-backend-go/internal/database"
	"github.com/jengzang/slotting-backend-go/internal/models"
)

// ElementRepository handles database operations for warehouse elements
type ElementRepository struct {
	db *sql.DB
}

// NewElementRepository creates a new element repository
func NewElementRepository(db *sql.DB) *ElementRepository {
	return &ElementRepository{db: db}
}

const elementColumns = `id, layout_id, label, element_type, x_coordinate, y_coordinate, width, height, rotation, capacity`

func scanElement(row interface{ Scan(...any) error }) (models.WarehouseElement, error) {
	var e models.WarehouseElement
	err := row.Scan(&e.ID, &e.LayoutID, &e.Label, &e.Type, &e.X, &e.Y, &e.Width, &e.Height, &e.Rotation, &e.Capacity)
	return e, err
}

// ListByLayout returns the elements of a layout, optionally filtered by type
func (r *ElementRepository) ListByLayout(ctx context.Context, layoutID int64, elementType string) ([]models.WarehouseElement, error) {
	query := `SELECT ` + elementColumns + ` FROM warehouse_elements`

	conditions := []string{"layout_id = ?"}
	args := []interface{}{layoutID}
	if elementType != "" {
		conditions = append(conditions, "element_type = ?")
		args = append(args, elementType)
	}
	query += " WHERE " + strings.Join(conditions, " AND ") + " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query elements: %w", err)
	}
	defer rows.Close()

	elements := []models.WarehouseElement{}
	for rows.Next() {
		e, err := scanElement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan element: %w", err)
		}
		elements = append(elements, e)
	}
	return elements, rows.Err()
}

// GetByID retrieves a single element
func (r *ElementRepository) GetByID(ctx context.Context, id int64) (*models.WarehouseElement, error) {
	e, err := scanElement(r.db.QueryRowContext(ctx, `SELECT `+elementColumns+` FROM warehouse_elements WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("element %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get element: %w", err)
	}
	return &e, nil
}

// Create inserts an element
func (r *ElementRepository) Create(ctx context.Context, e models.WarehouseElement) (*models.WarehouseElement, error) {
	id, err := insertElement(ctx, r.db, e)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Update overwrites an element's geometry and attributes
func (r *ElementRepository) Update(ctx context.Context, e models.WarehouseElement) (*models.WarehouseElement, error) {
	res, err := updateElement(ctx, r.db, e)
	if err != nil {
		return nil, err
	}
	if err := expectAffected(res, "element", e.ID); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, e.ID)
}

// Delete removes an element together with its pick history
func (r *ElementRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM warehouse_elements WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete element: %w", err)
	}
	return expectAffected(res, "element", id)
}

// SaveCanvas replaces the element set of a layout in one transaction.
// Elements with an id that belongs to the layout are updated, the rest are
// inserted, and stored elements missing from the set are deleted.
func (r *ElementRepository) SaveCanvas(ctx context.Context, layoutID int64, elements []models.WarehouseElement) ([]models.WarehouseElement, error) {
	err := database.Transaction(r.db, func(tx *sql.Tx) error {
		existing := make(map[int64]bool)
		rows, err := tx.QueryContext(ctx, `SELECT id FROM warehouse_elements WHERE layout_id = ?`, layoutID)
		if err != nil {
			return fmt.Errorf("failed to query elements: %w", err)
		}
		for rows.Next() {
			var id int64
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan element id: %w", err)
			}
			existing[id] = true
		}
		rows.Close()

		keep := make(map[int64]bool, len(elements))
		for _, e := range elements {
			e.LayoutID = layoutID
			if e.ID > 0 && existing[e.ID] {
				if _, err := updateElement(ctx, tx, e); err != nil {
					return err
				}
				keep[e.ID] = true
				continue
			}
			if _, err := insertElement(ctx, tx, e); err != nil {
				return err
			}
		}

		for id := range existing {
			if keep[id] {
				continue
			}
			if _, err := tx.ExecContext(ctx, `DELETE FROM warehouse_elements WHERE id = ?`, id); err != nil {
				return fmt.Errorf("failed to delete element %d: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.ListByLayout(ctx, layoutID, "")
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertElement(ctx context.Context, ex execer, e models.WarehouseElement) (int64, error) {
	res, err := ex.ExecContext(ctx,
		`INSERT INTO warehouse_elements (layout_id, label, element_type, x_coordinate, y_coordinate, width, height, rotation, capacity)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.LayoutID, e.Label, e.Type, e.X, e.Y, e.Width, e.Height, e.Rotation, e.Capacity)
	if err != nil {
		return 0, fmt.Errorf("failed to insert element: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read element id: %w", err)
	}
	return id, nil
}

func updateElement(ctx context.Context, ex execer, e models.WarehouseElement) (sql.Result, error) {
	res, err := ex.ExecContext(ctx,
		`UPDATE warehouse_elements
		SET label = ?, element_type = ?, x_coordinate = ?, y_coordinate = ?, width = ?, height = ?, rotation = ?, capacity = ?
		WHERE id = ?`,
		e.Label, e.Type, e.X, e.Y, e.Width, e.Height, e.Rotation, e.Capacity, e.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update element: %w", err)
	}
	return res, nil
}
