package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jengzang/slotting-backend-go/internal/database"
	"github.com/jengzang/slotting-backend-go/internal/models"
)

// RouteMarkerRepository handles database operations for route markers
type RouteMarkerRepository struct {
	db *sql.DB
}

// NewRouteMarkerRepository creates a new route marker repository
func NewRouteMarkerRepository(db *sql.DB) *RouteMarkerRepository {
	return &RouteMarkerRepository{db: db}
}

const markerColumns = `id, layout_id, label, marker_type, x_coordinate, y_coordinate, sequence_order`

func scanMarker(row interface{ Scan(...any) error }) (models.RouteMarker, error) {
	var m models.RouteMarker
	err := row.Scan(&m.ID, &m.LayoutID, &m.Label, &m.MarkerType, &m.X, &m.Y, &m.SequenceOrder)
	return m, err
}

// ListByLayout returns the markers of a layout in sequence order
func (r *RouteMarkerRepository) ListByLayout(ctx context.Context, layoutID int64) ([]models.RouteMarker, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+markerColumns+` FROM route_markers WHERE layout_id = ? ORDER BY sequence_order, id`, layoutID)
	if err != nil {
		return nil, fmt.Errorf("failed to query route markers: %w", err)
	}
	defer rows.Close()

	markers := []models.RouteMarker{}
	for rows.Next() {
		m, err := scanMarker(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan route marker: %w", err)
		}
		markers = append(markers, m)
	}
	return markers, rows.Err()
}

// GetByID retrieves a single marker
func (r *RouteMarkerRepository) GetByID(ctx context.Context, id int64) (*models.RouteMarker, error) {
	m, err := scanMarker(r.db.QueryRowContext(ctx, `SELECT `+markerColumns+` FROM route_markers WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("route marker %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get route marker: %w", err)
	}
	return &m, nil
}

// Create inserts a marker
func (r *RouteMarkerRepository) Create(ctx context.Context, m models.RouteMarker) (*models.RouteMarker, error) {
	id, err := insertMarker(ctx, r.db, m)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a marker
func (r *RouteMarkerRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM route_markers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete route marker: %w", err)
	}
	return expectAffected(res, "route marker", id)
}

// Replace swaps the whole marker set of a layout in one transaction
func (r *RouteMarkerRepository) Replace(ctx context.Context, layoutID int64, markers []models.RouteMarker) ([]models.RouteMarker, error) {
	err := database.Transaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM route_markers WHERE layout_id = ?`, layoutID); err != nil {
			return fmt.Errorf("failed to clear route markers: %w", err)
		}
		for _, m := range markers {
			m.LayoutID = layoutID
			if _, err := insertMarker(ctx, tx, m); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.ListByLayout(ctx, layoutID)
}

func insertMarker(ctx context.Context, ex execer, m models.RouteMarker) (int64, error) {
	res, err := ex.ExecContext(ctx,
		`INSERT INTO route_markers (layout_id, label, marker_type, x_coordinate, y_coordinate, sequence_order) VALUES (?, ?, ?, ?, ?, ?)`,
		m.LayoutID, m.Label, m.MarkerType, m.X, m.Y, m.SequenceOrder)
	if err != nil {
		return 0, fmt.Errorf("failed to insert route marker: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read route marker id: %w", err)
	}
	return id, nil
}
