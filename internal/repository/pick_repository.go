package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jengzang/slotting-backend-go/internal/database"
	"github.com/jengzang/slotting-backend-go/internal/models"
)

// PickRepository handles database operations for uploads, items and pick
// transactions
type PickRepository struct {
	db *sql.DB
}

// NewPickRepository creates a new pick repository
func NewPickRepository(db *sql.DB) *PickRepository {
	return &PickRepository{db: db}
}

// InsertElementUpload stores an upload and its element pick rows atomically
func (r *PickRepository) InsertElementUpload(ctx context.Context, upload models.Upload, picks []models.PickTransaction) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		if err := insertUpload(ctx, tx, upload); err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO pick_transactions (layout_id, element_id, pick_date, pick_count, upload_id) VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare pick insert: %w", err)
		}
		defer stmt.Close()

		for _, p := range picks {
			if _, err := stmt.ExecContext(ctx, upload.LayoutID, p.ElementID, p.PickDate, p.PickCount, upload.ID); err != nil {
				return fmt.Errorf("failed to insert pick: %w", err)
			}
		}
		return nil
	})
}

// InsertItemUpload stores an upload, its item pick rows and the item master
// atomically. Items already known are moved to their uploaded location.
func (r *PickRepository) InsertItemUpload(ctx context.Context, upload models.Upload, picks []models.ItemPickTransaction, items []models.Item) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		if err := insertUpload(ctx, tx, upload); err != nil {
			return err
		}

		itemStmt, err := tx.PrepareContext(ctx,
			`INSERT INTO items (layout_id, item_id, item_description, element_id, quantity) VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(layout_id, item_id) DO UPDATE SET
				item_description = CASE WHEN excluded.item_description != '' THEN excluded.item_description ELSE items.item_description END,
				element_id = excluded.element_id,
				quantity = CASE WHEN excluded.quantity > 0 THEN excluded.quantity ELSE items.quantity END`)
		if err != nil {
			return fmt.Errorf("failed to prepare item upsert: %w", err)
		}
		defer itemStmt.Close()

		for _, it := range items {
			if _, err := itemStmt.ExecContext(ctx, upload.LayoutID, it.ItemID, it.Description, it.ElementID, it.Quantity); err != nil {
				return fmt.Errorf("failed to upsert item %s: %w", it.ItemID, err)
			}
		}

		pickStmt, err := tx.PrepareContext(ctx,
			`INSERT INTO item_pick_transactions (layout_id, item_id, element_id, pick_date, pick_count, upload_id) VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare item pick insert: %w", err)
		}
		defer pickStmt.Close()

		for _, p := range picks {
			if _, err := pickStmt.ExecContext(ctx, upload.LayoutID, p.ItemID, p.ElementID, p.PickDate, p.PickCount, upload.ID); err != nil {
				return fmt.Errorf("failed to insert item pick: %w", err)
			}
		}
		return nil
	})
}

func insertUpload(ctx context.Context, tx *sql.Tx, u models.Upload) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO uploads (id, layout_id, kind, file_name, row_count, start_date, end_date) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.LayoutID, u.Kind, u.FileName, u.RowCount, u.StartDate, u.EndDate)
	if err != nil {
		return fmt.Errorf("failed to insert upload: %w", err)
	}
	return nil
}

// ListUploads returns the uploads of a layout, newest first
func (r *PickRepository) ListUploads(ctx context.Context, layoutID int64) ([]models.Upload, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, layout_id, kind, file_name, row_count, start_date, end_date, created_at
		FROM uploads WHERE layout_id = ? ORDER BY created_at DESC, rowid DESC`, layoutID)
	if err != nil {
		return nil, fmt.Errorf("failed to query uploads: %w", err)
	}
	defer rows.Close()

	uploads := []models.Upload{}
	for rows.Next() {
		var u models.Upload
		if err := rows.Scan(&u.ID, &u.LayoutID, &u.Kind, &u.FileName, &u.RowCount, &u.StartDate, &u.EndDate, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan upload: %w", err)
		}
		uploads = append(uploads, u)
	}
	return uploads, rows.Err()
}

// DeleteUpload removes an upload and every pick row it brought in
func (r *PickRepository) DeleteUpload(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM uploads WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete upload: %w", err)
	}
	return expectAffected(res, "upload", id)
}

// AggregateByElement sums element picks per slot over the period. Element
// uploads and item uploads both count toward the element that was picked.
func (r *PickRepository) AggregateByElement(ctx context.Context, layoutID int64, period models.Period) ([]models.AggregatedPickData, error) {
	query := `
		SELECT p.element_id, e.label, e.element_type, SUM(p.pick_count), MIN(p.pick_date), MAX(p.pick_date)
		FROM (
			SELECT element_id, pick_date, pick_count FROM pick_transactions
			WHERE layout_id = ? AND pick_date >= ? AND pick_date <= ?
			UNION ALL
			SELECT element_id, pick_date, pick_count FROM item_pick_transactions
			WHERE layout_id = ? AND pick_date >= ? AND pick_date <= ?
		) p
		JOIN warehouse_elements e ON e.id = p.element_id
		GROUP BY p.element_id, e.label, e.element_type
		ORDER BY SUM(p.pick_count) DESC, p.element_id`

	rows, err := r.db.QueryContext(ctx, query,
		layoutID, period.Start, period.End,
		layoutID, period.Start, period.End)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate element picks: %w", err)
	}
	defer rows.Close()

	result := []models.AggregatedPickData{}
	for rows.Next() {
		var a models.AggregatedPickData
		if err := rows.Scan(&a.ElementID, &a.Label, &a.ElementType, &a.TotalPicks, &a.FirstDate, &a.LastDate); err != nil {
			return nil, fmt.Errorf("failed to scan element aggregate: %w", err)
		}
		a.Days = models.InclusiveDays(a.FirstDate, a.LastDate)
		result = append(result, a)
	}
	return result, rows.Err()
}

// AggregateByItem sums item picks over the period, reporting each item at its
// current location from the item master
func (r *PickRepository) AggregateByItem(ctx context.Context, layoutID int64, period models.Period) ([]models.AggregatedItemPickData, error) {
	query := `
		SELECT p.item_id, i.item_description, i.element_id, e.label, e.element_type, i.quantity, e.capacity,
			SUM(p.pick_count), MIN(p.pick_date), MAX(p.pick_date)
		FROM item_pick_transactions p
		JOIN items i ON i.layout_id = p.layout_id AND i.item_id = p.item_id
		JOIN warehouse_elements e ON e.id = i.element_id
		WHERE p.layout_id = ? AND p.pick_date >= ? AND p.pick_date <= ?
		GROUP BY p.item_id, i.item_description, i.element_id, e.label, e.element_type, i.quantity, e.capacity
		ORDER BY SUM(p.pick_count) DESC, p.item_id`

	rows, err := r.db.QueryContext(ctx, query, layoutID, period.Start, period.End)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate item picks: %w", err)
	}
	defer rows.Close()

	result := []models.AggregatedItemPickData{}
	for rows.Next() {
		var a models.AggregatedItemPickData
		if err := rows.Scan(&a.ItemID, &a.Description, &a.ElementID, &a.Label, &a.ElementType, &a.Quantity, &a.Capacity,
			&a.TotalPicks, &a.FirstDate, &a.LastDate); err != nil {
			return nil, fmt.Errorf("failed to scan item aggregate: %w", err)
		}
		a.Days = models.InclusiveDays(a.FirstDate, a.LastDate)
		result = append(result, a)
	}
	return result, rows.Err()
}

// ListItems returns the item master of a layout
func (r *PickRepository) ListItems(ctx context.Context, layoutID int64) ([]models.Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT layout_id, item_id, item_description, element_id, quantity FROM items WHERE layout_id = ? ORDER BY item_id`, layoutID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		var it models.Item
		if err := rows.Scan(&it.LayoutID, &it.ItemID, &it.Description, &it.ElementID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// DailyTotals returns the layout-wide pick count per day in the period
func (r *PickRepository) DailyTotals(ctx context.Context, layoutID int64, period models.Period) ([]models.DailyPickTotal, error) {
	query := `
		SELECT pick_date, SUM(pick_count) FROM (
			SELECT pick_date, pick_count FROM pick_transactions
			WHERE layout_id = ? AND pick_date >= ? AND pick_date <= ?
			UNION ALL
			SELECT pick_date, pick_count FROM item_pick_transactions
			WHERE layout_id = ? AND pick_date >= ? AND pick_date <= ?
		)
		GROUP BY pick_date
		ORDER BY pick_date`

	rows, err := r.db.QueryContext(ctx, query,
		layoutID, period.Start, period.End,
		layoutID, period.Start, period.End)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily totals: %w", err)
	}
	defer rows.Close()

	totals := []models.DailyPickTotal{}
	for rows.Next() {
		var d models.DailyPickTotal
		if err := rows.Scan(&d.Date, &d.Picks); err != nil {
			return nil, fmt.Errorf("failed to scan daily total: %w", err)
		}
		totals = append(totals, d)
	}
	return totals, rows.Err()
}

// LatestPickDate returns the most recent pick date of a layout, or "" when
// no picks have been uploaded
func (r *PickRepository) LatestPickDate(ctx context.Context, layoutID int64) (string, error) {
	var latest sql.NullString
	err := r.db.QueryRowContext(ctx, `
		SELECT MAX(d) FROM (
			SELECT MAX(pick_date) AS d FROM pick_transactions WHERE layout_id = ?
			UNION ALL
			SELECT MAX(pick_date) AS d FROM item_pick_transactions WHERE layout_id = ?
		)`, layoutID, layoutID).Scan(&latest)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("failed to query latest pick date: %w", err)
	}
	return latest.String, nil
}
