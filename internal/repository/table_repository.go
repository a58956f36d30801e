package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TableRepository struct {
	store
}

const tableColumns = `
id, restaurant_id, label, seats, shape, pos_x, pos_y, width, height,
rotation, active, created_at, updated_at`

func scanTable(row pgx.Row) (model.Table, error) {
	var t model.Table
	var shape string
	err := row.Scan(
		&t.ID, &t.RestaurantID, &t.Label, &t.Seats, &shape, &t.X, &t.Y,
		&t.Width, &t.Height, &t.Rotation, &t.Active, &t.CreatedAt, &t.UpdatedAt,
	)
	t.Shape = model.TableShape(shape)
	return t, err
}

func (r *TableRepository) List(ctx context.Context, restaurantID uuid.UUID) ([]model.Table, error) {
	rows, err := r.query(ctx,
		`SELECT `+tableColumns+` FROM restaurant_tables WHERE restaurant_id = $1 ORDER BY label`,
		restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	tables, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Table, error) {
		return scanTable(row)
	})
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return tables, nil
}

func (r *TableRepository) Get(ctx context.Context, restaurantID, id uuid.UUID) (*model.Table, error) {
	t, err := scanTable(r.queryRow(ctx,
		`SELECT `+tableColumns+` FROM restaurant_tables WHERE restaurant_id = $1 AND id = $2`,
		restaurantID, id))
	if err != nil {
		return nil, fmt.Errorf("get table: %w", notFound(err))
	}
	return &t, nil
}

// SaveLayout replaces the restaurant's floor plan: tables with an id are
// updated, tables without one are inserted and every other table is
// deleted. The label constraint is deferred so labels can be swapped.
func (r *TableRepository) SaveLayout(ctx context.Context, restaurantID uuid.UUID, tables []model.Table) ([]model.Table, error) {
	var saved []model.Table
	err := r.WithTx(ctx, func(ctx context.Context) error {
		keep := make([]uuid.UUID, 0, len(tables))
		for _, t := range tables {
			if t.ID != uuid.Nil {
				keep = append(keep, t.ID)
			}
		}

		if _, err := r.exec(ctx,
			`DELETE FROM restaurant_tables WHERE restaurant_id = $1 AND NOT (id = ANY($2))`,
			restaurantID, keep); err != nil {
			return fmt.Errorf("delete removed tables: %w", err)
		}

		saved = make([]model.Table, 0, len(tables))
		for _, t := range tables {
			var row pgx.Row
			if t.ID == uuid.Nil {
				row = r.queryRow(ctx, `
INSERT INTO restaurant_tables (restaurant_id, label, seats, shape, pos_x, pos_y, width, height, rotation, active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING `+tableColumns,
					restaurantID, t.Label, t.Seats, t.Shape, t.X, t.Y, t.Width, t.Height, t.Rotation, t.Active)
			} else {
				row = r.queryRow(ctx, `
UPDATE restaurant_tables
SET label = $3, seats = $4, shape = $5, pos_x = $6, pos_y = $7, width = $8, height = $9,
	rotation = $10, active = $11, updated_at = now()
WHERE restaurant_id = $1 AND id = $2
RETURNING `+tableColumns,
					restaurantID, t.ID, t.Label, t.Seats, t.Shape, t.X, t.Y, t.Width, t.Height, t.Rotation, t.Active)
			}

			stored, err := scanTable(row)
			if err != nil {
				return fmt.Errorf("save table %q: %w", t.Label, notFound(err))
			}
			saved = append(saved, stored)
		}

		// Surface label conflicts here rather than at COMMIT.
		if _, err := r.exec(ctx, `SET CONSTRAINTS restaurant_tables_label_key IMMEDIATE`); err != nil {
			if isUniqueViolation(err) {
				return model.ErrDuplicateLabel
			}
			return fmt.Errorf("check table labels: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (r *TableRepository) Delete(ctx context.Context, restaurantID, id uuid.UUID) error {
	tag, err := r.exec(ctx, `DELETE FROM restaurant_tables WHERE restaurant_id = $1 AND id = $2`, restaurantID, id)
	if err != nil {
		return fmt.Errorf("delete table: %w", notFound(err))
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
