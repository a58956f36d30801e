package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type NoticeRepository struct {
	store
}

const noticeColumns = `restaurant_id, message, variant, link_url, link_label, active, starts_at, ends_at, updated_at`

func scanNotice(row pgx.Row) (*model.Notice, error) {
	var n model.Notice
	var variant string
	err := row.Scan(&n.RestaurantID, &n.Message, &variant, &n.LinkURL, &n.LinkLabel, &n.Active, &n.StartsAt, &n.EndsAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	n.Variant = model.NoticeVariant(variant)
	return &n, nil
}

func (r *NoticeRepository) Get(ctx context.Context, restaurantID uuid.UUID) (*model.Notice, error) {
	n, err := scanNotice(r.queryRow(ctx, `SELECT `+noticeColumns+` FROM notice_bars WHERE restaurant_id = $1`, restaurantID))
	if err != nil {
		return nil, fmt.Errorf("get notice: %w", notFound(err))
	}
	return n, nil
}

func (r *NoticeRepository) Upsert(ctx context.Context, n *model.Notice) (*model.Notice, error) {
	const stmt = `
INSERT INTO notice_bars (restaurant_id, message, variant, link_url, link_label, active, starts_at, ends_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (restaurant_id) DO UPDATE SET
	message = EXCLUDED.message, variant = EXCLUDED.variant, link_url = EXCLUDED.link_url,
	link_label = EXCLUDED.link_label, active = EXCLUDED.active, starts_at = EXCLUDED.starts_at,
	ends_at = EXCLUDED.ends_at, updated_at = now()
RETURNING ` + noticeColumns

	saved, err := scanNotice(r.queryRow(ctx, stmt,
		n.RestaurantID, n.Message, n.Variant, n.LinkURL, n.LinkLabel, n.Active, n.StartsAt, n.EndsAt))
	if err != nil {
		return nil, fmt.Errorf("upsert notice: %w", err)
	}
	return saved, nil
}

func (r *NoticeRepository) Delete(ctx context.Context, restaurantID uuid.UUID) error {
	tag, err := r.exec(ctx, `DELETE FROM notice_bars WHERE restaurant_id = $1`, restaurantID)
	if err != nil {
		return fmt.Errorf("delete notice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// DeactivateExpired switches off active notices whose window closed
// before now and reports how many changed.
func (r *NoticeRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.exec(ctx, `
UPDATE notice_bars SET active = false, updated_at = now()
WHERE active AND ends_at IS NOT NULL AND ends_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("deactivate expired notices: %w", err)
	}
	return tag.RowsAffected(), nil
}
