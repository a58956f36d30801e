package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OrderRepository struct {
	store
}

const orderColumns = `
id, restaurant_id, order_number, type, status, customer_name, customer_email,
customer_phone, delivery_address, postal_code, delivery_zone_id, table_id, notes,
subtotal, delivery_fee, total, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	var typ, status string
	err := row.Scan(
		&o.ID, &o.RestaurantID, &o.OrderNumber, &typ, &status, &o.CustomerName,
		&o.CustomerEmail, &o.CustomerPhone, &o.DeliveryAddress, &o.PostalCode,
		&o.DeliveryZoneID, &o.TableID, &o.Notes, &o.Subtotal, &o.DeliveryFee, &o.Total,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.Type = model.OrderType(typ)
	o.Status = model.OrderStatus(status)
	return &o, nil
}

// Create inserts the order and its lines in one transaction and fills in
// the generated id, number and timestamps.
func (r *OrderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.WithTx(ctx, func(ctx context.Context) error {
		const stmt = `
INSERT INTO orders (restaurant_id, type, status, customer_name, customer_email, customer_phone,
	delivery_address, postal_code, delivery_zone_id, table_id, notes, subtotal, delivery_fee, total)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING id, order_number, created_at, updated_at`

		err := r.queryRow(ctx, stmt,
			order.RestaurantID, order.Type, order.Status, order.CustomerName, order.CustomerEmail,
			order.CustomerPhone, order.DeliveryAddress, order.PostalCode, order.DeliveryZoneID,
			order.TableID, order.Notes, order.Subtotal, order.DeliveryFee, order.Total,
		).Scan(&order.ID, &order.OrderNumber, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		const itemStmt = `
INSERT INTO order_items (order_id, menu_item_id, name, unit_price, quantity, line_total, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

		for i := range order.Items {
			item := &order.Items[i]
			item.OrderID = order.ID
			err := r.queryRow(ctx, itemStmt,
				item.OrderID, item.MenuItemID, item.Name, item.UnitPrice, item.Quantity, item.LineTotal, item.Notes,
			).Scan(&item.ID)
			if err != nil {
				return fmt.Errorf("create order item: %w", err)
			}
		}
		return nil
	})
}

func (r *OrderRepository) GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*model.Order, error) {
	order, err := scanOrder(r.queryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE restaurant_id = $1 AND id = $2`, restaurantID, id))
	if err != nil {
		return nil, fmt.Errorf("get order: %w", notFound(err))
	}

	items, err := r.listItems(ctx, []uuid.UUID{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = items[order.ID]
	return order, nil
}

// List returns orders newest first with their lines.
func (r *OrderRepository) List(ctx context.Context, restaurantID uuid.UUID, filter model.OrderFilter) ([]model.Order, error) {
	limit, offset := pageBounds(filter.Limit, filter.Offset)

	rows, err := r.query(ctx, `
SELECT `+orderColumns+`
FROM orders
WHERE restaurant_id = $1 AND ($2 = '' OR status = $2)
ORDER BY created_at DESC
LIMIT $3 OFFSET $4`, restaurantID, string(filter.Status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Order, error) {
		o, err := scanOrder(row)
		if err != nil {
			return model.Order{}, err
		}
		return *o, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	ids := make([]uuid.UUID, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
	}
	items, err := r.listItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return orders, nil
}

func (r *OrderRepository) listItems(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]model.OrderItem, error) {
	byOrder := make(map[uuid.UUID][]model.OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return byOrder, nil
	}

	rows, err := r.query(ctx, `
SELECT id, order_id, menu_item_id, name, unit_price, quantity, line_total, notes
FROM order_items
WHERE order_id = ANY($1)
ORDER BY order_id, id`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.OrderItem, error) {
		var i model.OrderItem
		err := row.Scan(&i.ID, &i.OrderID, &i.MenuItemID, &i.Name, &i.UnitPrice, &i.Quantity, &i.LineTotal, &i.Notes)
		return i, err
	})
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}

	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}
	return byOrder, nil
}

// UpdateStatus moves an order from one status to another and records the
// change. It fails with model.ErrInvalidTransition when the order is no
// longer in from, so concurrent admins cannot both apply a transition.
func (r *OrderRepository) UpdateStatus(ctx context.Context, restaurantID, id uuid.UUID, from, to model.OrderStatus, changedBy string) (*model.Order, error) {
	var updated *model.Order
	err := r.WithTx(ctx, func(ctx context.Context) error {
		order, err := scanOrder(r.queryRow(ctx, `
UPDATE orders SET status = $4, updated_at = now()
WHERE restaurant_id = $1 AND id = $2 AND status = $3
RETURNING `+orderColumns, restaurantID, id, from, to))
		if err != nil {
			if err == pgx.ErrNoRows {
				return model.ErrInvalidTransition
			}
			return fmt.Errorf("update order status: %w", err)
		}

		_, err = r.exec(ctx, `
INSERT INTO order_status_history (order_id, from_status, to_status, changed_by)
VALUES ($1, $2, $3, $4)`, id, from, to, changedBy)
		if err != nil {
			return fmt.Errorf("record order status: %w", err)
		}

		items, err := r.listItems(ctx, []uuid.UUID{id})
		if err != nil {
			return err
		}
		order.Items = items[id]
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
