package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type MenuRepository struct {
	store
}

const categoryColumns = `id, restaurant_id, name, description, position, active, created_at, updated_at`

const itemColumns = `
id, restaurant_id, category_id, name, description, price, image_url,
available, position, allergens, created_at, updated_at`

func scanCategory(row pgx.Row) (model.MenuCategory, error) {
	var c model.MenuCategory
	err := row.Scan(&c.ID, &c.RestaurantID, &c.Name, &c.Description, &c.Position, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func scanItem(row pgx.Row) (model.MenuItem, error) {
	var i model.MenuItem
	err := row.Scan(
		&i.ID, &i.RestaurantID, &i.CategoryID, &i.Name, &i.Description, &i.Price,
		&i.ImageURL, &i.Available, &i.Position, &i.Allergens, &i.CreatedAt, &i.UpdatedAt,
	)
	return i, err
}

func collectItems(rows pgx.Rows) ([]model.MenuItem, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.MenuItem, error) {
		return scanItem(row)
	})
}

func allergens(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

func (r *MenuRepository) ListCategories(ctx context.Context, restaurantID uuid.UUID) ([]model.MenuCategory, error) {
	rows, err := r.query(ctx,
		`SELECT `+categoryColumns+` FROM menu_categories WHERE restaurant_id = $1 ORDER BY position, name`,
		restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	categories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.MenuCategory, error) {
		return scanCategory(row)
	})
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *MenuRepository) ListItems(ctx context.Context, restaurantID uuid.UUID) ([]model.MenuItem, error) {
	rows, err := r.query(ctx,
		`SELECT `+itemColumns+` FROM menu_items WHERE restaurant_id = $1 ORDER BY position, name`,
		restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	items, err := collectItems(rows)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	return items, nil
}

// GetItems loads the given items of one restaurant. Unknown ids are
// simply absent from the result.
func (r *MenuRepository) GetItems(ctx context.Context, restaurantID uuid.UUID, ids []uuid.UUID) ([]model.MenuItem, error) {
	rows, err := r.query(ctx,
		`SELECT `+itemColumns+` FROM menu_items WHERE restaurant_id = $1 AND id = ANY($2)`,
		restaurantID, ids)
	if err != nil {
		return nil, fmt.Errorf("get menu items: %w", err)
	}
	items, err := collectItems(rows)
	if err != nil {
		return nil, fmt.Errorf("get menu items: %w", err)
	}
	return items, nil
}

func (r *MenuRepository) CreateCategory(ctx context.Context, c *model.MenuCategory) (*model.MenuCategory, error) {
	const stmt = `
INSERT INTO menu_categories (restaurant_id, name, description, position, active)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + categoryColumns

	created, err := scanCategory(r.queryRow(ctx, stmt, c.RestaurantID, c.Name, c.Description, c.Position, c.Active))
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &created, nil
}

func (r *MenuRepository) UpdateCategory(ctx context.Context, c *model.MenuCategory) (*model.MenuCategory, error) {
	const stmt = `
UPDATE menu_categories
SET name = $3, description = $4, position = $5, active = $6, updated_at = now()
WHERE restaurant_id = $1 AND id = $2
RETURNING ` + categoryColumns

	updated, err := scanCategory(r.queryRow(ctx, stmt, c.RestaurantID, c.ID, c.Name, c.Description, c.Position, c.Active))
	if err != nil {
		return nil, fmt.Errorf("update category: %w", notFound(err))
	}
	return &updated, nil
}

// DeleteCategory removes a category and, through the foreign key, its items.
func (r *MenuRepository) DeleteCategory(ctx context.Context, restaurantID, id uuid.UUID) error {
	tag, err := r.exec(ctx, `DELETE FROM menu_categories WHERE restaurant_id = $1 AND id = $2`, restaurantID, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", notFound(err))
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// CreateItem inserts an item; the category must belong to the same
// restaurant.
func (r *MenuRepository) CreateItem(ctx context.Context, i *model.MenuItem) (*model.MenuItem, error) {
	const stmt = `
INSERT INTO menu_items (restaurant_id, category_id, name, description, price, image_url, available, position, allergens)
SELECT $1, c.id, $3, $4, $5, $6, $7, $8, $9
FROM menu_categories c
WHERE c.id = $2 AND c.restaurant_id = $1
RETURNING ` + itemColumns

	created, err := scanItem(r.queryRow(ctx, stmt,
		i.RestaurantID, i.CategoryID, i.Name, i.Description, i.Price, i.ImageURL,
		i.Available, i.Position, allergens(i.Allergens)))
	if err != nil {
		return nil, fmt.Errorf("create menu item: %w", notFound(err))
	}
	return &created, nil
}

func (r *MenuRepository) UpdateItem(ctx context.Context, i *model.MenuItem) (*model.MenuItem, error) {
	const stmt = `
UPDATE menu_items m
SET category_id = c.id, name = $4, description = $5, price = $6, image_url = $7,
	available = $8, position = $9, allergens = $10, updated_at = now()
FROM menu_categories c
WHERE m.restaurant_id = $1 AND m.id = $2 AND c.id = $3 AND c.restaurant_id = $1
RETURNING m.id, m.restaurant_id, m.category_id, m.name, m.description, m.price, m.image_url,
	m.available, m.position, m.allergens, m.created_at, m.updated_at`

	updated, err := scanItem(r.queryRow(ctx, stmt,
		i.RestaurantID, i.ID, i.CategoryID, i.Name, i.Description, i.Price, i.ImageURL,
		i.Available, i.Position, allergens(i.Allergens)))
	if err != nil {
		return nil, fmt.Errorf("update menu item: %w", notFound(err))
	}
	return &updated, nil
}

func (r *MenuRepository) DeleteItem(ctx context.Context, restaurantID, id uuid.UUID) error {
	tag, err := r.exec(ctx, `DELETE FROM menu_items WHERE restaurant_id = $1 AND id = $2`, restaurantID, id)
	if err != nil {
		return fmt.Errorf("delete menu item: %w", notFound(err))
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
