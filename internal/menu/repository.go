package menu

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

type Repository interface {
	GetCategory(ctx context.Context, id uint) (*Category, error)
	GetCategories(ctx context.Context, onlyActive bool) ([]*Category, error)
	CreateCategory(ctx context.Context, params CreateCategoryParams) (*Category, error)
	UpdateCategory(ctx context.Context, id uint, params UpdateCategoryParams) (*Category, error)
	DeleteCategory(ctx context.Context, id uint) error

	GetItem(ctx context.Context, id uint) (*MenuItem, error)
	GetItems(ctx context.Context, filter ItemFilter) ([]*MenuItem, error)
	CreateItem(ctx context.Context, params CreateItemParams) (*MenuItem, error)
	UpdateItem(ctx context.Context, id uint, params UpdateItemParams) (*MenuItem, error)
	DeleteItem(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const categoryColumns = `id, name, description, is_active, sort_order, created_at, updated_at`

func scanCategory(row interface{ Scan(...interface{}) error }) (*Category, error) {
	var c Category
	err := row.Scan(
		&c.ID, &c.Name, &c.Description, &c.IsActive,
		&c.SortOrder, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) GetCategory(ctx context.Context, id uint) (*Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

	c, err := scanCategory(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *repository) GetCategories(ctx context.Context, onlyActive bool) ([]*Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories`
	if onlyActive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY sort_order ASC, name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (r *repository) CreateCategory(ctx context.Context, params CreateCategoryParams) (*Category, error) {
	query := `
		INSERT INTO categories (name, description, is_active, sort_order)
		VALUES ($1, $2, TRUE, $3)
		RETURNING ` + categoryColumns

	c, err := scanCategory(r.db.QueryRowContext(ctx, query,
		params.Name, params.Description, params.SortOrder,
	))
	if err != nil {
		return nil, translateUniqueViolation(err)
	}
	return c, nil
}

func (r *repository) UpdateCategory(ctx context.Context, id uint, params UpdateCategoryParams) (*Category, error) {
	query := `
		UPDATE categories
		SET name        = COALESCE($2, name),
		    description = COALESCE($3, description),
		    is_active   = COALESCE($4, is_active),
		    sort_order  = COALESCE($5, sort_order),
		    updated_at  = NOW()
		WHERE id = $1
		RETURNING ` + categoryColumns

	c, err := scanCategory(r.db.QueryRowContext(ctx, query,
		id, params.Name, params.Description, params.IsActive, params.SortOrder,
	))
	if err == sql.ErrNoRows {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, translateUniqueViolation(err)
	}
	return c, nil
}

func (r *repository) DeleteCategory(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

const itemColumns = `id, category_id, name, description, price, is_available, image_url,
	calories, preparation_time, is_vegetarian, is_vegan, is_gluten_free,
	sort_order, created_at, updated_at`

func scanItem(row interface{ Scan(...interface{}) error }) (*MenuItem, error) {
	var m MenuItem
	err := row.Scan(
		&m.ID, &m.CategoryID, &m.Name, &m.Description, &m.Price,
		&m.IsAvailable, &m.ImageURL, &m.Calories, &m.PreparationTime,
		&m.IsVegetarian, &m.IsVegan, &m.IsGlutenFree,
		&m.SortOrder, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) GetItem(ctx context.Context, id uint) (*MenuItem, error) {
	query := `SELECT ` + itemColumns + ` FROM menu_items WHERE id = $1`

	m, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *repository) GetItems(ctx context.Context, filter ItemFilter) ([]*MenuItem, error) {
	query := `SELECT ` + itemColumns + ` FROM menu_items`

	var where []string
	var args []interface{}

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if filter.OnlyAvailable {
		where = append(where, "is_available = TRUE")
	}

	for i, cond := range where {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += ` ORDER BY sort_order ASC, name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*MenuItem
	for rows.Next() {
		m, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}

	return items, rows.Err()
}

func (r *repository) CreateItem(ctx context.Context, params CreateItemParams) (*MenuItem, error) {
	query := `
		INSERT INTO menu_items (
			category_id, name, description, price, is_available, image_url,
			calories, preparation_time, is_vegetarian, is_vegan, is_gluten_free, sort_order
		) VALUES ($1, $2, $3, $4, TRUE, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + itemColumns

	m, err := scanItem(r.db.QueryRowContext(ctx, query,
		params.CategoryID, params.Name, params.Description, params.Price,
		params.ImageURL, params.Calories, params.PreparationTime,
		params.IsVegetarian, params.IsVegan, params.IsGlutenFree, params.SortOrder,
	))
	if err != nil {
		return nil, translateUniqueViolation(err)
	}
	return m, nil
}

func (r *repository) UpdateItem(ctx context.Context, id uint, params UpdateItemParams) (*MenuItem, error) {
	query := `
		UPDATE menu_items
		SET category_id      = COALESCE($2, category_id),
		    name             = COALESCE($3, name),
		    description      = COALESCE($4, description),
		    price            = COALESCE($5, price),
		    is_available     = COALESCE($6, is_available),
		    image_url        = COALESCE($7, image_url),
		    calories         = COALESCE($8, calories),
		    preparation_time = COALESCE($9, preparation_time),
		    sort_order       = COALESCE($10, sort_order),
		    updated_at       = NOW()
		WHERE id = $1
		RETURNING ` + itemColumns

	m, err := scanItem(r.db.QueryRowContext(ctx, query,
		id, params.CategoryID, params.Name, params.Description, params.Price,
		params.IsAvailable, params.ImageURL, params.Calories,
		params.PreparationTime, params.SortOrder,
	))
	if err == sql.ErrNoRows {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, translateUniqueViolation(err)
	}
	return m, nil
}

func (r *repository) DeleteItem(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrItemNotFound
	}
	return nil
}

func translateUniqueViolation(err error) error {
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return ErrDuplicateName
	}
	return err
}
