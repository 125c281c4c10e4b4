package table

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
)

type Repository interface {
	GetTable(ctx context.Context, id uint) (*Table, error)
	GetTables(ctx context.Context, available *bool) ([]*Table, error)
	CreateTable(ctx context.Context, params CreateTableParams) (*Table, error)
	UpdateTable(ctx context.Context, id uint, params UpdateTableParams) (*Table, error)
	DeleteTable(ctx context.Context, id uint) error
	HasActiveOrder(ctx context.Context, id uint) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetTable(ctx context.Context, id uint) (*Table, error) {
	query := `
		SELECT id, number, capacity, location, is_available, created_at, updated_at
		FROM tables
		WHERE id = $1
	`

	var t Table
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Number, &t.Capacity, &t.Location,
		&t.IsAvailable, &t.CreatedAt, &t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *repository) GetTables(ctx context.Context, available *bool) ([]*Table, error) {
	query := `
		SELECT id, number, capacity, location, is_available, created_at, updated_at
		FROM tables
	`
	args := []interface{}{}

	if available != nil {
		query += ` WHERE is_available = $1`
		args = append(args, *available)
	}
	query += ` ORDER BY number ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []*Table
	for rows.Next() {
		var t Table
		if err := rows.Scan(
			&t.ID, &t.Number, &t.Capacity, &t.Location,
			&t.IsAvailable, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tables = append(tables, &t)
	}

	return tables, rows.Err()
}

func (r *repository) CreateTable(ctx context.Context, params CreateTableParams) (*Table, error) {
	query := `
		INSERT INTO tables (number, capacity, location, is_available)
		VALUES ($1, $2, $3, TRUE)
		RETURNING id, number, capacity, location, is_available, created_at, updated_at
	`

	var t Table
	err := r.db.QueryRowContext(ctx, query,
		params.Number, params.Capacity, params.Location,
	).Scan(
		&t.ID, &t.Number, &t.Capacity, &t.Location,
		&t.IsAvailable, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, ErrDuplicateNumber
		}
		return nil, err
	}

	return &t, nil
}

func (r *repository) UpdateTable(ctx context.Context, id uint, params UpdateTableParams) (*Table, error) {
	query := `
		UPDATE tables
		SET number      = COALESCE($2, number),
		    capacity    = COALESCE($3, capacity),
		    location    = COALESCE($4, location),
		    is_available = COALESCE($5, is_available),
		    updated_at  = NOW()
		WHERE id = $1
		RETURNING id, number, capacity, location, is_available, created_at, updated_at
	`

	var t Table
	err := r.db.QueryRowContext(ctx, query,
		id, params.Number, params.Capacity, params.Location, params.IsAvailable,
	).Scan(
		&t.ID, &t.Number, &t.Capacity, &t.Location,
		&t.IsAvailable, &t.CreatedAt, &t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrTableNotFound
	}
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, ErrDuplicateNumber
		}
		return nil, err
	}

	return &t, nil
}

func (r *repository) DeleteTable(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tables WHERE id = $1`, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTableNotFound
	}

	return nil
}

func (r *repository) HasActiveOrder(ctx context.Context, id uint) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM orders
			WHERE table_id = $1 AND status NOT IN ('paid', 'cancelled')
		)
	`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}
