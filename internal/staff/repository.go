package staff

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type Repository interface {
	GetStaff(ctx context.Context, id uint) (*Staff, error)
	GetStaffByUsername(ctx context.Context, username string) (*Staff, error)
	GetAllStaff(ctx context.Context, onlyActive bool) ([]*Staff, error)
	CreateStaff(ctx context.Context, s *Staff) error
	UpdateStaff(ctx context.Context, id uint, params UpdateStaffParams) (*Staff, error)
	DeleteStaff(ctx context.Context, id uint) error
	TouchLastLogin(ctx context.Context, id uint, at time.Time) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const staffColumns = `id, username, email, full_name, hashed_password, role,
	is_active, phone, hire_date, created_at, updated_at, last_login`

func scanStaff(row interface{ Scan(...interface{}) error }) (*Staff, error) {
	var s Staff
	err := row.Scan(
		&s.ID, &s.Username, &s.Email, &s.FullName, &s.HashedPassword,
		&s.Role, &s.IsActive, &s.Phone, &s.HireDate,
		&s.CreatedAt, &s.UpdatedAt, &s.LastLogin,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) GetStaff(ctx context.Context, id uint) (*Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE id = $1`

	s, err := scanStaff(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *repository) GetStaffByUsername(ctx context.Context, username string) (*Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE username = $1`

	s, err := scanStaff(r.db.QueryRowContext(ctx, query, username))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *repository) GetAllStaff(ctx context.Context, onlyActive bool) ([]*Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff`
	if onlyActive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY username ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*Staff
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, s)
	}

	return members, rows.Err()
}

func (r *repository) CreateStaff(ctx context.Context, s *Staff) error {
	query := `
		INSERT INTO staff (username, email, full_name, hashed_password, role, is_active, phone, hire_date)
		VALUES ($1, $2, $3, $4, $5, TRUE, $6, $7)
		RETURNING id, is_active, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		s.Username, s.Email, s.FullName, s.HashedPassword, s.Role, s.Phone, s.HireDate,
	).Scan(&s.ID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrDuplicateUsername
		}
		return err
	}

	return nil
}

func (r *repository) UpdateStaff(ctx context.Context, id uint, params UpdateStaffParams) (*Staff, error) {
	query := `
		UPDATE staff
		SET email     = COALESCE($2, email),
		    full_name = COALESCE($3, full_name),
		    role      = COALESCE($4, role),
		    is_active = COALESCE($5, is_active),
		    phone     = COALESCE($6, phone),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + staffColumns

	s, err := scanStaff(r.db.QueryRowContext(ctx, query,
		id, params.Email, params.FullName, params.Role, params.IsActive, params.Phone,
	))
	if err == sql.ErrNoRows {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}

	return s, nil
}

func (r *repository) DeleteStaff(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM staff WHERE id = $1`, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrStaffNotFound
	}
	return nil
}

func (r *repository) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE staff SET last_login = $2 WHERE id = $1`, id, at,
	)
	return err
}
