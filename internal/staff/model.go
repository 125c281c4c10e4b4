package staff

import "time"

type Staff struct {
	ID             uint
	Username       string
	Email          string
	FullName       string
	HashedPassword string
	Role           string
	IsActive       bool
	Phone          string
	HireDate       *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	LastLogin      *time.Time
}

type CreateStaffParams struct {
	Username string
	Email    string
	FullName string
	Password string
	Role     string
	Phone    string
	HireDate *time.Time
}

type UpdateStaffParams struct {
	Email    *string
	FullName *string
	Role     *string
	IsActive *bool
	Phone    *string
}
