package staff

import "errors"

var (
	ErrStaffNotFound      = errors.New("staff member not found")
	ErrDuplicateUsername  = errors.New("username or email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInactiveAccount    = errors.New("account is deactivated")
)
