package table

import "errors"

var (
	ErrTableNotFound   = errors.New("table not found")
	ErrDuplicateNumber = errors.New("table number already exists")
	ErrTableOccupied   = errors.New("table has an active order")
)
