package table

import "time"

type Table struct {
	ID          uint
	Number      int
	Capacity    int
	Location    string
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateTableParams struct {
	Number   int
	Capacity int
	Location string
}

type UpdateTableParams struct {
	Number      *int
	Capacity    *int
	Location    *string
	IsAvailable *bool
}
