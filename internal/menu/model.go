package menu

import "time"

type Category struct {
	ID          uint
	Name        string
	Description string
	IsActive    bool
	SortOrder   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type MenuItem struct {
	ID              uint
	CategoryID      uint
	Name            string
	Description     string
	Price           float64
	IsAvailable     bool
	ImageURL        string
	Calories        *int
	PreparationTime *int
	IsVegetarian    bool
	IsVegan         bool
	IsGlutenFree    bool
	SortOrder       int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type CreateCategoryParams struct {
	Name        string
	Description string
	SortOrder   int
}

type UpdateCategoryParams struct {
	Name        *string
	Description *string
	IsActive    *bool
	SortOrder   *int
}

type CreateItemParams struct {
	CategoryID      uint
	Name            string
	Description     string
	Price           float64
	ImageURL        string
	Calories        *int
	PreparationTime *int
	IsVegetarian    bool
	IsVegan         bool
	IsGlutenFree    bool
	SortOrder       int
}

type UpdateItemParams struct {
	CategoryID      *uint
	Name            *string
	Description     *string
	Price           *float64
	IsAvailable     *bool
	ImageURL        *string
	Calories        *int
	PreparationTime *int
	SortOrder       *int
}

type ItemFilter struct {
	CategoryID    *uint
	OnlyAvailable bool
}
