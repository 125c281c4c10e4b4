package menu

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrItemNotFound     = errors.New("menu item not found")
	ErrDuplicateName    = errors.New("name already exists")
	ErrInvalidPrice     = errors.New("price must be greater than zero")
)
