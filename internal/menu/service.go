package menu

import (
	"context"

	"github.com/hector17rock/SeatServe/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for the menu catalog.
type Service interface {
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

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetCategory(ctx context.Context, id uint) (*Category, error) {
	c, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

func (s *service) GetCategories(ctx context.Context, onlyActive bool) ([]*Category, error) {
	return s.repo.GetCategories(ctx, onlyActive)
}

func (s *service) CreateCategory(ctx context.Context, params CreateCategoryParams) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateCategory"),
		zap.String("name", params.Name),
	)

	c, err := s.repo.CreateCategory(ctx, params)
	if err != nil {
		log.Error("failed to create category", zap.Error(err))
		return nil, err
	}

	log.Info("category created")
	return c, nil
}

func (s *service) UpdateCategory(ctx context.Context, id uint, params UpdateCategoryParams) (*Category, error) {
	return s.repo.UpdateCategory(ctx, id, params)
}

func (s *service) DeleteCategory(ctx context.Context, id uint) error {
	return s.repo.DeleteCategory(ctx, id)
}

func (s *service) GetItem(ctx context.Context, id uint) (*MenuItem, error) {
	m, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrItemNotFound
	}
	return m, nil
}

func (s *service) GetItems(ctx context.Context, filter ItemFilter) ([]*MenuItem, error) {
	return s.repo.GetItems(ctx, filter)
}

func (s *service) CreateItem(ctx context.Context, params CreateItemParams) (*MenuItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateItem"),
		zap.String("name", params.Name),
		zap.Uint("category_id", params.CategoryID),
	)

	if params.Price <= 0 {
		return nil, ErrInvalidPrice
	}

	category, err := s.repo.GetCategory(ctx, params.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	m, err := s.repo.CreateItem(ctx, params)
	if err != nil {
		log.Error("failed to create menu item", zap.Error(err))
		return nil, err
	}

	log.Info("menu item created")
	return m, nil
}

func (s *service) UpdateItem(ctx context.Context, id uint, params UpdateItemParams) (*MenuItem, error) {
	if params.Price != nil && *params.Price <= 0 {
		return nil, ErrInvalidPrice
	}

	if params.CategoryID != nil {
		category, err := s.repo.GetCategory(ctx, *params.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
	}

	return s.repo.UpdateItem(ctx, id, params)
}

func (s *service) DeleteItem(ctx context.Context, id uint) error {
	return s.repo.DeleteItem(ctx, id)
}
