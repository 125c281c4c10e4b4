package table

import (
	"context"

	"github.com/hector17rock/SeatServe/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for restaurant tables.
type Service interface {
	GetTable(ctx context.Context, id uint) (*Table, error)
	GetTables(ctx context.Context, available *bool) ([]*Table, error)
	CreateTable(ctx context.Context, params CreateTableParams) (*Table, error)
	UpdateTable(ctx context.Context, id uint, params UpdateTableParams) (*Table, error)
	DeleteTable(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetTable(ctx context.Context, id uint) (*Table, error) {
	t, err := s.repo.GetTable(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTableNotFound
	}
	return t, nil
}

func (s *service) GetTables(ctx context.Context, available *bool) ([]*Table, error) {
	return s.repo.GetTables(ctx, available)
}

func (s *service) CreateTable(ctx context.Context, params CreateTableParams) (*Table, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateTable"),
		zap.Int("number", params.Number),
	)

	t, err := s.repo.CreateTable(ctx, params)
	if err != nil {
		log.Error("failed to create table", zap.Error(err))
		return nil, err
	}

	log.Info("table created")
	return t, nil
}

func (s *service) UpdateTable(ctx context.Context, id uint, params UpdateTableParams) (*Table, error) {
	return s.repo.UpdateTable(ctx, id, params)
}

// DeleteTable refuses to remove a table that still holds an active order.
func (s *service) DeleteTable(ctx context.Context, id uint) error {
	occupied, err := s.repo.HasActiveOrder(ctx, id)
	if err != nil {
		return err
	}
	if occupied {
		return ErrTableOccupied
	}

	return s.repo.DeleteTable(ctx, id)
}
