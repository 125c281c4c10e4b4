package table

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetTable(ctx context.Context, id uint) (*Table, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Table), args.Error(1)
}

func (m *MockRepository) GetTables(ctx context.Context, available *bool) ([]*Table, error) {
	args := m.Called(ctx, available)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Table), args.Error(1)
}

func (m *MockRepository) CreateTable(ctx context.Context, params CreateTableParams) (*Table, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Table), args.Error(1)
}

func (m *MockRepository) UpdateTable(ctx context.Context, id uint, params UpdateTableParams) (*Table, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Table), args.Error(1)
}

func (m *MockRepository) DeleteTable(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) HasActiveOrder(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func TestService_GetTable(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		want := &Table{ID: 1, Number: 4, Capacity: 2, IsAvailable: true}
		repo.On("GetTable", ctx, uint(1)).Return(want, nil).Once()

		got, err := svc.GetTable(ctx, 1)

		assert.NoError(t, err)
		assert.Equal(t, want, got)
		repo.AssertExpectations(t)
	})

	t.Run("Error - Not found", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetTable", ctx, uint(99)).Return(nil, nil).Once()

		_, err := svc.GetTable(ctx, 99)

		assert.Equal(t, ErrTableNotFound, err)
	})
}

func TestService_CreateTable(t *testing.T) {
	ctx := context.Background()
	params := CreateTableParams{Number: 12, Capacity: 6, Location: "patio"}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		want := &Table{ID: 3, Number: 12, Capacity: 6, Location: "patio", IsAvailable: true}
		repo.On("CreateTable", ctx, params).Return(want, nil).Once()

		got, err := svc.CreateTable(ctx, params)

		assert.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("Error - Duplicate number", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("CreateTable", ctx, params).Return(nil, ErrDuplicateNumber).Once()

		_, err := svc.CreateTable(ctx, params)

		assert.Equal(t, ErrDuplicateNumber, err)
	})
}

func TestService_DeleteTable(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("HasActiveOrder", ctx, uint(1)).Return(false, nil).Once()
		repo.On("DeleteTable", ctx, uint(1)).Return(nil).Once()

		err := svc.DeleteTable(ctx, 1)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Error - Table still holds an active order", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("HasActiveOrder", ctx, uint(1)).Return(true, nil).Once()

		err := svc.DeleteTable(ctx, 1)

		assert.Equal(t, ErrTableOccupied, err)
		repo.AssertNotCalled(t, "DeleteTable", mock.Anything, mock.Anything)
	})

	t.Run("Error - Lookup failure surfaces", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		dbErr := errors.New("db error")

		repo.On("HasActiveOrder", ctx, uint(1)).Return(false, dbErr).Once()

		err := svc.DeleteTable(ctx, 1)

		assert.Equal(t, dbErr, err)
	})
}
