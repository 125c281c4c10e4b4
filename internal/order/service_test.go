package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hector17rock/SeatServe/internal/menu"
	"github.com/hector17rock/SeatServe/internal/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetOrder(ctx context.Context, id uint) (*Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) GetOrders(ctx context.Context, filter *OrderFilter, limit, offset int32) ([]*Order, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) GetActiveOrderByTable(ctx context.Context, tableID uint) (*Order, error) {
	args := m.Called(ctx, tableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) CreateOrderTx(ctx context.Context, o *Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockRepository) AddItemTx(ctx context.Context, item *OrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockRepository) RemoveItemTx(ctx context.Context, orderID, itemID uint) error {
	args := m.Called(ctx, orderID, itemID)
	return args.Error(0)
}

func (m *MockRepository) FinishStatusTx(ctx context.Context, orderID, tableID uint, status OrderStatus, freeTable bool, completedAt *time.Time) error {
	args := m.Called(ctx, orderID, tableID, status, freeTable, completedAt)
	return args.Error(0)
}

func (m *MockRepository) UpdateOrderTx(ctx context.Context, orderID, currentTableID uint, params UpdateOrderParams, freeTable bool, completedAt *time.Time) error {
	args := m.Called(ctx, orderID, currentTableID, params, freeTable, completedAt)
	return args.Error(0)
}

// MockTableRepository is a mock for the table repository
type MockTableRepository struct {
	mock.Mock
}

func (m *MockTableRepository) GetTable(ctx context.Context, id uint) (*table.Table, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*table.Table), args.Error(1)
}

func (m *MockTableRepository) GetTables(ctx context.Context, available *bool) ([]*table.Table, error) {
	args := m.Called(ctx, available)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*table.Table), args.Error(1)
}

func (m *MockTableRepository) CreateTable(ctx context.Context, params table.CreateTableParams) (*table.Table, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*table.Table), args.Error(1)
}

func (m *MockTableRepository) UpdateTable(ctx context.Context, id uint, params table.UpdateTableParams) (*table.Table, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*table.Table), args.Error(1)
}

func (m *MockTableRepository) DeleteTable(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTableRepository) HasActiveOrder(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockMenuRepository is a mock for the menu repository
type MockMenuRepository struct {
	mock.Mock
}

func (m *MockMenuRepository) GetCategory(ctx context.Context, id uint) (*menu.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.Category), args.Error(1)
}

func (m *MockMenuRepository) GetCategories(ctx context.Context, onlyActive bool) ([]*menu.Category, error) {
	args := m.Called(ctx, onlyActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*menu.Category), args.Error(1)
}

func (m *MockMenuRepository) CreateCategory(ctx context.Context, params menu.CreateCategoryParams) (*menu.Category, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.Category), args.Error(1)
}

func (m *MockMenuRepository) UpdateCategory(ctx context.Context, id uint, params menu.UpdateCategoryParams) (*menu.Category, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.Category), args.Error(1)
}

func (m *MockMenuRepository) DeleteCategory(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMenuRepository) GetItem(ctx context.Context, id uint) (*menu.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.MenuItem), args.Error(1)
}

func (m *MockMenuRepository) GetItems(ctx context.Context, filter menu.ItemFilter) ([]*menu.MenuItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*menu.MenuItem), args.Error(1)
}

func (m *MockMenuRepository) CreateItem(ctx context.Context, params menu.CreateItemParams) (*menu.MenuItem, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.MenuItem), args.Error(1)
}

func (m *MockMenuRepository) UpdateItem(ctx context.Context, id uint, params menu.UpdateItemParams) (*menu.MenuItem, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.MenuItem), args.Error(1)
}

func (m *MockMenuRepository) DeleteItem(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type serviceMocks struct {
	repo   *MockRepository
	tables *MockTableRepository
	menu   *MockMenuRepository
}

func newTestService(calc Calculator) (Service, serviceMocks) {
	m := serviceMocks{
		repo:   new(MockRepository),
		tables: new(MockTableRepository),
		menu:   new(MockMenuRepository),
	}
	return NewService(m.repo, m.tables, m.menu, calc), m
}

func TestService_CreateOrder(t *testing.T) {
	ctx := context.Background()

	params := CreateOrderParams{
		TableID:      1,
		CustomerName: "Dana",
		Items: []NewItemParams{
			{MenuItemID: 10, Quantity: 1},
			{MenuItemID: 11, Quantity: 2},
		},
	}

	t.Run("Success", func(t *testing.T) {
		svc, m := newTestService(Calculator{TaxRate: 0.08})

		m.tables.On("GetTable", ctx, uint(1)).Return(&table.Table{ID: 1, IsAvailable: true}, nil).Once()
		m.menu.On("GetItem", ctx, uint(10)).Return(&menu.MenuItem{ID: 10, Price: 12.99, IsAvailable: true}, nil).Once()
		m.menu.On("GetItem", ctx, uint(11)).Return(&menu.MenuItem{ID: 11, Price: 8.99, IsAvailable: true}, nil).Once()

		m.repo.On("CreateOrderTx", ctx, mock.MatchedBy(func(o *Order) bool {
			return o.Status == StatusPending &&
				o.Subtotal == 30.97 &&
				o.Tax == 2.48 &&
				o.Total == 33.45 &&
				len(o.Items) == 2 &&
				o.Items[1].TotalPrice == 17.98
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*Order).ID = 42
		}).Return(nil).Once()

		created := &Order{ID: 42, Status: StatusPending, Subtotal: 30.97, Tax: 2.48, Total: 33.45}
		m.repo.On("GetOrder", ctx, uint(42)).Return(created, nil).Once()

		o, err := svc.CreateOrder(ctx, params)

		assert.NoError(t, err)
		assert.Equal(t, created, o)
		m.repo.AssertExpectations(t)
		m.tables.AssertExpectations(t)
		m.menu.AssertExpectations(t)
	})

	t.Run("Error - Table unavailable", func(t *testing.T) {
		svc, m := newTestService(Calculator{})

		m.tables.On("GetTable", ctx, uint(1)).Return(&table.Table{ID: 1, IsAvailable: false}, nil).Once()

		_, err := svc.CreateOrder(ctx, params)

		assert.Equal(t, ErrTableUnavailable, err)
		m.repo.AssertNotCalled(t, "CreateOrderTx", mock.Anything, mock.Anything)
	})

	t.Run("Error - Table not found", func(t *testing.T) {
		svc, m := newTestService(Calculator{})

		m.tables.On("GetTable", ctx, uint(1)).Return(nil, nil).Once()

		_, err := svc.CreateOrder(ctx, params)

		assert.Equal(t, ErrTableNotFound, err)
	})

	t.Run("Error - First failing item aborts creation", func(t *testing.T) {
		svc, m := newTestService(Calculator{})

		m.tables.On("GetTable", ctx, uint(1)).Return(&table.Table{ID: 1, IsAvailable: true}, nil).Once()
		m.menu.On("GetItem", ctx, uint(10)).Return(&menu.MenuItem{ID: 10, Price: 12.99, IsAvailable: true}, nil).Once()
		m.menu.On("GetItem", ctx, uint(11)).Return(&menu.MenuItem{ID: 11, Price: 8.99, IsAvailable: false}, nil).Once()

		_, err := svc.CreateOrder(ctx, params)

		assert.Equal(t, ErrMenuItemUnavailable, err)
		m.repo.AssertNotCalled(t, "CreateOrderTx", mock.Anything, mock.Anything)
	})

	t.Run("Error - Menu item missing", func(t *testing.T) {
		svc, m := newTestService(Calculator{})

		m.tables.On("GetTable", ctx, uint(1)).Return(&table.Table{ID: 1, IsAvailable: true}, nil).Once()
		m.menu.On("GetItem", ctx, uint(10)).Return(nil, nil).Once()

		_, err := svc.CreateOrder(ctx, params)

		assert.Equal(t, ErrMenuItemNotFound, err)
	})

	t.Run("Error - Lost the table claim race", func(t *testing.T) {
		svc, m := newTestService(Calculator{})

		m.tables.On("GetTable", ctx, uint(1)).Return(&table.Table{ID: 1, IsAvailable: true}, nil).Once()
		m.menu.On("GetItem", ctx, mock.Anything).Return(&menu.MenuItem{Price: 1, IsAvailable: true}, nil).Twice()
		m.repo.On("CreateOrderTx", ctx, mock.Anything).Return(ErrTableUnavailable).Once()

		_, err := svc.CreateOrder(ctx, params)

		assert.Equal(t, ErrTableUnavailable, err)
	})
}

func TestService_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - snapshot-priced item goes to the repository", func(t *testing.T) {
		svc, m := newTestService(Calculator{})

		existing := &Order{
			ID:      7,
			Status:  StatusConfirmed,
			TableID: 1,
			Items:   []OrderItem{{ID: 1, OrderID: 7, TotalPrice: 12.99}},
		}
		m.repo.On("GetOrder", ctx, uint(7)).Return(existing, nil).Once()
		m.menu.On("GetItem", ctx, uint(11)).Return(&menu.MenuItem{ID: 11, Price: 8.99, IsAvailable: true}, nil).Once()

		m.repo.On("AddItemTx", ctx, mock.MatchedBy(func(item *OrderItem) bool {
			return item.OrderID == 7 && item.UnitPrice == 8.99 && item.TotalPrice == 17.98 && item.Status == ItemOrdered
		})).Return(nil).Once()

		m.repo.On("GetOrder", ctx, uint(7)).Return(&Order{ID: 7, Subtotal: 30.97, Total: 30.97}, nil).Once()

		o, err := svc.AddItem(ctx, 7, NewItemParams{MenuItemID: 11, Quantity: 2})

		assert.NoError(t, err)
		assert.Equal(t, 30.97, o.Subtotal)
		m.repo.AssertExpectations(t)
	})

	t.Run("Error - Order locked", func(t *testing.T) {
		for _, status := range []OrderStatus{StatusPaid, StatusCancelled} {
			svc, m := newTestService(Calculator{})

			m.repo.On("GetOrder", ctx, uint(7)).Return(&Order{ID: 7, Status: status}, nil).Once()

			_, err := svc.AddItem(ctx, 7, NewItemParams{MenuItemID: 11, Quantity: 1})

			assert.Equal(t, ErrOrderLocked, err)
			m.repo.AssertNotCalled(t, "AddItemTx", mock.Anything, mock.Anything)
		}
	})

	t.Run("Error - Invalid quantity", func(t *testing.T) {
		svc, m := newTestService(Calculator{})

		m.repo.On("GetOrder", ctx, uint(7)).Return(&Order{ID: 7, Status: StatusPending}, nil).Once()

		_, err := svc.AddItem(ctx, 7, NewItemParams{MenuItemID: 11, Quantity: 0})

		assert.Equal(t, ErrInvalidQuantity, err)
	})

	t.Run("Error - Order not found", func(t *testing.T) {
		svc, m := newTestService(Calculator{})

		m.repo.On("GetOrder", ctx, uint(7)).Return(nil, nil).Once()

		_, err := svc.AddItem(ctx, 7, NewItemParams{MenuItemID: 11, Quantity: 1})

		assert.Equal(t, ErrOrderNotFound, err)
	})
}

func TestService_RemoveItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, m := newTestService(Calculator{TaxRate: 0.08})

		existing := &Order{
			ID:     7,
			Status: StatusPending,
			Tip:    2.50,
			Items:  []OrderItem{{ID: 3, OrderID: 7, TotalPrice: 12.99}},
		}
		m.repo.On("GetOrder", ctx, uint(7)).Return(existing, nil).Once()
		m.repo.On("RemoveItemTx", ctx, uint(7), uint(3)).Return(nil).Once()
		m.repo.On("GetOrder", ctx, uint(7)).Return(&Order{ID: 7, Tip: 2.50}, nil).Once()

		o, err := svc.RemoveItem(ctx, 7, 3)

		assert.NoError(t, err)
		assert.Equal(t, 2.50, o.Tip)
		m.repo.AssertExpectations(t)
	})

	t.Run("Error - Item not on the order", func(t *testing.T) {
		svc, m := newTestService(Calculator{})

		existing := &Order{ID: 7, Status: StatusPending, Items: []OrderItem{{ID: 3}}}
		m.repo.On("GetOrder", ctx, uint(7)).Return(existing, nil).Once()
		m.repo.On("RemoveItemTx", ctx, uint(7), uint(99)).Return(ErrOrderItemNotFound).Once()

		_, err := svc.RemoveItem(ctx, 7, 99)

		assert.Equal(t, ErrOrderItemNotFound, err)
	})

	t.Run("Error - Order locked", func(t *testing.T) {
		svc, m := newTestService(Calculator{})

		m.repo.On("GetOrder", ctx, uint(7)).Return(&Order{ID: 7, Status: StatusCancelled}, nil).Once()

		_, err := svc.RemoveItem(ctx, 7, 3)

		assert.Equal(t, ErrOrderLocked, err)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Error - Illegal jump leaves status unchanged", func(t *testing.T) {
		svc, m := newTestService(Calculator{})

		m.repo.On("GetOrder", ctx, uint(7)).Return(&Order{ID: 7, Status: StatusPending}, nil).Once()

		_, err := svc.UpdateStatus(ctx, 7, StatusServed)

		assert.Equal(t, ErrInvalidTransition, err)
		m.repo.AssertNotCalled(t, "FinishStatusTx",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error - Unknown status", func(t *testing.T) {
		svc, m := newTestService(Calculator{})

		m.repo.On("GetOrder", ctx, uint(7)).Return(&Order{ID: 7, Status: StatusPending}, nil).Once()

		_, err := svc.UpdateStatus(ctx, 7, OrderStatus("teleported"))

		assert.Equal(t, ErrInvalidStatus, err)
	})

	t.Run("Success - Non-terminal move has no side effects", func(t *testing.T) {
		svc, m := newTestService(Calculator{})

		m.repo.On("GetOrder", ctx, uint(7)).Return(&Order{ID: 7, TableID: 2, Status: StatusPending}, nil).Once()
		m.repo.On("FinishStatusTx", ctx, uint(7), uint(2), StatusConfirmed, false, (*time.Time)(nil)).Return(nil).Once()
		m.repo.On("GetOrder", ctx, uint(7)).Return(&Order{ID: 7, Status: StatusConfirmed}, nil).Once()

		o, err := svc.UpdateStatus(ctx, 7, StatusConfirmed)

		assert.NoError(t, err)
		assert.Equal(t, StatusConfirmed, o.Status)
		m.repo.AssertExpectations(t)
	})

	t.Run("Success - Paid frees table and stamps completed_at", func(t *testing.T) {
		svc, m := newTestService(Calculator{})

		m.repo.On("GetOrder", ctx, uint(7)).Return(&Order{ID: 7, TableID: 2, Status: StatusServed}, nil).Once()
		m.repo.On("FinishStatusTx", ctx, uint(7), uint(2), StatusPaid, true,
			mock.MatchedBy(func(at *time.Time) bool { return at != nil && !at.IsZero() }),
		).Return(nil).Once()

		now := time.Now().UTC()
		m.repo.On("GetOrder", ctx, uint(7)).Return(&Order{ID: 7, Status: StatusPaid, CompletedAt: &now}, nil).Once()

		o, err := svc.UpdateStatus(ctx, 7, StatusPaid)

		assert.NoError(t, err)
		assert.NotNil(t, o.CompletedAt)
		m.repo.AssertExpectations(t)
	})

	t.Run("Success - Cancellation from preparing frees table without completed_at", func(t *testing.T) {
		svc, m := newTestService(Calculator{})

		m.repo.On("GetOrder", ctx, uint(7)).Return(&Order{ID: 7, TableID: 2, Status: StatusPreparing}, nil).Once()
		m.repo.On("FinishStatusTx", ctx, uint(7), uint(2), StatusCancelled, true, (*time.Time)(nil)).Return(nil).Once()
		m.repo.On("GetOrder", ctx, uint(7)).Return(&Order{ID: 7, Status: StatusCancelled}, nil).Once()

		_, err := svc.UpdateStatus(ctx, 7, StatusCancelled)

		assert.NoError(t, err)
		m.repo.AssertExpectations(t)
	})

	t.Run("Error - DB failure surfaces", func(t *testing.T) {
		svc, m := newTestService(Calculator{})
		dbErr := errors.New("db error")

		m.repo.On("GetOrder", ctx, uint(7)).Return(&Order{ID: 7, Status: StatusServed}, nil).Once()
		m.repo.On("FinishStatusTx", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(dbErr).Once()

		_, err := svc.UpdateStatus(ctx, 7, StatusPaid)

		assert.Equal(t, dbErr, err)
	})
}

func TestService_CancelOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - escape hatch cancels a served order", func(t *testing.T) {
		svc, m := newTestService(Calculator{})

		m.repo.On("GetOrder", ctx, uint(7)).Return(&Order{ID: 7, TableID: 2, Status: StatusServed}, nil).Once()
		m.repo.On("FinishStatusTx", ctx, uint(7), uint(2), StatusCancelled, true, (*time.Time)(nil)).Return(nil).Once()
		m.repo.On("GetOrder", ctx, uint(7)).Return(&Order{ID: 7, Status: StatusCancelled}, nil).Once()

		o, err := svc.CancelOrder(ctx, 7)

		assert.NoError(t, err)
		assert.Equal(t, StatusCancelled, o.Status)
		m.repo.AssertExpectations(t)
	})

	t.Run("Error - Already terminal", func(t *testing.T) {
		for _, status := range []OrderStatus{StatusPaid, StatusCancelled} {
			svc, m := newTestService(Calculator{})

			m.repo.On("GetOrder", ctx, uint(7)).Return(&Order{ID: 7, Status: status}, nil).Once()

			_, err := svc.CancelOrder(ctx, 7)

			assert.Equal(t, ErrOrderLocked, err)
		}
	})
}

func TestService_UpdateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Unvalidated status write still applies terminal side effects", func(t *testing.T) {
		svc, m := newTestService(Calculator{})

		// pending -> paid is illegal on the validated path but allowed here
		m.repo.On("GetOrder", ctx, uint(7)).Return(&Order{ID: 7, TableID: 2, Status: StatusPending}, nil).Once()

		paid := StatusPaid
		m.repo.On("UpdateOrderTx", ctx, uint(7), uint(2), mock.Anything, true,
			mock.MatchedBy(func(at *time.Time) bool { return at != nil }),
		).Return(nil).Once()
		m.repo.On("GetOrder", ctx, uint(7)).Return(&Order{ID: 7, Status: StatusPaid}, nil).Once()

		_, err := svc.UpdateOrder(ctx, 7, UpdateOrderParams{Status: &paid})

		assert.NoError(t, err)
		m.repo.AssertExpectations(t)
	})

	t.Run("Status write between terminal states has no effects", func(t *testing.T) {
		svc, m := newTestService(Calculator{})

		m.repo.On("GetOrder", ctx, uint(7)).Return(&Order{ID: 7, TableID: 2, Status: StatusCancelled}, nil).Once()

		paid := StatusPaid
		m.repo.On("UpdateOrderTx", ctx, uint(7), uint(2), mock.Anything, false, (*time.Time)(nil)).Return(nil).Once()
		m.repo.On("GetOrder", ctx, uint(7)).Return(&Order{ID: 7, Status: StatusPaid}, nil).Once()

		_, err := svc.UpdateOrder(ctx, 7, UpdateOrderParams{Status: &paid})

		assert.NoError(t, err)
		m.repo.AssertExpectations(t)
	})

	t.Run("Error - Reassigned table must exist", func(t *testing.T) {
		svc, m := newTestService(Calculator{})

		m.repo.On("GetOrder", ctx, uint(7)).Return(&Order{ID: 7, Status: StatusPending}, nil).Once()
		m.tables.On("GetTable", ctx, uint(9)).Return(nil, nil).Once()

		newTable := uint(9)
		_, err := svc.UpdateOrder(ctx, 7, UpdateOrderParams{TableID: &newTable})

		assert.Equal(t, ErrTableNotFound, err)
		m.repo.AssertNotCalled(t, "UpdateOrderTx",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_GetActiveOrderByTable(t *testing.T) {
	ctx := context.Background()

	t.Run("Error - Table not found", func(t *testing.T) {
		svc, m := newTestService(Calculator{})

		m.tables.On("GetTable", ctx, uint(2)).Return(nil, nil).Once()

		_, err := svc.GetActiveOrderByTable(ctx, 2)

		assert.Equal(t, ErrTableNotFound, err)
	})

	t.Run("Success - No active order returns nil", func(t *testing.T) {
		svc, m := newTestService(Calculator{})

		m.tables.On("GetTable", ctx, uint(2)).Return(&table.Table{ID: 2, IsAvailable: true}, nil).Once()
		m.repo.On("GetActiveOrderByTable", ctx, uint(2)).Return(nil, nil).Once()

		o, err := svc.GetActiveOrderByTable(ctx, 2)

		assert.NoError(t, err)
		assert.Nil(t, o)
	})
}
