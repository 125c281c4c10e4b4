package order

import (
	"context"
	"time"

	"github.com/hector17rock/SeatServe/internal/logger"
	"github.com/hector17rock/SeatServe/internal/menu"
	"github.com/hector17rock/SeatServe/internal/table"

	"go.uber.org/zap"
)

// Service owns the order lifecycle: creation, line-item mutation with totals
// recalculation, and status progression with its table side effects.
type Service interface {
	CreateOrder(ctx context.Context, params CreateOrderParams) (*Order, error)
	GetOrder(ctx context.Context, id uint) (*Order, error)
	GetOrders(ctx context.Context, filter *OrderFilter, limit, offset int32) ([]*Order, error)
	GetActiveOrderByTable(ctx context.Context, tableID uint) (*Order, error)
	UpdateOrder(ctx context.Context, id uint, params UpdateOrderParams) (*Order, error)
	UpdateStatus(ctx context.Context, id uint, next OrderStatus) (*Order, error)
	CancelOrder(ctx context.Context, id uint) (*Order, error)
	AddItem(ctx context.Context, orderID uint, params NewItemParams) (*Order, error)
	RemoveItem(ctx context.Context, orderID, itemID uint) (*Order, error)
}

type service struct {
	repo   Repository
	tables table.Repository
	menu   menu.Repository
	calc   Calculator
}

func NewService(repo Repository, tableRepo table.Repository, menuRepo menu.Repository, calc Calculator) Service {
	return &service{
		repo:   repo,
		tables: tableRepo,
		menu:   menuRepo,
		calc:   calc,
	}
}

// sideEffects is the single place deciding what accompanies a move into a
// terminal status: the table is freed, and paid stamps completed_at. Every
// path that writes a status routes through here.
func sideEffects(old, next OrderStatus) (freeTable bool, completedAt *time.Time) {
	if next.IsTerminal() && !old.IsTerminal() {
		freeTable = true
		if next == StatusPaid {
			now := time.Now().UTC()
			completedAt = &now
		}
	}
	return freeTable, completedAt
}

func (s *service) CreateOrder(ctx context.Context, params CreateOrderParams) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
		zap.Uint("table_id", params.TableID),
		zap.Int("item_count", len(params.Items)),
	)

	// 1. The table must exist and be free. The availability check here is a
	// fast-fail; the authoritative claim happens inside CreateOrderTx.
	t, err := s.tables.GetTable(ctx, params.TableID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTableNotFound
	}
	if !t.IsAvailable {
		return nil, ErrTableUnavailable
	}

	// 2. Snapshot catalog prices, validating items in the order supplied.
	// The first failing item aborts the whole creation.
	items := make([]OrderItem, 0, len(params.Items))
	for _, in := range params.Items {
		item, err := s.buildItem(ctx, in)
		if err != nil {
			log.Warn("item validation failed",
				zap.Uint("menu_item_id", in.MenuItemID),
				zap.Error(err),
			)
			return nil, err
		}
		items = append(items, *item)
	}

	// 3. Totals over the full item set. Orders start with no tip.
	b := s.calc.Totals(items, 0)

	o := &Order{
		TableID:       params.TableID,
		CustomerName:  params.CustomerName,
		CustomerPhone: params.CustomerPhone,
		CustomerEmail: params.CustomerEmail,
		Notes:         params.Notes,
		Status:        StatusPending,
		PaymentStatus: "pending",
		Subtotal:      b.Subtotal,
		Tax:           b.Tax,
		Total:         b.Total,
		Items:         items,
	}

	// 4. Order insert, item inserts and the table claim are one transaction.
	if err := s.repo.CreateOrderTx(ctx, o); err != nil {
		log.Error("failed to create order", zap.Error(err))
		return nil, err
	}

	log.Info("order created",
		zap.Uint("order_id", o.ID),
		zap.Float64("total", o.Total),
	)

	return s.getOrder(ctx, o.ID)
}

func (s *service) GetOrder(ctx context.Context, id uint) (*Order, error) {
	return s.getOrder(ctx, id)
}

func (s *service) GetOrders(ctx context.Context, filter *OrderFilter, limit, offset int32) ([]*Order, error) {
	return s.repo.GetOrders(ctx, filter, limit, offset)
}

// GetActiveOrderByTable returns the non-terminal order holding the table,
// or nil when the table is free.
func (s *service) GetActiveOrderByTable(ctx context.Context, tableID uint) (*Order, error) {
	t, err := s.tables.GetTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTableNotFound
	}

	return s.repo.GetActiveOrderByTable(ctx, tableID)
}

// UpdateOrder applies a partial update. A status written through this path
// is not checked against the transition table, matching the original API
// surface, but terminal side effects still apply via sideEffects.
func (s *service) UpdateOrder(ctx context.Context, id uint, params UpdateOrderParams) (*Order, error) {
	o, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.TableID != nil {
		t, err := s.tables.GetTable(ctx, *params.TableID)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, ErrTableNotFound
		}
	}

	var freeTable bool
	var completedAt *time.Time
	if params.Status != nil {
		if !params.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		freeTable, completedAt = sideEffects(o.Status, *params.Status)
	}

	// The freed table is the one the order currently holds, even if the
	// update also reassigns table_id.
	if err := s.repo.UpdateOrderTx(ctx, id, o.TableID, params, freeTable, completedAt); err != nil {
		return nil, err
	}

	return s.getOrder(ctx, id)
}

// UpdateStatus moves the order along the transition table. Illegal requests
// fail with ErrInvalidTransition and leave the order untouched.
func (s *service) UpdateStatus(ctx context.Context, id uint, next OrderStatus) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateStatus"),
		zap.Uint("order_id", id),
		zap.String("new_status", string(next)),
	)

	o, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if !next.Valid() {
		return nil, ErrInvalidStatus
	}
	if !o.Status.CanTransitionTo(next) {
		log.Warn("illegal status transition",
			zap.String("old_status", string(o.Status)),
		)
		return nil, ErrInvalidTransition
	}

	freeTable, completedAt := sideEffects(o.Status, next)
	if err := s.repo.FinishStatusTx(ctx, id, o.TableID, next, freeTable, completedAt); err != nil {
		log.Error("failed to update status", zap.Error(err))
		return nil, err
	}

	log.Info("order status changed",
		zap.String("old_status", string(o.Status)),
	)

	return s.getOrder(ctx, id)
}

// CancelOrder is the escape hatch: any non-terminal order can be cancelled,
// including ready and served ones the transition table would hold back.
func (s *service) CancelOrder(ctx context.Context, id uint) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CancelOrder"),
		zap.Uint("order_id", id),
	)

	o, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if o.Status.IsTerminal() {
		return nil, ErrOrderLocked
	}

	freeTable, completedAt := sideEffects(o.Status, StatusCancelled)
	if err := s.repo.FinishStatusTx(ctx, id, o.TableID, StatusCancelled, freeTable, completedAt); err != nil {
		log.Error("failed to cancel order", zap.Error(err))
		return nil, err
	}

	log.Info("order cancelled")

	return s.getOrder(ctx, id)
}

func (s *service) AddItem(ctx context.Context, orderID uint, params NewItemParams) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddItem"),
		zap.Uint("order_id", orderID),
		zap.Uint("menu_item_id", params.MenuItemID),
	)

	o, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status.IsTerminal() {
		return nil, ErrOrderLocked
	}

	item, err := s.buildItem(ctx, params)
	if err != nil {
		return nil, err
	}
	item.OrderID = orderID

	// The totals recompute happens inside the transaction, over the item
	// rows as they exist after the insert, carrying the stored tip.
	if err := s.repo.AddItemTx(ctx, item); err != nil {
		log.Error("failed to add item", zap.Error(err))
		return nil, err
	}

	log.Info("item added", zap.Float64("item_total", item.TotalPrice))

	return s.getOrder(ctx, orderID)
}

func (s *service) RemoveItem(ctx context.Context, orderID, itemID uint) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "RemoveItem"),
		zap.Uint("order_id", orderID),
		zap.Uint("item_id", itemID),
	)

	o, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status.IsTerminal() {
		return nil, ErrOrderLocked
	}

	// The delete and the totals recompute run in one transaction; removing
	// the last item zero-resets the totals with the tip column untouched.
	if err := s.repo.RemoveItemTx(ctx, orderID, itemID); err != nil {
		if err != ErrOrderItemNotFound {
			log.Error("failed to remove item", zap.Error(err))
		}
		return nil, err
	}

	log.Info("item removed")

	return s.getOrder(ctx, orderID)
}

// buildItem validates the menu item and captures its current price as an
// immutable snapshot.
func (s *service) buildItem(ctx context.Context, params NewItemParams) (*OrderItem, error) {
	if params.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	m, err := s.menu.GetItem(ctx, params.MenuItemID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMenuItemNotFound
	}
	if !m.IsAvailable {
		return nil, ErrMenuItemUnavailable
	}

	return &OrderItem{
		MenuItemID:          params.MenuItemID,
		Quantity:            params.Quantity,
		UnitPrice:           m.Price,
		TotalPrice:          ItemTotal(m.Price, params.Quantity),
		SpecialInstructions: params.SpecialInstructions,
		Status:              ItemOrdered,
	}, nil
}

func (s *service) getOrder(ctx context.Context, id uint) (*Order, error) {
	o, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}
