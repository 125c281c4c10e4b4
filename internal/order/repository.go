package order

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
)

// Repository persists orders. Every compound mutation (create with table
// claim, item add/remove with totals write, status change with table free)
// runs inside a single transaction so concurrent requests see either all of
// it or none of it. Item mutations take the order's row lock and derive the
// totals from the item rows as they exist after the write, so two concurrent
// mutations on the same order serialize instead of both committing totals
// over a stale item set.
type Repository interface {
	GetOrder(ctx context.Context, id uint) (*Order, error)
	GetOrders(ctx context.Context, filter *OrderFilter, limit, offset int32) ([]*Order, error)
	GetActiveOrderByTable(ctx context.Context, tableID uint) (*Order, error)
	CreateOrderTx(ctx context.Context, o *Order) error
	AddItemTx(ctx context.Context, item *OrderItem) error
	RemoveItemTx(ctx context.Context, orderID, itemID uint) error
	FinishStatusTx(ctx context.Context, orderID, tableID uint, status OrderStatus, freeTable bool, completedAt *time.Time) error
	UpdateOrderTx(ctx context.Context, orderID, currentTableID uint, params UpdateOrderParams, freeTable bool, completedAt *time.Time) error
}

type repository struct {
	db   *sql.DB
	calc Calculator
}

func NewRepository(db *sql.DB, calc Calculator) Repository {
	return &repository{db: db, calc: calc}
}

const orderColumns = `id, table_id, customer_name, customer_phone, customer_email,
	status, notes, subtotal, tax, tip, total, payment_method, payment_status,
	created_at, updated_at, completed_at`

func scanOrder(row interface{ Scan(...interface{}) error }) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.TableID, &o.CustomerName, &o.CustomerPhone, &o.CustomerEmail,
		&o.Status, &o.Notes, &o.Subtotal, &o.Tax, &o.Tip, &o.Total,
		&o.PaymentMethod, &o.PaymentStatus,
		&o.CreatedAt, &o.UpdatedAt, &o.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) GetOrder(ctx context.Context, id uint) (*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.attachItems(ctx, []*Order{o}); err != nil {
		return nil, err
	}

	return o, nil
}

func (r *repository) GetOrders(ctx context.Context, filter *OrderFilter, limit, offset int32) ([]*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`

	var where []string
	var args []interface{}
	add := func(cond string, v interface{}) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if filter != nil {
		if filter.Status != nil {
			add("status = $%d", *filter.Status)
		}
		if filter.TableID != nil {
			add("table_id = $%d", *filter.TableID)
		}
		if filter.DateFrom != nil {
			add("created_at >= $%d", *filter.DateFrom)
		}
		if filter.DateTo != nil {
			add("created_at <= $%d", *filter.DateTo)
		}
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *repository) GetActiveOrderByTable(ctx context.Context, tableID uint) (*Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE table_id = $1 AND status NOT IN ('paid', 'cancelled')
		ORDER BY created_at DESC
		LIMIT 1`

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, tableID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.attachItems(ctx, []*Order{o}); err != nil {
		return nil, err
	}

	return o, nil
}

const itemColumns = `id, order_id, menu_item_id, quantity, unit_price, total_price,
	special_instructions, status, created_at, updated_at`

// attachItems loads line items for all given orders in one query.
func (r *repository) attachItems(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(orders))
	byID := make(map[uint]*Order, len(orders))
	for _, o := range orders {
		ids = append(ids, int64(o.ID))
		byID[o.ID] = o
	}

	query := `SELECT ` + itemColumns + ` FROM order_items WHERE order_id = ANY($1) ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.MenuItemID, &item.Quantity,
			&item.UnitPrice, &item.TotalPrice, &item.SpecialInstructions,
			&item.Status, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return err
		}
		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}

	return rows.Err()
}

// CreateOrderTx claims the table and inserts the order with its items as one
// unit. The claim uses a conditional write so two concurrent creations can
// never both take the same table; losing the race surfaces as
// ErrTableUnavailable.
func (r *repository) CreateOrderTx(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE tables
		SET is_available = FALSE, updated_at = NOW()
		WHERE id = $1 AND is_available = TRUE
	`, o.TableID)
	if err != nil {
		return err
	}
	claimed, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if claimed == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM tables WHERE id = $1)`, o.TableID,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrTableNotFound
		}
		return ErrTableUnavailable
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			table_id, customer_name, customer_phone, customer_email,
			status, notes, subtotal, tax, tip, total, payment_method, payment_status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`,
		o.TableID, o.CustomerName, o.CustomerPhone, o.CustomerEmail,
		o.Status, o.Notes, o.Subtotal, o.Tax, o.Tip, o.Total,
		o.PaymentMethod, o.PaymentStatus,
	).Scan(&o.ID)
	if err != nil {
		return err
	}

	for i := range o.Items {
		o.Items[i].OrderID = o.ID
		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (
				order_id, menu_item_id, quantity, unit_price,
				total_price, special_instructions, status
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`,
			o.ID, o.Items[i].MenuItemID, o.Items[i].Quantity,
			o.Items[i].UnitPrice, o.Items[i].TotalPrice,
			o.Items[i].SpecialInstructions, o.Items[i].Status,
		).Scan(&o.Items[i].ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// AddItemTx inserts the line item and recomputes totals in one transaction.
// The order row is locked first so the recompute sees every committed item.
func (r *repository) AddItemTx(ctx context.Context, item *OrderItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	tip, err := lockOrder(ctx, tx, item.OrderID)
	if err != nil {
		return err
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO order_items (
			order_id, menu_item_id, quantity, unit_price,
			total_price, special_instructions, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`,
		item.OrderID, item.MenuItemID, item.Quantity, item.UnitPrice,
		item.TotalPrice, item.SpecialInstructions, item.Status,
	).Scan(&item.ID)
	if err != nil {
		return err
	}

	if err := r.recomputeTotals(ctx, tx, item.OrderID, tip); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) RemoveItemTx(ctx context.Context, orderID, itemID uint) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	tip, err := lockOrder(ctx, tx, orderID)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM order_items WHERE id = $1 AND order_id = $2`,
		itemID, orderID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrOrderItemNotFound
	}

	if err := r.recomputeTotals(ctx, tx, orderID, tip); err != nil {
		return err
	}

	return tx.Commit()
}

// lockOrder takes the order's row lock and returns its stored tip.
func lockOrder(ctx context.Context, tx *sql.Tx, orderID uint) (float64, error) {
	var tip float64
	err := tx.QueryRowContext(ctx,
		`SELECT tip FROM orders WHERE id = $1 FOR UPDATE`, orderID,
	).Scan(&tip)
	if err == sql.ErrNoRows {
		return 0, ErrOrderNotFound
	}
	return tip, err
}

// recomputeTotals derives the totals from the item rows as they exist inside
// the transaction. An order left with no items gets a straight zero reset;
// the tip column is never written here.
func (r *repository) recomputeTotals(ctx context.Context, tx *sql.Tx, orderID uint, tip float64) error {
	var count int
	var sum float64
	err := tx.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_price), 0)
		FROM order_items
		WHERE order_id = $1
	`, orderID).Scan(&count, &sum)
	if err != nil {
		return err
	}

	var b Breakdown
	if count > 0 {
		b = r.calc.FromSubtotal(sum, tip)
	}
	return updateTotals(ctx, tx, orderID, b)
}

// FinishStatusTx writes the new status and, when the move is terminal, frees
// the table and stamps completed_at within the same transaction.
func (r *repository) FinishStatusTx(ctx context.Context, orderID, tableID uint, status OrderStatus, freeTable bool, completedAt *time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE orders
		SET status = $2,
		    completed_at = COALESCE($3, completed_at),
		    updated_at = NOW()
		WHERE id = $1
	`, orderID, status, completedAt)
	if err != nil {
		return err
	}

	if freeTable {
		if err := releaseTable(ctx, tx, tableID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// UpdateOrderTx applies a partial field update. Only supplied fields make it
// into the SET clause.
func (r *repository) UpdateOrderTx(ctx context.Context, orderID, currentTableID uint, params UpdateOrderParams, freeTable bool, completedAt *time.Time) error {
	set := []string{"updated_at = NOW()"}
	args := []interface{}{orderID}
	add := func(col string, v interface{}) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if params.TableID != nil {
		add("table_id", *params.TableID)
	}
	if params.CustomerName != nil {
		add("customer_name", *params.CustomerName)
	}
	if params.CustomerPhone != nil {
		add("customer_phone", *params.CustomerPhone)
	}
	if params.CustomerEmail != nil {
		add("customer_email", *params.CustomerEmail)
	}
	if params.Notes != nil {
		add("notes", *params.Notes)
	}
	if params.Status != nil {
		add("status", *params.Status)
	}
	if params.Tip != nil {
		add("tip", *params.Tip)
	}
	if params.PaymentMethod != nil {
		add("payment_method", *params.PaymentMethod)
	}
	if params.PaymentStatus != nil {
		add("payment_status", *params.PaymentStatus)
	}
	if completedAt != nil {
		add("completed_at", *completedAt)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE orders SET ` + strings.Join(set, ", ") + ` WHERE id = $1`
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	// A new tip changes the grand total, so rederive it from the items.
	if params.Tip != nil {
		if err := r.recomputeTotals(ctx, tx, orderID, *params.Tip); err != nil {
			return err
		}
	}

	if freeTable {
		if err := releaseTable(ctx, tx, currentTableID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func updateTotals(ctx context.Context, tx *sql.Tx, orderID uint, totals Breakdown) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET subtotal = $2, tax = $3, total = $4, updated_at = NOW()
		WHERE id = $1
	`, orderID, totals.Subtotal, totals.Tax, totals.Total)
	return err
}

func releaseTable(ctx context.Context, tx *sql.Tx, tableID uint) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE tables
		SET is_available = TRUE, updated_at = NOW()
		WHERE id = $1
	`, tableID)
	return err
}
