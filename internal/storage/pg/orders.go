package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sanchey92/storefront/internal/domain/model"
)

// ErrDuplicateOrderID signals a collision on the store-scoped order_id unique
// index. The sequencer retries with a fresh candidate.
var ErrDuplicateOrderID = errors.New("duplicate order id")

const orderIDConstraint = "orders_store_id_order_id_key"

// SaveOrderTx persists the order header, its items, the customer ledger
// increments and the outbox event as one atomic unit.
func (s *Storage) SaveOrderTx(ctx context.Context, o *model.Order, msg *model.OutboxMessage) error {
	return s.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.insertOrder(ctx, o); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		if err := s.insertOrderItems(ctx, o.ID, o.Items); err != nil {
			return fmt.Errorf("insert order items: %w", err)
		}
		if err := s.IncrementCustomerTotals(ctx, o.StoreID, o.CustomerID, o.Total); err != nil {
			return err
		}
		if err := s.InsertOutboxMsg(ctx, msg); err != nil {
			return fmt.Errorf("insert outbox msg: %w", err)
		}
		return nil
	})
}

func (s *Storage) insertOrder(ctx context.Context, o *model.Order) error {
	query := `INSERT INTO orders (order_id, store_id, customer_id, status, payment_status, payment_method,
                                  subtotal, shipping_cost, tax, total,
                                  delivery_time, delivery_address, notes, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
              RETURNING id`

	err := s.conn(ctx).QueryRow(ctx, query,
		o.OrderID, o.StoreID, o.CustomerID, o.Status, o.PaymentStatus, o.PaymentMethod,
		o.Subtotal, o.ShippingCost, o.Tax, o.Total,
		o.DeliveryTime, o.DeliveryAddress, o.Notes, o.CreatedAt, o.UpdatedAt,
	).Scan(&o.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == orderIDConstraint {
			return ErrDuplicateOrderID
		}
		return err
	}
	return nil
}

func (s *Storage) insertOrderItems(ctx context.Context, orderID int64, items []model.OrderItem) error {
	query := `INSERT INTO order_items (order_id, product_id, quantity, price, total)
              VALUES ($1, $2, $3, $4, $5)
              RETURNING id`

	for i := range items {
		items[i].OrderID = orderID
		err := s.conn(ctx).QueryRow(ctx, query,
			orderID, items[i].ProductID, items[i].Quantity, items[i].Price, items[i].Total,
		).Scan(&items[i].ID)
		if err != nil {
			return err
		}
	}
	return nil
}

const orderColumns = `id, order_id, store_id, customer_id, status, payment_status, payment_method,
                      subtotal, shipping_cost, tax, total,
                      delivery_time, delivery_address, notes, created_at, updated_at`

// ListOrders returns a customer's orders within one store, newest first.
func (s *Storage) ListOrders(ctx context.Context, storeID, customerID int64) ([]*model.Order, error) {
	query := `SELECT ` + orderColumns + `
              FROM orders
              WHERE store_id = $1 AND customer_id = $2
              ORDER BY created_at DESC`

	rows, err := s.conn(ctx).Query(ctx, query, storeID, customerID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []*model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	return orders, nil
}

// GetOrder fetches one order with its items, scoped to the store. An order id
// from another store is indistinguishable from a missing one.
func (s *Storage) GetOrder(ctx context.Context, storeID int64, orderID string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + `
              FROM orders
              WHERE store_id = $1 AND order_id = $2`

	o, err := scanOrder(s.conn(ctx).QueryRow(ctx, query, storeID, orderID))
	if errors.Is(err, ErrNoRows) {
		return nil, ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	items, err := s.getOrderItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items

	return o, nil
}

func (s *Storage) getOrderItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	query := `SELECT id, order_id, product_id, quantity, price, total
              FROM order_items
              WHERE order_id = $1
              ORDER BY id`

	rows, err := s.conn(ctx).Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var it model.OrderItem
		if err = rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Price, &it.Total); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order item rows: %w", err)
	}

	return items, nil
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	o := &model.Order{}
	err := row.Scan(&o.ID, &o.OrderID, &o.StoreID, &o.CustomerID, &o.Status, &o.PaymentStatus, &o.PaymentMethod,
		&o.Subtotal, &o.ShippingCost, &o.Tax, &o.Total,
		&o.DeliveryTime, &o.DeliveryAddress, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoRows
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}
