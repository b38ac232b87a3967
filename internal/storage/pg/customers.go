package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/sanchey92/storefront/internal/domain/model"
)

const customerColumns = `id, store_id, name, email, phone, status, total_orders, total_spent, join_date`

func (s *Storage) GetCustomer(ctx context.Context, storeID, id int64) (*model.Customer, error) {
	query := `SELECT ` + customerColumns + `
              FROM customers
              WHERE id = $1 AND store_id = $2`

	c, err := scanCustomer(s.conn(ctx).QueryRow(ctx, query, id, storeID))
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// UpsertGuestCustomer creates a guest customer row or reuses the existing one
// for the same (store_id, email). The unique index makes repeated guest
// checkouts idempotent with respect to customer identity.
func (s *Storage) UpsertGuestCustomer(ctx context.Context, storeID int64, guest *model.GuestInfo) (*model.Customer, error) {
	query := `INSERT INTO customers (store_id, name, email, phone, status)
              VALUES ($1, $2, $3, $4, $5)
              ON CONFLICT (store_id, email)
              DO UPDATE SET name = excluded.name, phone = excluded.phone
              RETURNING ` + customerColumns

	c, err := scanCustomer(s.conn(ctx).QueryRow(ctx, query,
		storeID, guest.Name, guest.Email, guest.Phone, model.CustomerActive))
	if err != nil {
		return nil, fmt.Errorf("upsert guest customer: %w", err)
	}
	return c, nil
}

// IncrementCustomerTotals applies the ledger deltas as relative updates so
// concurrent orders for the same customer cannot lose counts.
func (s *Storage) IncrementCustomerTotals(ctx context.Context, storeID, id int64, spent decimal.Decimal) error {
	query := `UPDATE customers
              SET total_orders = total_orders + 1,
                  total_spent  = total_spent + $3
              WHERE id = $1 AND store_id = $2`

	tag, err := s.conn(ctx).Exec(ctx, query, id, storeID, spent)
	if err != nil {
		return fmt.Errorf("increment customer totals: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("increment customer totals: %w", ErrNoRows)
	}
	return nil
}

func scanCustomer(row pgx.Row) (*model.Customer, error) {
	c := &model.Customer{}
	err := row.Scan(&c.ID, &c.StoreID, &c.Name, &c.Email, &c.Phone,
		&c.Status, &c.TotalOrders, &c.TotalSpent, &c.JoinDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoRows
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}
