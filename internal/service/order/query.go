package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/sanchey92/storefront/internal/domain/model"
	"github.com/sanchey92/storefront/internal/storage/pg"
)

// List returns a customer's orders within one store, newest first.
func (s *Service) List(ctx context.Context, storeID, customerID int64) ([]*model.Order, error) {
	orders, err := s.querier.ListOrders(ctx, storeID, customerID)
	if err != nil {
		return nil, fmt.Errorf("order.List: %w", err)
	}
	return orders, nil
}

// Get fetches a single order with its items. The lookup is scoped to both
// store and customer, so an order belonging to another store or another
// customer resolves to ErrOrderNotFound rather than leaking across tenants.
func (s *Service) Get(ctx context.Context, storeID, customerID int64, orderID string) (*model.Order, error) {
	o, err := s.querier.GetOrder(ctx, storeID, orderID)
	if errors.Is(err, pg.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("order.Get: %w", err)
	}
	if o.CustomerID != customerID {
		return nil, ErrOrderNotFound
	}
	return o, nil
}
