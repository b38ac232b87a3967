package pg

import (
	"context"
	"fmt"

	"github.com/sanchey92/storefront/internal/domain/model"
)

// GetProductsByIDs fetches products for the given ids in one round trip.
// Missing ids are simply absent from the result; the catalog validator
// reports them per line item.
func (s *Storage) GetProductsByIDs(ctx context.Context, ids []int64) (map[int64]*model.Product, error) {
	if len(ids) == 0 {
		return map[int64]*model.Product{}, nil
	}

	query := `SELECT id, store_id, name, price, stock, status, created_at
              FROM products
              WHERE id = ANY($1)`

	rows, err := s.conn(ctx).Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}
	defer rows.Close()

	products := make(map[int64]*model.Product, len(ids))
	for rows.Next() {
		p := &model.Product{}
		if err = rows.Scan(&p.ID, &p.StoreID, &p.Name, &p.Price, &p.Stock, &p.Status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products[p.ID] = p
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}
