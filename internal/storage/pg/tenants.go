package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sanchey92/storefront/internal/domain/model"
)

// ErrNoRows is returned by lookups when no matching row exists. Services map
// it onto their own not-found sentinels.
var ErrNoRows = errors.New("no rows")

// GetTenantByHandle resolves an active tenant and its store in one query.
func (s *Storage) GetTenantByHandle(ctx context.Context, handle string) (*model.Tenant, *model.Store, error) {
	query := `SELECT t.id, t.handle, t.name, t.status, t.store_id,
                     st.id, st.name, st.status, st.created_at
              FROM tenants t
              JOIN stores st ON st.id = t.store_id
              WHERE t.handle = $1 AND t.status = $2`

	tenant := &model.Tenant{}
	store := &model.Store{}

	err := s.conn(ctx).QueryRow(ctx, query, handle, model.TenantActive).Scan(
		&tenant.ID, &tenant.Handle, &tenant.Name, &tenant.Status, &tenant.StoreID,
		&store.ID, &store.Name, &store.Status, &store.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, ErrNoRows
	}
	if err != nil {
		return nil, nil, fmt.Errorf("get tenant by handle: %w", err)
	}

	return tenant, store, nil
}
