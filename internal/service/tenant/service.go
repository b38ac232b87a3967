package tenant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sanchey92/storefront/internal/domain/model"
	"github.com/sanchey92/storefront/internal/storage/pg"
)

// ErrTenantNotFound covers unknown handles, suspended tenants and tenants
// without a store. Checkout must not distinguish between them.
var ErrTenantNotFound = errors.New("tenant not found")

type Repo interface {
	GetTenantByHandle(ctx context.Context, handle string) (*model.Tenant, *model.Store, error)
}

type Service struct {
	logger *slog.Logger
	repo   Repo
}

func NewService(l *slog.Logger, repo Repo) *Service {
	return &Service{
		logger: l,
		repo:   repo,
	}
}

// Resolve maps a storefront handle to its tenant and store. Every downstream
// component works with the returned store id, never with client-supplied data.
func (s *Service) Resolve(ctx context.Context, handle string) (*model.Tenant, *model.Store, error) {
	if handle == "" {
		return nil, nil, ErrTenantNotFound
	}

	tenant, store, err := s.repo.GetTenantByHandle(ctx, handle)
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil, ErrTenantNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("tenant.Resolve: %w", err)
	}

	s.logger.Debug("tenant resolved",
		slog.String("handle", handle),
		slog.Int64("store_id", store.ID))

	return tenant, store, nil
}
