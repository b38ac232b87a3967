package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sanchey92/storefront/internal/domain/model"
	"github.com/sanchey92/storefront/internal/storage/pg"
)

var (
	// ErrUnauthenticated means a customer id was claimed without a valid session.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrCustomerNotFound means the authenticated customer does not exist in
	// the resolved store.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrGuestInfoInvalid means the inline guest payload is unusable.
	ErrGuestInfoInvalid = errors.New("guest info invalid")
)

// AuthIdentity is the verified result of the external auth boundary. The
// resolver trusts only these claims, never ids from the request body.
type AuthIdentity struct {
	CustomerID int64
	StoreID    int64
}

type Repo interface {
	GetCustomer(ctx context.Context, storeID, id int64) (*model.Customer, error)
	UpsertGuestCustomer(ctx context.Context, storeID int64, guest *model.GuestInfo) (*model.Customer, error)
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

// Resolve determines the acting customer for a checkout. Authenticated
// sessions win over inline guest payloads; a guest checkout always resolves
// to a persisted customer row keyed by (store_id, email), reusing an existing
// row when the email has ordered from this store before.
func (s *Service) Resolve(ctx context.Context, storeID int64, auth *AuthIdentity, guest *model.GuestInfo) (*model.Customer, error) {
	if auth != nil {
		if auth.StoreID != storeID {
			return nil, ErrUnauthenticated
		}

		c, err := s.repo.GetCustomer(ctx, storeID, auth.CustomerID)
		if errors.Is(err, pg.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("customer.Resolve: %w", err)
		}
		return c, nil
	}

	if guest == nil {
		return nil, ErrUnauthenticated
	}
	if err := validateGuest(guest); err != nil {
		return nil, err
	}

	normalized := &model.GuestInfo{
		Name:  strings.TrimSpace(guest.Name),
		Email: strings.ToLower(strings.TrimSpace(guest.Email)),
		Phone: strings.TrimSpace(guest.Phone),
	}

	c, err := s.repo.UpsertGuestCustomer(ctx, storeID, normalized)
	if err != nil {
		return nil, fmt.Errorf("customer.Resolve: %w", err)
	}

	s.logger.Debug("guest customer resolved",
		slog.Int64("store_id", storeID),
		slog.Int64("customer_id", c.ID))

	return c, nil
}

func validateGuest(guest *model.GuestInfo) error {
	email := strings.TrimSpace(guest.Email)
	if strings.TrimSpace(guest.Name) == "" || email == "" {
		return ErrGuestInfoInvalid
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return ErrGuestInfoInvalid
	}
	return nil
}
