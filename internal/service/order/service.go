package order

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/sanchey92/storefront/internal/domain/model"
)

var (
	// ErrOrderNotFound covers both missing orders and orders belonging to a
	// different store; callers must not be able to tell them apart.
	ErrOrderNotFound = errors.New("order not found")
	// ErrSequenceExhausted means the id generator ran out of collision retries.
	ErrSequenceExhausted = errors.New("order id sequence exhausted")
)

// Catalog reads products for line-item validation.
type Catalog interface {
	GetProductsByIDs(ctx context.Context, ids []int64) (map[int64]*model.Product, error)
}

// Saver persists the order, its items, the customer ledger increments and the
// outbox event atomically.
type Saver interface {
	SaveOrderTx(ctx context.Context, o *model.Order, msg *model.OutboxMessage) error
}

// Querier serves the read side, store-scoped.
type Querier interface {
	ListOrders(ctx context.Context, storeID, customerID int64) ([]*model.Order, error)
	GetOrder(ctx context.Context, storeID int64, orderID string) (*model.Order, error)
}

type Config struct {
	IDPrefix        string
	SequenceRetries int
	TotalTolerance  decimal.Decimal
	EventTopic      string
}

type Service struct {
	logger  *slog.Logger
	catalog Catalog
	saver   Saver
	querier Querier
	cfg     Config
}

func NewService(l *slog.Logger, catalog Catalog, saver Saver, querier Querier, cfg Config) *Service {
	if cfg.IDPrefix == "" {
		cfg.IDPrefix = "ORD"
	}
	if cfg.SequenceRetries <= 0 {
		cfg.SequenceRetries = 5
	}
	return &Service{
		logger:  l,
		catalog: catalog,
		saver:   saver,
		querier: querier,
		cfg:     cfg,
	}
}
