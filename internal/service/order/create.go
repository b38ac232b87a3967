package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sanchey92/storefront/internal/domain/model"
	"github.com/sanchey92/storefront/internal/storage/pg"
)

// CreateCommand carries everything the writer needs after tenant and identity
// resolution. ClientSubtotal and ClientTotal are advisory figures from the
// request body; nil means the client did not supply them.
type CreateCommand struct {
	PaymentMethod   model.PaymentMethod
	DeliveryTime    string
	DeliveryAddress string
	Notes           string
	Items           []ItemInput
	ShippingCost    decimal.Decimal
	Tax             decimal.Decimal
	ClientSubtotal  *decimal.Decimal
	ClientTotal     *decimal.Decimal
}

func (cmd *CreateCommand) validate() error {
	var verrs ValidationErrors
	if !cmd.PaymentMethod.Valid() {
		verrs = append(verrs, FieldError{Field: "payment_method", Index: -1, Message: "must be cash or card"})
	}
	if cmd.DeliveryAddress == "" {
		verrs = append(verrs, FieldError{Field: "delivery_address", Index: -1, Message: "is required"})
	}
	if cmd.ShippingCost.IsNegative() {
		verrs = append(verrs, FieldError{Field: "delivery_fee", Index: -1, Message: "must not be negative"})
	}
	if cmd.Tax.IsNegative() {
		verrs = append(verrs, FieldError{Field: "tax", Index: -1, Message: "must not be negative"})
	}
	if len(verrs) > 0 {
		return verrs
	}
	return nil
}

// Create runs the order-creation pipeline for an already-resolved store and
// customer: catalog validation, server-side total computation, id sequencing
// and the atomic write of header, items, ledger increments and outbox event.
// All validation happens before the first write; any failure inside the
// transaction rolls everything back.
func (s *Service) Create(ctx context.Context, store *model.Store, cust *model.Customer, cmd *CreateCommand) (*model.Order, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	items, err := s.validateItems(ctx, store.ID, cmd.Items)
	if err != nil {
		return nil, err
	}

	o := model.NewOrder(store.ID, cust.ID, items, cmd.ShippingCost, cmd.Tax)
	o.PaymentMethod = cmd.PaymentMethod
	o.DeliveryTime = cmd.DeliveryTime
	o.DeliveryAddress = cmd.DeliveryAddress
	o.Notes = cmd.Notes

	if err = s.checkClientTotals(o, cmd.ClientSubtotal, cmd.ClientTotal); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < s.cfg.SequenceRetries; attempt++ {
		o.OrderID = s.newOrderID(o.CreatedAt)

		msg, err := s.createdEvent(o)
		if err != nil {
			return nil, err
		}

		err = s.saver.SaveOrderTx(ctx, o, msg)
		if errors.Is(err, pg.ErrDuplicateOrderID) {
			s.logger.Warn("order id collision, retrying",
				slog.String("order_id", o.OrderID),
				slog.Int("attempt", attempt+1))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("order.Create: %w", err)
		}

		s.logger.Info("order created",
			slog.String("order_id", o.OrderID),
			slog.Int64("store_id", o.StoreID),
			slog.Int64("customer_id", o.CustomerID),
			slog.String("total", o.Total.String()))
		return o, nil
	}

	return nil, fmt.Errorf("order.Create after %d attempts: %w", s.cfg.SequenceRetries, ErrSequenceExhausted)
}

func (s *Service) createdEvent(o *model.Order) (*model.OutboxMessage, error) {
	payload, err := json.Marshal(model.OrderCreatedEvent{
		OrderID:    o.OrderID,
		StoreID:    o.StoreID,
		CustomerID: o.CustomerID,
		Total:      o.Total.String(),
		Status:     string(o.Status),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal order event: %w", err)
	}

	return &model.OutboxMessage{
		EventID:   uuid.NewString(),
		Topic:     s.cfg.EventTopic,
		Key:       o.OrderID,
		EventType: "order.created",
		Payload:   payload,
		Headers:   map[string]string{"store-id": fmt.Sprintf("%d", o.StoreID)},
	}, nil
}
