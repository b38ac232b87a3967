package order

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sanchey92/storefront/internal/domain/model"
)

// FieldError describes one offending field. Index is the line-item position
// for item errors and -1 for top-level fields.
type FieldError struct {
	Field   string `json:"field"`
	Index   int    `json:"index"`
	Message string `json:"message"`
}

// ValidationErrors collects every offending field and index instead of
// stopping at the first one.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, fe := range v {
		if fe.Index >= 0 {
			msgs = append(msgs, fmt.Sprintf("%s[%d]: %s", fe.Field, fe.Index, fe.Message))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
		}
	}
	return strings.Join(msgs, "; ")
}

// ItemInput is one requested line item. Price is the unit price the client
// saw; it is snapshotted into the order item after validation.
type ItemInput struct {
	ProductID int64
	Quantity  int
	Price     decimal.Decimal
}

// validateItems checks every line item against the catalog: the product must
// exist, belong to the target store, have a positive quantity and a
// non-negative price. Stock is deliberately not checked. All failures are
// collected per index.
func (s *Service) validateItems(ctx context.Context, storeID int64, items []ItemInput) ([]model.OrderItem, error) {
	if len(items) == 0 {
		return nil, ValidationErrors{{Field: "items", Index: -1, Message: "at least one item is required"}}
	}

	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}

	products, err := s.catalog.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("validate items: %w", err)
	}

	var verrs ValidationErrors
	validated := make([]model.OrderItem, 0, len(items))

	for i, it := range items {
		p, ok := products[it.ProductID]
		switch {
		case !ok:
			verrs = append(verrs, FieldError{Field: "items", Index: i, Message: "product does not exist"})
		case p.StoreID != storeID:
			verrs = append(verrs, FieldError{Field: "items", Index: i, Message: "product does not belong to this store"})
		}
		if it.Quantity <= 0 {
			verrs = append(verrs, FieldError{Field: "items", Index: i, Message: "quantity must be a positive integer"})
		}
		if it.Price.IsNegative() {
			verrs = append(verrs, FieldError{Field: "items", Index: i, Message: "price must not be negative"})
		}

		validated = append(validated, model.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	if len(verrs) > 0 {
		return nil, verrs
	}
	return validated, nil
}

// checkClientTotals compares client-supplied advisory totals against the
// server-side recomputation. The server figures are always authoritative; a
// gap beyond the configured tolerance rejects the request rather than letting
// a client under-report its own bill.
func (s *Service) checkClientTotals(o *model.Order, clientSubtotal, clientTotal *decimal.Decimal) error {
	var verrs ValidationErrors

	if clientSubtotal != nil && o.Subtotal.Sub(*clientSubtotal).Abs().GreaterThan(s.cfg.TotalTolerance) {
		verrs = append(verrs, FieldError{
			Field: "subtotal", Index: -1,
			Message: fmt.Sprintf("does not match computed subtotal %s", o.Subtotal),
		})
	}
	if clientTotal != nil && o.Total.Sub(*clientTotal).Abs().GreaterThan(s.cfg.TotalTolerance) {
		verrs = append(verrs, FieldError{
			Field: "total", Index: -1,
			Message: fmt.Sprintf("does not match computed total %s", o.Total),
		})
	}

	if len(verrs) > 0 {
		return verrs
	}
	return nil
}
