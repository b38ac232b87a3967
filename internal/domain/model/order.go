package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// orderTransitions holds the allowed forward edges of the order lifecycle.
// delivered and cancelled are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderPreparing, OrderCancelled},
	OrderPreparing: {OrderReady, OrderCancelled},
	OrderReady:     {OrderDelivered, OrderCancelled},
}

func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// CanTransition reports whether moving from s to next is a legal lifecycle step.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentCard
}

type Order struct {
	ID              int64           `json:"id"               db:"id"`
	OrderID         string          `json:"order_id"         db:"order_id"`
	StoreID         int64           `json:"store_id"         db:"store_id"`
	CustomerID      int64           `json:"customer_id"      db:"customer_id"`
	Items           []OrderItem     `json:"items"            db:"-"`
	Status          OrderStatus     `json:"status"           db:"status"`
	PaymentStatus   PaymentStatus   `json:"payment_status"   db:"payment_status"`
	PaymentMethod   PaymentMethod   `json:"payment_method"   db:"payment_method"`
	Subtotal        decimal.Decimal `json:"subtotal"         db:"subtotal"`
	ShippingCost    decimal.Decimal `json:"shipping_cost"    db:"shipping_cost"`
	Tax             decimal.Decimal `json:"tax"              db:"tax"`
	Total           decimal.Decimal `json:"total"            db:"total"`
	DeliveryTime    string          `json:"delivery_time"    db:"delivery_time"`
	DeliveryAddress string          `json:"delivery_address" db:"delivery_address"`
	Notes           string          `json:"notes"            db:"notes"`
	CreatedAt       time.Time       `json:"created_at"       db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"       db:"updated_at"`
}

// OrderItem snapshots quantity and unit price at order time; later product
// price changes must not affect stored rows.
type OrderItem struct {
	ID        int64           `json:"id"         db:"id"`
	OrderID   int64           `json:"-"          db:"order_id"`
	ProductID int64           `json:"product_id" db:"product_id"`
	Quantity  int             `json:"quantity"   db:"quantity"`
	Price     decimal.Decimal `json:"price"      db:"price"`
	Total     decimal.Decimal `json:"total"      db:"total"`
}

// NewOrder builds a pending order header from validated line items, computing
// subtotal and total server-side. The sequenced order_id is assigned later by
// the writer.
func NewOrder(storeID, customerID int64, items []OrderItem, shipping, tax decimal.Decimal) *Order {
	subtotal := decimal.Zero
	for i := range items {
		items[i].Total = items[i].Price.Mul(decimal.NewFromInt(int64(items[i].Quantity)))
		subtotal = subtotal.Add(items[i].Total)
	}

	now := time.Now().UTC()
	return &Order{
		StoreID:       storeID,
		CustomerID:    customerID,
		Items:         items,
		Status:        OrderPending,
		PaymentStatus: PaymentPending,
		Subtotal:      subtotal,
		ShippingCost:  shipping,
		Tax:           tax,
		Total:         subtotal.Add(shipping).Add(tax),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
