package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderComputesTotals(t *testing.T) {
	items := []OrderItem{
		{ProductID: 1, Quantity: 2, Price: decimal.RequireFromString("10.000")},
		{ProductID: 2, Quantity: 1, Price: decimal.RequireFromString("5.500")},
	}

	o := NewOrder(1, 42, items, decimal.RequireFromString("2.000"), decimal.Zero)

	require.Len(t, o.Items, 2)
	assert.True(t, o.Items[0].Total.Equal(decimal.RequireFromString("20.000")), "item total: %s", o.Items[0].Total)
	assert.True(t, o.Subtotal.Equal(decimal.RequireFromString("25.500")), "subtotal: %s", o.Subtotal)
	assert.True(t, o.Total.Equal(decimal.RequireFromString("27.500")), "total: %s", o.Total)
	assert.Equal(t, OrderPending, o.Status)
	assert.Equal(t, PaymentPending, o.PaymentStatus)
}

func TestNewOrderTotalInvariant(t *testing.T) {
	items := []OrderItem{
		{ProductID: 1, Quantity: 3, Price: decimal.RequireFromString("7.250")},
	}
	shipping := decimal.RequireFromString("1.500")
	tax := decimal.RequireFromString("0.750")

	o := NewOrder(1, 1, items, shipping, tax)

	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.Total)
	}
	assert.True(t, o.Subtotal.Equal(sum))
	assert.True(t, o.Total.Equal(o.Subtotal.Add(o.ShippingCost).Add(o.Tax)))
}

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		ok       bool
	}{
		{OrderPending, OrderConfirmed, true},
		{OrderPending, OrderCancelled, true},
		{OrderConfirmed, OrderPreparing, true},
		{OrderPreparing, OrderReady, true},
		{OrderReady, OrderDelivered, true},
		{OrderReady, OrderCancelled, true},
		{OrderPending, OrderReady, false},
		{OrderDelivered, OrderCancelled, false},
		{OrderCancelled, OrderPending, false},
		{OrderDelivered, OrderPending, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.ok, tt.from.CanTransition(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	assert.True(t, OrderDelivered.Terminal())
	assert.True(t, OrderCancelled.Terminal())
	assert.False(t, OrderPending.Terminal())
	assert.False(t, OrderReady.Terminal())
}

func TestPaymentMethodValid(t *testing.T) {
	assert.True(t, PaymentCash.Valid())
	assert.True(t, PaymentCard.Valid())
	assert.False(t, PaymentMethod("bitcoin").Valid())
	assert.False(t, PaymentMethod("").Valid())
}
