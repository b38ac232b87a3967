package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "active"
	CustomerInactive CustomerStatus = "inactive"
	CustomerVIP      CustomerStatus = "vip"
)

// Customer is unique per (store_id, email); guests are regular rows created
// lazily on first checkout. TotalOrders and TotalSpent are mutated only by
// the order transaction writer.
type Customer struct {
	ID          int64           `json:"id"           db:"id"`
	StoreID     int64           `json:"store_id"     db:"store_id"`
	Name        string          `json:"name"         db:"name"`
	Email       string          `json:"email"        db:"email"`
	Phone       string          `json:"phone"        db:"phone"`
	Status      CustomerStatus  `json:"status"       db:"status"`
	TotalOrders int             `json:"total_orders" db:"total_orders"`
	TotalSpent  decimal.Decimal `json:"total_spent"  db:"total_spent"`
	JoinDate    time.Time       `json:"join_date"    db:"join_date"`
}

// GuestInfo is the inline identity a guest supplies with an order request.
type GuestInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}
