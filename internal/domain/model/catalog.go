package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TenantStatus string

const (
	TenantActive    TenantStatus = "active"
	TenantSuspended TenantStatus = "suspended"
)

// Tenant maps an opaque storefront handle to exactly one store. Non-active
// tenants must be unreachable for checkout.
type Tenant struct {
	ID      int64        `json:"id"      db:"id"`
	Handle  string       `json:"handle"  db:"handle"`
	Name    string       `json:"name"    db:"name"`
	Status  TenantStatus `json:"status"  db:"status"`
	StoreID int64        `json:"store_id" db:"store_id"`
}

type Store struct {
	ID        int64     `json:"id"         db:"id"`
	Name      string    `json:"name"       db:"name"`
	Status    string    `json:"status"     db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Product belongs to exactly one store. Stock is informational only; order
// creation neither checks nor decrements it.
type Product struct {
	ID        int64           `json:"id"         db:"id"`
	StoreID   int64           `json:"store_id"   db:"store_id"`
	Name      string          `json:"name"       db:"name"`
	Price     decimal.Decimal `json:"price"      db:"price"`
	Stock     int             `json:"stock"      db:"stock"`
	Status    string          `json:"status"     db:"status"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}
