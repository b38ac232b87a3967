package order

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// newOrderID produces a human-readable candidate like ORD-2026-483920.
// Uniqueness is not guaranteed here; the store-scoped unique index on
// orders.order_id is the authoritative guard and collisions are retried by
// the writer within the configured budget.
func (s *Service) newOrderID(now time.Time) string {
	return fmt.Sprintf("%s-%d-%06d", s.cfg.IDPrefix, now.Year(), rand.IntN(1_000_000))
}
