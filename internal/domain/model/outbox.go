package model

type OutboxMessage struct {
	ID        int64             `json:"id"         db:"id"`
	EventID   string            `json:"event_id"   db:"event_id"`
	Topic     string            `json:"topic"      db:"topic"`
	Key       string            `json:"key"        db:"key"`
	EventType string            `json:"event_type" db:"event_type"`
	Payload   []byte            `json:"payload"    db:"payload"`
	Headers   map[string]string `json:"headers"    db:"headers"`
}

// OrderCreatedEvent is the payload published to the order event topic when
// the transaction writer commits a new order.
type OrderCreatedEvent struct {
	OrderID    string `json:"order_id"`
	StoreID    int64  `json:"store_id"`
	CustomerID int64  `json:"customer_id"`
	Total      string `json:"total"`
	Status     string `json:"status"`
}
