package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderPlacedItem struct {
	ProductID  uuid.UUID `json:"product_id"`
	Quantity   int64     `json:"quantity"`
	PricePaise int64     `json:"price_paise"`
}

// OrderPlacedEvent is published after a checkout commits.
type OrderPlacedEvent struct {
	Event       string            `json:"event"` // "order.placed"
	OrderID     uuid.UUID         `json:"order_id"`
	OrderNumber string            `json:"order_number"`
	UserID      uuid.UUID         `json:"user_id"`
	TotalPaise  int64             `json:"total_paise"`
	Items       []OrderPlacedItem `json:"items"`
	Timestamp   time.Time         `json:"timestamp"`
}
