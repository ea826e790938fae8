package product

import "time"

const EventProductViewed = "ProductViewed"

type ViewedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	ProductID string    `json:"product_id"`
	Timestamp time.Time `json:"timestamp"`
}
