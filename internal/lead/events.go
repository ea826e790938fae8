package lead

import "time"

const EventLeadCreated = "LeadCreated"

// CreatedEvent notifies the seller side that a buyer asked about a product.
type CreatedEvent struct {
	EventID   string         `json:"event_id"`
	EventType string         `json:"event_type"`
	Payload   CreatedPayload `json:"payload"`
	Timestamp time.Time      `json:"timestamp"`
}

type CreatedPayload struct {
	ID         string `json:"id"`
	ProductID  string `json:"product_id"`
	SellerID   string `json:"seller_id"`
	BuyerName  string `json:"buyer_name"`
	BuyerPhone string `json:"buyer_phone"`
	Amount     string `json:"amount"`
	TotalPrice string `json:"total_price"`
}
