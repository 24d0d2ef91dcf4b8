// Package messaging publishes domain events once their transaction has
// committed. Subscribers are outside this service.
package messaging

import (
	"context"
)

// Routing keys of the events published by the services.
const (
	EventOrderPlaced     = "order.placed"
	EventOrderProcessed  = "order.processed"
	EventSaleRecorded    = "sale.recorded"
	EventReportGenerated = "report.generated"
)

// Publisher sends an event payload under a routing key.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
	Close()
}

// Message is the envelope written to the broker.
type Message struct {
	Pattern string `json:"pattern"`
	Data    any    `json:"data"`
}
