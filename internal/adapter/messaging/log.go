package messaging

import (
	"context"

	"github.com/VS237/momshop/pkg/logger"
)

// LogPublisher writes events to the log instead of a broker. It is used
// when no AMQP_URL is configured.
type LogPublisher struct {
	logger logger.Logger
}

var _ Publisher = (*LogPublisher)(nil)

func NewLogPublisher(log logger.Logger) *LogPublisher {
	return &LogPublisher{logger: log}
}

func (p *LogPublisher) Publish(_ context.Context, routingKey string, payload any) error {
	body, err := encode(routingKey, payload)
	if err != nil {
		return err
	}
	p.logger.Info("event", "routing_key", routingKey, "body", string(body))
	return nil
}

func (p *LogPublisher) Close() {}
