package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventLeadAssigned  = "lead.assigned"
	EventLeadCancelled = "lead.cancelled"
)

// LeadEvent is the message published for lifecycle changes the notification
// worker cares about. It carries everything the worker needs so it never has
// to touch the database.
type LeadEvent struct {
	ID         string    `json:"id"`
	Event      string    `json:"event"`
	LeadID     int64     `json:"lead_id"`
	LeadName   string    `json:"lead_name"`
	AgentID    int64     `json:"agent_id,omitempty"`
	AgentName  string    `json:"agent_name,omitempty"`
	AgentEmail string    `json:"agent_email,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Producer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *Producer {
	return &Producer{Conn: conn, Ch: ch}
}

func (p *Producer) PublishLeadEvent(ctx context.Context, event LeadEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal lead event: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish lead event: %w", err)
	}

	return nil
}
