package queue

import (
	"encoding/json"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Notifier is the contract for outbound notifications. The worker is fully
// decoupled from the database; everything it needs rides in the event.
type Notifier interface {
	NotifyLeadAssigned(to, agentName, leadName string) error
	NotifyLeadCancelled(to, leadName, reason string) error
}

type Worker struct {
	Channel  *amqp.Channel
	Notifier Notifier
	OpsEmail string
	Logger   *slog.Logger
}

func NewWorker(ch *amqp.Channel, notifier Notifier, opsEmail string, logger *slog.Logger) *Worker {
	return &Worker{
		Channel:  ch,
		Notifier: notifier,
		OpsEmail: opsEmail,
		Logger:   logger,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack, manual is safer
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		w.Logger.Error("failed to register queue consumer", "error", err)
		return
	}

	w.Logger.Info("notification worker waiting for messages", "queue", queueName)

	for d := range msgs {
		var event LeadEvent
		if err := json.Unmarshal(d.Body, &event); err != nil {
			w.Logger.Error("invalid lead event payload", "error", err)
			// Malformed message, reject without requeue so it lands on the DLQ.
			d.Nack(false, false)
			continue
		}

		if err := w.process(event); err != nil {
			w.Logger.Error("failed to process lead event",
				"event", event.Event, "lead_id", event.LeadID, "error", err)
			d.Nack(false, false)
			continue
		}

		w.Logger.Info("lead event processed", "event", event.Event, "lead_id", event.LeadID)
		d.Ack(false)
	}
}

func (w *Worker) process(event LeadEvent) error {
	switch event.Event {
	case EventLeadAssigned:
		return w.Notifier.NotifyLeadAssigned(event.AgentEmail, event.AgentName, event.LeadName)
	case EventLeadCancelled:
		return w.Notifier.NotifyLeadCancelled(w.OpsEmail, event.LeadName, event.Reason)
	default:
		w.Logger.Warn("unknown lead event, dropping", "event", event.Event)
		return nil
	}
}
