package escalation

import (
	"context"
	"time"

	"support-routing-be/internal/pkg/logger"
	"support-routing-be/pkg/events"

	"github.com/cenkalti/backoff/v4"
)

// QueuePublisher delivers an escalation event to a named handler queue.
// Satisfied by the NATS publisher.
type QueuePublisher interface {
	PublishEscalation(ctx context.Context, queue string, event events.Event) error
}

// AlertSender raises an operational alert when delivery degrades.
// Satisfied by the SMTP mailer.
type AlertSender interface {
	SendOpsAlert(subject, body string) error
}

type NotifierOptions struct {
	MaxRetries     int
	InitialBackoff time.Duration
}

// Notifier delivers escalation decisions to handler queues with retry.
// Delivery failures never bubble up to the customer turn: after retries are
// exhausted the event falls back to the default queue and ops is alerted.
type Notifier struct {
	publisher QueuePublisher
	alerts    AlertSender
	opts      NotifierOptions
	logger    logger.ILogger
}

func NewNotifier(publisher QueuePublisher, alerts AlertSender, opts NotifierOptions, log logger.ILogger) *Notifier {
	return &Notifier{
		publisher: publisher,
		alerts:    alerts,
		opts:      opts,
		logger:    log,
	}
}

// Notify sends the escalation event to its target queue and returns the queue
// that actually received it.
func (n *Notifier) Notify(ctx context.Context, queue string, event events.Event) string {
	if n.publisher == nil {
		n.logger.Warn("Escalation", "No publisher configured, escalation not delivered", map[string]interface{}{
			"queue": queue,
			"event": event.EventType(),
		})
		return queue
	}

	if err := n.deliver(ctx, queue, event); err == nil {
		return queue
	}

	if queue != DefaultHandlerQueue {
		n.logger.Warn("Escalation", "Falling back to default queue", map[string]interface{}{
			"queue":    queue,
			"fallback": DefaultHandlerQueue,
		})
		if err := n.deliver(ctx, DefaultHandlerQueue, event); err == nil {
			n.alert(queue, event, "delivery fell back to "+DefaultHandlerQueue)
			return DefaultHandlerQueue
		}
	}

	// Nothing reachable. The ticket already exists, so the escalation is
	// recoverable from the database; alert and move on.
	n.logger.Error("Escalation", "Escalation delivery failed on all queues", map[string]interface{}{
		"queue": queue,
		"event": event.EventType(),
	})
	n.alert(queue, event, "delivery failed on all queues")
	return ""
}

func (n *Notifier) deliver(ctx context.Context, queue string, event events.Event) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = n.opts.InitialBackoff

	attempts := uint64(n.opts.MaxRetries)
	if attempts == 0 {
		attempts = 1
	}

	operation := func() error {
		return n.publisher.PublishEscalation(ctx, queue, event)
	}

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, attempts), ctx))
	if err != nil {
		n.logger.Warn("Escalation", "Queue delivery exhausted retries", map[string]interface{}{
			"queue": queue,
			"error": err.Error(),
		})
	}
	return err
}

func (n *Notifier) alert(queue string, event events.Event, reason string) {
	if n.alerts == nil {
		return
	}
	body := "Escalation event " + event.EventType() + " for queue " + queue + ": " + reason
	if err := n.alerts.SendOpsAlert("Escalation delivery degraded", body); err != nil {
		n.logger.Error("Escalation", "Failed to send ops alert", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
