package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/booklending/internal/lending"
)

// DeliverNotificationTask hands one lifecycle event to the delivery notifiers.
type DeliverNotificationTask struct {
	Event lending.Event `json:"event"`
}

// Config returns the default queue configuration for notification delivery tasks.
// NewDeliverNotificationQueue replaces the retry settings with the configured ones.
func (t DeliverNotificationTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "deliver_notification",
		MaxAttempts: 5,
		Backoff:     30 * time.Second,
		Timeout:     30 * time.Second,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// DeliverNotificationProcessor creates a processor function for DeliverNotificationTask.
// Deliveries are retried by the queue, so the notifier must tolerate seeing an event twice.
func DeliverNotificationProcessor(notifier lending.Notifier) backlite.QueueProcessor[DeliverNotificationTask] {
	return func(ctx context.Context, task DeliverNotificationTask) error {
		if notifier == nil {
			return fmt.Errorf("notifier not configured")
		}
		if err := notifier.Emit(ctx, task.Event); err != nil {
			return fmt.Errorf("deliver %s event %s: %w", task.Event.Kind, task.Event.ID, err)
		}
		return nil
	}
}

// NewDeliverNotificationQueue creates a backlite queue for notification delivery
// tasks. Attempts, backoff, timeout and retention come from cfg.
func NewDeliverNotificationQueue(notifier lending.Notifier, cfg Config) backlite.Queue {
	q := backlite.NewQueue(DeliverNotificationProcessor(notifier))
	cfg.applyRetryPolicy(q.Config())
	return q
}

// Enqueuer is the part of Client used to add tasks.
type Enqueuer interface {
	Add(tasks ...backlite.Task) *backlite.TaskAddOp
}

// QueueNotifier is a lending.Notifier that defers delivery to the task queue.
// Emit returns once the event is stored; delivery happens on a worker.
type QueueNotifier struct {
	queue Enqueuer
}

func NewQueueNotifier(queue Enqueuer) *QueueNotifier {
	return &QueueNotifier{queue: queue}
}

func (n *QueueNotifier) Emit(ctx context.Context, event lending.Event) error {
	if _, err := n.queue.Add(DeliverNotificationTask{Event: event}).Ctx(ctx).Save(); err != nil {
		return fmt.Errorf("enqueue %s event: %w", event.Kind, err)
	}
	return nil
}
