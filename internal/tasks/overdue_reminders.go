package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"
)

// OverdueReminder emits reminders for every overdue loan.
type OverdueReminder interface {
	NotifyOverdue(ctx context.Context) (int, error)
}

// OverdueRemindersTask sends one reminder per overdue loan.
type OverdueRemindersTask struct{}

// Config returns the queue configuration for overdue reminder tasks.
// A single attempt: a retry would remind the same borrowers twice.
func (t OverdueRemindersTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "overdue_reminders",
		MaxAttempts: 1,
		Timeout:     10 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   7 * 24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

func OverdueRemindersProcessor(reminder OverdueReminder) backlite.QueueProcessor[OverdueRemindersTask] {
	return func(ctx context.Context, _ OverdueRemindersTask) error {
		if reminder == nil {
			return fmt.Errorf("overdue reminder not configured")
		}
		if _, err := reminder.NotifyOverdue(ctx); err != nil {
			return fmt.Errorf("overdue reminders: %w", err)
		}
		return nil
	}
}

func NewOverdueRemindersQueue(reminder OverdueReminder) backlite.Queue {
	return backlite.NewQueue(OverdueRemindersProcessor(reminder))
}
