package scheduler

import (
	"context"
	"time"

	"github.com/mrlokans/booklending/internal/tasks"
)

// OverdueReminder is implemented by the lending engine.
type OverdueReminder interface {
	NotifyOverdue(ctx context.Context) (int, error)
}

// OverdueRemindersJob sends reminders directly, or through the task queue when one is given.
func OverdueRemindersJob(schedule string, reminder OverdueReminder, queue tasks.Enqueuer) Job {
	return Job{
		Name:     "overdue_reminders",
		Schedule: schedule,
		Timeout:  10 * time.Minute,
		Run: func(ctx context.Context) error {
			if queue != nil {
				_, err := queue.Add(tasks.OverdueRemindersTask{}).Ctx(ctx).Save()
				return err
			}
			_, err := reminder.NotifyOverdue(ctx)
			return err
		},
	}
}

// NotificationCleanupJob removes old read notifications, directly or through the task queue.
func NotificationCleanupJob(schedule string, retentionDays int, cleaner tasks.NotificationCleaner, queue tasks.Enqueuer) Job {
	return Job{
		Name:     "notification_cleanup",
		Schedule: schedule,
		Timeout:  2 * time.Minute,
		Run: func(ctx context.Context) error {
			if queue != nil {
				_, err := queue.Add(tasks.CleanupNotificationsTask{RetentionDays: retentionDays}).Ctx(ctx).Save()
				return err
			}
			_, err := cleaner.DeleteOldRead(ctx, time.Duration(retentionDays)*24*time.Hour)
			return err
		},
	}
}
