// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Lending Engine Ports (internal/lending/ports.go)
//
//   - Store: repositories plus Atomic, the unit-of-work boundary
//   - Inventory: book copy counters (Get, Reserve, Release)
//   - RecordStore: borrowing records with versioned updates
//   - UserDirectory: borrower lookup, with a row lock inside transactions
//   - Notifier: lifecycle event sink, called after commit
//
// ## HTTP Interfaces (internal/http/stores.go)
//
//   - BorrowingService: the engine as seen by controllers
//   - BorrowingHistory: audit trail of one record
//   - NotificationStore: per-user inbox
//
// ## Background Work
//
//   - tasks.Enqueuer: backlite task submission
//   - tasks.OverdueReminder / scheduler.OverdueReminder: overdue reminder run
//   - tasks.NotificationCleaner: inbox retention
//
// # Adding a New Notification Channel
//
//  1. Implement lending.Notifier:
//
//     type SMSNotifier struct{ client *sms.Client }
//
//     func (n *SMSNotifier) Emit(ctx context.Context, event lending.Event) error {
//     return n.client.Send(ctx, event.RecipientUserID, notify.Render(event).Message)
//     }
//
//  2. Append it to the notify.Fanout built in internal/entrypoint.
//
//  3. Add a compile-time check to checks.go.
//
// Events reach notifiers after the transaction committed. Returning an error
// only gets logged (or retried when the task queue is enabled); it never
// undoes the transition.
package interfaces
