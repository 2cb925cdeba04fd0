package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/booklending/internal/audit"
	"github.com/mrlokans/booklending/internal/auth"
	"github.com/mrlokans/booklending/internal/database"
	"github.com/mrlokans/booklending/internal/database/books"
	"github.com/mrlokans/booklending/internal/database/borrowings"
	"github.com/mrlokans/booklending/internal/database/notifications"
	"github.com/mrlokans/booklending/internal/database/users"
	"github.com/mrlokans/booklending/internal/http"
	"github.com/mrlokans/booklending/internal/lending"
	"github.com/mrlokans/booklending/internal/metrics"
	"github.com/mrlokans/booklending/internal/notify"
	"github.com/mrlokans/booklending/internal/scheduler"
	"github.com/mrlokans/booklending/internal/tasks"
)

// =============================================================================
// Lending Engine Ports
// =============================================================================

var _ lending.Store = (*database.Store)(nil)
var _ lending.Inventory = (*books.Repository)(nil)
var _ lending.RecordStore = (*borrowings.Repository)(nil)
var _ lending.UserDirectory = (*users.Repository)(nil)

// =============================================================================
// Notifiers
// =============================================================================

var _ lending.Notifier = (*notify.Inbox)(nil)
var _ lending.Notifier = notify.Fanout(nil)
var _ lending.Notifier = (*audit.Service)(nil)
var _ lending.Notifier = (*tasks.QueueNotifier)(nil)
var _ lending.Notifier = (*metrics.Metrics)(nil)
var _ notify.InboxStore = (*notifications.Repository)(nil)

// =============================================================================
// HTTP Layer
// =============================================================================

var _ http.BorrowingService = (*lending.Engine)(nil)
var _ http.BorrowingHistory = (*audit.Service)(nil)
var _ http.BookGetter = (*books.Repository)(nil)
var _ http.NotificationStore = (*notifications.Repository)(nil)
var _ http.Pinger = (*database.Database)(nil)
var _ auth.UserLookup = (*users.Repository)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ tasks.Enqueuer = (*tasks.Client)(nil)
var _ tasks.OverdueReminder = (*lending.Engine)(nil)
var _ tasks.NotificationCleaner = (*notifications.Repository)(nil)
var _ scheduler.OverdueReminder = (*lending.Engine)(nil)
