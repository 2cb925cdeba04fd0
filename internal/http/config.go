package http

import (
	"go.uber.org/zap"

	"github.com/mrlokans/booklending/internal/auth"
	"github.com/mrlokans/booklending/internal/config"
	"github.com/mrlokans/booklending/internal/metrics"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Borrowings BorrowingService
	Books      BookGetter
	Users      auth.UserLookup
	Database   Pinger

	// Optional; the history endpoint is not registered without it
	History BorrowingHistory

	// Optional; the notification endpoints are not registered without it
	Notifications NotificationStore
	Pagination    config.Pagination

	// Optional; request latency and /metrics are skipped without it
	Metrics *metrics.Metrics

	// Rejects mutating requests with 503 when set
	ReadOnly bool

	Logger *zap.Logger

	// Application info
	Version string
}
