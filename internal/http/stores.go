package http

import (
	"context"

	"github.com/mrlokans/booklending/internal/entities"
	"github.com/mrlokans/booklending/internal/lending"
)

// This file consolidates the interfaces HTTP controllers depend on.
// Each controller takes only what it calls.

// BorrowingService is the lending engine as seen by the borrowings controller.
type BorrowingService interface {
	RequestBorrow(ctx context.Context, req lending.BorrowRequest) (*entities.BorrowingRecord, error)
	ConfirmPickup(ctx context.Context, recordID uint) (*entities.BorrowingRecord, error)
	ReturnBook(ctx context.Context, recordID uint) (*entities.BorrowingRecord, error)
	GetBorrowing(ctx context.Context, id uint) (*lending.BorrowingView, error)
	ListBorrowings(ctx context.Context, q lending.ListQuery, page lending.Page) (*lending.BorrowingList, error)
	ListUserBorrowings(ctx context.Context, userID uint, status entities.BorrowingStatus, page lending.Page) (*lending.BorrowingList, error)
}

// BorrowingHistory lists the audit trail of one borrowing.
type BorrowingHistory interface {
	History(ctx context.Context, borrowingID uint) ([]entities.AuditEvent, error)
}

// BookGetter provides read access to book inventory.
type BookGetter interface {
	Get(ctx context.Context, id uint) (*entities.Book, error)
}

// NotificationStore is the per-user inbox.
type NotificationStore interface {
	ListForUser(ctx context.Context, userID uint, unreadOnly bool, limit, offset int) ([]entities.Notification, int64, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
	MarkRead(ctx context.Context, userID, id uint) error
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
}

// Pinger reports database reachability.
type Pinger interface {
	Ping() error
}
