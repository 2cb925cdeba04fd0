package lending

import (
	"context"
	"time"

	"github.com/mrlokans/booklending/internal/entities"
)

// Inventory owns the per-book copy counters.
// Reserve and Release change the counter and the derived status in one atomic step.
type Inventory interface {
	// Get returns a snapshot, or a NotFound error.
	Get(ctx context.Context, bookID uint) (*entities.Book, error)
	// Reserve takes one copy off the shelf. It fails with NotFound or Unavailable.
	Reserve(ctx context.Context, bookID uint) (*entities.Book, error)
	// Release puts one copy back, never exceeding the total.
	Release(ctx context.Context, bookID uint) (*entities.Book, error)
}

// RecordFilter narrows record listings. Zero values match everything.
type RecordFilter struct {
	UserID    uint
	BookID    uint
	LibraryID uint
	Statuses  []entities.BorrowingStatus
	DueBefore *time.Time
}

// RecordStore persists borrowing records.
type RecordStore interface {
	Create(ctx context.Context, record *entities.BorrowingRecord) error
	// FindByID returns a NotFound error when the record does not exist.
	FindByID(ctx context.Context, id uint) (*entities.BorrowingRecord, error)
	// Update writes the record if its Version is current and bumps Version.
	// A stale Version yields a Conflict error.
	Update(ctx context.Context, record *entities.BorrowingRecord) error
	CountActiveByUser(ctx context.Context, userID uint) (int64, error)
	// FindActiveByUserAndBook returns nil, nil when the user holds no active record for the book.
	FindActiveByUserAndBook(ctx context.Context, userID, bookID uint) (*entities.BorrowingRecord, error)
	// List returns one page of records, newest first, and the total match count.
	// A zero Limit returns every match.
	List(ctx context.Context, filter RecordFilter, page Page) ([]entities.BorrowingRecord, int64, error)
}

// UserDirectory resolves users and their borrow limits.
type UserDirectory interface {
	Get(ctx context.Context, id uint) (*entities.User, error)
	// GetForUpdate is Get with a row lock held until the surrounding transaction ends,
	// where the database supports it.
	GetForUpdate(ctx context.Context, id uint) (*entities.User, error)
}

// Repositories groups the stores a transition works on.
type Repositories interface {
	Inventory() Inventory
	Records() RecordStore
	Users() UserDirectory
}

// Store runs fn against repositories bound to one transaction.
// A non-nil error from fn rolls every change back.
type Store interface {
	Repositories
	Atomic(ctx context.Context, fn func(repos Repositories) error) error
}

// Notifier receives lifecycle events after the transition committed.
type Notifier interface {
	Emit(ctx context.Context, event Event) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, event Event) error

func (f NotifierFunc) Emit(ctx context.Context, event Event) error {
	return f(ctx, event)
}
