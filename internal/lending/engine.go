// Package lending implements the borrowing lifecycle: request, pickup and return,
// with the book inventory kept consistent under concurrent use.
//
// Every transition runs in one Store.Atomic unit. Lifecycle events go to the
// Notifier only after the unit committed; notifier failures are logged and dropped.
package lending

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mrlokans/booklending/internal/apperror"
	"github.com/mrlokans/booklending/internal/entities"
	"github.com/mrlokans/booklending/internal/fines"
	"github.com/mrlokans/booklending/internal/policy"
)

// Settings are the lending rules.
type Settings struct {
	LoanPeriod       time.Duration
	FinePerDay       int64
	DefaultPageLimit int
	MaxPageLimit     int
}

func DefaultSettings() Settings {
	return Settings{
		LoanPeriod:       14 * 24 * time.Hour,
		FinePerDay:       5000,
		DefaultPageLimit: 10,
		MaxPageLimit:     100,
	}
}

type Option func(*Engine)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

func WithNotifier(notifier Notifier) Option {
	return func(e *Engine) { e.notifier = notifier }
}

type Engine struct {
	store    Store
	notifier Notifier
	settings Settings
	now      func() time.Time
	logger   *zap.Logger
}

func NewEngine(store Store, settings Settings, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		notifier: NotifierFunc(func(context.Context, Event) error { return nil }),
		settings: settings,
		now:      time.Now,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	// Stored timestamps are compared as text on SQLite, so every instant the
	// engine writes or filters by is UTC.
	clock := e.now
	e.now = func() time.Time { return clock().UTC() }
	return e
}

// BorrowRequest asks for one copy of a book. A zero LibraryID means the book's own library.
type BorrowRequest struct {
	UserID    uint
	BookID    uint
	LibraryID uint
	Notes     string
}

// RequestBorrow creates a pending record if the user may borrow the book.
// No copy is taken off the shelf until pickup.
func (e *Engine) RequestBorrow(ctx context.Context, req BorrowRequest) (*entities.BorrowingRecord, error) {
	var (
		record *entities.BorrowingRecord
		book   *entities.Book
	)

	err := e.store.Atomic(ctx, func(repos Repositories) error {
		facts, err := e.gatherFacts(ctx, repos, req.UserID, req.BookID)
		if err != nil {
			return err
		}
		if decision := policy.CanBorrow(facts); !decision.Allowed() {
			return decision.Err
		}

		book = facts.Book
		libraryID := req.LibraryID
		if libraryID == 0 {
			libraryID = book.LibraryID
		} else if libraryID != book.LibraryID {
			return apperror.Invalid("Book is not held by this library")
		}

		record = entities.NewBorrowingRequest(req.UserID, req.BookID, libraryID, req.Notes)
		return repos.Records().Create(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	e.emit(ctx, newEvent(EventBorrowRequested, record, book.Title, e.now()))
	return record, nil
}

func (e *Engine) gatherFacts(ctx context.Context, repos Repositories, userID, bookID uint) (policy.Facts, error) {
	var facts policy.Facts

	book, err := repos.Inventory().Get(ctx, bookID)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return facts, err
	}
	facts.Book = book
	if book == nil || !book.IsAvailable() {
		return facts, nil
	}

	user, err := repos.Users().GetForUpdate(ctx, userID)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return facts, err
	}
	facts.User = user
	if user == nil {
		return facts, nil
	}

	if facts.ActiveCount, err = repos.Records().CountActiveByUser(ctx, userID); err != nil {
		return facts, err
	}

	held, err := repos.Records().FindActiveByUserAndBook(ctx, userID, bookID)
	if err != nil {
		return facts, err
	}
	facts.HoldsBook = held != nil

	return facts, nil
}

// ConfirmPickup hands a copy to the borrower: the record moves to borrowed and
// one copy is reserved. Availability is checked again here, since the request
// held nothing.
func (e *Engine) ConfirmPickup(ctx context.Context, recordID uint) (*entities.BorrowingRecord, error) {
	var (
		record *entities.BorrowingRecord
		book   *entities.Book
	)
	now := e.now()

	err := e.store.Atomic(ctx, func(repos Repositories) error {
		var err error
		if record, err = repos.Records().FindByID(ctx, recordID); err != nil {
			return err
		}
		if err = record.ConfirmPickup(now, e.settings.LoanPeriod); err != nil {
			return err
		}
		if book, err = repos.Inventory().Reserve(ctx, record.BookID); err != nil {
			return err
		}
		return repos.Records().Update(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	e.emit(ctx, newEvent(EventBorrowConfirmed, record, book.Title, now))
	return record, nil
}

// ReturnBook closes a loan, charging the fine for every started day past due,
// and puts the copy back on the shelf.
func (e *Engine) ReturnBook(ctx context.Context, recordID uint) (*entities.BorrowingRecord, error) {
	var (
		record      *entities.BorrowingRecord
		book        *entities.Book
		overdueDays int
	)
	now := e.now()

	err := e.store.Atomic(ctx, func(repos Repositories) error {
		var err error
		if record, err = repos.Records().FindByID(ctx, recordID); err != nil {
			return err
		}
		if !record.IsOnLoan() {
			return apperror.InvalidState(fmt.Sprintf("Invalid borrowing status: cannot return a %s borrowing", record.Status))
		}

		if record.DueDate != nil {
			overdueDays = fines.OverdueDays(*record.DueDate, now)
		}
		if err = record.Return(now, fines.Fine(overdueDays, e.settings.FinePerDay)); err != nil {
			return err
		}
		if book, err = repos.Inventory().Release(ctx, record.BookID); err != nil {
			return err
		}
		return repos.Records().Update(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	event := newEvent(EventBookReturned, record, book.Title, now)
	event.Payload.OverdueDays = overdueDays
	e.emit(ctx, event)
	return record, nil
}

// emit delivers an event and swallows any failure, including panics. The
// transition has already committed, so a cancelled request must not drop it.
func (e *Engine) emit(ctx context.Context, event Event) {
	ctx = context.WithoutCancel(ctx)

	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("kind", string(event.Kind)),
		zap.Uint("borrowing_id", event.Payload.BorrowingID),
		zap.Uint("user_id", event.RecipientUserID),
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("notifier panicked", append(fields, zap.Any("panic", r))...)
		}
	}()

	if err := e.notifier.Emit(ctx, event); err != nil {
		e.logger.Error("notification failed", append(fields, zap.Error(err))...)
		return
	}
	e.logger.Debug("notification emitted", fields...)
}
