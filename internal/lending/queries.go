package lending

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/mrlokans/booklending/internal/apperror"
	"github.com/mrlokans/booklending/internal/entities"
)

// ListQuery filters borrowing listings. Status accepts the derived "overdue".
type ListQuery struct {
	Status    entities.BorrowingStatus
	UserID    uint
	LibraryID uint
	BookID    uint
}

func (q ListQuery) recordFilter(now time.Time) (RecordFilter, error) {
	filter := RecordFilter{UserID: q.UserID, LibraryID: q.LibraryID, BookID: q.BookID}

	switch q.Status {
	case "":
	case entities.BorrowingStatusPending, entities.BorrowingStatusReturned:
		filter.Statuses = []entities.BorrowingStatus{q.Status}
	case entities.BorrowingStatusBorrowed:
		filter.Statuses = []entities.BorrowingStatus{entities.BorrowingStatusBorrowed, entities.BorrowingStatusOverdue}
	case entities.BorrowingStatusOverdue:
		filter.Statuses = []entities.BorrowingStatus{entities.BorrowingStatusBorrowed, entities.BorrowingStatusOverdue}
		filter.DueBefore = &now
	default:
		return filter, apperror.Invalid("Unknown borrowing status: " + string(q.Status))
	}
	return filter, nil
}

func (e *Engine) GetBorrowing(ctx context.Context, id uint) (*BorrowingView, error) {
	record, err := e.store.Records().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := e.views(ctx, []entities.BorrowingRecord{*record}, e.now())
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// ListBorrowings returns one page of records matching q, newest first.
func (e *Engine) ListBorrowings(ctx context.Context, q ListQuery, page Page) (*BorrowingList, error) {
	now := e.now()
	filter, err := q.recordFilter(now)
	if err != nil {
		return nil, err
	}

	page = page.Normalize(e.settings.DefaultPageLimit, e.settings.MaxPageLimit)
	records, total, err := e.store.Records().List(ctx, filter, page)
	if err != nil {
		return nil, err
	}

	views, err := e.views(ctx, records, now)
	if err != nil {
		return nil, err
	}
	return &BorrowingList{Items: views, Meta: NewPageMeta(page, total)}, nil
}

// ListUserBorrowings is ListBorrowings restricted to one user.
func (e *Engine) ListUserBorrowings(ctx context.Context, userID uint, status entities.BorrowingStatus, page Page) (*BorrowingList, error) {
	return e.ListBorrowings(ctx, ListQuery{UserID: userID, Status: status}, page)
}

// ListOverdue returns every loan past its due date.
func (e *Engine) ListOverdue(ctx context.Context) ([]BorrowingView, error) {
	now := e.now()
	filter, _ := ListQuery{Status: entities.BorrowingStatusOverdue}.recordFilter(now)

	records, _, err := e.store.Records().List(ctx, filter, Page{})
	if err != nil {
		return nil, err
	}
	return e.views(ctx, records, now)
}

// NotifyOverdue emits a book-overdue event for every overdue loan and returns how many were sent.
func (e *Engine) NotifyOverdue(ctx context.Context) (int, error) {
	overdue, err := e.ListOverdue(ctx)
	if err != nil {
		return 0, err
	}

	now := e.now()
	for i := range overdue {
		v := &overdue[i]
		title := ""
		if v.Book != nil {
			title = v.Book.Title
		}
		event := newEvent(EventBookOverdue, &v.BorrowingRecord, title, now)
		event.Payload.OverdueDays = v.OverdueDays
		event.Payload.FineAmount = v.AccruedFine
		e.emit(ctx, event)
	}

	e.logger.Info("overdue reminders sent", zap.Int("count", len(overdue)))
	return len(overdue), nil
}

func (e *Engine) views(ctx context.Context, records []entities.BorrowingRecord, now time.Time) ([]BorrowingView, error) {
	books := make(map[uint]*entities.Book)
	views := make([]BorrowingView, 0, len(records))

	for _, record := range records {
		book, seen := books[record.BookID]
		if !seen {
			var err error
			book, err = e.store.Inventory().Get(ctx, record.BookID)
			if err != nil && !errors.Is(err, apperror.ErrNotFound) {
				return nil, err
			}
			books[record.BookID] = book
		}
		views = append(views, newView(record, book, now, e.settings.FinePerDay))
	}
	return views, nil
}
