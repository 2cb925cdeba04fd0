package lending

import (
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/booklending/internal/entities"
)

type EventKind string

const (
	EventBorrowRequested EventKind = "borrow-requested"
	EventBorrowConfirmed EventKind = "borrow-confirmed"
	EventBookReturned    EventKind = "book-returned"
	EventBookOverdue     EventKind = "book-overdue"
)

// Event is a lifecycle notification for one user.
type Event struct {
	ID              string       `json:"id"`
	RecipientUserID uint         `json:"recipient_user_id"`
	Kind            EventKind    `json:"kind"`
	OccurredAt      time.Time    `json:"occurred_at"`
	Payload         EventPayload `json:"payload"`
}

type EventPayload struct {
	BorrowingID uint       `json:"borrowing_id"`
	BookID      uint       `json:"book_id"`
	LibraryID   uint       `json:"library_id"`
	BookTitle   string     `json:"book_title,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	FineAmount  int64      `json:"fine_amount,omitempty"`
	OverdueDays int        `json:"overdue_days,omitempty"`
}

func newEvent(kind EventKind, record *entities.BorrowingRecord, bookTitle string, now time.Time) Event {
	return Event{
		ID:              uuid.NewString(),
		RecipientUserID: record.UserID,
		Kind:            kind,
		OccurredAt:      now,
		Payload: EventPayload{
			BorrowingID: record.ID,
			BookID:      record.BookID,
			LibraryID:   record.LibraryID,
			BookTitle:   bookTitle,
			DueDate:     record.DueDate,
			FineAmount:  record.FineAmount,
		},
	}
}
