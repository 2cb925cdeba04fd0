package lending

import (
	"time"

	"github.com/mrlokans/booklending/internal/entities"
	"github.com/mrlokans/booklending/internal/fines"
)

type BookSummary struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	LibraryID       uint   `json:"library_id"`
	AvailableCopies int    `json:"available_copies"`
}

// BorrowingView is a record as shown to users at a point in time.
// Status is derived: a borrowed record past its due date reads as overdue.
type BorrowingView struct {
	entities.BorrowingRecord
	Status      entities.BorrowingStatus `json:"status"`
	OverdueDays int                      `json:"overdue_days"`
	AccruedFine int64                    `json:"accrued_fine"`
	Book        *BookSummary             `json:"book,omitempty"`
}

// BorrowingList is one page of views.
type BorrowingList struct {
	Items []BorrowingView `json:"data"`
	Meta  PageMeta        `json:"meta"`
}

func newView(record entities.BorrowingRecord, book *entities.Book, now time.Time, finePerDay int64) BorrowingView {
	v := BorrowingView{
		BorrowingRecord: record,
		Status:          record.StatusAt(now),
	}
	if record.IsOverdueAt(now) {
		v.OverdueDays = fines.OverdueDays(*record.DueDate, now)
		v.AccruedFine = fines.Fine(v.OverdueDays, finePerDay)
	}
	if book != nil {
		v.Book = &BookSummary{
			ID:              book.ID,
			Title:           book.Title,
			Author:          book.Author,
			LibraryID:       book.LibraryID,
			AvailableCopies: book.AvailableCopies,
		}
	}
	return v
}
