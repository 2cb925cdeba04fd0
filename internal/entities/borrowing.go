package entities

import (
	"time"

	"github.com/mrlokans/booklending/internal/apperror"
)

type BorrowingStatus string

const (
	BorrowingStatusPending  BorrowingStatus = "pending"
	BorrowingStatusBorrowed BorrowingStatus = "borrowed"
	BorrowingStatusReturned BorrowingStatus = "returned"

	// BorrowingStatusOverdue is reported for borrowed records past their due date.
	// It is derived on read and never written by this service; rows carrying it
	// from older data are treated like borrowed ones.
	BorrowingStatusOverdue BorrowingStatus = "overdue"
)

// ActiveBorrowingStatuses are the stored statuses counted against borrow limits.
var ActiveBorrowingStatuses = []BorrowingStatus{BorrowingStatusPending, BorrowingStatusBorrowed}

// BorrowingRecord is one loan attempt, from request to return.
type BorrowingRecord struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	UserID           uint            `gorm:"index:idx_borrowing_user_status;not null" json:"user_id"`
	BookID           uint            `gorm:"index;not null" json:"book_id"`
	LibraryID        uint            `gorm:"index:idx_borrowing_library_status;not null" json:"library_id"`
	BorrowDate       *time.Time      `json:"borrow_date,omitempty"`
	DueDate          *time.Time      `gorm:"index:idx_borrowing_due_status" json:"due_date,omitempty"`
	ReturnDate       *time.Time      `json:"return_date,omitempty"`
	ActualReturnDate *time.Time      `json:"actual_return_date,omitempty"`
	Status           BorrowingStatus `gorm:"size:20;not null;index:idx_borrowing_user_status;index:idx_borrowing_library_status;index:idx_borrowing_due_status" json:"status"`
	FineAmount       int64           `gorm:"not null;default:0" json:"fine_amount"`
	IsFined          bool            `gorm:"not null;default:false" json:"is_fined"`
	Notes            string          `gorm:"type:text" json:"notes,omitempty"`
	Version          int             `gorm:"not null;default:1" json:"-"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (BorrowingRecord) TableName() string {
	return "borrowings"
}

// NewBorrowingRequest creates a pending record. Dates stay unset until pickup.
func NewBorrowingRequest(userID, bookID, libraryID uint, notes string) *BorrowingRecord {
	return &BorrowingRecord{
		UserID:    userID,
		BookID:    bookID,
		LibraryID: libraryID,
		Notes:     notes,
		Status:    BorrowingStatusPending,
		Version:   1,
	}
}

// IsActive reports whether the record counts against borrow limits.
func (r *BorrowingRecord) IsActive() bool {
	return r.Status == BorrowingStatusPending || r.Status == BorrowingStatusBorrowed
}

// IsOnLoan reports whether a copy is out with the borrower.
func (r *BorrowingRecord) IsOnLoan() bool {
	return r.Status == BorrowingStatusBorrowed || r.Status == BorrowingStatusOverdue
}

// ConfirmPickup moves a pending record to borrowed and binds the loan dates.
func (r *BorrowingRecord) ConfirmPickup(now time.Time, loanPeriod time.Duration) error {
	if r.Status != BorrowingStatusPending {
		return apperror.InvalidState("Invalid borrowing status: cannot confirm pickup of a " + string(r.Status) + " borrowing")
	}
	borrowed := now.UTC()
	due := borrowed.Add(loanPeriod)
	r.Status = BorrowingStatusBorrowed
	r.BorrowDate = &borrowed
	r.DueDate = &due
	return nil
}

// Return closes a loan. A positive fine marks the record as fined.
func (r *BorrowingRecord) Return(now time.Time, fine int64) error {
	if !r.IsOnLoan() {
		return apperror.InvalidState("Invalid borrowing status: cannot return a " + string(r.Status) + " borrowing")
	}
	if fine < 0 {
		return apperror.Internal("negative fine", nil)
	}
	returned := now.UTC()
	r.Status = BorrowingStatusReturned
	r.ReturnDate = &returned
	r.ActualReturnDate = &returned
	r.FineAmount = fine
	r.IsFined = fine > 0
	return nil
}

// IsOverdueAt reports whether the loan is out past its due date.
func (r *BorrowingRecord) IsOverdueAt(now time.Time) bool {
	return r.IsOnLoan() && r.DueDate != nil && now.After(*r.DueDate)
}

// StatusAt is the status shown to users: borrowed records past due read as overdue.
func (r *BorrowingRecord) StatusAt(now time.Time) BorrowingStatus {
	if r.IsOverdueAt(now) {
		return BorrowingStatusOverdue
	}
	if r.Status == BorrowingStatusOverdue {
		return BorrowingStatusBorrowed
	}
	return r.Status
}
