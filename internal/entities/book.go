package entities

import (
	"fmt"
	"time"

	"github.com/mrlokans/booklending/internal/apperror"
)

type BookStatus string

const (
	BookStatusAvailable   BookStatus = "available"
	BookStatusUnavailable BookStatus = "unavailable"
)

// Book is a catalog title held by one library, with its copy counters.
// Status is always DeriveBookStatus(AvailableCopies); use the setters below
// instead of assigning the counters directly.
type Book struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	LibraryID       uint       `gorm:"index;not null" json:"library_id"`
	Title           string     `gorm:"size:512;not null" json:"title"`
	Author          string     `gorm:"size:256" json:"author"`
	ISBN            string     `gorm:"index;size:20" json:"isbn,omitempty"`
	Category        string     `gorm:"size:128" json:"category,omitempty"`
	TotalCopies     int        `gorm:"not null;check:total_copies >= 0" json:"total_copies"`
	AvailableCopies int        `gorm:"not null;check:available_copies >= 0" json:"available_copies"`
	Status          BookStatus `gorm:"index;size:20;not null" json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// DeriveBookStatus maps an available-copy count to its status.
func DeriveBookStatus(available int) BookStatus {
	if available > 0 {
		return BookStatusAvailable
	}
	return BookStatusUnavailable
}

// NewBook creates a book with every copy on the shelf.
func NewBook(libraryID uint, title, author string, totalCopies int) (*Book, error) {
	if title == "" {
		return nil, apperror.Invalid("Book title is required")
	}
	if totalCopies < 0 {
		return nil, apperror.Invalid("Total copies cannot be negative")
	}
	return &Book{
		LibraryID:       libraryID,
		Title:           title,
		Author:          author,
		TotalCopies:     totalCopies,
		AvailableCopies: totalCopies,
		Status:          DeriveBookStatus(totalCopies),
	}, nil
}

// SetTotalCopies changes the copy count, keeping the copies currently on loan
// out of the available pool. It fails when more copies are on loan than the new total.
func (b *Book) SetTotalCopies(total int) error {
	if total < 0 {
		return apperror.Invalid("Total copies cannot be negative")
	}
	onLoan := b.TotalCopies - b.AvailableCopies
	if onLoan > total {
		return apperror.Invalid(fmt.Sprintf("%d copies are on loan, total cannot drop to %d", onLoan, total))
	}
	b.TotalCopies = total
	b.AvailableCopies = total - onLoan
	b.Status = DeriveBookStatus(b.AvailableCopies)
	return nil
}

// Validate reports a broken counter invariant.
func (b *Book) Validate() error {
	if b.TotalCopies < 0 {
		return fmt.Errorf("book %d: total copies %d is negative", b.ID, b.TotalCopies)
	}
	if b.AvailableCopies < 0 || b.AvailableCopies > b.TotalCopies {
		return fmt.Errorf("book %d: available copies %d outside [0, %d]", b.ID, b.AvailableCopies, b.TotalCopies)
	}
	if b.Status != DeriveBookStatus(b.AvailableCopies) {
		return fmt.Errorf("book %d: status %q does not match %d available copies", b.ID, b.Status, b.AvailableCopies)
	}
	return nil
}

func (b *Book) IsAvailable() bool {
	return b.AvailableCopies > 0
}

func (Book) TableName() string {
	return "books"
}
