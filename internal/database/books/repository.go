// Package books provides the book inventory: catalog rows and their copy counters.
//
// Reserve and Release are single conditional UPDATE statements that change
// available_copies and status together, so concurrent callers never observe
// or produce a counter outside [0, total_copies].
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.Reserve(ctx, 123)
package books

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/booklending/internal/apperror"
	"github.com/mrlokans/booklending/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a book after checking its counters.
func (r *Repository) Create(ctx context.Context, book *entities.Book) error {
	if err := book.Validate(); err != nil {
		return apperror.Invalid(err.Error())
	}
	return r.db.WithContext(ctx).Create(book).Error
}

// Get returns a snapshot of the book.
func (r *Repository) Get(ctx context.Context, id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("book")
	}
	if err != nil {
		return nil, fmt.Errorf("get book %d: %w", id, err)
	}
	return &book, nil
}

// ListByLibrary returns the books held by a library, ordered by title.
func (r *Repository) ListByLibrary(ctx context.Context, libraryID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).Where("library_id = ?", libraryID).Order("title ASC").Find(&books).Error
	return books, err
}

// Reserve decrements available copies by one if any are left.
func (r *Repository) Reserve(ctx context.Context, id uint) (*entities.Book, error) {
	result := r.db.WithContext(ctx).Model(&entities.Book{}).
		Where("id = ? AND available_copies > 0", id).
		Updates(map[string]interface{}{
			"available_copies": gorm.Expr("available_copies - 1"),
			"status": gorm.Expr("CASE WHEN available_copies - 1 > 0 THEN ? ELSE ? END",
				entities.BookStatusAvailable, entities.BookStatusUnavailable),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("reserve book %d: %w", id, result.Error)
	}

	if result.RowsAffected == 0 {
		if _, err := r.Get(ctx, id); err != nil {
			return nil, err
		}
		return nil, apperror.Unavailable("Book is not available for borrowing")
	}

	return r.snapshot(ctx, id)
}

// Release increments available copies by one, clamped to the total.
func (r *Repository) Release(ctx context.Context, id uint) (*entities.Book, error) {
	result := r.db.WithContext(ctx).Model(&entities.Book{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"available_copies": gorm.Expr("CASE WHEN available_copies + 1 > total_copies THEN total_copies ELSE available_copies + 1 END"),
			"status": gorm.Expr("CASE WHEN total_copies > 0 THEN ? ELSE ? END",
				entities.BookStatusAvailable, entities.BookStatusUnavailable),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("release book %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperror.NotFound("book")
	}

	return r.snapshot(ctx, id)
}

// SetTotalCopies changes a book's copy count, keeping loaned copies out of the pool.
func (r *Repository) SetTotalCopies(ctx context.Context, id uint, total int) (*entities.Book, error) {
	var book *entities.Book
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := NewRepository(tx)
		var err error
		if book, err = txRepo.Get(ctx, id); err != nil {
			return err
		}
		if err = book.SetTotalCopies(total); err != nil {
			return err
		}
		return tx.Model(book).Select("total_copies", "available_copies", "status", "updated_at").Updates(book).Error
	})
	if err != nil {
		return nil, err
	}
	return book, nil
}

// snapshot re-reads the row after a counter change and rejects a broken invariant.
func (r *Repository) snapshot(ctx context.Context, id uint) (*entities.Book, error) {
	book, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := book.Validate(); err != nil {
		return nil, apperror.Internal("inventory invariant violated", err)
	}
	return book, nil
}
