// Package borrowings stores borrowing records.
//
// Records are never deleted. Updates are optimistic: a write only lands when the
// stored version still matches the one the caller read.
package borrowings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/booklending/internal/apperror"
	"github.com/mrlokans/booklending/internal/entities"
	"github.com/mrlokans/booklending/internal/lending"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, record *entities.BorrowingRecord) error {
	if record.Version == 0 {
		record.Version = 1
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("create borrowing: %w", err)
	}
	return nil
}

func (r *Repository) FindByID(ctx context.Context, id uint) (*entities.BorrowingRecord, error) {
	var record entities.BorrowingRecord
	err := r.db.WithContext(ctx).First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("borrowing")
	}
	if err != nil {
		return nil, fmt.Errorf("find borrowing %d: %w", id, err)
	}
	return &record, nil
}

// Update writes every mutable column if the record's version is current.
func (r *Repository) Update(ctx context.Context, record *entities.BorrowingRecord) error {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&entities.BorrowingRecord{}).
		Where("id = ? AND version = ?", record.ID, record.Version).
		Updates(map[string]interface{}{
			"status":             record.Status,
			"borrow_date":        record.BorrowDate,
			"due_date":           record.DueDate,
			"return_date":        record.ReturnDate,
			"actual_return_date": record.ActualReturnDate,
			"fine_amount":        record.FineAmount,
			"is_fined":           record.IsFined,
			"notes":              record.Notes,
			"version":            record.Version + 1,
			"updated_at":         now,
		})
	if result.Error != nil {
		return fmt.Errorf("update borrowing %d: %w", record.ID, result.Error)
	}

	if result.RowsAffected == 0 {
		if _, err := r.FindByID(ctx, record.ID); err != nil {
			return err
		}
		return apperror.Conflict("Borrowing was modified concurrently, reload and retry")
	}

	record.Version++
	record.UpdatedAt = now
	return nil
}

func (r *Repository) CountActiveByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.BorrowingRecord{}).
		Where("user_id = ? AND status IN ?", userID, entities.ActiveBorrowingStatuses).
		Count(&count).Error
	return count, err
}

func (r *Repository) FindActiveByUserAndBook(ctx context.Context, userID, bookID uint) (*entities.BorrowingRecord, error) {
	var record entities.BorrowingRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ? AND status IN ?", userID, bookID, entities.ActiveBorrowingStatuses).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *Repository) List(ctx context.Context, filter lending.RecordFilter, page lending.Page) ([]entities.BorrowingRecord, int64, error) {
	query := r.db.WithContext(ctx).Model(&entities.BorrowingRecord{})
	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.BookID > 0 {
		query = query.Where("book_id = ?", filter.BookID)
	}
	if filter.LibraryID > 0 {
		query = query.Where("library_id = ?", filter.LibraryID)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if filter.DueBefore != nil {
		query = query.Where("due_date < ?", filter.DueBefore.UTC())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []entities.BorrowingRecord
	query = query.Order("created_at DESC").Order("id DESC")
	if page.Limit > 0 {
		query = query.Limit(page.Limit).Offset(page.Offset())
	}
	err := query.Find(&records).Error
	return records, total, err
}
