// Package audit records the lifecycle history of borrowing records.
package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/mrlokans/booklending/internal/database/audit"
	"github.com/mrlokans/booklending/internal/entities"
	"github.com/mrlokans/booklending/internal/lending"
)

const entityBorrowing = "borrowing"

// Service provides high-level audit logging functionality.
type Service struct {
	repo   *audit.Repository
	logger *zap.Logger
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Emit records a lifecycle event as one history entry of its borrowing record.
func (s *Service) Emit(ctx context.Context, event lending.Event) error {
	borrowingID := event.Payload.BorrowingID
	eventID := event.ID
	entry := &entities.AuditEvent{
		UserID:      event.RecipientUserID,
		EventID:     &eventID,
		EventType:   entities.AuditEventLending,
		Action:      string(event.Kind),
		Description: describe(event),
		EntityType:  entityBorrowing,
		EntityID:    &borrowingID,
		Status:      entities.AuditStatusSuccess,
		CreatedAt:   event.OccurredAt,
	}

	if md, err := json.Marshal(event.Payload); err == nil {
		entry.Metadata = string(md)
	}

	return s.repo.LogEvent(ctx, entry)
}

// History returns the recorded lifecycle of a borrowing, oldest first.
func (s *Service) History(ctx context.Context, borrowingID uint) ([]entities.AuditEvent, error) {
	return s.repo.History(ctx, entityBorrowing, borrowingID)
}

func describe(event lending.Event) string {
	p := event.Payload
	switch event.Kind {
	case lending.EventBorrowRequested:
		return truncate(fmt.Sprintf("Requested %q", p.BookTitle), 500)
	case lending.EventBorrowConfirmed:
		if p.DueDate != nil {
			return "Picked up, due " + p.DueDate.Format("2006-01-02")
		}
		return "Picked up"
	case lending.EventBookReturned:
		if p.FineAmount > 0 {
			return fmt.Sprintf("Returned %d day(s) late, fined %d", p.OverdueDays, p.FineAmount)
		}
		return "Returned on time"
	case lending.EventBookOverdue:
		return fmt.Sprintf("Overdue reminder: %d day(s) late", p.OverdueDays)
	}
	return string(event.Kind)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
