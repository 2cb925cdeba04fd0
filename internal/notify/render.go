// Package notify turns lifecycle events into user inbox notifications.
package notify

import (
	"encoding/json"
	"fmt"

	"github.com/mrlokans/booklending/internal/entities"
	"github.com/mrlokans/booklending/internal/lending"
)

const dueDateLayout = "2006-01-02"

// Render builds the inbox entry for an event.
func Render(event lending.Event) entities.Notification {
	p := event.Payload
	n := entities.Notification{
		UserID:  event.RecipientUserID,
		EventID: event.ID,
		Type:    entities.NotificationTypeBorrowing,
	}

	switch event.Kind {
	case lending.EventBorrowRequested:
		n.Title = "Borrowing Request Created"
		n.Message = fmt.Sprintf("Your request to borrow %q has been submitted.", p.BookTitle)
	case lending.EventBorrowConfirmed:
		n.Title = "Book Picked Up"
		n.Message = "You have picked up the book."
		if p.DueDate != nil {
			n.Message += " Due date: " + p.DueDate.Format(dueDateLayout)
		}
	case lending.EventBookReturned:
		n.Title = "Book Returned"
		n.Message = "You have returned the book."
		if p.FineAmount > 0 {
			n.Message += fmt.Sprintf(" Fine amount: %d VND", p.FineAmount)
		}
	case lending.EventBookOverdue:
		n.Type = entities.NotificationTypeOverdue
		n.Title = "Book Overdue"
		n.Message = fmt.Sprintf("%q is %d day(s) overdue. Current fine: %d VND.", p.BookTitle, p.OverdueDays, p.FineAmount)
	default:
		n.Type = entities.NotificationTypeSystem
		n.Title = "Borrowing Update"
		n.Message = string(event.Kind)
	}

	if metadata, err := json.Marshal(p); err == nil {
		n.Metadata = string(metadata)
	}
	return n
}
