package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/booklending/internal/entities"
	"github.com/mrlokans/booklending/internal/lending"
)

func event(kind lending.EventKind, payload lending.EventPayload) lending.Event {
	return lending.Event{ID: "evt-1", RecipientUserID: 9, Kind: kind, Payload: payload}
}

func TestRender(t *testing.T) {
	due := time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		event       lending.Event
		wantTitle   string
		wantMessage string
		wantType    entities.NotificationType
	}{
		{
			name:        "requested",
			event:       event(lending.EventBorrowRequested, lending.EventPayload{BookTitle: "Dune"}),
			wantTitle:   "Borrowing Request Created",
			wantMessage: `Your request to borrow "Dune" has been submitted.`,
			wantType:    entities.NotificationTypeBorrowing,
		},
		{
			name:        "confirmed",
			event:       event(lending.EventBorrowConfirmed, lending.EventPayload{DueDate: &due}),
			wantTitle:   "Book Picked Up",
			wantMessage: "You have picked up the book. Due date: 2026-06-15",
			wantType:    entities.NotificationTypeBorrowing,
		},
		{
			name:        "returned on time",
			event:       event(lending.EventBookReturned, lending.EventPayload{}),
			wantTitle:   "Book Returned",
			wantMessage: "You have returned the book.",
			wantType:    entities.NotificationTypeBorrowing,
		},
		{
			name:        "returned late",
			event:       event(lending.EventBookReturned, lending.EventPayload{FineAmount: 15000}),
			wantTitle:   "Book Returned",
			wantMessage: "You have returned the book. Fine amount: 15000 VND",
			wantType:    entities.NotificationTypeBorrowing,
		},
		{
			name:        "overdue",
			event:       event(lending.EventBookOverdue, lending.EventPayload{BookTitle: "Dune", OverdueDays: 2, FineAmount: 10000}),
			wantTitle:   "Book Overdue",
			wantMessage: `"Dune" is 2 day(s) overdue. Current fine: 10000 VND.`,
			wantType:    entities.NotificationTypeOverdue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Render(tt.event)
			assert.Equal(t, uint(9), n.UserID)
			assert.Equal(t, "evt-1", n.EventID)
			assert.Equal(t, tt.wantTitle, n.Title)
			assert.Equal(t, tt.wantMessage, n.Message)
			assert.Equal(t, tt.wantType, n.Type)
			assert.True(t, json.Valid([]byte(n.Metadata)))
		})
	}
}

type memoryInbox struct {
	items []entities.Notification
}

func (m *memoryInbox) Create(_ context.Context, n *entities.Notification) error {
	m.items = append(m.items, *n)
	return nil
}

func TestInbox_Emit(t *testing.T) {
	store := &memoryInbox{}
	inbox := NewInbox(store)

	err := inbox.Emit(context.Background(), event(lending.EventBorrowRequested, lending.EventPayload{BookTitle: "Dune"}))
	require.NoError(t, err)
	require.Len(t, store.items, 1)
	assert.Equal(t, "Borrowing Request Created", store.items[0].Title)
}

func TestFanout_DeliversToAllAndCollectsErrors(t *testing.T) {
	var calls int
	ok := lending.NotifierFunc(func(context.Context, lending.Event) error {
		calls++
		return nil
	})
	failing := lending.NotifierFunc(func(context.Context, lending.Event) error {
		calls++
		return errors.New("smtp down")
	})

	err := Fanout{failing, nil, ok}.Emit(context.Background(), event(lending.EventBookReturned, lending.EventPayload{}))
	assert.EqualError(t, err, "smtp down")
	assert.Equal(t, 2, calls)

	assert.NoError(t, Fanout{ok}.Emit(context.Background(), event(lending.EventBookReturned, lending.EventPayload{})))
}
