package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mrlokans/booklending/internal/entities"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	return db
}

func lendingEvent(userID, borrowingID uint, action string, at time.Time) *entities.AuditEvent {
	id := borrowingID
	return &entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventLending,
		Action:      action,
		Description: "test",
		EntityType:  "borrowing",
		EntityID:    &id,
		Status:      entities.AuditStatusSuccess,
		CreatedAt:   at,
	}
}

func TestRepository_LogEvent(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	event := &entities.AuditEvent{
		UserID:      1,
		EventType:   entities.AuditEventLending,
		Action:      "borrow-requested",
		Description: "Requested Dune",
		Status:      entities.AuditStatusSuccess,
	}

	err := repo.LogEvent(context.Background(), event)
	require.NoError(t, err)
	assert.NotZero(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestRepository_History(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()
	start := time.Now().Add(-time.Hour)

	require.NoError(t, repo.LogEvent(ctx, lendingEvent(1, 7, "book-returned", start.Add(2*time.Minute))))
	require.NoError(t, repo.LogEvent(ctx, lendingEvent(1, 7, "borrow-requested", start)))
	require.NoError(t, repo.LogEvent(ctx, lendingEvent(1, 7, "borrow-confirmed", start.Add(time.Minute))))
	require.NoError(t, repo.LogEvent(ctx, lendingEvent(1, 8, "borrow-requested", start)))

	history, err := repo.History(ctx, "borrowing", 7)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "borrow-requested", history[0].Action)
	assert.Equal(t, "borrow-confirmed", history[1].Action)
	assert.Equal(t, "book-returned", history[2].Action)
}

func TestRepository_LogEvent_SkipsRecordedEventID(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()
	at := time.Now().Add(-time.Minute)

	eventID := "5f0c6e2a-7c1e-4a4e-9a38-0d2b8f1c9e11"
	for i := 0; i < 3; i++ {
		entry := lendingEvent(1, 7, "borrow-confirmed", at)
		entry.EventID = &eventID
		require.NoError(t, repo.LogEvent(ctx, entry))
	}
	require.NoError(t, repo.LogEvent(ctx, lendingEvent(1, 7, "book-returned", at.Add(time.Second))))

	history, err := repo.History(ctx, "borrowing", 7)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "borrow-confirmed", history[0].Action)
	assert.Nil(t, history[1].EventID)
}
