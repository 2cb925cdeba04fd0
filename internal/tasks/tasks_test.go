package tasks

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mrlokans/booklending/internal/lending"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []lending.Event
	err    error
}

func (n *recordingNotifier) Emit(_ context.Context, event lending.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return n.err
}

func (n *recordingNotifier) received() []lending.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]lending.Event(nil), n.events...)
}

func TestDeliverNotificationTaskConfig(t *testing.T) {
	cfg := DeliverNotificationTask{}.Config()

	assert.Equal(t, "deliver_notification", cfg.Name)
	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.NotNil(t, cfg.Retention)
}

func TestDeliverNotificationProcessor(t *testing.T) {
	event := lending.Event{ID: "e1", Kind: lending.EventBookReturned, RecipientUserID: 4}

	t.Run("delivers", func(t *testing.T) {
		notifier := &recordingNotifier{}
		err := DeliverNotificationProcessor(notifier)(context.Background(), DeliverNotificationTask{Event: event})
		require.NoError(t, err)
		assert.Len(t, notifier.received(), 1)
	})

	t.Run("propagates failure for retry", func(t *testing.T) {
		notifier := &recordingNotifier{err: errors.New("inbox unavailable")}
		err := DeliverNotificationProcessor(notifier)(context.Background(), DeliverNotificationTask{Event: event})
		assert.ErrorContains(t, err, "inbox unavailable")
	})

	t.Run("nil notifier", func(t *testing.T) {
		err := DeliverNotificationProcessor(nil)(context.Background(), DeliverNotificationTask{Event: event})
		assert.Error(t, err)
	})
}

func TestQueueNotifier_DeliversThroughQueue(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	cfg := DefaultConfig()
	cfg.Workers = 1

	client, err := NewClient(dbPath, cfg, zap.NewNop())
	require.NoError(t, err)
	defer client.Close()

	delivered := &recordingNotifier{}
	client.Register(NewDeliverNotificationQueue(delivered, cfg))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	notifier := NewQueueNotifier(client)
	due := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	err = notifier.Emit(ctx, lending.Event{
		ID:              "evt-42",
		RecipientUserID: 7,
		Kind:            lending.EventBorrowConfirmed,
		Payload:         lending.EventPayload{BorrowingID: 42, BookTitle: "Dune", DueDate: &due},
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return len(delivered.received()) == 1 }, 5*time.Second, 20*time.Millisecond)

	got := delivered.received()[0]
	assert.Equal(t, "evt-42", got.ID)
	assert.Equal(t, lending.EventBorrowConfirmed, got.Kind)
	assert.Equal(t, uint(42), got.Payload.BorrowingID)
	require.NotNil(t, got.Payload.DueDate)
	assert.True(t, due.Equal(*got.Payload.DueDate))

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	client.Stop(stopCtx)
}

type fakeCleaner struct {
	retention time.Duration
	deleted   int64
}

func (c *fakeCleaner) DeleteOldRead(_ context.Context, retention time.Duration) (int64, error) {
	c.retention = retention
	return c.deleted, nil
}

func TestCleanupNotificationsProcessor(t *testing.T) {
	cleaner := &fakeCleaner{deleted: 3}
	process := CleanupNotificationsProcessor(cleaner, zap.NewNop())

	require.NoError(t, process(context.Background(), CleanupNotificationsTask{RetentionDays: 7}))
	assert.Equal(t, 7*24*time.Hour, cleaner.retention)

	require.NoError(t, process(context.Background(), CleanupNotificationsTask{}))
	assert.Equal(t, 30*24*time.Hour, cleaner.retention)

	assert.Error(t, CleanupNotificationsProcessor(nil, zap.NewNop())(context.Background(), CleanupNotificationsTask{}))
}

type fakeReminder struct {
	calls int
	err   error
}

func (r *fakeReminder) NotifyOverdue(context.Context) (int, error) {
	r.calls++
	return 2, r.err
}

func TestOverdueRemindersProcessor(t *testing.T) {
	reminder := &fakeReminder{}
	require.NoError(t, OverdueRemindersProcessor(reminder)(context.Background(), OverdueRemindersTask{}))
	assert.Equal(t, 1, reminder.calls)

	reminder.err = errors.New("db gone")
	assert.ErrorContains(t, OverdueRemindersProcessor(reminder)(context.Background(), OverdueRemindersTask{}), "db gone")

	assert.Equal(t, 1, OverdueRemindersTask{}.Config().MaxAttempts)
}
