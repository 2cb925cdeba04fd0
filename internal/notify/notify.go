package notify

import (
	"context"

	"go.uber.org/multierr"

	"github.com/mrlokans/booklending/internal/entities"
	"github.com/mrlokans/booklending/internal/lending"
)

// InboxStore persists notifications.
type InboxStore interface {
	Create(ctx context.Context, n *entities.Notification) error
}

// Inbox writes every event to the recipient's inbox.
type Inbox struct {
	store InboxStore
}

func NewInbox(store InboxStore) *Inbox {
	return &Inbox{store: store}
}

func (i *Inbox) Emit(ctx context.Context, event lending.Event) error {
	n := Render(event)
	return i.store.Create(ctx, &n)
}

// Fanout sends each event to every notifier, even when some of them fail.
type Fanout []lending.Notifier

func (f Fanout) Emit(ctx context.Context, event lending.Event) error {
	var err error
	for _, n := range f {
		if n == nil {
			continue
		}
		err = multierr.Append(err, n.Emit(ctx, event))
	}
	return err
}
