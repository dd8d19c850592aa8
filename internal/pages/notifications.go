package pages

import (
	"context"

	"github.com/ccms-app/dashboard/internal/notifications"
	"github.com/ccms-app/dashboard/internal/store"
)

// NotificationsView is the inbox with its unread count.
type NotificationsView struct {
	store.Snapshot[notifications.View]
	UnreadCount int `json:"unreadCount"`
}

// Notifications is the inbox screen.
type Notifications struct {
	notifications *notifications.Store
}

// Notifications mounts the inbox with the given filters.
func (p *Pages) Notifications(ctx context.Context, filters notifications.Filters) (*Notifications, error) {
	n := &Notifications{notifications: notifications.NewStore(p.notifications, filters)}
	if err := mount(ctx, n.notifications.Fetch); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *Notifications) View() NotificationsView {
	return NotificationsView{Snapshot: n.notifications.Snapshot(), UnreadCount: n.notifications.UnreadCount()}
}

// MarkRead marks one notification read. Failures are left in the view's
// error instead of a toast.
func (n *Notifications) MarkRead(ctx context.Context, id string) error {
	return n.notifications.MarkRead(ctx, id)
}

func (n *Notifications) MarkUnread(ctx context.Context, id string) error {
	return n.notifications.MarkUnread(ctx, id)
}

// MarkAllRead clears the unread count.
func (n *Notifications) MarkAllRead(ctx context.Context) error {
	return report(ctx, "All notifications marked as read", "Failed to mark all as read", func() error {
		return n.notifications.MarkAllRead(ctx)
	})
}

func (n *Notifications) Delete(ctx context.Context, id string) error {
	return n.notifications.Delete(ctx, id)
}
