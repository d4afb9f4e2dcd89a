package memory

import (
	"context"
	"time"

	"telemart/internal/domain/entity"
	"telemart/internal/domain/repository"
	"telemart/pkg/errors"
)

type notificationRepository struct{ s *Store }

func NewNotificationRepository(s *Store) repository.NotificationRepository {
	return &notificationRepository{s: s}
}

func cloneNotification(n *entity.Notification) *entity.Notification {
	c := *n
	if n.Metadata != nil {
		c.Metadata = make(map[string]interface{}, len(n.Metadata))
		for k, v := range n.Metadata {
			c.Metadata[k] = v
		}
	}
	return &c
}

func (r *notificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n.ID = newID(n.ID)
	now := r.s.now()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = now
	}
	n.UpdatedAt = now
	r.s.notifications[n.ID] = cloneNotification(n)
	return nil
}

func (r *notificationRepository) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n, ok := r.s.notifications[id]
	if !ok {
		return nil, errors.NotFound("Notification", nil)
	}
	return cloneNotification(n), nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Notification
	for _, n := range r.s.notifications {
		if n.UserID != userID || (unreadOnly && n.IsRead) {
			continue
		}
		out = append(out, cloneNotification(n))
	}
	items, total := page(out, createdAtOf, limit, offset)
	return items, total, nil
}

func (r *notificationRepository) ListAdmin(ctx context.Context, unresolvedOnly bool, limit, offset int) ([]*entity.Notification, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Notification
	for _, n := range r.s.notifications {
		if !n.IsAdmin || (unresolvedOnly && n.IsResolved) {
			continue
		}
		out = append(out, cloneNotification(n))
	}
	items, total := page(out, createdAtOf, limit, offset)
	return items, total, nil
}

func createdAtOf(n *entity.Notification) time.Time { return n.CreatedAt }

func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var count int64
	for _, n := range r.s.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *notificationRepository) Update(ctx context.Context, n *entity.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.notifications[n.ID]; !ok {
		return errors.NotFound("Notification", nil)
	}
	n.UpdatedAt = r.s.now()
	r.s.notifications[n.ID] = cloneNotification(n)
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	updated := 0
	for _, n := range r.s.notifications {
		if n.UserID == userID && !n.IsRead {
			readAt := now
			n.IsRead = true
			n.ReadAt = &readAt
			n.UpdatedAt = now
			updated++
		}
	}
	return updated, nil
}
