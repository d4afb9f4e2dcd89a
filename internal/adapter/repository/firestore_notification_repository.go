package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"telemart/internal/domain/entity"
	"telemart/internal/domain/repository"
	"telemart/pkg/errors"
)

type firestoreNotificationRepository struct {
	client *firestore.Client
}

func NewFirestoreNotificationRepository(client *firestore.Client) repository.NotificationRepository {
	return &firestoreNotificationRepository{client: client}
}

func notificationCreatedAt(n *entity.Notification) time.Time { return n.CreatedAt }

func (r *firestoreNotificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	if n.ID == "" {
		n.ID = r.client.Collection(colNotifications).NewDoc().ID
	}
	now := time.Now()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = now
	}
	n.UpdatedAt = now
	return setDoc(ctx, r.client.Collection(colNotifications).Doc(n.ID), n, "create notification")
}

func (r *firestoreNotificationRepository) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	return getDoc[entity.Notification](ctx, r.client.Collection(colNotifications).Doc(id), "Notification")
}

func (r *firestoreNotificationRepository) ListByUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, int64, error) {
	query := r.client.Collection(colNotifications).Where("userId", "==", userID)
	if unreadOnly {
		query = query.Where("isRead", "==", false)
	}
	items, err := collect[entity.Notification](query.Documents(ctx), "notifications")
	if err != nil {
		return nil, 0, err
	}
	page, total := newestPage(items, notificationCreatedAt, limit, offset)
	return page, total, nil
}

func (r *firestoreNotificationRepository) ListAdmin(ctx context.Context, unresolvedOnly bool, limit, offset int) ([]*entity.Notification, int64, error) {
	query := r.client.Collection(colNotifications).Where("isAdmin", "==", true)
	if unresolvedOnly {
		query = query.Where("isResolved", "==", false)
	}
	items, err := collect[entity.Notification](query.Documents(ctx), "notifications")
	if err != nil {
		return nil, 0, err
	}
	page, total := newestPage(items, notificationCreatedAt, limit, offset)
	return page, total, nil
}

func (r *firestoreNotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	docs, err := r.client.Collection(colNotifications).
		Where("userId", "==", userID).
		Where("isRead", "==", false).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count notifications", err)
	}
	return int64(len(docs)), nil
}

func (r *firestoreNotificationRepository) Update(ctx context.Context, n *entity.Notification) error {
	n.UpdatedAt = time.Now()
	return updateDoc(ctx, r.client.Collection(colNotifications).Doc(n.ID), n, "Notification")
}

func (r *firestoreNotificationRepository) MarkAllRead(ctx context.Context, userID string) (int, error) {
	docs, err := r.client.Collection(colNotifications).
		Where("userId", "==", userID).
		Where("isRead", "==", false).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to load notifications", err)
	}
	if len(docs) == 0 {
		return 0, nil
	}

	now := time.Now()
	bw := r.client.BulkWriter(ctx)
	for _, doc := range docs {
		if _, err := bw.Update(doc.Ref, []firestore.Update{
			{Path: "isRead", Value: true},
			{Path: "readAt", Value: now},
			{Path: "updatedAt", Value: now},
		}); err != nil {
			bw.End()
			return 0, errors.Internal("Failed to mark notifications read", err)
		}
	}
	bw.End()
	return len(docs), nil
}
