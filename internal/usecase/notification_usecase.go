package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"telemart/internal/domain/entity"
	"telemart/internal/domain/repository"
	"telemart/internal/domain/service"
	"telemart/pkg/errors"
	"telemart/pkg/logger"
)

// NotificationContent is one notification to synthesize for an event.
type NotificationContent struct {
	Type    string
	Title   string
	Message string
	Link    string
}

// NotificationEvent describes a domain event in terms of the notifications
// it produces. User is only sent when UserID is set.
type NotificationEvent struct {
	UserID   string
	User     *NotificationContent
	Admin    *NotificationContent
	Metadata map[string]interface{}
}

type DispatchOutcome struct {
	Audience     string // "user" or "admin"
	Notification *entity.Notification
	Err          error
}

// DispatchResult reports each notification insert separately. The inserts
// are independent; one failing does not stop the other.
type DispatchResult struct {
	Outcomes []DispatchOutcome
}

func (r DispatchResult) Err() error {
	var errs []error
	for _, o := range r.Outcomes {
		if o.Err != nil {
			errs = append(errs, fmt.Errorf("%s notification: %w", o.Audience, o.Err))
		}
	}
	return stderrors.Join(errs...)
}

func (r DispatchResult) Created() []*entity.Notification {
	var out []*entity.Notification
	for _, o := range r.Outcomes {
		if o.Err == nil && o.Notification != nil {
			out = append(out, o.Notification)
		}
	}
	return out
}

type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
	pusher           service.NotificationPusher
}

// pusher may be nil when no realtime channel is configured.
func NewNotificationUseCase(notificationRepo repository.NotificationRepository, pusher service.NotificationPusher) *NotificationUseCase {
	return &NotificationUseCase{
		notificationRepo: notificationRepo,
		pusher:           pusher,
	}
}

func (uc *NotificationUseCase) Dispatch(ctx context.Context, event NotificationEvent) DispatchResult {
	var result DispatchResult

	if event.User != nil && event.UserID != "" {
		n := buildNotification(event.User, event.Metadata)
		n.UserID = event.UserID
		result.Outcomes = append(result.Outcomes, uc.insert(ctx, "user", n))
	}
	if event.Admin != nil {
		n := buildNotification(event.Admin, event.Metadata)
		n.IsAdmin = true
		result.Outcomes = append(result.Outcomes, uc.insert(ctx, "admin", n))
	}

	return result
}

func buildNotification(c *NotificationContent, metadata map[string]interface{}) *entity.Notification {
	return &entity.Notification{
		Type:     c.Type,
		Title:    c.Title,
		Message:  c.Message,
		Link:     c.Link,
		Metadata: metadata,
	}
}

func (uc *NotificationUseCase) insert(ctx context.Context, audience string, n *entity.Notification) DispatchOutcome {
	if err := uc.notificationRepo.Create(ctx, n); err != nil {
		return DispatchOutcome{Audience: audience, Err: err}
	}
	uc.push(n)
	return DispatchOutcome{Audience: audience, Notification: n}
}

func (uc *NotificationUseCase) push(n *entity.Notification) {
	if uc.pusher == nil {
		return
	}
	if n.IsAdmin {
		uc.pusher.PushToAdmins(n)
		return
	}
	uc.pusher.PushToUser(n.UserID, n)
}

type CreateNotificationInput struct {
	UserID  string `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`
	Type    string `json:"type" validate:"required"`
	Title   string `json:"title" validate:"required"`
	Message string `json:"message" validate:"required"`
	Link    string `json:"link"`
}

// CreateNotification lets admins post promotion or system notices directly.
func (uc *NotificationUseCase) CreateNotification(ctx context.Context, input CreateNotificationInput) (*entity.Notification, error) {
	if !entity.IsValidNotificationType(input.Type) {
		return nil, errors.BadRequest("Invalid notification type", nil)
	}
	if input.UserID == "" && !input.IsAdmin {
		return nil, errors.BadRequest("Either user_id or is_admin is required", nil)
	}

	n := &entity.Notification{
		UserID:  input.UserID,
		IsAdmin: input.IsAdmin,
		Type:    input.Type,
		Title:   input.Title,
		Message: input.Message,
		Link:    input.Link,
	}
	if err := uc.notificationRepo.Create(ctx, n); err != nil {
		return nil, err
	}
	uc.push(n)
	return n, nil
}

func (uc *NotificationUseCase) ListUserNotifications(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, int64, error) {
	return uc.notificationRepo.ListByUser(ctx, userID, unreadOnly, limit, offset)
}

func (uc *NotificationUseCase) ListAdminNotifications(ctx context.Context, unresolvedOnly bool, limit, offset int) ([]*entity.Notification, int64, error) {
	return uc.notificationRepo.ListAdmin(ctx, unresolvedOnly, limit, offset)
}

func (uc *NotificationUseCase) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return uc.notificationRepo.CountUnread(ctx, userID)
}

// MarkRead marks one of the user's notifications read. Admins may mark admin
// notifications read by passing asAdmin.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID, id string, asAdmin bool) (*entity.Notification, error) {
	n, err := uc.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID && !(asAdmin && n.IsAdmin) {
		return nil, errors.Forbidden("Notification belongs to another user", nil)
	}
	if n.IsRead {
		return n, nil
	}

	now := time.Now()
	n.IsRead = true
	n.ReadAt = &now
	if err := uc.notificationRepo.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, userID string) (int, error) {
	return uc.notificationRepo.MarkAllRead(ctx, userID)
}

func (uc *NotificationUseCase) MarkResolved(ctx context.Context, id string) (*entity.Notification, error) {
	n, err := uc.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.IsResolved {
		return n, nil
	}

	now := time.Now()
	n.IsResolved = true
	n.ResolvedAt = &now
	if err := uc.notificationRepo.Update(ctx, n); err != nil {
		return nil, err
	}
	logger.Debug("Notification %s resolved", id)
	return n, nil
}

func orderPlacedEvent(order *entity.Order, itemCount int) NotificationEvent {
	return NotificationEvent{
		UserID: order.UserID,
		User: &NotificationContent{
			Type:    entity.NotificationOrderPlaced,
			Title:   "Order placed",
			Message: fmt.Sprintf("Your order %s has been placed and is awaiting confirmation.", order.OrderNumber),
			Link:    "/orders/" + order.OrderNumber,
		},
		Admin: &NotificationContent{
			Type:    entity.NotificationAdminOrderPlaced,
			Title:   "New order received",
			Message: fmt.Sprintf("Order %s from %s: %d item(s), total %.2f", order.OrderNumber, order.Customer.Name, itemCount, order.TotalAmount),
			Link:    "/admin/orders/" + order.ID,
		},
		Metadata: map[string]interface{}{
			"orderId":     order.ID,
			"orderNumber": order.OrderNumber,
		},
	}
}

func orderStatusEvent(order *entity.Order) NotificationEvent {
	return NotificationEvent{
		UserID: order.UserID,
		User: &NotificationContent{
			Type:    entity.NotificationOrderUpdate,
			Title:   "Order updated",
			Message: fmt.Sprintf("Your order %s is now %s.", order.OrderNumber, order.Status),
			Link:    "/orders/" + order.OrderNumber,
		},
		Metadata: map[string]interface{}{
			"orderId":     order.ID,
			"orderNumber": order.OrderNumber,
			"status":      order.Status,
		},
	}
}
