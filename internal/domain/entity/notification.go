package entity

import "time"

const (
	NotificationOrderUpdate      = "order_update"
	NotificationOrderPlaced      = "order_placed"
	NotificationAdminOrderPlaced = "admin_order_placed"
	NotificationPromotion        = "promotion"
	NotificationGiveaway         = "giveaway"
	NotificationCorporateDeal    = "corporate_deal"
	NotificationStockOut         = "stock_out"
	NotificationSystem           = "system"
)

var notificationTypes = map[string]bool{
	NotificationOrderUpdate:      true,
	NotificationOrderPlaced:      true,
	NotificationAdminOrderPlaced: true,
	NotificationPromotion:        true,
	NotificationGiveaway:         true,
	NotificationCorporateDeal:    true,
	NotificationStockOut:         true,
	NotificationSystem:           true,
}

func IsValidNotificationType(t string) bool { return notificationTypes[t] }

// Notification targets either one user (UserID) or the admin audience
// (IsAdmin, no UserID).
type Notification struct {
	ID         string                 `json:"id" firestore:"id"`
	UserID     string                 `json:"user_id,omitempty" firestore:"userId,omitempty"`
	IsAdmin    bool                   `json:"is_admin" firestore:"isAdmin"`
	Type       string                 `json:"type" firestore:"type"`
	Title      string                 `json:"title" firestore:"title"`
	Message    string                 `json:"message" firestore:"message"`
	Link       string                 `json:"link,omitempty" firestore:"link,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty" firestore:"metadata,omitempty"`
	IsRead     bool                   `json:"is_read" firestore:"isRead"`
	IsResolved bool                   `json:"is_resolved" firestore:"isResolved"`
	ReadAt     *time.Time             `json:"read_at,omitempty" firestore:"readAt,omitempty"`
	ResolvedAt *time.Time             `json:"resolved_at,omitempty" firestore:"resolvedAt,omitempty"`
	CreatedAt  time.Time              `json:"created_at" firestore:"createdAt"`
	UpdatedAt  time.Time              `json:"updated_at" firestore:"updatedAt"`
}
