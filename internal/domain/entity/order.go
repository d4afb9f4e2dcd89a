package entity

import (
	"time"
)

const (
	OrderStatusPending        = "pending"
	OrderStatusConfirmed      = "confirmed"
	OrderStatusProcessing     = "processing"
	OrderStatusShipped        = "shipped"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"

	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

var orderStatuses = map[string]bool{
	OrderStatusPending:        true,
	OrderStatusConfirmed:      true,
	OrderStatusProcessing:     true,
	OrderStatusShipped:        true,
	OrderStatusOutForDelivery: true,
	OrderStatusDelivered:      true,
	OrderStatusCancelled:      true,
}

var paymentStatuses = map[string]bool{
	PaymentStatusPending:  true,
	PaymentStatusPaid:     true,
	PaymentStatusFailed:   true,
	PaymentStatusRefunded: true,
}

func IsValidOrderStatus(s string) bool   { return orderStatuses[s] }
func IsValidPaymentStatus(s string) bool { return paymentStatuses[s] }

// CustomerInfo is the customer snapshot taken when the order is placed.
type CustomerInfo struct {
	Name           string `json:"name" firestore:"name"`
	Email          string `json:"email,omitempty" firestore:"email,omitempty"`
	Phone          string `json:"phone" firestore:"phone"`
	Address        string `json:"address" firestore:"address"`
	City           string `json:"city,omitempty" firestore:"city,omitempty"`
	Area           string `json:"area,omitempty" firestore:"area,omitempty"`
	PaymentMethod  string `json:"payment_method" firestore:"paymentMethod"`
	DeliveryMethod string `json:"delivery_method" firestore:"deliveryMethod"`
	Notes          string `json:"notes,omitempty" firestore:"notes,omitempty"`
}

type StatusHistoryEntry struct {
	Status    string    `json:"status" firestore:"status"`
	Note      string    `json:"note,omitempty" firestore:"note,omitempty"`
	ChangedBy string    `json:"changed_by,omitempty" firestore:"changedBy,omitempty"`
	ChangedAt time.Time `json:"changed_at" firestore:"changedAt"`
}

type Order struct {
	ID            string               `json:"id" firestore:"id"`
	OrderNumber   string               `json:"order_number" firestore:"orderNumber"`
	UserID        string               `json:"user_id,omitempty" firestore:"userId,omitempty"`
	Customer      CustomerInfo         `json:"customer" firestore:"customer"`
	TotalAmount   float64              `json:"total_amount" firestore:"totalAmount"`
	ShippingCost  float64              `json:"shipping_cost" firestore:"shippingCost"`
	Status        string               `json:"status" firestore:"status"`
	PaymentStatus string               `json:"payment_status" firestore:"paymentStatus"`
	StatusHistory []StatusHistoryEntry `json:"status_history" firestore:"statusHistory"`
	CreatedAt     time.Time            `json:"created_at" firestore:"createdAt"`
	UpdatedAt     time.Time            `json:"updated_at" firestore:"updatedAt"`
}

// OrderItem is stored as its own document keyed by OrderID. Display
// fields are denormalized at order time.
type OrderItem struct {
	ID          string `json:"id" firestore:"id"`
	OrderID     string `json:"order_id" firestore:"orderId"`
	ProductID   string `json:"product_id" firestore:"productId"`
	ProductName string `json:"product_name" firestore:"productName"`
	// Position is the item's index in the submitted order.
	Position int `json:"position" firestore:"position"`

	RegionID    string `json:"region_id,omitempty" firestore:"regionId,omitempty"`
	RegionName  string `json:"region_name,omitempty" firestore:"regionName,omitempty"`
	NetworkID   string `json:"network_id,omitempty" firestore:"networkId,omitempty"`
	NetworkName string `json:"network_name,omitempty" firestore:"networkName,omitempty"`
	ColorID     string `json:"color_id,omitempty" firestore:"colorId,omitempty"`
	ColorName   string `json:"color_name,omitempty" firestore:"colorName,omitempty"`
	StorageID   string `json:"storage_id,omitempty" firestore:"storageId,omitempty"`
	StorageSize string `json:"storage_size,omitempty" firestore:"storageSize,omitempty"`

	UnitPrice float64 `json:"unit_price" firestore:"unitPrice"`
	Quantity  int     `json:"quantity" firestore:"quantity"`
	Image     string  `json:"image,omitempty" firestore:"image,omitempty"`

	VariantSelection map[string]interface{} `json:"variant_selection,omitempty" firestore:"variantSelection,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

func (i *OrderItem) LineTotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}
