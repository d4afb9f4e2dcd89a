package entity

import "time"

const (
	WarrantyStatusActive  = "active"
	WarrantyStatusClaimed = "claimed"
	WarrantyStatusExpired = "expired"
	WarrantyStatusVoid    = "void"
)

// WarrantyRecord binds a physical unit (by IMEI) to its warranty term.
type WarrantyRecord struct {
	ID             string    `json:"id" firestore:"id"`
	IMEI           string    `json:"imei" firestore:"imei"`
	SerialNumber   string    `json:"serial_number,omitempty" firestore:"serialNumber,omitempty"`
	ProductID      string    `json:"product_id,omitempty" firestore:"productId,omitempty"`
	ProductName    string    `json:"product_name" firestore:"productName"`
	CustomerName   string    `json:"customer_name" firestore:"customerName"`
	CustomerPhone  string    `json:"customer_phone" firestore:"customerPhone"`
	UserID         string    `json:"user_id,omitempty" firestore:"userId,omitempty"`
	OrderID        string    `json:"order_id,omitempty" firestore:"orderId,omitempty"`
	CarePlanID     string    `json:"care_plan_id,omitempty" firestore:"carePlanId,omitempty"`
	PurchaseDate   time.Time `json:"purchase_date" firestore:"purchaseDate"`
	WarrantyMonths int       `json:"warranty_months" firestore:"warrantyMonths"`
	ExpiresAt      time.Time `json:"expires_at" firestore:"expiresAt"`
	Status         string    `json:"status" firestore:"status"`
	Notes          string    `json:"notes,omitempty" firestore:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt      time.Time `json:"updated_at" firestore:"updatedAt"`
}

// EffectiveStatus reports expired for active records past their term.
func (w *WarrantyRecord) EffectiveStatus(now time.Time) string {
	if w.Status == WarrantyStatusActive && now.After(w.ExpiresAt) {
		return WarrantyStatusExpired
	}
	return w.Status
}
