package entity

import "time"

const (
	CorporateDealNew       = "new"
	CorporateDealContacted = "contacted"
	CorporateDealClosed    = "closed"

	GiveawayEntered      = "entered"
	GiveawayWinner       = "winner"
	GiveawayDisqualified = "disqualified"

	StockRequestPending  = "pending"
	StockRequestNotified = "notified"
)

// CorporateDeal is a bulk purchase inquiry, unique per company name.
type CorporateDeal struct {
	ID           string    `json:"id" firestore:"id"`
	CompanyName  string    `json:"company_name" firestore:"companyName"`
	ContactName  string    `json:"contact_name" firestore:"contactName"`
	Email        string    `json:"email" firestore:"email"`
	Phone        string    `json:"phone" firestore:"phone"`
	ProductNames []string  `json:"product_names,omitempty" firestore:"productNames,omitempty"`
	Quantity     int       `json:"quantity" firestore:"quantity"`
	Message      string    `json:"message,omitempty" firestore:"message,omitempty"`
	Status       string    `json:"status" firestore:"status"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time `json:"updated_at" firestore:"updatedAt"`
}

// GiveawayEntry is unique per (campaign, user).
type GiveawayEntry struct {
	ID        string    `json:"id" firestore:"id"`
	Campaign  string    `json:"campaign" firestore:"campaign"`
	UserID    string    `json:"user_id" firestore:"userId"`
	Name      string    `json:"name" firestore:"name"`
	Email     string    `json:"email,omitempty" firestore:"email,omitempty"`
	Phone     string    `json:"phone" firestore:"phone"`
	Status    string    `json:"status" firestore:"status"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// StockRequest asks to be told when an out-of-stock product is back.
type StockRequest struct {
	ID          string    `json:"id" firestore:"id"`
	ProductID   string    `json:"product_id" firestore:"productId"`
	ProductName string    `json:"product_name" firestore:"productName"`
	UserID      string    `json:"user_id,omitempty" firestore:"userId,omitempty"`
	Name        string    `json:"name" firestore:"name"`
	Phone       string    `json:"phone" firestore:"phone"`
	Email       string    `json:"email,omitempty" firestore:"email,omitempty"`
	Status      string    `json:"status" firestore:"status"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" firestore:"updatedAt"`
}
