package entity

import "time"

const (
	LoyaltyTierBronze = "bronze"
	LoyaltyTierSilver = "silver"
	LoyaltyTierGold   = "gold"

	LoyaltyEarn   = "earn"
	LoyaltyRedeem = "redeem"
)

type LoyaltyTransaction struct {
	Type      string    `json:"type" firestore:"type"`
	Points    int       `json:"points" firestore:"points"`
	Reason    string    `json:"reason" firestore:"reason"`
	OrderID   string    `json:"order_id,omitempty" firestore:"orderId,omitempty"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

// LoyaltyPoints is keyed by user id.
type LoyaltyPoints struct {
	UserID         string               `json:"user_id" firestore:"userId"`
	Points         int                  `json:"points" firestore:"points"`
	LifetimePoints int                  `json:"lifetime_points" firestore:"lifetimePoints"`
	Tier           string               `json:"tier" firestore:"tier"`
	History        []LoyaltyTransaction `json:"history" firestore:"history"`
	CreatedAt      time.Time            `json:"created_at" firestore:"createdAt"`
	UpdatedAt      time.Time            `json:"updated_at" firestore:"updatedAt"`
}

func TierFor(lifetimePoints int) string {
	switch {
	case lifetimePoints >= 5000:
		return LoyaltyTierGold
	case lifetimePoints >= 1000:
		return LoyaltyTierSilver
	default:
		return LoyaltyTierBronze
	}
}
