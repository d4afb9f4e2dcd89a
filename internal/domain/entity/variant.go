package entity

import "time"

// Region is a geographic SKU variant of a product (e.g. "Global", "India").
type Region struct {
	ID           string    `json:"id" firestore:"id"`
	ProductID    string    `json:"product_id" firestore:"productId"`
	Name         string    `json:"name" firestore:"name"`
	IsDefault    bool      `json:"is_default" firestore:"isDefault"`
	DisplayOrder int       `json:"display_order" firestore:"displayOrder"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time `json:"updated_at" firestore:"updatedAt"`
}

// Network is a connectivity variant (e.g. "4G", "5G") that parents colors
// the same way a region does.
type Network struct {
	ID           string    `json:"id" firestore:"id"`
	ProductID    string    `json:"product_id" firestore:"productId"`
	Name         string    `json:"name" firestore:"name"`
	DisplayOrder int       `json:"display_order" firestore:"displayOrder"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time `json:"updated_at" firestore:"updatedAt"`
}

type Color struct {
	ID           string `json:"id" firestore:"id"`
	ProductID    string `json:"product_id" firestore:"productId"`
	RegionID     string `json:"region_id,omitempty" firestore:"regionId,omitempty"`
	NetworkID    string `json:"network_id,omitempty" firestore:"networkId,omitempty"`
	Name         string `json:"name" firestore:"name"`
	Code         string `json:"code,omitempty" firestore:"code,omitempty"`
	Image        string `json:"image,omitempty" firestore:"image,omitempty"`
	DisplayOrder int    `json:"display_order" firestore:"displayOrder"`

	StockQuantity int `json:"stock_quantity" firestore:"stockQuantity"`
	// Set for colors sold without storage options; takes precedence over
	// StockQuantity when decrementing.
	SingleStockQuantity *int     `json:"single_stock_quantity,omitempty" firestore:"singleStockQuantity,omitempty"`
	SinglePrice         *float64 `json:"single_price,omitempty" firestore:"singlePrice,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

type Storage struct {
	ID           string    `json:"id" firestore:"id"`
	ProductID    string    `json:"product_id" firestore:"productId"`
	ColorID      string    `json:"color_id" firestore:"colorId"`
	Size         string    `json:"size" firestore:"size"`
	DisplayOrder int       `json:"display_order" firestore:"displayOrder"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time `json:"updated_at" firestore:"updatedAt"`
}

// Price belongs to exactly one Storage.
type Price struct {
	ID                string    `json:"id" firestore:"id"`
	ProductID         string    `json:"product_id" firestore:"productId"`
	StorageID         string    `json:"storage_id" firestore:"storageId"`
	RegularPrice      float64   `json:"regular_price" firestore:"regularPrice"`
	ComparePrice      float64   `json:"compare_price,omitempty" firestore:"comparePrice,omitempty"`
	DiscountPrice     float64   `json:"discount_price,omitempty" firestore:"discountPrice,omitempty"`
	CampaignPrice     float64   `json:"campaign_price,omitempty" firestore:"campaignPrice,omitempty"`
	StockQuantity     int       `json:"stock_quantity" firestore:"stockQuantity"`
	LowStockThreshold int       `json:"low_stock_threshold" firestore:"lowStockThreshold"`
	CreatedAt         time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt         time.Time `json:"updated_at" firestore:"updatedAt"`
}

// ClampedDecrement returns max(0, q-d).
func ClampedDecrement(q, d int) int {
	if d < 0 {
		d = 0
	}
	if q-d < 0 {
		return 0
	}
	return q - d
}
