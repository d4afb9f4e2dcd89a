package entity

import (
	"time"
)

const (
	ProductTypeBasic   = "basic"
	ProductTypeVariant = "variant"
)

type ProductImage struct {
	ID           string `json:"id" firestore:"id"`
	URL          string `json:"url" firestore:"url"`
	DisplayOrder int    `json:"display_order" firestore:"displayOrder"`
}

type Product struct {
	ID          string `json:"id" firestore:"id"`
	Name        string `json:"name" firestore:"name"`
	Slug        string `json:"slug" firestore:"slug"`
	CategoryID  string `json:"category_id" firestore:"categoryId"`
	BrandID     string `json:"brand_id,omitempty" firestore:"brandId,omitempty"`
	ProductType string `json:"product_type" firestore:"productType"`
	Description string `json:"description,omitempty" firestore:"description,omitempty"`

	IsActive     bool `json:"is_active" firestore:"isActive"`
	IsOnline     bool `json:"is_online" firestore:"isOnline"`
	IsPreOrder   bool `json:"is_pre_order" firestore:"isPreOrder"`
	IsOfficial   bool `json:"is_official" firestore:"isOfficial"`
	FreeShipping bool `json:"free_shipping" firestore:"freeShipping"`

	// Basic products keep price and stock on the product itself.
	BasePrice         float64 `json:"base_price" firestore:"basePrice"`
	ComparePrice      float64 `json:"compare_price,omitempty" firestore:"comparePrice,omitempty"`
	DiscountPrice     float64 `json:"discount_price,omitempty" firestore:"discountPrice,omitempty"`
	StockQuantity     int     `json:"stock_quantity" firestore:"stockQuantity"`
	LowStockThreshold int     `json:"low_stock_threshold" firestore:"lowStockThreshold"`

	Images      []ProductImage `json:"images" firestore:"images"`
	CarePlanIDs []string       `json:"care_plan_ids,omitempty" firestore:"carePlanIds,omitempty"`

	CreatedAt time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time  `json:"updated_at" firestore:"updatedAt"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" firestore:"deletedAt,omitempty"`
}

func (p *Product) IsBasic() bool {
	return p.ProductType != ProductTypeVariant
}

func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	best := p.Images[0]
	for _, img := range p.Images[1:] {
		if img.DisplayOrder < best.DisplayOrder {
			best = img
		}
	}
	return best.URL
}
