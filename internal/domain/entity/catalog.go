package entity

import "time"

type Category struct {
	ID           string     `json:"id" firestore:"id"`
	Name         string     `json:"name" firestore:"name"`
	Slug         string     `json:"slug" firestore:"slug"`
	ParentID     string     `json:"parent_id,omitempty" firestore:"parentId,omitempty"`
	Image        string     `json:"image,omitempty" firestore:"image,omitempty"`
	Description  string     `json:"description,omitempty" firestore:"description,omitempty"`
	DisplayOrder int        `json:"display_order" firestore:"displayOrder"`
	IsActive     bool       `json:"is_active" firestore:"isActive"`
	CreatedAt    time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time  `json:"updated_at" firestore:"updatedAt"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" firestore:"deletedAt,omitempty"`
}

type Brand struct {
	ID        string     `json:"id" firestore:"id"`
	Name      string     `json:"name" firestore:"name"`
	Slug      string     `json:"slug" firestore:"slug"`
	Logo      string     `json:"logo,omitempty" firestore:"logo,omitempty"`
	IsActive  bool       `json:"is_active" firestore:"isActive"`
	CreatedAt time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time  `json:"updated_at" firestore:"updatedAt"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" firestore:"deletedAt,omitempty"`
}

// CarePlan is an extended warranty / service add-on offered with products.
type CarePlan struct {
	ID             string    `json:"id" firestore:"id"`
	Name           string    `json:"name" firestore:"name"`
	Description    string    `json:"description,omitempty" firestore:"description,omitempty"`
	Price          float64   `json:"price" firestore:"price"`
	DurationMonths int       `json:"duration_months" firestore:"durationMonths"`
	ProductIDs     []string  `json:"product_ids" firestore:"productIds"`
	CategoryIDs    []string  `json:"category_ids" firestore:"categoryIds"`
	IsActive       bool      `json:"is_active" firestore:"isActive"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt      time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (p *CarePlan) AppliesTo(product *Product) bool {
	for _, id := range p.ProductIDs {
		if id == product.ID {
			return true
		}
	}
	for _, id := range p.CategoryIDs {
		if id == product.CategoryID {
			return true
		}
	}
	return false
}
