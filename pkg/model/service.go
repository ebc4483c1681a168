package model

import "time"

const (
	CategoryResidential  = "residential"
	CategoryCommercial   = "commercial"
	CategoryDeepCleaning = "deep-cleaning"
	CategoryMaintenance  = "maintenance"
)

type Service struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name        string    `json:"name" bson:"name" validate:"required,min=3,max=100"`
	Description string    `json:"description" bson:"description" validate:"required,min=10,max=500"`
	Price       float64   `json:"price" bson:"price" validate:"gte=0"`
	Duration    int       `json:"duration" bson:"duration" validate:"required,min=30"`
	Category    string    `json:"category" bson:"category" validate:"required,oneof=residential commercial deep-cleaning maintenance"`
	IsActive    bool      `json:"isActive" bson:"is_active"`
	Features    []string  `json:"features,omitempty" bson:"features,omitempty" validate:"omitempty,dive,min=1,max=100"`
	ImageURL    string    `json:"imageUrl,omitempty" bson:"image_url,omitempty" validate:"omitempty,url"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}

type ServiceUpdate struct {
	Name        string    `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
	Description string    `json:"description,omitempty" validate:"omitempty,min=10,max=500"`
	Price       *float64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	Duration    *int      `json:"duration,omitempty" validate:"omitempty,min=30"`
	Category    string    `json:"category,omitempty" validate:"omitempty,oneof=residential commercial deep-cleaning maintenance"`
	IsActive    *bool     `json:"isActive,omitempty"`
	Features    *[]string `json:"features,omitempty" validate:"omitempty,dive,min=1,max=100"`
	ImageURL    string    `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

// ServiceSummary is the slice of a service hydrated into booking listings,
// matching the fields the API has always exposed there.
type ServiceSummary struct {
	Name        string  `json:"name" bson:"name"`
	Description string  `json:"description" bson:"description"`
	Price       float64 `json:"price" bson:"price"`
	Duration    int     `json:"duration" bson:"duration"`
	Category    string  `json:"category" bson:"category"`
}
