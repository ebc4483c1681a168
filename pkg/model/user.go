package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Address struct {
	Street  string `json:"street" bson:"street" validate:"required,min=1,max=120"`
	City    string `json:"city" bson:"city" validate:"required,min=1,max=60"`
	State   string `json:"state" bson:"state" validate:"required,len=2"`
	ZipCode string `json:"zipCode" bson:"zip_code" validate:"required,zipcode"`
}

type User struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	FirstName    string    `json:"firstName" bson:"first_name" validate:"required,min=2,max=50"`
	LastName     string    `json:"lastName" bson:"last_name" validate:"required,min=2,max=50"`
	Email        string    `json:"email" bson:"email" validate:"required,email"`
	PasswordHash string    `json:"-" bson:"password"`
	Phone        string    `json:"phone" bson:"phone" validate:"required,e164"`
	Address      Address   `json:"address" bson:"address" validate:"required"`
	Role         string    `json:"role" bson:"role" validate:"required,oneof=user admin"`
	IsActive     bool      `json:"isActive" bson:"is_active"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updated_at"`
}

// Registration is the register request body; the raw password never touches
// the User document.
type Registration struct {
	FirstName string  `json:"firstName" validate:"required,min=2,max=50"`
	LastName  string  `json:"lastName" validate:"required,min=2,max=50"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=6,password_strength"`
	Phone     string  `json:"phone" validate:"required"`
	Address   Address `json:"address" validate:"required"`
}

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileUpdate carries the only fields a user may change about themselves.
type ProfileUpdate struct {
	FirstName string   `json:"firstName,omitempty" validate:"omitempty,min=2,max=50"`
	LastName  string   `json:"lastName,omitempty" validate:"omitempty,min=2,max=50"`
	Phone     string   `json:"phone,omitempty" validate:"omitempty"`
	Address   *Address `json:"address,omitempty" validate:"omitempty"`
}

// UserSummary is the slice of a user hydrated into admin booking listings.
type UserSummary struct {
	FirstName string `json:"firstName" bson:"first_name"`
	LastName  string `json:"lastName" bson:"last_name"`
	Email     string `json:"email" bson:"email"`
	Phone     string `json:"phone" bson:"phone"`
}
