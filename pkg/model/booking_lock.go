package model

import "time"

// BookingLock is an advisory lock preventing two concurrent creations from
// passing the slot-conflict check for the same (service, date, time).
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
