package model

import "time"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// statusTransitions is the booking lifecycle: a status only ever moves
// forward through this table.
var statusTransitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to string) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminalStatus reports whether a status admits no further transitions.
func IsTerminalStatus(status string) bool {
	return len(statusTransitions[status]) == 0
}

// ValidStatus reports whether the value is a known booking status.
func ValidStatus(status string) bool {
	_, ok := statusTransitions[status]
	return ok
}

type Booking struct {
	ID                  string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	UserID              string     `json:"userId" bson:"user_id" validate:"required,mongodb"`
	ServiceID           string     `json:"serviceId" bson:"service_id" validate:"required,mongodb"`
	AppointmentDate     time.Time  `json:"appointmentDate" bson:"appointment_date" validate:"required"`
	AppointmentTime     string     `json:"appointmentTime" bson:"appointment_time" validate:"required,appointment_time"`
	Status              string     `json:"status" bson:"status" validate:"required,oneof=pending confirmed completed cancelled"`
	TotalPrice          float64    `json:"totalPrice" bson:"total_price" validate:"gte=0"`
	Address             Address    `json:"address" bson:"address" validate:"required"`
	SpecialInstructions string     `json:"specialInstructions,omitempty" bson:"special_instructions,omitempty" validate:"omitempty,max=500"`
	CancellationReason  string     `json:"cancellationReason,omitempty" bson:"cancellation_reason,omitempty" validate:"omitempty,max=500"`
	CompletedAt         *time.Time `json:"completedAt,omitempty" bson:"completed_at,omitempty"`
	CancelledAt         *time.Time `json:"cancelledAt,omitempty" bson:"cancelled_at,omitempty"`
	CreatedAt           time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt           time.Time  `json:"updatedAt" bson:"updated_at"`
}

// BookingRequest is the create-booking body. Price and status are never
// client-supplied: the price is snapshotted from the service at creation and
// immutable thereafter, and every booking starts out pending.
type BookingRequest struct {
	ServiceID           string  `json:"serviceId" validate:"required,mongodb"`
	AppointmentDate     string  `json:"appointmentDate" validate:"required"`
	AppointmentTime     string  `json:"appointmentTime" validate:"required,appointment_time"`
	Address             Address `json:"address" validate:"required"`
	SpecialInstructions string  `json:"specialInstructions,omitempty" validate:"omitempty,max=500"`
}

// StatusUpdate is the PUT body for a booking status transition.
type StatusUpdate struct {
	Status             string `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
	CancellationReason string `json:"cancellationReason,omitempty" validate:"omitempty,max=500"`
}

// CancelRequest is the optional DELETE body for the owner cancel operation.
type CancelRequest struct {
	CancellationReason string `json:"cancellationReason,omitempty" validate:"omitempty,max=500"`
}

// BookingDetails is a booking with its referenced documents hydrated by a
// repository-level join.
type BookingDetails struct {
	Booking `bson:",inline"`
	Service *ServiceSummary `json:"service,omitempty" bson:"service,omitempty"`
	User    *UserSummary    `json:"user,omitempty" bson:"user,omitempty"`
}
