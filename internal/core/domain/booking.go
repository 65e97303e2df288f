package domain

import "time"

// BookingStatus represents the state of a ticket booking.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// Booking ties a user to an event with a paid amount.
type Booking struct {
	ID          string        `json:"id"`
	UserID      string        `json:"user_id"`
	EventID     string        `json:"event_id"`
	TotalAmount float64       `json:"total_amount"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}

// Favorite marks an event a user has starred.
type Favorite struct {
	UserID    string    `json:"user_id"`
	EventID   string    `json:"event_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Notification is a message shown on the user's dashboard.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
