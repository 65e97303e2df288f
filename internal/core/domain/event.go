package domain

import "time"

// EventStatus represents the publication state of an event.
type EventStatus string

const (
	EventLive      EventStatus = "LIVE"
	EventDraft     EventStatus = "DRAFT"
	EventCancelled EventStatus = "CANCELLED"
)

// Event is a bookable listing.
type Event struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Venue       string      `json:"venue"`
	EventDate   time.Time   `json:"event_date"`
	TotalSeats  int         `json:"total_seats"`
	BasePrice   float64     `json:"base_price"`
	Status      EventStatus `json:"status"`
	CreatedBy   string      `json:"created_by"`
	CreatedAt   time.Time   `json:"created_at"`
}
