package ports

import (
	"context"
	"time"

	"github.com/tickethub/ticketing-api/internal/core/domain"
)

// CreateEventInput carries a validated event creation request.
type CreateEventInput struct {
	Title       string
	Description string
	Venue       string
	EventDate   time.Time
	TotalSeats  int
	BasePrice   float64
	CreatedBy   string
}

// EventDetail is an event plus the viewer's favorite flag. IsFavorite is
// always false for anonymous viewers.
type EventDetail struct {
	domain.Event
	IsFavorite bool `json:"is_favorite"`
}

type EventService interface {
	Create(ctx context.Context, in CreateEventInput) (*domain.Event, error)
	Get(ctx context.Context, id, viewerID string) (*EventDetail, error)
	Book(ctx context.Context, userID, eventID string) (*domain.Booking, error)
}
