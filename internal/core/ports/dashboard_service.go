package ports

import (
	"context"
	"time"

	"github.com/tickethub/ticketing-api/internal/core/domain"
)

// SummaryUser is the profile slice shown on the dashboard header.
type SummaryUser struct {
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// SummaryStats aggregates attendance for the dashboard.
type SummaryStats struct {
	Attended int64 `json:"attended"`
	Points   int   `json:"points"`
}

// RecommendedEvent is a live upcoming event plus the viewer's favorite flag.
type RecommendedEvent struct {
	domain.Event
	IsFavorite bool `json:"is_favorite"`
}

// Summary is the aggregated dashboard payload.
type Summary struct {
	User                SummaryUser        `json:"user"`
	Stats               SummaryStats       `json:"stats"`
	NextEvent           *domain.Event      `json:"next_event"`
	RecommendedEvents   []RecommendedEvent `json:"recommended_events"`
	UnreadNotifications int64              `json:"unread_notifications"`
}

// Ticket is a booking joined with its event for the my-tickets view.
type Ticket struct {
	BookingID   string               `json:"booking_id"`
	Status      domain.BookingStatus `json:"status"`
	TotalAmount float64              `json:"total_amount"`
	BookingDate time.Time            `json:"booking_date"`
	Title       string               `json:"title"`
	EventDate   time.Time            `json:"event_date"`
	Venue       string               `json:"venue"`
}

type DashboardService interface {
	Summary(ctx context.Context, userID, search string) (*Summary, error)
	MyTickets(ctx context.Context, userID string) ([]Ticket, error)
	ToggleFavorite(ctx context.Context, userID, eventID string) (bool, error)
	Notifications(ctx context.Context, userID string) ([]domain.Notification, error)
}
