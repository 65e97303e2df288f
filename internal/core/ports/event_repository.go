package ports

import (
	"context"

	"github.com/tickethub/ticketing-api/internal/core/domain"
)

// EventRepository persists event listings.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)
	FindByID(ctx context.Context, id string) (*domain.Event, error)
	// FindLiveUpcoming returns LIVE events with a future date, soonest first,
	// optionally filtered by a case-insensitive search over title, description
	// and venue.
	FindLiveUpcoming(ctx context.Context, search string, limit int) ([]domain.Event, error)
	// FindNextUpcoming returns the soonest future event among the given ids,
	// or domain.ErrEventNotFound when none qualifies.
	FindNextUpcoming(ctx context.Context, ids []string) (*domain.Event, error)
}

// BookingRepository persists ticket bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	FindByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	CountConfirmed(ctx context.Context, userID string) (int64, error)
	// ConfirmedEventIDs lists the event ids of the user's confirmed bookings.
	ConfirmedEventIDs(ctx context.Context, userID string) ([]string, error)
}

// FavoriteRepository persists the user↔event favorite relation.
type FavoriteRepository interface {
	Exists(ctx context.Context, userID, eventID string) (bool, error)
	Add(ctx context.Context, userID, eventID string) error
	Remove(ctx context.Context, userID, eventID string) error
	EventIDs(ctx context.Context, userID string) ([]string, error)
}

// NotificationRepository persists dashboard notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
}
