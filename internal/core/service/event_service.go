package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tickethub/ticketing-api/internal/core/domain"
	"github.com/tickethub/ticketing-api/internal/core/ports"
)

type eventService struct {
	events    ports.EventRepository
	bookings  ports.BookingRepository
	favorites ports.FavoriteRepository
	log       zerolog.Logger
}

// NewEventService returns an EventService for listing creation, lookup, and
// booking.
func NewEventService(
	events ports.EventRepository,
	bookings ports.BookingRepository,
	favorites ports.FavoriteRepository,
	log zerolog.Logger,
) ports.EventService {
	return &eventService{events: events, bookings: bookings, favorites: favorites, log: log}
}

// Create publishes a new listing. The route guard has already checked the
// admin role; CreatedBy is the authenticated admin's id.
func (s *eventService) Create(ctx context.Context, in ports.CreateEventInput) (*domain.Event, error) {
	if in.Title == "" || in.Venue == "" || in.EventDate.IsZero() {
		return nil, fmt.Errorf("%w: title, venue, and event date are required", domain.ErrValidation)
	}
	if in.TotalSeats <= 0 || in.BasePrice < 0 {
		return nil, fmt.Errorf("%w: seats must be positive and price non-negative", domain.ErrValidation)
	}

	event := &domain.Event{
		Title:       in.Title,
		Description: in.Description,
		Venue:       in.Venue,
		EventDate:   in.EventDate.UTC(),
		TotalSeats:  in.TotalSeats,
		BasePrice:   in.BasePrice,
		Status:      domain.EventLive,
		CreatedBy:   in.CreatedBy,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.events.Create(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.log.Info().Str("event_id", created.ID).Str("title", created.Title).Msg("event created")
	return created, nil
}

// Get returns an event with the viewer's favorite flag. viewerID may be empty
// for anonymous requests; the flag is then always false.
func (s *eventService) Get(ctx context.Context, id, viewerID string) (*ports.EventDetail, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ports.EventDetail{Event: *event}
	if viewerID != "" {
		fav, err := s.favorites.Exists(ctx, viewerID, id)
		if err != nil {
			return nil, fmt.Errorf("get event: favorite lookup: %w", err)
		}
		detail.IsFavorite = fav
	}
	return detail, nil
}

// Book creates a confirmed booking at the event's base price. Only LIVE
// events can be booked.
func (s *eventService) Book(ctx context.Context, userID, eventID string) (*domain.Booking, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Status != domain.EventLive {
		return nil, domain.ErrEventNotFound
	}

	booking := &domain.Booking{
		UserID:      userID,
		EventID:     event.ID,
		TotalAmount: event.BasePrice,
		Status:      domain.BookingConfirmed,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.bookings.Create(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info().Str("booking_id", created.ID).Str("event_id", event.ID).Str("user_id", userID).Msg("booking confirmed")
	return created, nil
}
