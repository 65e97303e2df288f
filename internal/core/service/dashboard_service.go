package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/tickethub/ticketing-api/internal/core/domain"
	"github.com/tickethub/ticketing-api/internal/core/ports"
)

const (
	recommendedLimit  = 6
	notificationLimit = 10

	// staticPoints mirrors the original dashboard, which hardcodes the
	// loyalty balance. TODO: replace once a points ledger exists.
	staticPoints = 1250
)

type dashboardService struct {
	users         ports.UserRepository
	events        ports.EventRepository
	bookings      ports.BookingRepository
	favorites     ports.FavoriteRepository
	notifications ports.NotificationRepository
	log           zerolog.Logger
}

// NewDashboardService returns a DashboardService aggregating the per-user
// dashboard views.
func NewDashboardService(
	users ports.UserRepository,
	events ports.EventRepository,
	bookings ports.BookingRepository,
	favorites ports.FavoriteRepository,
	notifications ports.NotificationRepository,
	log zerolog.Logger,
) ports.DashboardService {
	return &dashboardService{
		users:         users,
		events:        events,
		bookings:      bookings,
		favorites:     favorites,
		notifications: notifications,
		log:           log,
	}
}

// Summary assembles the dashboard header: profile, attendance stats, the next
// confirmed event, recommended live events with favorite flags, and the
// unread notification count.
func (s *dashboardService) Summary(ctx context.Context, userID, search string) (*ports.Summary, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("summary: load user: %w", err)
	}

	attended, err := s.bookings.CountConfirmed(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("summary: count bookings: %w", err)
	}

	nextEvent, err := s.nextEvent(ctx, userID)
	if err != nil {
		return nil, err
	}

	recommended, err := s.recommended(ctx, userID, search)
	if err != nil {
		return nil, err
	}

	unread, err := s.notifications.CountUnread(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("summary: count notifications: %w", err)
	}

	return &ports.Summary{
		User:                ports.SummaryUser{FullName: user.FullName, Role: string(user.Role)},
		Stats:               ports.SummaryStats{Attended: attended, Points: staticPoints},
		NextEvent:           nextEvent,
		RecommendedEvents:   recommended,
		UnreadNotifications: unread,
	}, nil
}

func (s *dashboardService) nextEvent(ctx context.Context, userID string) (*domain.Event, error) {
	ids, err := s.bookings.ConfirmedEventIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("summary: list booked events: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	next, err := s.events.FindNextUpcoming(ctx, ids)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("summary: next event: %w", err)
	}
	return next, nil
}

func (s *dashboardService) recommended(ctx context.Context, userID, search string) ([]ports.RecommendedEvent, error) {
	events, err := s.events.FindLiveUpcoming(ctx, search, recommendedLimit)
	if err != nil {
		return nil, fmt.Errorf("summary: recommended events: %w", err)
	}

	favoriteIDs, err := s.favorites.EventIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("summary: load favorites: %w", err)
	}
	favorites := make(map[string]struct{}, len(favoriteIDs))
	for _, id := range favoriteIDs {
		favorites[id] = struct{}{}
	}

	out := make([]ports.RecommendedEvent, 0, len(events))
	for _, e := range events {
		_, fav := favorites[e.ID]
		out = append(out, ports.RecommendedEvent{Event: e, IsFavorite: fav})
	}
	return out, nil
}

// MyTickets lists the user's bookings joined with event details, newest event
// first.
func (s *dashboardService) MyTickets(ctx context.Context, userID string) ([]ports.Ticket, error) {
	bookings, err := s.bookings.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("my tickets: %w", err)
	}

	tickets := make([]ports.Ticket, 0, len(bookings))
	for _, b := range bookings {
		event, err := s.events.FindByID(ctx, b.EventID)
		if err != nil {
			if errors.Is(err, domain.ErrEventNotFound) {
				s.log.Warn().Str("booking_id", b.ID).Str("event_id", b.EventID).Msg("booking references missing event")
				continue
			}
			return nil, fmt.Errorf("my tickets: load event: %w", err)
		}
		tickets = append(tickets, ports.Ticket{
			BookingID:   b.ID,
			Status:      b.Status,
			TotalAmount: b.TotalAmount,
			BookingDate: b.CreatedAt,
			Title:       event.Title,
			EventDate:   event.EventDate,
			Venue:       event.Venue,
		})
	}

	// Newest event first.
	sort.Slice(tickets, func(i, j int) bool {
		return tickets[i].EventDate.After(tickets[j].EventDate)
	})
	return tickets, nil
}

// ToggleFavorite flips the favorite relation and reports the resulting state.
func (s *dashboardService) ToggleFavorite(ctx context.Context, userID, eventID string) (bool, error) {
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		return false, fmt.Errorf("toggle favorite: %w", err)
	}

	exists, err := s.favorites.Exists(ctx, userID, eventID)
	if err != nil {
		return false, fmt.Errorf("toggle favorite: %w", err)
	}

	if exists {
		if err := s.favorites.Remove(ctx, userID, eventID); err != nil {
			return false, fmt.Errorf("toggle favorite: remove: %w", err)
		}
		return false, nil
	}
	if err := s.favorites.Add(ctx, userID, eventID); err != nil {
		return false, fmt.Errorf("toggle favorite: add: %w", err)
	}
	return true, nil
}

// Notifications returns the user's latest notifications, newest first.
func (s *dashboardService) Notifications(ctx context.Context, userID string) ([]domain.Notification, error) {
	list, err := s.notifications.ListRecent(ctx, userID, notificationLimit)
	if err != nil {
		return nil, fmt.Errorf("notifications: %w", err)
	}
	return list, nil
}
