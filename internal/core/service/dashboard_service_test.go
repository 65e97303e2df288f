package service

import (
	"context"
	"sort"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tickethub/ticketing-api/internal/core/domain"
	"github.com/tickethub/ticketing-api/internal/core/ports"
)

// --- stubs ---

type stubEventRepo struct {
	events map[string]*domain.Event
	nextID int
}

func newStubEventRepo() *stubEventRepo {
	return &stubEventRepo{events: make(map[string]*domain.Event)}
}

func (r *stubEventRepo) Create(_ context.Context, event *domain.Event) (*domain.Event, error) {
	r.nextID++
	created := *event
	created.ID = "e" + strconv.Itoa(r.nextID)
	r.events[created.ID] = &created
	out := created
	return &out, nil
}

func (r *stubEventRepo) FindByID(_ context.Context, id string) (*domain.Event, error) {
	if e, ok := r.events[id]; ok {
		out := *e
		return &out, nil
	}
	return nil, domain.ErrEventNotFound
}

func (r *stubEventRepo) FindLiveUpcoming(_ context.Context, search string, limit int) ([]domain.Event, error) {
	var out []domain.Event
	now := time.Now()
	for _, e := range r.events {
		if e.Status != domain.EventLive || !e.EventDate.After(now) {
			continue
		}
		if search != "" && e.Title != search {
			continue
		}
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventDate.Before(out[j].EventDate) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubEventRepo) FindNextUpcoming(_ context.Context, ids []string) (*domain.Event, error) {
	var next *domain.Event
	now := time.Now()
	for _, id := range ids {
		e, ok := r.events[id]
		if !ok || !e.EventDate.After(now) {
			continue
		}
		if next == nil || e.EventDate.Before(next.EventDate) {
			next = e
		}
	}
	if next == nil {
		return nil, domain.ErrEventNotFound
	}
	out := *next
	return &out, nil
}

type stubBookingRepo struct {
	bookings []domain.Booking
	nextID   int
}

func (r *stubBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.nextID++
	created := *booking
	created.ID = "b" + strconv.Itoa(r.nextID)
	r.bookings = append(r.bookings, created)
	out := created
	return &out, nil
}

func (r *stubBookingRepo) FindByUser(_ context.Context, userID string) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *stubBookingRepo) CountConfirmed(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, b := range r.bookings {
		if b.UserID == userID && b.Status == domain.BookingConfirmed {
			n++
		}
	}
	return n, nil
}

func (r *stubBookingRepo) ConfirmedEventIDs(_ context.Context, userID string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, b := range r.bookings {
		if b.UserID == userID && b.Status == domain.BookingConfirmed {
			if _, dup := seen[b.EventID]; !dup {
				seen[b.EventID] = struct{}{}
				out = append(out, b.EventID)
			}
		}
	}
	return out, nil
}

type stubFavoriteRepo struct {
	favorites map[string]map[string]struct{} // userID → eventIDs
}

func newStubFavoriteRepo() *stubFavoriteRepo {
	return &stubFavoriteRepo{favorites: make(map[string]map[string]struct{})}
}

func (r *stubFavoriteRepo) Exists(_ context.Context, userID, eventID string) (bool, error) {
	_, ok := r.favorites[userID][eventID]
	return ok, nil
}

func (r *stubFavoriteRepo) Add(_ context.Context, userID, eventID string) error {
	if r.favorites[userID] == nil {
		r.favorites[userID] = make(map[string]struct{})
	}
	r.favorites[userID][eventID] = struct{}{}
	return nil
}

func (r *stubFavoriteRepo) Remove(_ context.Context, userID, eventID string) error {
	delete(r.favorites[userID], eventID)
	return nil
}

func (r *stubFavoriteRepo) EventIDs(_ context.Context, userID string) ([]string, error) {
	var out []string
	for id := range r.favorites[userID] {
		out = append(out, id)
	}
	return out, nil
}

type stubNotificationRepo struct {
	notifications []domain.Notification
}

func (r *stubNotificationRepo) Create(_ context.Context, n *domain.Notification) (*domain.Notification, error) {
	created := *n
	created.ID = "n" + strconv.Itoa(len(r.notifications)+1)
	r.notifications = append(r.notifications, created)
	out := created
	return &out, nil
}

func (r *stubNotificationRepo) ListRecent(_ context.Context, userID string, limit int) ([]domain.Notification, error) {
	var out []domain.Notification
	for i := len(r.notifications) - 1; i >= 0; i-- {
		if r.notifications[i].UserID == userID {
			out = append(out, r.notifications[i])
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *stubNotificationRepo) CountUnread(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, notif := range r.notifications {
		if notif.UserID == userID && !notif.IsRead {
			n++
		}
	}
	return n, nil
}

// --- fixtures ---

type dashboardFixture struct {
	svc           ports.DashboardService
	users         *stubUserRepo
	events        *stubEventRepo
	bookings      *stubBookingRepo
	favorites     *stubFavoriteRepo
	notifications *stubNotificationRepo
}

func newDashboardFixture() *dashboardFixture {
	f := &dashboardFixture{
		users:         newStubUserRepo(),
		events:        newStubEventRepo(),
		bookings:      &stubBookingRepo{},
		favorites:     newStubFavoriteRepo(),
		notifications: &stubNotificationRepo{},
	}
	f.svc = NewDashboardService(f.users, f.events, f.bookings, f.favorites, f.notifications, zerolog.Nop())
	return f
}

func (f *dashboardFixture) seedUser(t *testing.T) *domain.User {
	t.Helper()
	user, err := f.users.Create(context.Background(), &domain.User{
		Email:    "alex@example.com",
		FullName: "Alex Morgan",
		Role:     domain.RoleUser,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func (f *dashboardFixture) seedEvent(t *testing.T, title string, daysAhead int) *domain.Event {
	t.Helper()
	event, err := f.events.Create(context.Background(), &domain.Event{
		Title:     title,
		Venue:     "Venue",
		EventDate: time.Now().AddDate(0, 0, daysAhead),
		Status:    domain.EventLive,
		BasePrice: 50,
	})
	if err != nil {
		t.Fatalf("seed event: %v", err)
	}
	return event
}

// --- tests ---

func TestDashboardService_Summary(t *testing.T) {
	f := newDashboardFixture()
	user := f.seedUser(t)
	soon := f.seedEvent(t, "Soon", 1)
	later := f.seedEvent(t, "Later", 10)
	f.seedEvent(t, "Unbooked", 5)

	ctx := context.Background()
	for _, e := range []*domain.Event{soon, later} {
		if _, err := f.bookings.Create(ctx, &domain.Booking{
			UserID: user.ID, EventID: e.ID, Status: domain.BookingConfirmed, TotalAmount: 50,
		}); err != nil {
			t.Fatalf("seed booking: %v", err)
		}
	}
	if err := f.favorites.Add(ctx, user.ID, later.ID); err != nil {
		t.Fatalf("seed favorite: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := f.notifications.Create(ctx, &domain.Notification{UserID: user.ID, Title: "t"}); err != nil {
			t.Fatalf("seed notification: %v", err)
		}
	}

	summary, err := f.svc.Summary(ctx, user.ID, "")
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if summary.User.FullName != "Alex Morgan" || summary.User.Role != "USER" {
		t.Fatalf("unexpected user header: %+v", summary.User)
	}
	if summary.Stats.Attended != 2 {
		t.Fatalf("expected 2 attended, got %d", summary.Stats.Attended)
	}
	if summary.NextEvent == nil || summary.NextEvent.ID != soon.ID {
		t.Fatalf("expected next event %s, got %+v", soon.ID, summary.NextEvent)
	}
	if len(summary.RecommendedEvents) != 3 {
		t.Fatalf("expected 3 recommended events, got %d", len(summary.RecommendedEvents))
	}
	for _, re := range summary.RecommendedEvents {
		wantFav := re.ID == later.ID
		if re.IsFavorite != wantFav {
			t.Fatalf("event %s: favorite flag = %v, want %v", re.ID, re.IsFavorite, wantFav)
		}
	}
	if summary.UnreadNotifications != 3 {
		t.Fatalf("expected 3 unread, got %d", summary.UnreadNotifications)
	}
}

func TestDashboardService_Summary_NoBookings(t *testing.T) {
	f := newDashboardFixture()
	user := f.seedUser(t)

	summary, err := f.svc.Summary(context.Background(), user.ID, "")
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if summary.NextEvent != nil {
		t.Fatalf("expected nil next event, got %+v", summary.NextEvent)
	}
	if summary.Stats.Attended != 0 {
		t.Fatalf("expected 0 attended, got %d", summary.Stats.Attended)
	}
}

func TestDashboardService_MyTickets(t *testing.T) {
	f := newDashboardFixture()
	user := f.seedUser(t)
	first := f.seedEvent(t, "First", 1)
	second := f.seedEvent(t, "Second", 10)

	ctx := context.Background()
	for _, e := range []*domain.Event{first, second} {
		if _, err := f.bookings.Create(ctx, &domain.Booking{
			UserID: user.ID, EventID: e.ID, Status: domain.BookingConfirmed, TotalAmount: 50,
		}); err != nil {
			t.Fatalf("seed booking: %v", err)
		}
	}

	tickets, err := f.svc.MyTickets(ctx, user.ID)
	if err != nil {
		t.Fatalf("MyTickets returned error: %v", err)
	}
	if len(tickets) != 2 {
		t.Fatalf("expected 2 tickets, got %d", len(tickets))
	}
	// Newest event first.
	if tickets[0].Title != "Second" || tickets[1].Title != "First" {
		t.Fatalf("unexpected order: %q then %q", tickets[0].Title, tickets[1].Title)
	}
}

func TestDashboardService_ToggleFavorite(t *testing.T) {
	f := newDashboardFixture()
	user := f.seedUser(t)
	event := f.seedEvent(t, "Toggleable", 3)
	ctx := context.Background()

	on, err := f.svc.ToggleFavorite(ctx, user.ID, event.ID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !on {
		t.Fatalf("first toggle should favorite")
	}

	off, err := f.svc.ToggleFavorite(ctx, user.ID, event.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if off {
		t.Fatalf("second toggle should unfavorite")
	}
}

func TestDashboardService_ToggleFavorite_UnknownEvent(t *testing.T) {
	f := newDashboardFixture()
	user := f.seedUser(t)

	if _, err := f.svc.ToggleFavorite(context.Background(), user.ID, "missing"); err == nil {
		t.Fatalf("expected error for unknown event")
	}
}
