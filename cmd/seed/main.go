// Command seed wipes the ticketing collections and loads the demo data set:
// one user (alex@example.com / password123), four live events, a confirmed
// booking, two favorites, and two notifications.
package main

import (
	"context"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tickethub/ticketing-api/internal/auth/password"
	"github.com/tickethub/ticketing-api/internal/core/domain"
	"github.com/tickethub/ticketing-api/internal/infrastructure/config"
	mongodb "github.com/tickethub/ticketing-api/internal/infrastructure/db/mongo"
	"github.com/tickethub/ticketing-api/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer client.Disconnect(context.Background())

	for _, name := range []string{"users", "events", "bookings", "favorites", "notifications"} {
		if err := db.Collection(name).Drop(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("drop failed")
		}
	}
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	users := mongodb.NewUserRepository(db)
	events := mongodb.NewEventRepository(db)
	bookings := mongodb.NewBookingRepository(db)
	favorites := mongodb.NewFavoriteRepository(db)
	notifications := mongodb.NewNotificationRepository(db)

	hasher := password.New(bcrypt.DefaultCost)
	digest, err := hasher.Hash("password123")
	if err != nil {
		log.Fatal().Err(err).Msg("hash failed")
	}

	alex, err := users.Create(ctx, &domain.User{
		Email:        "alex@example.com",
		FullName:     "Alex Morgan",
		PasswordHash: digest,
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed user failed")
	}
	log.Info().Str("user_id", alex.ID).Msg("user seeded")

	seedEvents := []domain.Event{
		{Title: "Neon Dreams Festival", Description: "A neon-themed electronic music festival.", Venue: "The Grand Arena, NYC", EventDate: time.Date(2026, 6, 8, 20, 0, 0, 0, time.UTC), TotalSeats: 5000, BasePrice: 89.00},
		{Title: "Midnight Saxophone Sessions", Description: "A soulful night of jazz music.", Venue: "Blue Note Jazz Club, NYC", EventDate: time.Date(2026, 10, 24, 21, 0, 0, 0, time.UTC), TotalSeats: 200, BasePrice: 45.00},
		{Title: "The Electric Echoes", Description: "Indie rock vibes in the heart of the city.", Venue: "Madison Square Garden, NYC", EventDate: time.Date(2026, 11, 2, 19, 0, 0, 0, time.UTC), TotalSeats: 15000, BasePrice: 89.00},
		{Title: "Abstract Dimensions Expo", Description: "Explore modern art through various lenses.", Venue: "MoMA, NYC", EventDate: time.Date(2026, 11, 10, 10, 0, 0, 0, time.UTC), TotalSeats: 1000, BasePrice: 25.00},
	}

	created := make([]*domain.Event, 0, len(seedEvents))
	for i := range seedEvents {
		e := seedEvents[i]
		e.Status = domain.EventLive
		e.CreatedBy = alex.ID
		e.CreatedAt = time.Now().UTC()
		ev, err := events.Create(ctx, &e)
		if err != nil {
			log.Fatal().Err(err).Str("title", e.Title).Msg("seed event failed")
		}
		created = append(created, ev)
	}
	log.Info().Int("count", len(created)).Msg("events seeded")

	if _, err := bookings.Create(ctx, &domain.Booking{
		UserID:      alex.ID,
		EventID:     created[0].ID,
		TotalAmount: created[0].BasePrice,
		Status:      domain.BookingConfirmed,
		CreatedAt:   time.Now().UTC(),
	}); err != nil {
		log.Fatal().Err(err).Msg("seed booking failed")
	}
	log.Info().Msg("booking seeded")

	for _, ev := range created[1:3] {
		if err := favorites.Add(ctx, alex.ID, ev.ID); err != nil {
			log.Fatal().Err(err).Msg("seed favorite failed")
		}
	}
	log.Info().Msg("favorites seeded")

	seedNotifications := []domain.Notification{
		{Title: "Order Confirmed", Message: "Your tickets for Neon Dreams Festival are now available."},
		{Title: "Security Alert", Message: "New login detected from a Chrome browser on Windows."},
	}
	for i := range seedNotifications {
		n := seedNotifications[i]
		n.UserID = alex.ID
		n.CreatedAt = time.Now().UTC()
		if _, err := notifications.Create(ctx, &n); err != nil {
			log.Fatal().Err(err).Msg("seed notification failed")
		}
	}
	log.Info().Msg("notifications seeded")

	log.Info().Msg("seeding complete")
}
