package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tickethub/ticketing-api/internal/core/domain"
)

const bookingsCollection = "bookings"

type BookingRepository struct {
	coll *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{coll: db.Collection(bookingsCollection)}
}

type mongoBooking struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"user_id"`
	EventID     string             `bson:"event_id"`
	TotalAmount float64            `bson:"total_amount"`
	Status      string             `bson:"status"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	doc := mongoBooking{
		UserID:      booking.UserID,
		EventID:     booking.EventID,
		TotalAmount: booking.TotalAmount,
		Status:      string(booking.Status),
		CreatedAt:   booking.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	created := *booking
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *BookingRepository) FindByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Booking
	for cur.Next(ctx) {
		var mb mongoBooking
		if err := cur.Decode(&mb); err != nil {
			return nil, fmt.Errorf("decode booking: %w", err)
		}
		out = append(out, domain.Booking{
			ID:          mb.ID.Hex(),
			UserID:      mb.UserID,
			EventID:     mb.EventID,
			TotalAmount: mb.TotalAmount,
			Status:      domain.BookingStatus(mb.Status),
			CreatedAt:   mb.CreatedAt,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}
	return out, nil
}

func (r *BookingRepository) CountConfirmed(ctx context.Context, userID string) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{
		"user_id": userID,
		"status":  string(domain.BookingConfirmed),
	})
	if err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return n, nil
}

func (r *BookingRepository) ConfirmedEventIDs(ctx context.Context, userID string) ([]string, error) {
	values, err := r.coll.Distinct(ctx, "event_id", bson.M{
		"user_id": userID,
		"status":  string(domain.BookingConfirmed),
	})
	if err != nil {
		return nil, fmt.Errorf("distinct booked events: %w", err)
	}

	ids := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			ids = append(ids, s)
		}
	}
	return ids, nil
}
