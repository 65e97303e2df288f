package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tickethub/ticketing-api/internal/core/domain"
)

const eventsCollection = "events"

type EventRepository struct {
	coll *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{coll: db.Collection(eventsCollection)}
}

type mongoEvent struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Venue       string             `bson:"venue"`
	EventDate   time.Time          `bson:"event_date"`
	TotalSeats  int                `bson:"total_seats"`
	BasePrice   float64            `bson:"base_price"`
	Status      string             `bson:"status"`
	CreatedBy   string             `bson:"created_by"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (r *EventRepository) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	doc := mongoEvent{
		Title:       event.Title,
		Description: event.Description,
		Venue:       event.Venue,
		EventDate:   event.EventDate,
		TotalSeats:  event.TotalSeats,
		BasePrice:   event.BasePrice,
		Status:      string(event.Status),
		CreatedBy:   event.CreatedBy,
		CreatedAt:   event.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	created := *event
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}

	var me mongoEvent
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return toDomainEvent(me), nil
}

func (r *EventRepository) FindLiveUpcoming(ctx context.Context, search string, limit int) ([]domain.Event, error) {
	filter := bson.M{
		"status":     string(domain.EventLive),
		"event_date": bson.M{"$gt": time.Now().UTC()},
	}
	if search != "" {
		regex := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": regex},
			bson.M{"description": regex},
			bson.M{"venue": regex},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "event_date", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find live events: %w", err)
	}
	defer cur.Close(ctx)

	return decodeEvents(ctx, cur)
}

func (r *EventRepository) FindNextUpcoming(ctx context.Context, ids []string) (*domain.Event, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return nil, domain.ErrEventNotFound
	}

	filter := bson.M{
		"_id":        bson.M{"$in": oids},
		"event_date": bson.M{"$gt": time.Now().UTC()},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "event_date", Value: 1}})

	var me mongoEvent
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find next event: %w", err)
	}
	return toDomainEvent(me), nil
}

func decodeEvents(ctx context.Context, cur *mongo.Cursor) ([]domain.Event, error) {
	var out []domain.Event
	for cur.Next(ctx) {
		var me mongoEvent
		if err := cur.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
		out = append(out, *toDomainEvent(me))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return out, nil
}

func toDomainEvent(me mongoEvent) *domain.Event {
	return &domain.Event{
		ID:          me.ID.Hex(),
		Title:       me.Title,
		Description: me.Description,
		Venue:       me.Venue,
		EventDate:   me.EventDate,
		TotalSeats:  me.TotalSeats,
		BasePrice:   me.BasePrice,
		Status:      domain.EventStatus(me.Status),
		CreatedBy:   me.CreatedBy,
		CreatedAt:   me.CreatedAt,
	}
}
