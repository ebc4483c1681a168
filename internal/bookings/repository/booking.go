package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	authrepo "tidybook/internal/auth/repository"
	bookingserrors "tidybook/internal/bookings/errors"
	catalogrepo "tidybook/internal/catalog/repository"
	"tidybook/pkg/config"
	mongotx "tidybook/pkg/db/mongo"
	"tidybook/pkg/model"
)

const (
	CollectionName = "Bookings"
)

// BookingFilter narrows booking listings. UserID scopes the query to one
// customer; the admin listing leaves it empty.
type BookingFilter struct {
	UserID    string
	ServiceID string
	Status    string
	DateFrom  *time.Time
	DateTo    *time.Time
}

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	FindDetails(ctx context.Context, filter BookingFilter, limit int, offset int64) ([]*model.BookingDetails, error)
	Count(ctx context.Context, filter BookingFilter) (int64, error)
	UpdateStatus(ctx context.Context, id string, booking *model.Booking) error
	FindBySlot(ctx context.Context, serviceID string, date time.Time, timeSlot string) ([]*model.Booking, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoBookingRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo.Client),
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// SessionContext cannot be wrapped without breaking transaction semantics.
func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < timeout {
		return context.WithTimeout(ctx, time.Until(deadline))
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	booking.CreatedAt = now
	booking.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid.Hex()
	}
	return nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	var booking model.Booking
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return &booking, nil
}

// FindDetails lists bookings with their service and user documents joined in,
// newest first.
func (r *mongoBookingRepository) FindDetails(ctx context.Context, filter BookingFilter, limit int, offset int64) ([]*model.BookingDetails, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: buildBookingFilter(filter)}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		bson.D{{Key: "$skip", Value: offset}},
		bson.D{{Key: "$limit", Value: int64(limit)}},
		lookupStage(catalogrepo.CollectionName, "service_id", "service", bson.D{
			{Key: "name", Value: 1},
			{Key: "description", Value: 1},
			{Key: "price", Value: 1},
			{Key: "duration", Value: 1},
			{Key: "category", Value: 1},
		}),
		unwindStage("service"),
		lookupStage(authrepo.CollectionName, "user_id", "user", bson.D{
			{Key: "first_name", Value: 1},
			{Key: "last_name", Value: 1},
			{Key: "email", Value: 1},
			{Key: "phone", Value: 1},
		}),
		unwindStage("user"),
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.BookingDetails
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

func (r *mongoBookingRepository) Count(ctx context.Context, filter BookingFilter) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, buildBookingFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	return count, nil
}

// UpdateStatus persists a status transition together with its side fields.
func (r *mongoBookingRepository) UpdateStatus(ctx context.Context, id string, booking *model.Booking) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	set := bson.M{
		"status":     booking.Status,
		"updated_at": time.Now().UTC().Truncate(time.Millisecond),
	}
	if booking.CompletedAt != nil {
		set["completed_at"] = *booking.CompletedAt
	}
	if booking.CancelledAt != nil {
		set["cancelled_at"] = *booking.CancelledAt
	}
	if booking.CancellationReason != "" {
		set["cancellation_reason"] = booking.CancellationReason
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	if result.MatchedCount == 0 {
		return bookingserrors.ErrNotFound
	}

	return nil
}

// FindBySlot returns live bookings holding the exact slot. Completed and
// cancelled bookings do not block a slot.
func (r *mongoBookingRepository) FindBySlot(ctx context.Context, serviceID string, date time.Time, timeSlot string) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"service_id":       serviceID,
		"appointment_date": date,
		"appointment_time": timeSlot,
		"status":           bson.M{"$in": []string{model.StatusPending, model.StatusConfirmed}},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings by slot: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

func (r *mongoBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}

func buildBookingFilter(filter BookingFilter) bson.M {
	query := bson.M{}

	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	if filter.ServiceID != "" {
		query["service_id"] = filter.ServiceID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.DateFrom != nil || filter.DateTo != nil {
		dateFilter := bson.M{}
		if filter.DateFrom != nil {
			dateFilter["$gte"] = *filter.DateFrom
		}
		if filter.DateTo != nil {
			dateFilter["$lte"] = *filter.DateTo
		}
		query["appointment_date"] = dateFilter
	}

	return query
}

// lookupStage joins a referenced document by its hex string ID.
func lookupStage(from, localField, as string, projection bson.D) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: from},
		{Key: "let", Value: bson.D{{Key: "ref_id", Value: bson.D{{Key: "$toObjectId", Value: "$" + localField}}}}},
		{Key: "pipeline", Value: mongo.Pipeline{
			bson.D{{Key: "$match", Value: bson.D{
				{Key: "$expr", Value: bson.D{{Key: "$eq", Value: bson.A{"$_id", "$$ref_id"}}}},
			}}},
			bson.D{{Key: "$project", Value: projection}},
		}},
		{Key: "as", Value: as},
	}}}
}

func unwindStage(path string) bson.D {
	return bson.D{{Key: "$unwind", Value: bson.D{
		{Key: "path", Value: "$" + path},
		{Key: "preserveNullAndEmptyArrays", Value: true},
	}}}
}
