package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	bookingsrepo "tidybook/internal/bookings/repository"
	catalogrepo "tidybook/internal/catalog/repository"
	"tidybook/pkg/config"
	"tidybook/pkg/model"
)

// DashboardRepository runs the aggregations behind the admin dashboard.
type DashboardRepository interface {
	StatusCounts(ctx context.Context) (map[string]int64, error)
	CountBookingsBetween(ctx context.Context, from, to time.Time) (int64, error)
	Revenue(ctx context.Context, from, to *time.Time) (float64, error)
	PopularServices(ctx context.Context, limit int) ([]*model.PopularService, error)
	RecentBookings(ctx context.Context, limit int) ([]*model.BookingDetails, error)
}

type mongoDashboardRepository struct {
	cfg         *config.Config
	bookings    *mongo.Collection
	bookingRepo bookingsrepo.BookingRepository
}

func NewMongoDashboardRepository(cfg *config.Config) DashboardRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoDashboardRepository{
		cfg:         cfg,
		bookings:    db.Collection(bookingsrepo.CollectionName),
		bookingRepo: bookingsrepo.NewMongoBookingRepository(cfg),
	}
}

func (r *mongoDashboardRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < timeout {
		return context.WithTimeout(ctx, time.Until(deadline))
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoDashboardRepository) StatusCounts(ctx context.Context) (map[string]int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.bookings.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings by status: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode status counts: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *mongoDashboardRepository) CountBookingsBetween(ctx context.Context, from, to time.Time) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.bookings.CountDocuments(ctx, bson.M{
		"created_at": bson.M{"$gte": from, "$lt": to},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings in range: %w", err)
	}
	return count, nil
}

// Revenue sums completed bookings, optionally bounded by creation time.
func (r *mongoDashboardRepository) Revenue(ctx context.Context, from, to *time.Time) (float64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	match := bson.D{{Key: "status", Value: model.StatusCompleted}}
	createdAt := bson.D{}
	if from != nil {
		createdAt = append(createdAt, bson.E{Key: "$gte", Value: *from})
	}
	if to != nil {
		createdAt = append(createdAt, bson.E{Key: "$lt", Value: *to})
	}
	if len(createdAt) > 0 {
		match = append(match, bson.E{Key: "created_at", Value: createdAt})
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$total_price"}}},
		}}},
	}

	cursor, err := r.bookings.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to sum revenue: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("failed to decode revenue: %w", err)
	}

	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

func (r *mongoDashboardRepository) PopularServices(ctx context.Context, limit int) ([]*model.PopularService, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$service_id"},
			{Key: "booking_count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "booking_count", Value: -1}}}},
		bson.D{{Key: "$limit", Value: int64(limit)}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: catalogrepo.CollectionName},
			{Key: "let", Value: bson.D{{Key: "sid", Value: bson.D{{Key: "$toObjectId", Value: "$_id"}}}}},
			{Key: "pipeline", Value: mongo.Pipeline{
				bson.D{{Key: "$match", Value: bson.D{
					{Key: "$expr", Value: bson.D{{Key: "$eq", Value: bson.A{"$_id", "$$sid"}}}},
				}}},
				bson.D{{Key: "$project", Value: bson.D{
					{Key: "name", Value: 1},
					{Key: "description", Value: 1},
					{Key: "price", Value: 1},
					{Key: "duration", Value: 1},
					{Key: "category", Value: 1},
				}}},
			}},
			{Key: "as", Value: "service"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$service"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}

	cursor, err := r.bookings.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to rank services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []*model.PopularService
	if err = cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode popular services: %w", err)
	}

	return services, nil
}

func (r *mongoDashboardRepository) RecentBookings(ctx context.Context, limit int) ([]*model.BookingDetails, error) {
	// The bookings repository already knows how to hydrate listings.
	return r.bookingRepo.FindDetails(ctx, bookingsrepo.BookingFilter{}, limit, 0)
}
