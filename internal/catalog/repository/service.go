package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	catalogerrors "tidybook/internal/catalog/errors"
	"tidybook/pkg/config"
	"tidybook/pkg/model"
)

const (
	CollectionName = "Services"
)

// ServiceFilter narrows catalog listings.
type ServiceFilter struct {
	Category string
	IsActive *bool
	Search   string
}

type ServiceRepository interface {
	Create(ctx context.Context, svc *model.Service) error
	FindByID(ctx context.Context, id string) (*model.Service, error)
	FindAll(ctx context.Context, filter ServiceFilter, limit int, offset int64) ([]*model.Service, error)
	Count(ctx context.Context, filter ServiceFilter) (int64, error)
	Update(ctx context.Context, id string, svc *model.Service) error
	Deactivate(ctx context.Context, id string) error
	Categories(ctx context.Context) ([]string, error)
}

type mongoServiceRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoServiceRepository(cfg *config.Config) ServiceRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoServiceRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoServiceRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < timeout {
		return context.WithTimeout(ctx, time.Until(deadline))
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoServiceRepository) Create(ctx context.Context, svc *model.Service) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	svc.CreatedAt = now
	svc.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, svc)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		svc.ID = oid.Hex()
	}
	return nil
}

func (r *mongoServiceRepository) FindByID(ctx context.Context, id string) (*model.Service, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", catalogerrors.ErrInvalidID, id)
	}

	var svc model.Service
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&svc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, catalogerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find service: %w", err)
	}

	return &svc, nil
}

func (r *mongoServiceRepository) FindAll(ctx context.Context, filter ServiceFilter, limit int, offset int64) ([]*model.Service, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "category", Value: 1}, {Key: "price", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, buildServiceFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []*model.Service
	if err = cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}

	return services, nil
}

func (r *mongoServiceRepository) Count(ctx context.Context, filter ServiceFilter) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, buildServiceFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count services: %w", err)
	}

	return count, nil
}

func (r *mongoServiceRepository) Update(ctx context.Context, id string, svc *model.Service) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", catalogerrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"name":        svc.Name,
			"description": svc.Description,
			"price":       svc.Price,
			"duration":    svc.Duration,
			"category":    svc.Category,
			"is_active":   svc.IsActive,
			"features":    svc.Features,
			"image_url":   svc.ImageURL,
			"updated_at":  time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}

	if result.MatchedCount == 0 {
		return catalogerrors.ErrNotFound
	}

	return nil
}

// Deactivate soft-deletes a service. Existing bookings keep referencing it.
func (r *mongoServiceRepository) Deactivate(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", catalogerrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"is_active":  false,
			"updated_at": time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to deactivate service: %w", err)
	}

	if result.MatchedCount == 0 {
		return catalogerrors.ErrNotFound
	}

	return nil
}

func (r *mongoServiceRepository) Categories(ctx context.Context) ([]string, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	values, err := r.collection.Distinct(ctx, "category", bson.M{"is_active": true})
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]string, 0, len(values))
	for _, v := range values {
		if category, ok := v.(string); ok {
			categories = append(categories, category)
		}
	}

	return categories, nil
}

func buildServiceFilter(filter ServiceFilter) bson.M {
	query := bson.M{}

	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.IsActive != nil {
		query["is_active"] = *filter.IsActive
	}
	if filter.Search != "" {
		query["$text"] = bson.M{"$search": filter.Search}
	}

	return query
}
