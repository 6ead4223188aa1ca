package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"resourceshub/metrics"
	"resourceshub/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ResourceRepo struct {
	MongoCollection *mongo.Collection
}

func NewResourceRepo(db *mongo.Database) *ResourceRepo {
	return &ResourceRepo{MongoCollection: db.Collection(ResourcesCollection)}
}

// BatchResult summarises one unordered insert.
type BatchResult struct {
	Inserted   int
	Duplicates int
	Failed     int
}

// InsertBatch inserts resources without stopping at the first failure.
// Duplicate urls are counted, not reported. Any other write error is returned
// together with the partial counts.
func (r *ResourceRepo) InsertBatch(ctx context.Context, resources []model.Resource) (BatchResult, error) {
	timer := metrics.TrackDBOperation("insert_many", ResourcesCollection)
	defer timer.ObserveDuration()

	if len(resources) == 0 {
		return BatchResult{}, nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, len(resources))
	for i := range resources {
		if resources[i].CreatedAt.IsZero() {
			resources[i].CreatedAt = now
		}
		resources[i].UpdatedAt = now
		docs[i] = resources[i]
	}

	_, err := r.MongoCollection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err == nil {
		return BatchResult{Inserted: len(resources)}, nil
	}

	var bwe mongo.BulkWriteException
	if !errors.As(err, &bwe) || bwe.WriteConcernError != nil {
		metrics.TrackError("database", "insert_many_failed")
		return BatchResult{}, err
	}

	res := BatchResult{}
	var firstOther *mongo.BulkWriteError
	for i := range bwe.WriteErrors {
		if bwe.WriteErrors[i].Code == duplicateKeyCode {
			res.Duplicates++
			continue
		}
		res.Failed++
		if firstOther == nil {
			firstOther = &bwe.WriteErrors[i]
		}
	}
	res.Inserted = len(resources) - res.Duplicates - res.Failed

	if firstOther != nil {
		metrics.TrackError("database", "insert_many_partial")
		return res, fmt.Errorf("%d documents failed, first: %s", res.Failed, firstOther.Message)
	}
	return res, nil
}

func resourceQuery(f model.ResourceFilter) bson.M {
	query := bson.M{}
	if f.Category != "" {
		query["category"] = bson.M{"$regex": "^" + regexp.QuoteMeta(f.Category) + "$", "$options": "i"}
	}
	if f.Provider != "" {
		query["provider"] = f.Provider
	}
	if f.Difficulty != "" {
		query["difficulty"] = f.Difficulty
	}
	if f.Tag != "" {
		query["tags"] = f.Tag
	}
	if f.Query != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Query), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}
	return query
}

// List returns one page of stored resources ordered by title and the total
// number of matches. A non-positive limit returns everything.
func (r *ResourceRepo) List(ctx context.Context, f model.ResourceFilter, page, limit int) ([]model.Resource, int64, error) {
	timer := metrics.TrackDBOperation("find", ResourcesCollection)
	defer timer.ObserveDuration()

	query := resourceQuery(f)
	total, err := r.MongoCollection.CountDocuments(ctx, query)
	if err != nil {
		metrics.TrackError("database", "resource_count_failed")
		return nil, 0, fmt.Errorf("failed to count resources: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "title", Value: 1}, {Key: "_id", Value: 1}})
	if limit > 0 {
		if page < 1 {
			page = 1
		}
		opts.SetSkip(pageOffset(page, limit, total)).SetLimit(int64(limit))
	}

	cursor, err := r.MongoCollection.Find(ctx, query, opts)
	if err != nil {
		metrics.TrackError("database", "resource_find_failed")
		return nil, 0, fmt.Errorf("failed to find resources: %w", err)
	}
	defer cursor.Close(ctx)

	resources := []model.Resource{}
	if err := cursor.All(ctx, &resources); err != nil {
		return nil, 0, fmt.Errorf("failed to decode resources: %w", err)
	}
	return resources, total, nil
}

func (r *ResourceRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Resource, error) {
	timer := metrics.TrackDBOperation("find_one", ResourcesCollection)
	defer timer.ObserveDuration()

	var resource model.Resource
	if err := r.MongoCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&resource); err != nil {
		return nil, notFoundOr(err)
	}
	return &resource, nil
}

func (r *ResourceRepo) Create(ctx context.Context, resource *model.Resource) error {
	timer := metrics.TrackDBOperation("insert", ResourcesCollection)
	defer timer.ObserveDuration()

	now := time.Now().UTC()
	resource.ID = primitive.NilObjectID
	resource.CreatedAt = now
	resource.UpdatedAt = now

	result, err := r.MongoCollection.InsertOne(ctx, resource)
	if err != nil {
		metrics.TrackError("database", "resource_creation_failed")
		return duplicateOr(err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		resource.ID = oid
	}
	return nil
}

// Update replaces the editable fields and returns the stored document.
func (r *ResourceRepo) Update(ctx context.Context, id primitive.ObjectID, resource *model.Resource) (*model.Resource, error) {
	timer := metrics.TrackDBOperation("update", ResourcesCollection)
	defer timer.ObserveDuration()

	update := bson.M{"$set": bson.M{
		"title":        resource.Title,
		"description":  resource.Description,
		"url":          resource.URL,
		"imageUrl":     resource.ImageURL,
		"category":     resource.Category,
		"subCategory":  resource.SubCategory,
		"tags":         resource.Tags,
		"provider":     resource.Provider,
		"difficulty":   resource.Difficulty,
		"resourceType": resource.ResourceType,
		"language":     resource.Language,
		"instructors":  resource.Instructors,
		"rating":       resource.Rating,
		"reviews":      resource.Reviews,
		"duration":     resource.Duration,
		"subtitles":    resource.Subtitles,
		"updatedAt":    time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated model.Resource
	err := r.MongoCollection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, notFoundOr(err)
	}
	return &updated, nil
}

func (r *ResourceRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	timer := metrics.TrackDBOperation("delete", ResourcesCollection)
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		metrics.TrackError("database", "resource_deletion_failed")
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ResourceRepo) Count(ctx context.Context) (int64, error) {
	return r.MongoCollection.EstimatedDocumentCount(ctx)
}

// Each streams every stored resource ordered by title to fn.
func (r *ResourceRepo) Each(ctx context.Context, fn func(model.Resource) error) error {
	timer := metrics.TrackDBOperation("scan", ResourcesCollection)
	defer timer.ObserveDuration()

	cursor, err := r.MongoCollection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		return fmt.Errorf("failed to scan resources: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var resource model.Resource
		if err := cursor.Decode(&resource); err != nil {
			return fmt.Errorf("failed to decode resource: %w", err)
		}
		if err := fn(resource); err != nil {
			return err
		}
	}
	return cursor.Err()
}
