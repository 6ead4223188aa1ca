package repository

import (
	"context"
	"fmt"
	"time"

	"resourceshub/metrics"
	"resourceshub/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SubscriberRepo struct {
	MongoCollection *mongo.Collection
}

func NewSubscriberRepo(db *mongo.Database) *SubscriberRepo {
	return &SubscriberRepo{MongoCollection: db.Collection(SubscribersCollection)}
}

func (r *SubscriberRepo) FindByEmail(ctx context.Context, email string) (*model.Subscriber, error) {
	timer := metrics.TrackDBOperation("find_one", SubscribersCollection)
	defer timer.ObserveDuration()

	var sub model.Subscriber
	if err := r.MongoCollection.FindOne(ctx, bson.M{"email": email}).Decode(&sub); err != nil {
		return nil, notFoundOr(err)
	}
	return &sub, nil
}

func (r *SubscriberRepo) Create(ctx context.Context, sub *model.Subscriber) error {
	timer := metrics.TrackDBOperation("insert", SubscribersCollection)
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.InsertOne(ctx, sub)
	if err != nil {
		metrics.TrackError("database", "subscriber_creation_failed")
		return duplicateOr(err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		sub.ID = oid
	}
	return nil
}

// SetActive flips the active flag and, on reactivation, resets the
// subscription date. It returns the updated subscriber.
func (r *SubscriberRepo) SetActive(ctx context.Context, email string, active bool) (*model.Subscriber, error) {
	timer := metrics.TrackDBOperation("update", SubscribersCollection)
	defer timer.ObserveDuration()

	set := bson.M{"active": active}
	if active {
		set["subscriptionDate"] = time.Now().UTC()
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var sub model.Subscriber
	err := r.MongoCollection.FindOneAndUpdate(ctx, bson.M{"email": email}, bson.M{"$set": set}, opts).Decode(&sub)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &sub, nil
}

// List returns subscribers newest first, optionally filtered by active state.
func (r *SubscriberRepo) List(ctx context.Context, active *bool) ([]model.Subscriber, error) {
	timer := metrics.TrackDBOperation("find", SubscribersCollection)
	defer timer.ObserveDuration()

	filter := bson.M{}
	if active != nil {
		filter["active"] = *active
	}

	cursor, err := r.MongoCollection.Find(ctx, filter, options.Find().SetSort(bson.M{"subscriptionDate": -1}))
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	defer cursor.Close(ctx)

	subs := []model.Subscriber{}
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, fmt.Errorf("failed to decode subscribers: %w", err)
	}
	return subs, nil
}
