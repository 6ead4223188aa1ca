package repository

import (
	"context"
	"fmt"

	"resourceshub/metrics"
	"resourceshub/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RecordRepo struct {
	MongoCollection *mongo.Collection
}

func NewRecordRepo(db *mongo.Database) *RecordRepo {
	return &RecordRepo{MongoCollection: db.Collection(RecordsCollection)}
}

func (r *RecordRepo) CreateRecord(ctx context.Context, record *model.LearningRecord) error {
	timer := metrics.TrackDBOperation("insert", RecordsCollection)
	defer timer.ObserveDuration()

	if _, err := r.MongoCollection.InsertOne(ctx, record); err != nil {
		metrics.TrackError("database", "record_creation_failed")
		return duplicateOr(err)
	}
	return nil
}

// GetUserRecords returns the user's records, most recently accessed first.
func (r *RecordRepo) GetUserRecords(ctx context.Context, userID string) ([]*model.LearningRecord, error) {
	timer := metrics.TrackDBOperation("find", RecordsCollection)
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.M{"last_access_time": -1})
	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find records: %w", err)
	}
	defer cursor.Close(ctx)

	records := []*model.LearningRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}
	return records, nil
}

func (r *RecordRepo) GetRecord(ctx context.Context, userID, recordID string) (*model.LearningRecord, error) {
	timer := metrics.TrackDBOperation("find_one", RecordsCollection)
	defer timer.ObserveDuration()

	var record model.LearningRecord
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": recordID, "user_id": userID}).Decode(&record)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &record, nil
}

// ReplaceRecord stores the full record; the owner must match.
func (r *RecordRepo) ReplaceRecord(ctx context.Context, record *model.LearningRecord) error {
	timer := metrics.TrackDBOperation("update", RecordsCollection)
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.ReplaceOne(ctx,
		bson.M{"_id": record.RecordID, "user_id": record.UserID},
		record,
	)
	if err != nil {
		metrics.TrackError("database", "record_update_failed")
		return fmt.Errorf("failed to update record: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RecordRepo) DeleteRecord(ctx context.Context, userID, recordID string) error {
	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": recordID, "user_id": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RecordRepo) DeleteUserRecords(ctx context.Context, userID string) error {
	_, err := r.MongoCollection.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}
