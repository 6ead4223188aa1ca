package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resourceshub/metrics"
	"resourceshub/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TodosRepo struct {
	MongoCollection *mongo.Collection
}

func NewTodosRepo(db *mongo.Database) *TodosRepo {
	return &TodosRepo{MongoCollection: db.Collection(TodosCollection)}
}

func (r *TodosRepo) CreateTodo(ctx context.Context, todo *model.Todo) error {
	timer := metrics.TrackDBOperation("insert", TodosCollection)
	defer timer.ObserveDuration()

	if todo.UserID == "" {
		metrics.TrackError("database", "missing_user_id")
		return errors.New("user ID is required")
	}

	if _, err := r.MongoCollection.InsertOne(ctx, todo); err != nil {
		metrics.TrackError("database", "todo_creation_failed")
		return duplicateOr(err)
	}
	return nil
}

// GetUserTodos returns the user's todos, optionally only completed or only
// pending ones. Ordering is left to the caller.
func (r *TodosRepo) GetUserTodos(ctx context.Context, userID string, completed *bool) ([]*model.Todo, error) {
	timer := metrics.TrackDBOperation("find", TodosCollection)
	defer timer.ObserveDuration()

	filter := bson.M{"user_id": userID}
	if completed != nil {
		filter["completed"] = *completed
	}

	cursor, err := r.MongoCollection.Find(ctx, filter, options.Find().SetSort(bson.M{"created_at": 1}))
	if err != nil {
		metrics.TrackError("database", "todo_find_failed")
		return nil, fmt.Errorf("failed to find todos: %w", err)
	}
	defer cursor.Close(ctx)

	todos := []*model.Todo{}
	if err := cursor.All(ctx, &todos); err != nil {
		return nil, fmt.Errorf("failed to decode todos: %w", err)
	}
	return todos, nil
}

func (r *TodosRepo) GetTodo(ctx context.Context, userID, todoID string) (*model.Todo, error) {
	timer := metrics.TrackDBOperation("find_one", TodosCollection)
	defer timer.ObserveDuration()

	var todo model.Todo
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": todoID, "user_id": userID}).Decode(&todo)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &todo, nil
}

// UpdateTodo applies the non-nil fields of upd to a todo owned by userID.
func (r *TodosRepo) UpdateTodo(ctx context.Context, userID, todoID string, upd model.TodoUpdate) (*model.Todo, error) {
	timer := metrics.TrackDBOperation("update", TodosCollection)
	defer timer.ObserveDuration()

	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Priority != nil {
		set["priority"] = *upd.Priority
	}
	if upd.DueDate != nil {
		set["due_date"] = *upd.DueDate
	}
	if upd.Completed != nil {
		set["completed"] = *upd.Completed
	}
	if upd.RelatedRecordID != nil {
		set["related_record_id"] = *upd.RelatedRecordID
	}

	update := bson.M{"$set": set}
	if upd.ClearDueDate && upd.DueDate == nil {
		update["$unset"] = bson.M{"due_date": ""}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var todo model.Todo
	err := r.MongoCollection.FindOneAndUpdate(ctx, bson.M{"_id": todoID, "user_id": userID}, update, opts).Decode(&todo)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			metrics.TrackError("database", "todo_update_failed")
		}
		return nil, notFoundOr(err)
	}
	return &todo, nil
}

func (r *TodosRepo) DeleteTodo(ctx context.Context, userID, todoID string) error {
	timer := metrics.TrackDBOperation("delete", TodosCollection)
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": todoID, "user_id": userID})
	if err != nil {
		metrics.TrackError("database", "todo_deletion_failed")
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TodosRepo) DeleteUserTodos(ctx context.Context, userID string) error {
	_, err := r.MongoCollection.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}
