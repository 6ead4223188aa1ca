package repository

import (
	"context"
	"fmt"
	"time"

	"resourceshub/metrics"
	"resourceshub/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PostRepo struct {
	MongoCollection *mongo.Collection
}

func NewPostRepo(db *mongo.Database) *PostRepo {
	return &PostRepo{MongoCollection: db.Collection(PostsCollection)}
}

func (r *PostRepo) CreatePost(ctx context.Context, post *model.Post) error {
	timer := metrics.TrackDBOperation("insert", PostsCollection)
	defer timer.ObserveDuration()

	if _, err := r.MongoCollection.InsertOne(ctx, post); err != nil {
		metrics.TrackError("database", "post_creation_failed")
		return duplicateOr(err)
	}
	return nil
}

// ListPosts returns one page of posts, newest first, and the total count.
func (r *PostRepo) ListPosts(ctx context.Context, page, limit int) ([]*model.Post, int64, error) {
	timer := metrics.TrackDBOperation("find", PostsCollection)
	defer timer.ObserveDuration()

	total, err := r.MongoCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		if page < 1 {
			page = 1
		}
		opts.SetSkip(pageOffset(page, limit, total)).SetLimit(int64(limit))
	}

	cursor, err := r.MongoCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find posts: %w", err)
	}
	defer cursor.Close(ctx)

	posts := []*model.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, 0, fmt.Errorf("failed to decode posts: %w", err)
	}
	return posts, total, nil
}

func (r *PostRepo) GetPost(ctx context.Context, postID string) (*model.Post, error) {
	timer := metrics.TrackDBOperation("find_one", PostsCollection)
	defer timer.ObserveDuration()

	var post model.Post
	if err := r.MongoCollection.FindOne(ctx, bson.M{"_id": postID}).Decode(&post); err != nil {
		return nil, notFoundOr(err)
	}
	return &post, nil
}

func (r *PostRepo) UpdatePost(ctx context.Context, postID, title, content string) (*model.Post, error) {
	timer := metrics.TrackDBOperation("update", PostsCollection)
	defer timer.ObserveDuration()

	set := bson.M{"updated_at": time.Now().UTC()}
	if title != "" {
		set["title"] = title
	}
	if content != "" {
		set["content"] = content
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post model.Post
	err := r.MongoCollection.FindOneAndUpdate(ctx, bson.M{"_id": postID}, bson.M{"$set": set}, opts).Decode(&post)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &post, nil
}

func (r *PostRepo) DeletePost(ctx context.Context, postID string) error {
	timer := metrics.TrackDBOperation("delete", PostsCollection)
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": postID})
	if err != nil {
		metrics.TrackError("database", "post_deletion_failed")
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostRepo) CountByAuthor(ctx context.Context, authorID string) (int, error) {
	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{"author_id": authorID})
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return int(count), nil
}
