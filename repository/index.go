package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetupIndexes creates every index the repositories rely on, including the
// unique keys on resources.url, subscribers.email, users.email and users.username.
func SetupIndexes(ctx context.Context, db *mongo.Database, log zerolog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := map[string][]mongo.IndexModel{
		ResourcesCollection: {
			{
				Keys:    bson.D{{Key: "url", Value: 1}},
				Options: options.Index().SetName("url_unique").SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "category", Value: 1}, {Key: "title", Value: 1}},
				Options: options.Index().SetName("category_title"),
			},
			{
				Keys:    bson.D{{Key: "tags", Value: 1}},
				Options: options.Index().SetName("tags"),
			},
			{
				Keys:    bson.D{{Key: "provider", Value: 1}},
				Options: options.Index().SetName("provider"),
			},
			{
				Keys:    bson.D{{Key: "difficulty", Value: 1}},
				Options: options.Index().SetName("difficulty"),
			},
		},
		SubscribersCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName("email_unique").SetUnique(true),
			},
		},
		UsersCollection: {
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}},
				Options: options.Index().SetName("user_id_unique").SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName("email_unique").SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "username", Value: 1}},
				Options: options.Index().SetName("username_unique").SetUnique(true),
			},
		},
		SessionsCollection: {
			{
				Keys:    bson.D{{Key: "session_id", Value: 1}},
				Options: options.Index().SetName("session_id_unique").SetUnique(true),
			},
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "is_active", Value: 1},
					{Key: "last_activity_at", Value: -1},
				},
				Options: options.Index().SetName("user_active_sessions"),
			},
			{
				// Mongo removes sessions a day after they expire.
				Keys:    bson.D{{Key: "expires_at", Value: 1}},
				Options: options.Index().SetName("expires_at_ttl").SetExpireAfterSeconds(24 * 60 * 60),
			},
		},
		TodosCollection: {
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "created_at", Value: -1},
				},
				Options: options.Index().SetName("user_todos_date"),
			},
		},
		PostsCollection: {
			{
				Keys:    bson.D{{Key: "created_at", Value: -1}},
				Options: options.Index().SetName("posts_newest"),
			},
			{
				Keys:    bson.D{{Key: "author_id", Value: 1}},
				Options: options.Index().SetName("author_id"),
			},
		},
		RecordsCollection: {
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "last_access_time", Value: -1},
				},
				Options: options.Index().SetName("user_records_recent"),
			},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", collection, err)
		}
	}

	log.Info().Int("collections", len(indexes)).Msg("Successfully created all indexes")
	return nil
}
