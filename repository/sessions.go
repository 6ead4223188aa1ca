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

type SessionRepo struct {
	MongoCollection *mongo.Collection
}

func NewSessionRepo(db *mongo.Database) *SessionRepo {
	return &SessionRepo{MongoCollection: db.Collection(SessionsCollection)}
}

func (r *SessionRepo) CreateSession(ctx context.Context, session *model.Session) error {
	timer := metrics.TrackDBOperation("insert", SessionsCollection)
	defer timer.ObserveDuration()

	if session == nil || session.SessionID == "" || session.UserID == "" {
		metrics.TrackError("database", "invalid_session_data")
		return fmt.Errorf("invalid session data: missing required fields")
	}

	if _, err := r.MongoCollection.InsertOne(ctx, session); err != nil {
		metrics.TrackError("database", "session_creation_failed")
		return fmt.Errorf("failed to create session in database: %w", err)
	}
	return nil
}

func (r *SessionRepo) GetSession(ctx context.Context, sessionID string) (*model.Session, error) {
	timer := metrics.TrackDBOperation("find_one", SessionsCollection)
	defer timer.ObserveDuration()

	var session model.Session
	if err := r.MongoCollection.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&session); err != nil {
		return nil, notFoundOr(err)
	}
	return &session, nil
}

// TouchSession records activity on an active session.
func (r *SessionRepo) TouchSession(ctx context.Context, sessionID string) error {
	timer := metrics.TrackDBOperation("update", SessionsCollection)
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"session_id": sessionID, "is_active": true},
		bson.M{"$set": bson.M{"last_activity_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SessionRepo) EndSession(ctx context.Context, sessionID string) error {
	timer := metrics.TrackDBOperation("update", SessionsCollection)
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"session_id": sessionID},
		bson.M{"$set": bson.M{"is_active": false, "last_activity_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetUserActiveSessions returns unexpired active sessions, most recent first.
func (r *SessionRepo) GetUserActiveSessions(ctx context.Context, userID string) ([]*model.Session, error) {
	timer := metrics.TrackDBOperation("find", SessionsCollection)
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.M{"last_activity_at": -1})
	cursor, err := r.MongoCollection.Find(ctx, activeFilter(userID), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active sessions: %w", err)
	}
	defer cursor.Close(ctx)

	sessions := []*model.Session{}
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("failed to decode sessions: %w", err)
	}
	return sessions, nil
}

func (r *SessionRepo) CountActiveSessions(ctx context.Context, userID string) (int, error) {
	count, err := r.MongoCollection.CountDocuments(ctx, activeFilter(userID))
	if err != nil {
		return 0, fmt.Errorf("failed to count active sessions: %w", err)
	}
	return int(count), nil
}

// CountSessions counts every session ever opened by the user.
func (r *SessionRepo) CountSessions(ctx context.Context, userID string) (int, error) {
	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return int(count), nil
}

// EndLeastActiveSession ends the active session with the oldest activity.
func (r *SessionRepo) EndLeastActiveSession(ctx context.Context, userID string) error {
	opts := options.FindOneAndUpdate().SetSort(bson.M{"last_activity_at": 1})
	err := r.MongoCollection.FindOneAndUpdate(ctx,
		activeFilter(userID),
		bson.M{"$set": bson.M{"is_active": false}},
		opts,
	).Err()
	if err != nil {
		return notFoundOr(err)
	}
	return nil
}

func (r *SessionRepo) EndAllUserSessions(ctx context.Context, userID string) (int64, error) {
	result, err := r.MongoCollection.UpdateMany(ctx,
		bson.M{"user_id": userID, "is_active": true},
		bson.M{"$set": bson.M{"is_active": false, "last_activity_at": time.Now().UTC()}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to end user sessions: %w", err)
	}
	return result.ModifiedCount, nil
}

func (r *SessionRepo) DeleteUserSessions(ctx context.Context, userID string) error {
	if _, err := r.MongoCollection.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("failed to delete user sessions: %w", err)
	}
	return nil
}

func activeFilter(userID string) bson.M {
	return bson.M{
		"user_id":    userID,
		"is_active":  true,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	}
}
