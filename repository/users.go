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

// maxHistoryEntries bounds the learning history kept on a user document.
const maxHistoryEntries = 100

type UserRepo struct {
	MongoCollection *mongo.Collection
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{MongoCollection: db.Collection(UsersCollection)}
}

func (r *UserRepo) AddUser(ctx context.Context, user *model.User) error {
	timer := metrics.TrackDBOperation("insert", UsersCollection)
	defer timer.ObserveDuration()

	if user.Username == "" || user.Password == "" {
		metrics.TrackError("database", "invalid_user_data")
		return fmt.Errorf("username and password required")
	}

	if _, err := r.MongoCollection.InsertOne(ctx, user); err != nil {
		metrics.TrackError("database", "user_creation_failed")
		return duplicateOr(err)
	}
	return nil
}

func (r *UserRepo) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	timer := metrics.TrackDBOperation("find_one", UsersCollection)
	defer timer.ObserveDuration()

	var user model.User
	if err := r.MongoCollection.FindOne(ctx, filter).Decode(&user); err != nil {
		if err != mongo.ErrNoDocuments {
			metrics.TrackError("database", "user_lookup_error")
		}
		return nil, notFoundOr(err)
	}
	return &user, nil
}

func (r *UserRepo) FindUser(ctx context.Context, userID string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"user_id": userID})
}

func (r *UserRepo) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepo) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

// UpdateProfile sets username and email. Empty values are left unchanged.
func (r *UserRepo) UpdateProfile(ctx context.Context, userID, username, email string) (*model.User, error) {
	timer := metrics.TrackDBOperation("update", UsersCollection)
	defer timer.ObserveDuration()

	set := bson.M{}
	if username != "" {
		set["username"] = username
	}
	if email != "" {
		set["email"] = email
	}
	if len(set) == 0 {
		return r.FindUser(ctx, userID)
	}
	return r.findOneAndSet(ctx, userID, bson.M{"$set": set})
}

func (r *UserRepo) UpdatePreferences(ctx context.Context, userID string, prefs model.Preferences) (*model.User, error) {
	timer := metrics.TrackDBOperation("update", UsersCollection)
	defer timer.ObserveDuration()

	return r.findOneAndSet(ctx, userID, bson.M{"$set": bson.M{"preferences": prefs}})
}

// AddHistory prepends an entry, keeping the most recent maxHistoryEntries.
func (r *UserRepo) AddHistory(ctx context.Context, userID string, entry model.HistoryEntry) (*model.User, error) {
	timer := metrics.TrackDBOperation("update", UsersCollection)
	defer timer.ObserveDuration()

	update := bson.M{"$push": bson.M{"learning_history": bson.M{
		"$each":     bson.A{entry},
		"$position": 0,
		"$slice":    maxHistoryEntries,
	}}}
	return r.findOneAndSet(ctx, userID, update)
}

func (r *UserRepo) AddBookmark(ctx context.Context, userID, resourceID string) (*model.User, error) {
	timer := metrics.TrackDBOperation("update", UsersCollection)
	defer timer.ObserveDuration()

	return r.findOneAndSet(ctx, userID, bson.M{"$addToSet": bson.M{"bookmarks": resourceID}})
}

func (r *UserRepo) RemoveBookmark(ctx context.Context, userID, resourceID string) (*model.User, error) {
	timer := metrics.TrackDBOperation("update", UsersCollection)
	defer timer.ObserveDuration()

	return r.findOneAndSet(ctx, userID, bson.M{"$pull": bson.M{"bookmarks": resourceID}})
}

func (r *UserRepo) findOneAndSet(ctx context.Context, userID string, update bson.M) (*model.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user model.User
	err := r.MongoCollection.FindOneAndUpdate(ctx, bson.M{"user_id": userID}, update, opts).Decode(&user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		if err != mongo.ErrNoDocuments {
			metrics.TrackError("database", "user_update_failed")
		}
		return nil, notFoundOr(err)
	}
	return &user, nil
}

func (r *UserRepo) UpdateUserPassword(ctx context.Context, userID string, hashedPassword string) error {
	timer := metrics.TrackDBOperation("update", UsersCollection)
	defer timer.ObserveDuration()

	if hashedPassword == "" {
		metrics.TrackError("database", "invalid_password_hash")
		return fmt.Errorf("password hashing error")
	}

	update := bson.M{"$set": bson.M{
		"password":           hashedPassword,
		"lastPasswordChange": time.Now().UTC(),
	}}
	return r.updateOne(ctx, userID, update)
}

// ReplacePasswordHash swaps the stored hash without counting as a password
// change.
func (r *UserRepo) ReplacePasswordHash(ctx context.Context, userID string, hashedPassword string) error {
	timer := metrics.TrackDBOperation("update", UsersCollection)
	defer timer.ObserveDuration()

	return r.updateOne(ctx, userID, bson.M{"$set": bson.M{"password": hashedPassword}})
}

func (r *UserRepo) SetTwoFactorSecret(ctx context.Context, userID, secret string) error {
	timer := metrics.TrackDBOperation("update", UsersCollection)
	defer timer.ObserveDuration()

	return r.updateOne(ctx, userID, bson.M{"$set": bson.M{"two_factor_secret": secret}})
}

func (r *UserRepo) Enable2FAWithRecoveryCodes(ctx context.Context, userID, secret string, recoveryCodes []string) error {
	timer := metrics.TrackDBOperation("update", UsersCollection)
	defer timer.ObserveDuration()

	update := bson.M{"$set": bson.M{
		"two_factor_secret":  secret,
		"two_factor_enabled": true,
		"recovery_codes":     recoveryCodes,
	}}
	return r.updateOne(ctx, userID, update)
}

func (r *UserRepo) UpdateRecoveryCodes(ctx context.Context, userID string, codes []string) error {
	timer := metrics.TrackDBOperation("update", UsersCollection)
	defer timer.ObserveDuration()

	return r.updateOne(ctx, userID, bson.M{"$set": bson.M{"recovery_codes": codes}})
}

func (r *UserRepo) Disable2FA(ctx context.Context, userID string) error {
	timer := metrics.TrackDBOperation("update", UsersCollection)
	defer timer.ObserveDuration()

	update := bson.M{
		"$set":   bson.M{"two_factor_enabled": false},
		"$unset": bson.M{"two_factor_secret": "", "recovery_codes": ""},
	}
	return r.updateOne(ctx, userID, update)
}

func (r *UserRepo) updateOne(ctx context.Context, userID string, update bson.M) error {
	result, err := r.MongoCollection.UpdateOne(ctx, bson.M{"user_id": userID}, update)
	if err != nil {
		metrics.TrackError("database", "user_update_failed")
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		metrics.TrackError("database", "user_not_found")
		return ErrNotFound
	}
	return nil
}

func (r *UserRepo) DeleteUserByID(ctx context.Context, userID string) error {
	timer := metrics.TrackDBOperation("delete", UsersCollection)
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"user_id": userID})
	if err != nil {
		metrics.TrackError("database", "user_deletion_failed")
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
