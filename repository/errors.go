// Package repository holds the MongoDB data access for every collection the
// API owns.
package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate key")
)

// Collection names.
const (
	ResourcesCollection   = "resources"
	SubscribersCollection = "subscribers"
	UsersCollection       = "users"
	SessionsCollection    = "sessions"
	TodosCollection       = "todos"
	PostsCollection       = "posts"
	RecordsCollection     = "learning_records"
)

const duplicateKeyCode = 11000

func notFoundOr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func duplicateOr(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// pageOffset is the skip for a 1-based page, clamped to total so page
// numbers past the end cannot overflow into a negative skip.
func pageOffset(page, limit int, total int64) int64 {
	if page < 1 {
		page = 1
	}
	if int64(page-1) > total/int64(limit) {
		return total
	}
	return int64(page-1) * int64(limit)
}
