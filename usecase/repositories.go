package usecase

import (
	"context"

	"resourceshub/model"
	"resourceshub/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The interfaces below are satisfied by the repository package and by the
// in-memory fakes used in tests.

type ResourceRepository interface {
	InsertBatch(ctx context.Context, resources []model.Resource) (repository.BatchResult, error)
	List(ctx context.Context, f model.ResourceFilter, page, limit int) ([]model.Resource, int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Resource, error)
	Create(ctx context.Context, resource *model.Resource) error
	Update(ctx context.Context, id primitive.ObjectID, resource *model.Resource) (*model.Resource, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type SubscriberRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.Subscriber, error)
	Create(ctx context.Context, sub *model.Subscriber) error
	SetActive(ctx context.Context, email string, active bool) (*model.Subscriber, error)
	List(ctx context.Context, active *bool) ([]model.Subscriber, error)
}

type UserRepository interface {
	AddUser(ctx context.Context, user *model.User) error
	FindUser(ctx context.Context, userID string) (*model.User, error)
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	FindUserByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID, username, email string) (*model.User, error)
	UpdatePreferences(ctx context.Context, userID string, prefs model.Preferences) (*model.User, error)
	AddHistory(ctx context.Context, userID string, entry model.HistoryEntry) (*model.User, error)
	AddBookmark(ctx context.Context, userID, resourceID string) (*model.User, error)
	RemoveBookmark(ctx context.Context, userID, resourceID string) (*model.User, error)
	UpdateUserPassword(ctx context.Context, userID, hashedPassword string) error
	ReplacePasswordHash(ctx context.Context, userID, hashedPassword string) error
	SetTwoFactorSecret(ctx context.Context, userID, secret string) error
	Enable2FAWithRecoveryCodes(ctx context.Context, userID, secret string, codes []string) error
	UpdateRecoveryCodes(ctx context.Context, userID string, codes []string) error
	Disable2FA(ctx context.Context, userID string) error
	DeleteUserByID(ctx context.Context, userID string) error
}

type SessionRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, sessionID string) (*model.Session, error)
	TouchSession(ctx context.Context, sessionID string) error
	EndSession(ctx context.Context, sessionID string) error
	GetUserActiveSessions(ctx context.Context, userID string) ([]*model.Session, error)
	CountActiveSessions(ctx context.Context, userID string) (int, error)
	CountSessions(ctx context.Context, userID string) (int, error)
	EndLeastActiveSession(ctx context.Context, userID string) error
	EndAllUserSessions(ctx context.Context, userID string) (int64, error)
	DeleteUserSessions(ctx context.Context, userID string) error
}

type TodoRepository interface {
	CreateTodo(ctx context.Context, todo *model.Todo) error
	GetUserTodos(ctx context.Context, userID string, completed *bool) ([]*model.Todo, error)
	GetTodo(ctx context.Context, userID, todoID string) (*model.Todo, error)
	UpdateTodo(ctx context.Context, userID, todoID string, upd model.TodoUpdate) (*model.Todo, error)
	DeleteTodo(ctx context.Context, userID, todoID string) error
	DeleteUserTodos(ctx context.Context, userID string) error
}

type PostRepository interface {
	CreatePost(ctx context.Context, post *model.Post) error
	ListPosts(ctx context.Context, page, limit int) ([]*model.Post, int64, error)
	GetPost(ctx context.Context, postID string) (*model.Post, error)
	UpdatePost(ctx context.Context, postID, title, content string) (*model.Post, error)
	DeletePost(ctx context.Context, postID string) error
	CountByAuthor(ctx context.Context, authorID string) (int, error)
}

type RecordRepository interface {
	CreateRecord(ctx context.Context, record *model.LearningRecord) error
	GetUserRecords(ctx context.Context, userID string) ([]*model.LearningRecord, error)
	GetRecord(ctx context.Context, userID, recordID string) (*model.LearningRecord, error)
	ReplaceRecord(ctx context.Context, record *model.LearningRecord) error
	DeleteRecord(ctx context.Context, userID, recordID string) error
	DeleteUserRecords(ctx context.Context, userID string) error
}

// Compile-time checks against the Mongo implementations.
var (
	_ ResourceRepository   = (*repository.ResourceRepo)(nil)
	_ SubscriberRepository = (*repository.SubscriberRepo)(nil)
	_ UserRepository       = (*repository.UserRepo)(nil)
	_ SessionRepository    = (*repository.SessionRepo)(nil)
	_ TodoRepository       = (*repository.TodosRepo)(nil)
	_ PostRepository       = (*repository.PostRepo)(nil)
	_ RecordRepository     = (*repository.RecordRepo)(nil)
)
