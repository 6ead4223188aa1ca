package usecase

import (
	"context"
	"testing"
	"time"

	"resourceshub/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profileFixture struct {
	svc      *ProfileService
	users    *fakeUserRepo
	todos    *fakeTodoRepo
	records  *fakeRecordRepo
	posts    *fakePostRepo
	sessions *fakeSessionRepo
}

func newProfileFixture(t *testing.T) *profileFixture {
	t.Helper()
	f := &profileFixture{
		users:    newFakeUserRepo(),
		todos:    newFakeTodoRepo(),
		records:  newFakeRecordRepo(),
		posts:    newFakePostRepo(),
		sessions: newFakeSessionRepo(),
	}
	f.svc = NewProfileService(f.users, f.todos, f.records, f.posts, f.sessions, nil, zerolog.Nop())
	for _, u := range []*model.User{
		{UserID: "u1", Username: "alice", Email: "alice@example.com", Preferences: model.DefaultPreferences()},
		{UserID: "u2", Username: "bob", Email: "bob@example.com", Preferences: model.DefaultPreferences()},
	} {
		require.NoError(t, f.users.AddUser(context.Background(), u))
	}
	return f
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	f := newProfileFixture(t)

	_, err := f.svc.UpdateProfile(ctx, "u1", "bob", "")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = f.svc.UpdateProfile(ctx, "u1", "", "BOB@example.com")
	assert.ErrorIs(t, err, ErrEmailTaken)

	user, err := f.svc.UpdateProfile(ctx, "u1", "alice", "Alice.New@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice.new@example.com", user.Email)

	_, err = f.svc.UpdateProfile(ctx, "missing", "carol", "")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdatePreferencesMerges(t *testing.T) {
	ctx := context.Background()
	f := newProfileFixture(t)

	user, err := f.svc.UpdatePreferences(ctx, "u1", []string{"math"}, "", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"math"}, user.Preferences.Topics)
	assert.Equal(t, "intermediate", user.Preferences.Difficulty)
	assert.Equal(t, []string{}, user.Preferences.ResourceTypes)

	user, err = f.svc.UpdatePreferences(ctx, "u1", nil, "advanced", []string{"video"})
	require.NoError(t, err)
	assert.Equal(t, []string{"math"}, user.Preferences.Topics)
	assert.Equal(t, "advanced", user.Preferences.Difficulty)
	assert.Equal(t, []string{"video"}, user.Preferences.ResourceTypes)
}

func TestHistoryAndBookmarks(t *testing.T) {
	ctx := context.Background()
	f := newProfileFixture(t)

	history, err := f.svc.History(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, history)

	_, err = f.svc.AddHistory(ctx, "u1", "1", "First")
	require.NoError(t, err)
	history, err = f.svc.AddHistory(ctx, "u1", "2", "Second")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "2", history[0].ResourceID)

	_, err = f.svc.AddBookmark(ctx, "u1", "abc")
	require.NoError(t, err)
	marks, err := f.svc.AddBookmark(ctx, "u1", "abc")
	require.NoError(t, err)
	assert.Equal(t, []string{"abc"}, marks)

	marks, err = f.svc.RemoveBookmark(ctx, "u1", "abc")
	require.NoError(t, err)
	assert.Empty(t, marks)

	_, err = f.svc.AddBookmark(ctx, "u1", " ")
	_, ok := IsValidation(err)
	assert.True(t, ok)
}

func TestStatsAndDeleteAccount(t *testing.T) {
	ctx := context.Background()
	f := newProfileFixture(t)
	now := time.Now()
	past := now.Add(-time.Hour)

	require.NoError(t, f.todos.CreateTodo(ctx, &model.Todo{TodoID: "t1", UserID: "u1", Title: "a", Completed: true}))
	require.NoError(t, f.todos.CreateTodo(ctx, &model.Todo{TodoID: "t2", UserID: "u1", Title: "b", DueDate: &past}))
	require.NoError(t, f.todos.CreateTodo(ctx, &model.Todo{TodoID: "t3", UserID: "u1", Title: "c"}))
	require.NoError(t, f.todos.CreateTodo(ctx, &model.Todo{TodoID: "t4", UserID: "u2", Title: "d"}))
	require.NoError(t, f.records.CreateRecord(ctx, &model.LearningRecord{RecordID: "r1", UserID: "u1", CompletionStatus: model.StatusCompleted}))
	require.NoError(t, f.records.CreateRecord(ctx, &model.LearningRecord{RecordID: "r2", UserID: "u1", CompletionStatus: model.StatusInProgress}))
	require.NoError(t, f.posts.CreatePost(ctx, &model.Post{PostID: "p1", AuthorID: "u1"}))
	require.NoError(t, f.sessions.CreateSession(ctx, &model.Session{SessionID: "s1", UserID: "u1", IsActive: true}))
	_, err := f.users.AddBookmark(ctx, "u1", "x")
	require.NoError(t, err)

	stats, err := f.svc.Stats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TodoStats.Total)
	assert.Equal(t, 1, stats.TodoStats.Completed)
	assert.Equal(t, 2, stats.TodoStats.Pending)
	assert.Equal(t, 1, stats.TodoStats.Overdue)
	assert.Equal(t, 1, stats.RecordStats.Completed)
	assert.Equal(t, 1, stats.RecordStats.InProgress)
	assert.Equal(t, 1, stats.Bookmarks)
	assert.Equal(t, 1, stats.Posts)
	assert.Equal(t, 1, stats.TotalSessions)

	require.NoError(t, f.svc.DeleteAccount(ctx, "u1"))

	_, err = f.svc.Profile(ctx, "u1")
	assert.ErrorIs(t, err, ErrUserNotFound)
	left, _ := f.todos.GetUserTodos(ctx, "u1", nil)
	assert.Empty(t, left)
	kept, _ := f.todos.GetUserTodos(ctx, "u2", nil)
	assert.Len(t, kept, 1)
	recs, _ := f.records.GetUserRecords(ctx, "u1")
	assert.Empty(t, recs)
	n, _ := f.sessions.CountSessions(ctx, "u1")
	assert.Zero(t, n)
	posts, _ := f.posts.CountByAuthor(ctx, "u1")
	assert.Equal(t, 1, posts)

	assert.ErrorIs(t, f.svc.DeleteAccount(ctx, "u1"), ErrUserNotFound)
}
