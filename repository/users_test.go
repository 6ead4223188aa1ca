package repository

import (
	"context"
	"testing"
	"time"

	"resourceshub/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser(name string) *model.User {
	return &model.User{
		UserID:      uuid.NewString(),
		Username:    name,
		Email:       name + "@example.com",
		Password:    "hashed",
		Role:        model.RoleUser,
		CreatedAt:   time.Now().UTC(),
		Preferences: model.DefaultPreferences(),
	}
}

func TestUserRepoUniqueness(t *testing.T) {
	repo := NewUserRepo(testDB(t))
	ctx := context.Background()

	alice := newTestUser("alice")
	require.NoError(t, repo.AddUser(ctx, alice))

	dup := newTestUser("alice2")
	dup.Email = alice.Email
	assert.ErrorIs(t, repo.AddUser(ctx, dup), ErrDuplicate)

	bob := newTestUser("bob")
	require.NoError(t, repo.AddUser(ctx, bob))
	_, err := repo.UpdateProfile(ctx, bob.UserID, "alice", "")
	assert.ErrorIs(t, err, ErrDuplicate)

	found, err := repo.FindUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, alice.UserID, found.UserID)

	_, err = repo.FindUser(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepoBookmarksAndHistory(t *testing.T) {
	repo := NewUserRepo(testDB(t))
	ctx := context.Background()

	user := newTestUser("carol")
	require.NoError(t, repo.AddUser(ctx, user))

	_, err := repo.AddBookmark(ctx, user.UserID, "42")
	require.NoError(t, err)
	updated, err := repo.AddBookmark(ctx, user.UserID, "42")
	require.NoError(t, err)
	assert.Equal(t, []string{"42"}, updated.Bookmarks)

	updated, err = repo.RemoveBookmark(ctx, user.UserID, "42")
	require.NoError(t, err)
	assert.Empty(t, updated.Bookmarks)

	_, err = repo.AddHistory(ctx, user.UserID, model.HistoryEntry{ResourceID: "1", Title: "first", ViewedAt: time.Now().UTC()})
	require.NoError(t, err)
	updated, err = repo.AddHistory(ctx, user.UserID, model.HistoryEntry{ResourceID: "2", Title: "second", ViewedAt: time.Now().UTC()})
	require.NoError(t, err)
	require.Len(t, updated.LearningHistory, 2)
	assert.Equal(t, "2", updated.LearningHistory[0].ResourceID)

	require.NoError(t, repo.Enable2FAWithRecoveryCodes(ctx, user.UserID, "SECRET", []string{"h1"}))
	require.NoError(t, repo.Disable2FA(ctx, user.UserID))
	reloaded, err := repo.FindUser(ctx, user.UserID)
	require.NoError(t, err)
	assert.False(t, reloaded.TwoFactorEnabled)
	assert.Empty(t, reloaded.TwoFactorSecret)

	require.NoError(t, repo.DeleteUserByID(ctx, user.UserID))
	assert.ErrorIs(t, repo.DeleteUserByID(ctx, user.UserID), ErrNotFound)
}

func TestUserRepoPasswordUpdates(t *testing.T) {
	repo := NewUserRepo(testDB(t))
	ctx := context.Background()

	user := newTestUser("dave")
	require.NoError(t, repo.AddUser(ctx, user))

	require.NoError(t, repo.ReplacePasswordHash(ctx, user.UserID, "rehashed"))
	reloaded, err := repo.FindUser(ctx, user.UserID)
	require.NoError(t, err)
	assert.Equal(t, "rehashed", reloaded.Password)
	assert.True(t, reloaded.LastPasswordChange.IsZero())

	require.NoError(t, repo.UpdateUserPassword(ctx, user.UserID, "changed"))
	reloaded, err = repo.FindUser(ctx, user.UserID)
	require.NoError(t, err)
	assert.Equal(t, "changed", reloaded.Password)
	assert.WithinDuration(t, time.Now(), reloaded.LastPasswordChange, time.Minute)

	assert.Error(t, repo.UpdateUserPassword(ctx, user.UserID, ""))
	assert.ErrorIs(t, repo.ReplacePasswordHash(ctx, "missing", "x"), ErrNotFound)
}

func TestSessionRepoActiveLimitHelpers(t *testing.T) {
	repo := NewSessionRepo(testDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	for i, age := range []time.Duration{3 * time.Hour, time.Hour, 2 * time.Hour} {
		require.NoError(t, repo.CreateSession(ctx, &model.Session{
			SessionID:      uuid.NewString(),
			UserID:         "u1",
			CreatedAt:      now,
			ExpiresAt:      now.Add(24 * time.Hour),
			LastActivityAt: now.Add(-age),
			IsActive:       true,
			DeviceInfo:     string(rune('a' + i)),
		}))
	}

	count, err := repo.CountActiveSessions(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	require.NoError(t, repo.EndLeastActiveSession(ctx, "u1"))
	active, err := repo.GetUserActiveSessions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "b", active[0].DeviceInfo)
	assert.Equal(t, "c", active[1].DeviceInfo)

	ended, err := repo.EndAllUserSessions(ctx, "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, ended)

	total, err := repo.CountSessions(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}
