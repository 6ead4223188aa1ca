package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"resourceshub/model"
	"resourceshub/utils"

	"github.com/rs/zerolog"
)

type ProfileService struct {
	users    UserRepository
	todos    TodoRepository
	records  RecordRepository
	posts    PostRepository
	sessions SessionRepository
	cache    SessionLister
	log      zerolog.Logger
	now      func() time.Time
}

func NewProfileService(users UserRepository, todos TodoRepository, records RecordRepository, posts PostRepository, sessions SessionRepository, cache SessionLister, log zerolog.Logger) *ProfileService {
	return &ProfileService{
		users:    users,
		todos:    todos,
		records:  records,
		posts:    posts,
		sessions: sessions,
		cache:    cache,
		log:      log.With().Str("service", "profile").Logger(),
		now:      time.Now,
	}
}

func (s *ProfileService) Profile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.FindUser(ctx, userID)
	if err != nil {
		if errors.Is(translate(err), ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, translate(err)
	}
	return user, nil
}

// UpdateProfile changes username and/or email; blank values are left as is.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID, username, email string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if email != "" {
		email = utils.NormalizeEmail(email)
	}

	if email != "" {
		if other, err := s.users.FindUserByEmail(ctx, email); err == nil && other.UserID != userID {
			return nil, ErrEmailTaken
		} else if err != nil && !errors.Is(translate(err), ErrNotFound) {
			return nil, translate(err)
		}
	}
	if username != "" {
		if other, err := s.users.FindUserByUsername(ctx, username); err == nil && other.UserID != userID {
			return nil, ErrUsernameTaken
		} else if err != nil && !errors.Is(translate(err), ErrNotFound) {
			return nil, translate(err)
		}
	}

	user, err := s.users.UpdateProfile(ctx, userID, username, email)
	if err != nil {
		err = translate(err)
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, translate(err)
	}
	return user, nil
}

// UpdatePreferences merges the given fields into the stored preferences. Nil
// lists and a blank difficulty keep the current value.
func (s *ProfileService) UpdatePreferences(ctx context.Context, userID string, topics []string, difficulty string, resourceTypes []string) (*model.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, translate(err)
	}

	prefs := user.Preferences
	if prefs.Difficulty == "" {
		prefs.Difficulty = model.DefaultPreferences().Difficulty
	}
	if topics != nil {
		prefs.Topics = topics
	}
	if d := strings.TrimSpace(difficulty); d != "" {
		prefs.Difficulty = d
	}
	if resourceTypes != nil {
		prefs.ResourceTypes = resourceTypes
	}
	if prefs.Topics == nil {
		prefs.Topics = []string{}
	}
	if prefs.ResourceTypes == nil {
		prefs.ResourceTypes = []string{}
	}

	updated, err := s.users.UpdatePreferences(ctx, userID, prefs)
	return updated, translate(err)
}

func (s *ProfileService) History(ctx context.Context, userID string) ([]model.HistoryEntry, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, translate(err)
	}
	if user.LearningHistory == nil {
		return []model.HistoryEntry{}, nil
	}
	return user.LearningHistory, nil
}

func (s *ProfileService) AddHistory(ctx context.Context, userID, resourceID, title string) ([]model.HistoryEntry, error) {
	if strings.TrimSpace(resourceID) == "" {
		return nil, invalid("resourceId is required")
	}
	entry := model.HistoryEntry{ResourceID: resourceID, Title: title, ViewedAt: s.now().UTC()}
	user, err := s.users.AddHistory(ctx, userID, entry)
	if err != nil {
		return nil, translate(err)
	}
	return user.LearningHistory, nil
}

func (s *ProfileService) Bookmarks(ctx context.Context, userID string) ([]string, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, translate(err)
	}
	if user.Bookmarks == nil {
		return []string{}, nil
	}
	return user.Bookmarks, nil
}

func (s *ProfileService) AddBookmark(ctx context.Context, userID, resourceID string) ([]string, error) {
	if strings.TrimSpace(resourceID) == "" {
		return nil, invalid("resourceId is required")
	}
	user, err := s.users.AddBookmark(ctx, userID, resourceID)
	if err != nil {
		return nil, translate(err)
	}
	return nonNil(user.Bookmarks), nil
}

func (s *ProfileService) RemoveBookmark(ctx context.Context, userID, resourceID string) ([]string, error) {
	user, err := s.users.RemoveBookmark(ctx, userID, resourceID)
	if err != nil {
		return nil, translate(err)
	}
	return nonNil(user.Bookmarks), nil
}

func (s *ProfileService) Stats(ctx context.Context, userID string) (model.UserStats, error) {
	var stats model.UserStats

	user, err := s.Profile(ctx, userID)
	if err != nil {
		return stats, translate(err)
	}
	stats.Bookmarks = len(user.Bookmarks)

	todos, err := s.todos.GetUserTodos(ctx, userID, nil)
	if err != nil {
		return stats, translate(err)
	}
	now := s.now()
	for _, t := range todos {
		stats.TodoStats.Total++
		if t.Completed {
			stats.TodoStats.Completed++
			continue
		}
		stats.TodoStats.Pending++
		if t.IsOverdue(now) {
			stats.TodoStats.Overdue++
		}
	}

	records, err := s.records.GetUserRecords(ctx, userID)
	if err != nil {
		return stats, translate(err)
	}
	for _, r := range records {
		if r.CompletionStatus == model.StatusCompleted {
			stats.RecordStats.Completed++
		} else {
			stats.RecordStats.InProgress++
		}
	}

	if stats.Posts, err = s.posts.CountByAuthor(ctx, userID); err != nil {
		return stats, translate(err)
	}
	if stats.TotalSessions, err = s.sessions.CountSessions(ctx, userID); err != nil {
		return stats, translate(err)
	}
	return stats, nil
}

// DeleteAccount removes the user together with their todos, learning records
// and sessions. Forum posts are kept.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID string) error {
	if _, err := s.Profile(ctx, userID); err != nil {
		return translate(err)
	}
	if err := s.todos.DeleteUserTodos(ctx, userID); err != nil {
		return translate(err)
	}
	if err := s.records.DeleteUserRecords(ctx, userID); err != nil {
		return translate(err)
	}
	if err := s.sessions.DeleteUserSessions(ctx, userID); err != nil {
		return translate(err)
	}
	if err := s.users.DeleteUserByID(ctx, userID); err != nil {
		return translate(err)
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, userID); err != nil {
			s.log.Warn().Err(err).Msg("session cache invalidation failed")
		}
	}
	s.log.Info().Str("user_id", userID).Msg("account deleted")
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
