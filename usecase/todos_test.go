package usecase

import (
	"context"
	"testing"
	"time"

	"resourceshub/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestSortTodos(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)
	nextWeek := now.Add(7 * 24 * time.Hour)

	todos := []*model.Todo{
		{TodoID: "done", Completed: true, Priority: model.PriorityHigh, CreatedAt: now.Add(-5 * time.Hour)},
		{TodoID: "low", Priority: model.PriorityLow, CreatedAt: now.Add(-4 * time.Hour)},
		{TodoID: "high-next-week", Priority: model.PriorityHigh, DueDate: &nextWeek, CreatedAt: now.Add(-3 * time.Hour)},
		{TodoID: "overdue-low", Priority: model.PriorityLow, DueDate: &yesterday, CreatedAt: now.Add(-2 * time.Hour)},
		{TodoID: "high-tomorrow", Priority: model.PriorityHigh, DueDate: &tomorrow, CreatedAt: now.Add(-1 * time.Hour)},
		{TodoID: "high-undated", Priority: model.PriorityHigh, CreatedAt: now.Add(-6 * time.Hour)},
	}

	SortTodos(todos, now)

	ids := make([]string, len(todos))
	for i, todo := range todos {
		ids[i] = todo.TodoID
	}
	assert.Equal(t, []string{"overdue-low", "high-tomorrow", "high-next-week", "high-undated", "low", "done"}, ids)
}

func TestTodosService(t *testing.T) {
	ctx := context.Background()
	repo := newFakeTodoRepo()
	svc := NewTodosService(repo)

	t.Run("create defaults priority", func(t *testing.T) {
		todo := &model.Todo{UserID: "u1", Title: "  Read chapter 1 "}
		require.NoError(t, svc.CreateTodo(ctx, todo))
		assert.Equal(t, model.PriorityMedium, todo.Priority)
		assert.Equal(t, "Read chapter 1", todo.Title)
		assert.NotEmpty(t, todo.TodoID)
		assert.False(t, todo.CreatedAt.IsZero())
	})

	t.Run("create rejects invalid input", func(t *testing.T) {
		_, ok := IsValidation(svc.CreateTodo(ctx, &model.Todo{UserID: "u1"}))
		assert.True(t, ok)

		_, ok = IsValidation(svc.CreateTodo(ctx, &model.Todo{UserID: "u1", Title: "x", Priority: "urgent"}))
		assert.True(t, ok)

		past := time.Now().Add(-time.Hour)
		_, ok = IsValidation(svc.CreateTodo(ctx, &model.Todo{UserID: "u1", Title: "x", DueDate: &past}))
		assert.True(t, ok)
	})

	second := &model.Todo{UserID: "u1", Title: "Practice recall", Description: "flashcards", Priority: model.PriorityHigh}
	require.NoError(t, svc.CreateTodo(ctx, second))

	t.Run("toggle and status filter", func(t *testing.T) {
		toggled, err := svc.ToggleTodo(ctx, "u1", second.TodoID)
		require.NoError(t, err)
		assert.True(t, toggled.Completed)

		done, err := svc.GetUserTodos(ctx, "u1", "completed", "")
		require.NoError(t, err)
		require.Len(t, done, 1)
		assert.Equal(t, second.TodoID, done[0].TodoID)

		pending, err := svc.GetUserTodos(ctx, "u1", "pending", "")
		require.NoError(t, err)
		assert.Len(t, pending, 1)

		all, err := svc.GetUserTodos(ctx, "u1", "", "")
		require.NoError(t, err)
		assert.Len(t, all, 2)

		_, err = svc.GetUserTodos(ctx, "u1", "archived", "")
		_, ok := IsValidation(err)
		assert.True(t, ok)
	})

	t.Run("search", func(t *testing.T) {
		found, err := svc.GetUserTodos(ctx, "u1", "all", "FLASH")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, second.TodoID, found[0].TodoID)
	})

	t.Run("partial update", func(t *testing.T) {
		updated, err := svc.UpdateTodo(ctx, "u1", second.TodoID, model.TodoUpdate{Priority: ptr(model.PriorityLow)})
		require.NoError(t, err)
		assert.Equal(t, model.PriorityLow, updated.Priority)
		assert.Equal(t, "Practice recall", updated.Title)

		_, err = svc.UpdateTodo(ctx, "u1", second.TodoID, model.TodoUpdate{Title: ptr("  ")})
		_, ok := IsValidation(err)
		assert.True(t, ok)
	})

	t.Run("other users cannot see todos", func(t *testing.T) {
		_, err := svc.GetTodo(ctx, "u2", second.TodoID)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = svc.ToggleTodo(ctx, "u2", second.TodoID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, svc.DeleteTodo(ctx, "u2", second.TodoID), ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.DeleteTodo(ctx, "u1", second.TodoID))
		assert.ErrorIs(t, svc.DeleteTodo(ctx, "u1", second.TodoID), ErrNotFound)
	})
}
