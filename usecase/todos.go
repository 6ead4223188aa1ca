package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"resourceshub/model"
	"resourceshub/utils"
)

const (
	TodoStatusAll       = "all"
	TodoStatusCompleted = "completed"
	TodoStatusPending   = "pending"
)

type TodosService struct {
	repo TodoRepository
	now  func() time.Time
}

func NewTodosService(repo TodoRepository) *TodosService {
	return &TodosService{repo: repo, now: time.Now}
}

// GetUserTodos lists the user's todos filtered by status ("all", "completed"
// or "pending") and an optional case-insensitive text query.
func (svc *TodosService) GetUserTodos(ctx context.Context, userID, status, query string) ([]*model.Todo, error) {
	var completed *bool
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "", TodoStatusAll:
	case TodoStatusCompleted:
		v := true
		completed = &v
	case TodoStatusPending:
		v := false
		completed = &v
	default:
		return nil, invalid("status must be one of all, completed, pending")
	}

	todos, err := svc.repo.GetUserTodos(ctx, userID, completed)
	if err != nil {
		return nil, translate(err)
	}

	if q := strings.ToLower(strings.TrimSpace(query)); q != "" {
		filtered := todos[:0]
		for _, todo := range todos {
			if strings.Contains(strings.ToLower(todo.Title), q) ||
				strings.Contains(strings.ToLower(todo.Description), q) {
				filtered = append(filtered, todo)
			}
		}
		todos = filtered
	}

	SortTodos(todos, svc.now())
	if todos == nil {
		todos = []*model.Todo{}
	}
	return todos, nil
}

// SortTodos orders incomplete before complete, overdue first, then by
// priority, due date and creation time.
func SortTodos(todos []*model.Todo, now time.Time) {
	sort.SliceStable(todos, func(i, j int) bool {
		a, b := todos[i], todos[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}

		if !a.Completed {
			aOverdue, bOverdue := a.IsOverdue(now), b.IsOverdue(now)
			if aOverdue != bOverdue {
				return aOverdue
			}
		}

		if a.Priority.Weight() != b.Priority.Weight() {
			return a.Priority.Weight() > b.Priority.Weight()
		}

		switch {
		case a.DueDate != nil && b.DueDate != nil && !a.DueDate.Equal(*b.DueDate):
			return a.DueDate.Before(*b.DueDate)
		case a.DueDate != nil && b.DueDate == nil:
			return true
		case a.DueDate == nil && b.DueDate != nil:
			return false
		}

		return a.CreatedAt.Before(b.CreatedAt)
	})
}

func (svc *TodosService) GetTodo(ctx context.Context, userID, todoID string) (*model.Todo, error) {
	todo, err := svc.repo.GetTodo(ctx, userID, todoID)
	return todo, translate(err)
}

func (svc *TodosService) CreateTodo(ctx context.Context, todo *model.Todo) error {
	if todo.UserID == "" {
		return invalid("user ID is required")
	}
	todo.Title = strings.TrimSpace(todo.Title)
	if todo.Title == "" {
		return invalid("Title is required")
	}
	if todo.Priority == "" {
		todo.Priority = model.PriorityMedium
	}
	if !todo.Priority.Valid() {
		return invalid("priority must be one of low, medium, high")
	}

	now := svc.now().UTC()
	if todo.DueDate != nil && todo.DueDate.Before(now) {
		return invalid("due date cannot be in the past")
	}

	todo.TodoID = utils.GenerateOrderedID()
	todo.Completed = false
	todo.CreatedAt = now
	todo.UpdatedAt = now

	return translate(svc.repo.CreateTodo(ctx, todo))
}

func (svc *TodosService) UpdateTodo(ctx context.Context, userID, todoID string, upd model.TodoUpdate) (*model.Todo, error) {
	if upd.Title != nil {
		t := strings.TrimSpace(*upd.Title)
		if t == "" {
			return nil, invalid("Title cannot be empty")
		}
		upd.Title = &t
	}
	if upd.Priority != nil && !upd.Priority.Valid() {
		return nil, invalid("priority must be one of low, medium, high")
	}

	todo, err := svc.repo.UpdateTodo(ctx, userID, todoID, upd)
	return todo, translate(err)
}

// ToggleTodo flips the completed flag.
func (svc *TodosService) ToggleTodo(ctx context.Context, userID, todoID string) (*model.Todo, error) {
	existing, err := svc.repo.GetTodo(ctx, userID, todoID)
	if err != nil {
		return nil, translate(err)
	}
	completed := !existing.Completed
	todo, err := svc.repo.UpdateTodo(ctx, userID, todoID, model.TodoUpdate{Completed: &completed})
	return todo, translate(err)
}

func (svc *TodosService) DeleteTodo(ctx context.Context, userID, todoID string) error {
	return translate(svc.repo.DeleteTodo(ctx, userID, todoID))
}
