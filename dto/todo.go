package dto

import (
	"time"

	"resourceshub/model"
)

type TodoResponse struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Completed       bool           `json:"completed"`
	Priority        model.Priority `json:"priority"`
	DueDate         *time.Time     `json:"dueDate,omitempty"`
	RelatedRecordID string         `json:"relatedRecordId,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	TimeUntilDue    string         `json:"timeUntilDue,omitempty"`
}

// ToTodoResponse converts a todo, computing TimeUntilDue relative to now.
func ToTodoResponse(todo *model.Todo, now time.Time) TodoResponse {
	response := TodoResponse{
		ID:              todo.TodoID,
		Title:           todo.Title,
		Description:     todo.Description,
		Completed:       todo.Completed,
		Priority:        todo.Priority,
		DueDate:         todo.DueDate,
		RelatedRecordID: todo.RelatedRecordID,
		CreatedAt:       todo.CreatedAt,
		UpdatedAt:       todo.UpdatedAt,
	}

	if todo.DueDate != nil && !todo.Completed {
		if todo.IsOverdue(now) {
			response.TimeUntilDue = "Overdue"
		} else {
			response.TimeUntilDue = todo.DueDate.Sub(now).Round(time.Hour).String()
		}
	}
	return response
}

func ToTodoResponses(todos []*model.Todo, now time.Time) []TodoResponse {
	out := make([]TodoResponse, 0, len(todos))
	for _, t := range todos {
		out = append(out, ToTodoResponse(t, now))
	}
	return out
}
