package model

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Weight orders priorities for sorting; unknown values sort last.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

func (p Priority) Valid() bool {
	return p.Weight() > 0
}

type Todo struct {
	TodoID          string     `bson:"_id,omitempty" json:"id"`
	UserID          string     `bson:"user_id" json:"user_id"`
	Title           string     `bson:"title" json:"title"`
	Description     string     `bson:"description" json:"description"`
	Priority        Priority   `bson:"priority" json:"priority"`
	DueDate         *time.Time `bson:"due_date,omitempty" json:"dueDate,omitempty"`
	Completed       bool       `bson:"completed" json:"completed"`
	RelatedRecordID string     `bson:"related_record_id,omitempty" json:"relatedRecordId,omitempty"`
	CreatedAt       time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time  `bson:"updated_at" json:"updatedAt"`
}

// IsOverdue reports whether an incomplete todo is past its due date.
func (t *Todo) IsOverdue(now time.Time) bool {
	return !t.Completed && t.DueDate != nil && t.DueDate.Before(now)
}

// TodoUpdate carries a partial update; nil fields are left unchanged.
type TodoUpdate struct {
	Title           *string
	Description     *string
	Priority        *Priority
	DueDate         *time.Time
	ClearDueDate    bool
	Completed       *bool
	RelatedRecordID *string
}
