package model

import "time"

const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// LearningRecord tracks a user's progress through one resource.
type LearningRecord struct {
	RecordID         string     `bson:"_id,omitempty" json:"id"`
	UserID           string     `bson:"user_id" json:"user_id"`
	ResourceID       string     `bson:"resource_id" json:"resourceId"`
	Title            string     `bson:"title" json:"title"`
	Notes            string     `bson:"notes,omitempty" json:"notes,omitempty"`
	StartTime        time.Time  `bson:"start_time" json:"startTime"`
	LastAccessTime   time.Time  `bson:"last_access_time" json:"lastAccessTime"`
	CompletionStatus string     `bson:"completion_status" json:"completionStatus"`
	CompletedAt      *time.Time `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
	DurationMs       int64      `bson:"duration_ms" json:"duration"`
}
