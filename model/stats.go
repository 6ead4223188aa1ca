package model

type UserStats struct {
	TodoStats struct {
		Total     int `json:"total"`
		Completed int `json:"completed"`
		Pending   int `json:"pending"`
		Overdue   int `json:"overdue"`
	} `json:"todo_stats"`
	RecordStats struct {
		InProgress int `json:"in_progress"`
		Completed  int `json:"completed"`
	} `json:"record_stats"`
	Bookmarks     int `json:"bookmarks"`
	Posts         int `json:"posts"`
	TotalSessions int `json:"total_sessions"`
}
