package dto

import (
	"time"

	"resourceshub/model"
)

// CourseQuery is bound from the catalog listing query string.
type CourseQuery struct {
	Page        int    `form:"page"`
	Limit       int    `form:"limit"`
	Category    string `form:"category"`
	Subcategory string `form:"subcategory"`
}

type SearchQuery struct {
	Query string `form:"query"`
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
}

// ResourceQuery filters the stored resource listing.
type ResourceQuery struct {
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
	Category   string `form:"category"`
	Provider   string `form:"provider"`
	Difficulty string `form:"difficulty"`
	Tag        string `form:"tag"`
	Q          string `form:"q"`
}

func (q ResourceQuery) Filter() model.ResourceFilter {
	return model.ResourceFilter{
		Category:   q.Category,
		Provider:   q.Provider,
		Difficulty: q.Difficulty,
		Tag:        q.Tag,
		Query:      q.Q,
	}
}

type ResourceRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	URL          string   `json:"url" binding:"required"`
	ImageURL     string   `json:"imageUrl"`
	Category     string   `json:"category"`
	SubCategory  string   `json:"subCategory"`
	Tags         []string `json:"tags"`
	Provider     string   `json:"provider"`
	Difficulty   string   `json:"difficulty" binding:"difficulty"`
	ResourceType string   `json:"resourceType"`
	Language     string   `json:"language"`
	Instructors  []string `json:"instructors"`
	Rating       *float64 `json:"rating" binding:"omitempty,gte=0,lte=5"`
	Reviews      *int     `json:"reviews" binding:"omitempty,gte=0"`
	Duration     string   `json:"duration"`
	Subtitles    string   `json:"subtitles"`
}

func (r ResourceRequest) ToModel() *model.Resource {
	return &model.Resource{
		Title:        r.Title,
		Description:  r.Description,
		URL:          r.URL,
		ImageURL:     r.ImageURL,
		Category:     r.Category,
		SubCategory:  r.SubCategory,
		Tags:         r.Tags,
		Provider:     r.Provider,
		Difficulty:   r.Difficulty,
		ResourceType: r.ResourceType,
		Language:     r.Language,
		Instructors:  r.Instructors,
		Rating:       r.Rating,
		Reviews:      r.Reviews,
		Duration:     r.Duration,
		Subtitles:    r.Subtitles,
	}
}

type SubscribeRequest struct {
	Email string `json:"email"`
}

type ServerFileRequest struct {
	FilePath string `json:"filePath"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,password"`
}

// LoginRequest accepts either email or username as the identifier.
type LoginRequest struct {
	Email         string `json:"email"`
	Username      string `json:"username"`
	Password      string `json:"password" binding:"required"`
	TwoFactorCode string `json:"twoFactorCode"`
}

type UpdateProfileRequest struct {
	Username string `json:"username" binding:"omitempty,min=3,max=30"`
	Email    string `json:"email" binding:"omitempty,email"`
}

type PreferencesRequest struct {
	Topics        []string `json:"topics"`
	Difficulty    string   `json:"difficulty"`
	ResourceTypes []string `json:"resourceTypes"`
}

type HistoryRequest struct {
	ResourceID string `json:"resourceId" binding:"required"`
	Title      string `json:"title"`
}

type BookmarkRequest struct {
	ResourceID string `json:"resourceId" binding:"required"`
}

type TwoFactorEnableRequest struct {
	Secret string `json:"secret"`
	Code   string `json:"code" binding:"required"`
}

type TwoFactorCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

type RecoveryCodeRequest struct {
	RecoveryCode string `json:"recovery_code" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type TodoRequest struct {
	Title           string     `json:"title" binding:"required"`
	Description     string     `json:"description"`
	Priority        string     `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate         *time.Time `json:"dueDate"`
	RelatedRecordID string     `json:"relatedRecordId"`
}

// TodoPatch is a partial update; absent fields stay unchanged. A JSON null
// dueDate is not distinguishable from absent, so clearing uses clearDueDate.
type TodoPatch struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	Priority        *string    `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate         *time.Time `json:"dueDate"`
	ClearDueDate    bool       `json:"clearDueDate"`
	Completed       *bool      `json:"completed"`
	RelatedRecordID *string    `json:"relatedRecordId"`
}

func (p TodoPatch) ToModel() model.TodoUpdate {
	upd := model.TodoUpdate{
		Title:           p.Title,
		Description:     p.Description,
		DueDate:         p.DueDate,
		ClearDueDate:    p.ClearDueDate,
		Completed:       p.Completed,
		RelatedRecordID: p.RelatedRecordID,
	}
	if p.Priority != nil {
		prio := model.Priority(*p.Priority)
		upd.Priority = &prio
	}
	return upd
}

type PostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type PostPatch struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type RecordRequest struct {
	ResourceID string `json:"resourceId" binding:"required"`
	Title      string `json:"title" binding:"required"`
	Notes      string `json:"notes"`
}

type RecordPatch struct {
	CompletionStatus string  `json:"completionStatus" binding:"omitempty,oneof=in_progress completed"`
	Notes            *string `json:"notes"`
	Title            *string `json:"title"`
}
