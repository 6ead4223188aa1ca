package usecase

import (
	"context"
	"strings"
	"time"

	"resourceshub/model"
	"resourceshub/utils"
)

type RecordService struct {
	repo RecordRepository
	now  func() time.Time
}

func NewRecordService(repo RecordRepository) *RecordService {
	return &RecordService{repo: repo, now: time.Now}
}

func (s *RecordService) List(ctx context.Context, userID string) ([]*model.LearningRecord, error) {
	records, err := s.repo.GetUserRecords(ctx, userID)
	if err != nil {
		return nil, translate(err)
	}
	if records == nil {
		records = []*model.LearningRecord{}
	}
	return records, nil
}

func (s *RecordService) Get(ctx context.Context, userID, recordID string) (*model.LearningRecord, error) {
	record, err := s.repo.GetRecord(ctx, userID, recordID)
	return record, translate(err)
}

// Start opens an in-progress record for a resource.
func (s *RecordService) Start(ctx context.Context, userID, resourceID, title, notes string) (*model.LearningRecord, error) {
	resourceID, title = strings.TrimSpace(resourceID), strings.TrimSpace(title)
	if resourceID == "" || title == "" {
		return nil, invalid("resourceId and title are required")
	}

	now := s.now().UTC()
	record := &model.LearningRecord{
		RecordID:         utils.GenerateOrderedID(),
		UserID:           userID,
		ResourceID:       resourceID,
		Title:            title,
		Notes:            notes,
		StartTime:        now,
		LastAccessTime:   now,
		CompletionStatus: model.StatusInProgress,
	}
	if err := s.repo.CreateRecord(ctx, record); err != nil {
		return nil, translate(err)
	}
	return record, nil
}

// RecordUpdate is a partial update; nil and blank fields are left unchanged.
type RecordUpdate struct {
	CompletionStatus string
	Notes            *string
	Title            *string
}

// Update refreshes lastAccessTime. Moving to completed stamps completedAt and
// the elapsed duration in milliseconds; moving back clears them.
func (s *RecordService) Update(ctx context.Context, userID, recordID string, upd RecordUpdate) (*model.LearningRecord, error) {
	record, err := s.repo.GetRecord(ctx, userID, recordID)
	if err != nil {
		return nil, translate(err)
	}

	now := s.now().UTC()
	record.LastAccessTime = now
	if upd.Title != nil {
		if t := strings.TrimSpace(*upd.Title); t != "" {
			record.Title = t
		}
	}
	if upd.Notes != nil {
		record.Notes = *upd.Notes
	}

	switch upd.CompletionStatus {
	case "":
	case model.StatusCompleted:
		if record.CompletionStatus != model.StatusCompleted {
			record.CompletionStatus = model.StatusCompleted
			record.CompletedAt = &now
			record.DurationMs = now.Sub(record.StartTime).Milliseconds()
		}
	case model.StatusInProgress:
		record.CompletionStatus = model.StatusInProgress
		record.CompletedAt = nil
		record.DurationMs = 0
	default:
		return nil, invalid("completionStatus must be in_progress or completed")
	}

	if err := s.repo.ReplaceRecord(ctx, record); err != nil {
		return nil, translate(err)
	}
	return record, nil
}

func (s *RecordService) Delete(ctx context.Context, userID, recordID string) error {
	return translate(s.repo.DeleteRecord(ctx, userID, recordID))
}
