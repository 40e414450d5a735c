// internal/services/submission/repository.go
package submission

import (
	"context"
	"sync"
	"time"

	stderrors "formflow/internal/common/errors"
	"formflow/internal/models"
)

// Repository is the keyed store of submission records.
type Repository interface {
	Save(ctx context.Context, record *models.SubmissionRecord) error
	Get(ctx context.Context, submissionID string) (*models.SubmissionRecord, error)
	ListByUser(ctx context.Context, userID string) ([]*models.SubmissionRecord, error)
	UpdateStatus(ctx context.Context, submissionID string, status models.SubmissionStatus, processedAt time.Time) error
}

// MemoryRepository keeps submission records in a process-local map.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]*models.SubmissionRecord
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string]*models.SubmissionRecord)}
}

func (r *MemoryRepository) Save(ctx context.Context, record *models.SubmissionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *record
	r.records[record.SubmissionID] = &copied
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, submissionID string) (*models.SubmissionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[submissionID]
	if !ok {
		return nil, stderrors.NewSubmissionNotFoundError(submissionID)
	}
	copied := *record
	return &copied, nil
}

func (r *MemoryRepository) ListByUser(ctx context.Context, userID string) ([]*models.SubmissionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*models.SubmissionRecord
	for _, record := range r.records {
		if record.UserID == userID {
			copied := *record
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *MemoryRepository) UpdateStatus(ctx context.Context, submissionID string, status models.SubmissionStatus, processedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[submissionID]
	if !ok {
		return stderrors.NewSubmissionNotFoundError(submissionID)
	}
	record.Status = status
	record.ProcessedAt = processedAt
	return nil
}
