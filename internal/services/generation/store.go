// internal/services/generation/store.go
package generation

import (
	"context"
	"sync"

	stderrors "formflow/internal/common/errors"
	"formflow/internal/models"
)

// FormStore is the keyed store of generated forms. A form saved must be
// immediately visible to a Get with the same id.
type FormStore interface {
	Save(ctx context.Context, form *models.GeneratedForm) error
	Get(ctx context.Context, formID string) (*models.GeneratedForm, error)
	Delete(ctx context.Context, formID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]*models.GeneratedForm, error)
}

// MemoryFormStore keeps forms in a process-local map. Suitable for
// single-instance deployments and tests; RedisFormStore covers the
// multi-instance case.
type MemoryFormStore struct {
	mu    sync.RWMutex
	forms map[string]*models.GeneratedForm
}

func NewMemoryFormStore() *MemoryFormStore {
	return &MemoryFormStore{forms: make(map[string]*models.GeneratedForm)}
}

func (s *MemoryFormStore) Save(ctx context.Context, form *models.GeneratedForm) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forms[form.FormID] = form
	return nil
}

func (s *MemoryFormStore) Get(ctx context.Context, formID string) (*models.GeneratedForm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	form, ok := s.forms[formID]
	if !ok {
		return nil, stderrors.NewFormNotFoundError(formID)
	}
	return form, nil
}

func (s *MemoryFormStore) Delete(ctx context.Context, formID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.forms[formID]
	delete(s.forms, formID)
	return ok, nil
}

func (s *MemoryFormStore) ListByUser(ctx context.Context, userID string) ([]*models.GeneratedForm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*models.GeneratedForm
	for _, form := range s.forms {
		if form.UserID == userID {
			result = append(result, form)
		}
	}
	return result, nil
}
