// internal/services/generation/service.go
package generation

import (
	"context"

	"formflow/internal/common/logger"
	"formflow/internal/common/metrics"
	"formflow/internal/models"
	"formflow/internal/services/analysis"
)

// Service turns free text into a stored, ready-to-render form.
type Service struct {
	classifier *analysis.Classifier
	store      FormStore
	logger     logger.Logger
}

func NewService(classifier *analysis.Classifier, store FormStore, log logger.Logger) *Service {
	return &Service{
		classifier: classifier,
		store:      store,
		logger:     log.With(map[string]interface{}{"service": "generation"}),
	}
}

// Generate classifies the text, expands the matching template and saves
// the resulting form. With the rule fallback configured this path always
// produces a form.
func (s *Service) Generate(ctx context.Context, text, userID string) (*models.GeneratedForm, error) {
	result, err := s.classifier.Classify(ctx, text)
	if err != nil {
		return nil, err
	}

	form := BuildForm(result.Intent, result.Entities, text, userID)

	if err := s.store.Save(ctx, form); err != nil {
		return nil, err
	}

	metrics.FormsGenerated.WithLabelValues(string(form.Intent)).Inc()
	s.logger.Info("form generated", map[string]interface{}{
		"formId":     form.FormID,
		"intent":     string(form.Intent),
		"fieldCount": len(form.Fields),
		"userId":     userID,
	})

	return form, nil
}

func (s *Service) Get(ctx context.Context, formID string) (*models.GeneratedForm, error) {
	return s.store.Get(ctx, formID)
}

func (s *Service) Delete(ctx context.Context, formID string) (bool, error) {
	deleted, err := s.store.Delete(ctx, formID)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.Info("form deleted", map[string]interface{}{"formId": formID})
	}
	return deleted, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]*models.GeneratedForm, error) {
	return s.store.ListByUser(ctx, userID)
}
