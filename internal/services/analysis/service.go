// internal/services/analysis/service.go
package analysis

import (
	"context"
	"time"

	"formflow/internal/common/logger"
	"formflow/internal/models"
)

// Service exposes text analysis as a standalone capability, independent
// of form generation.
type Service struct {
	classifier *Classifier
	logger     logger.Logger
}

func NewService(classifier *Classifier, log logger.Logger) *Service {
	return &Service{
		classifier: classifier,
		logger:     log.With(map[string]interface{}{"service": "analysis"}),
	}
}

func (s *Service) Analyze(ctx context.Context, req *models.AnalysisRequest) (*models.AnalysisResponse, error) {
	result, err := s.classifier.Classify(ctx, req.Text)
	if err != nil {
		return nil, err
	}

	language := req.Language
	if language == "" {
		language = "en"
	}

	s.logger.Info("text analyzed", map[string]interface{}{
		"intent":      string(result.Intent),
		"confidence":  result.Confidence,
		"entityCount": len(result.Entities),
		"userId":      req.UserID,
	})

	return &models.AnalysisResponse{
		Intent:      result.Intent,
		Confidence:  result.Confidence,
		Entities:    result.Entities,
		Language:    language,
		ProcessedAt: time.Now().UTC(),
	}, nil
}

// Healthy reports whether the classification pipeline can produce a
// result for a trivial probe input.
func (s *Service) Healthy(ctx context.Context) bool {
	_, err := s.classifier.Classify(ctx, "test")
	return err == nil
}
