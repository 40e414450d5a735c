// internal/services/analysis/classifier.go
package analysis

import (
	"context"

	"formflow/internal/common/logger"
	"formflow/internal/common/metrics"
	"formflow/internal/models"
)

// Backend is the external classification strategy. ClaudeClient is the
// production implementation; tests substitute fakes.
type Backend interface {
	Classify(ctx context.Context, text string) (models.ClassificationResult, error)
}

// Classifier maps raw text to a ClassificationResult. With no backend
// configured it runs the rule ladder directly. With a backend it calls
// out first and, when fallbackOnError is set, recovers any backend
// failure locally so the caller always gets a usable result.
type Classifier struct {
	backend         Backend
	rules           *RuleClassifier
	fallbackOnError bool
	logger          logger.Logger
}

func NewClassifier(backend Backend, rules *RuleClassifier, fallbackOnError bool, log logger.Logger) *Classifier {
	return &Classifier{
		backend:         backend,
		rules:           rules,
		fallbackOnError: fallbackOnError,
		logger:          log.With(map[string]interface{}{"component": "classifier"}),
	}
}

func (c *Classifier) Classify(ctx context.Context, text string) (models.ClassificationResult, error) {
	if c.backend == nil {
		result := c.rules.Classify(text)
		metrics.ClassificationsTotal.WithLabelValues(string(result.Intent), "rules").Inc()
		return result, nil
	}

	result, err := c.backend.Classify(ctx, text)
	if err == nil {
		metrics.ClassificationsTotal.WithLabelValues(string(result.Intent), "backend").Inc()
		return result, nil
	}

	if !c.fallbackOnError {
		c.logger.Error("classification failed with no fallback configured", map[string]interface{}{
			"error": err.Error(),
		})
		return models.ClassificationResult{}, err
	}

	c.logger.Warn("backend classification failed, using rule fallback", map[string]interface{}{
		"error": err.Error(),
	})
	result = c.rules.Classify(text)
	metrics.ClassificationsTotal.WithLabelValues(string(result.Intent), "fallback").Inc()
	return result, nil
}
