// internal/services/analysis/classifier_test.go
package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "formflow/internal/common/errors"
	"formflow/internal/common/logger"
	"formflow/internal/models"
)

// fakeBackend returns a canned result or error.
type fakeBackend struct {
	result models.ClassificationResult
	err    error
	calls  int
}

func (f *fakeBackend) Classify(ctx context.Context, text string) (models.ClassificationResult, error) {
	f.calls++
	if f.err != nil {
		return models.ClassificationResult{}, f.err
	}
	return f.result, nil
}

func TestClassifier_NoBackendUsesRules(t *testing.T) {
	classifier := NewClassifier(nil, newTestRuleClassifier(), true, logger.NewTestLogger(t))

	result, err := classifier.Classify(context.Background(), "book a flight")

	require.NoError(t, err)
	assert.Equal(t, models.IntentBookFlight, result.Intent)
	assert.Equal(t, fallbackConfidence, result.Confidence)
}

func TestClassifier_BackendResultTrustedAsGiven(t *testing.T) {
	backend := &fakeBackend{
		result: models.ClassificationResult{
			Intent:     models.IntentHotelReservation,
			Confidence: 0.93,
			Entities:   []models.Entity{{Type: "city", Value: "rome", Confidence: 0.9}},
			Rationale:  "hotel request",
		},
	}
	classifier := NewClassifier(backend, newTestRuleClassifier(), true, logger.NewTestLogger(t))

	result, err := classifier.Classify(context.Background(), "this text mentions a flight")

	require.NoError(t, err)
	assert.Equal(t, 1, backend.calls)
	// Backend output wins even where the rule ladder would disagree.
	assert.Equal(t, models.IntentHotelReservation, result.Intent)
	assert.Equal(t, 0.93, result.Confidence)
}

func TestClassifier_BackendFailureRecoveredByFallback(t *testing.T) {
	backend := &fakeBackend{err: stderrors.NewClassifierResponseMalformedError("missing intent field")}
	classifier := NewClassifier(backend, newTestRuleClassifier(), true, logger.NewTestLogger(t))

	result, err := classifier.Classify(context.Background(), "I want to book a flight to Paris")

	require.NoError(t, err)
	assert.Equal(t, models.IntentBookFlight, result.Intent)
	assert.Equal(t, fallbackConfidence, result.Confidence)
	assert.NotEmpty(t, result.Entities)
}

func TestClassifier_BackendFailurePropagatedWithoutFallback(t *testing.T) {
	backend := &fakeBackend{err: stderrors.NewClassifierAPITimeoutError()}
	classifier := NewClassifier(backend, newTestRuleClassifier(), false, logger.NewTestLogger(t))

	_, err := classifier.Classify(context.Background(), "anything")

	require.Error(t, err)
	stdErr, ok := err.(*stderrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, stderrors.ErrCodeClassifierAPITimeout, stdErr.Code)
}
