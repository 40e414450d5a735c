// internal/services/submission/service.go
package submission

import (
	"context"
	"time"

	"github.com/google/uuid"

	"formflow/internal/common/logger"
	"formflow/internal/common/metrics"
	"formflow/internal/models"
	"formflow/internal/services/generation"
)

// Notifier dispatches a downstream notification for a processed
// submission. Failures are logged, never propagated to the submitter.
type Notifier interface {
	Notify(ctx context.Context, req *models.NotificationRequest) error
}

// Service validates submissions against their stored form schema and
// records them.
type Service struct {
	forms      generation.FormStore
	repository Repository
	notifier   Notifier
	logger     logger.Logger

	// notifyTimeout bounds the background notification dispatch.
	notifyTimeout time.Duration
}

func NewService(forms generation.FormStore, repository Repository, notifier Notifier, log logger.Logger) *Service {
	return &Service{
		forms:         forms,
		repository:    repository,
		notifier:      notifier,
		logger:        log.With(map[string]interface{}{"service": "submission"}),
		notifyTimeout: 30 * time.Second,
	}
}

// Submit validates the request against the referenced form and records
// it. A non-empty violation list is returned as an unsuccessful response
// without error; errors are reserved for missing forms and storage
// failures.
func (s *Service) Submit(ctx context.Context, req *models.FormSubmissionRequest) (*models.FormSubmissionResponse, error) {
	form, err := s.forms.Get(ctx, req.FormID)
	if err != nil {
		return nil, err
	}

	if violations := Validate(form, req.FieldValues); len(violations) > 0 {
		metrics.SubmissionsTotal.WithLabelValues(string(form.Intent), "rejected").Inc()
		return &models.FormSubmissionResponse{
			Success:          false,
			Message:          "Validation failed",
			FormID:           form.FormID,
			ValidationErrors: violations,
		}, nil
	}

	userID := req.UserID
	if userID == "" {
		userID = form.UserID
	}

	record := &models.SubmissionRecord{
		SubmissionID: uuid.NewString(),
		FormID:       form.FormID,
		UserID:       userID,
		FieldValues:  req.FieldValues,
		SubmittedAt:  time.Now().UTC(),
		Status:       models.SubmissionPending,
		Intent:       form.Intent,
	}

	if err := s.repository.Save(ctx, record); err != nil {
		return nil, err
	}

	processedAt := time.Now().UTC()
	status := models.SubmissionProcessed
	if err := s.repository.UpdateStatus(ctx, record.SubmissionID, status, processedAt); err != nil {
		s.logger.Error("failed to mark submission processed", map[string]interface{}{
			"submissionId": record.SubmissionID,
			"error":        err.Error(),
		})
		status = models.SubmissionFailed
	}

	metrics.SubmissionsTotal.WithLabelValues(string(form.Intent), string(status)).Inc()
	s.logger.Info("submission recorded", map[string]interface{}{
		"submissionId": record.SubmissionID,
		"formId":       form.FormID,
		"intent":       string(form.Intent),
		"status":       string(status),
	})

	s.routeByIntent(record)
	s.dispatchNotification(record)

	return &models.FormSubmissionResponse{
		Success:      true,
		Message:      "Form submitted successfully",
		SubmissionID: record.SubmissionID,
		FormID:       form.FormID,
		SubmittedAt:  record.SubmittedAt,
		ProcessedAt:  processedAt,
	}, nil
}

// routeByIntent is the hook for downstream fulfillment systems. Until
// those integrations exist each intent only records its routing target.
func (s *Service) routeByIntent(record *models.SubmissionRecord) {
	fields := map[string]interface{}{
		"submissionId": record.SubmissionID,
		"intent":       string(record.Intent),
	}

	switch record.Intent {
	case models.IntentBookFlight:
		s.logger.Info("routing submission to flight booking", fields)
	case models.IntentHotelReservation:
		s.logger.Info("routing submission to hotel reservation", fields)
	case models.IntentContactUs:
		s.logger.Info("routing submission to support queue", fields)
	case models.IntentRegistration:
		s.logger.Info("routing submission to account provisioning", fields)
	case models.IntentFeedback:
		s.logger.Info("routing submission to feedback review", fields)
	case models.IntentAppointment:
		s.logger.Info("routing submission to scheduling", fields)
	default:
		s.logger.Info("submission kept for manual review", fields)
	}
}

// dispatchNotification runs fire-and-forget: the submission response
// never waits on, or fails because of, the notifier.
func (s *Service) dispatchNotification(record *models.SubmissionRecord) {
	if s.notifier == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
		defer cancel()

		err := s.notifier.Notify(ctx, &models.NotificationRequest{
			Type:         "submission",
			SubmissionID: record.SubmissionID,
			UserID:       record.UserID,
			Intent:       record.Intent,
			FieldValues:  record.FieldValues,
		})
		if err != nil {
			s.logger.Warn("submission notification failed", map[string]interface{}{
				"submissionId": record.SubmissionID,
				"error":        err.Error(),
			})
		}
	}()
}

func (s *Service) Get(ctx context.Context, submissionID string) (*models.SubmissionRecord, error) {
	return s.repository.Get(ctx, submissionID)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]*models.SubmissionRecord, error) {
	return s.repository.ListByUser(ctx, userID)
}
