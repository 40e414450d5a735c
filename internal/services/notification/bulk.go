// internal/services/notification/bulk.go
package notification

import (
	"context"
	"sync"
	"time"

	"formflow/internal/common/logger"
	"formflow/internal/common/metrics"
	"formflow/internal/models"
)

// BulkMailer fans the same message out to many recipients. Recipients
// are processed in fixed-size batches: sends within a batch run
// concurrently, the batch waits for all of them, and a configurable
// delay separates batches so a downstream transport is not flooded.
// A single recipient's failure is recorded, never escalated.
type BulkMailer struct {
	sender       EmailSender
	logger       logger.Logger
	defaultBatch int
	defaultDelay time.Duration
}

func NewBulkMailer(sender EmailSender, batchSize, delayMs int, log logger.Logger) *BulkMailer {
	if batchSize <= 0 {
		batchSize = 10
	}
	return &BulkMailer{
		sender:       sender,
		logger:       log.With(map[string]interface{}{"component": "bulk-mailer"}),
		defaultBatch: batchSize,
		defaultDelay: time.Duration(delayMs) * time.Millisecond,
	}
}

func (b *BulkMailer) Send(ctx context.Context, req *models.BulkEmailRequest) *models.BulkEmailResponse {
	batchSize := req.BatchSize
	if batchSize <= 0 {
		batchSize = b.defaultBatch
	}
	delay := time.Duration(req.DelayBetweenBatchesMs) * time.Millisecond
	if req.DelayBetweenBatchesMs <= 0 {
		delay = b.defaultDelay
	}

	startedAt := time.Now().UTC()
	results := make([]models.EmailResponse, len(req.Recipients))

	for start := 0; start < len(req.Recipients); start += batchSize {
		if start > 0 && delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
			}
		}
		if ctx.Err() != nil {
			for i := start; i < len(req.Recipients); i++ {
				results[i] = models.EmailResponse{
					Success:      false,
					Message:      "Send cancelled",
					To:           req.Recipients[i],
					Subject:      req.Subject,
					ErrorDetails: ctx.Err().Error(),
				}
			}
			break
		}

		end := start + batchSize
		if end > len(req.Recipients) {
			end = len(req.Recipients)
		}

		batchStart := time.Now()
		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				results[idx] = b.sendOne(ctx, req, req.Recipients[idx])
			}(i)
		}
		wg.Wait()

		outcome := "ok"
		for i := start; i < end; i++ {
			if !results[i].Success {
				outcome = "partial"
				break
			}
		}
		metrics.EmailBatchDuration.WithLabelValues(outcome).Observe(time.Since(batchStart).Seconds())
	}

	completedAt := time.Now().UTC()
	response := &models.BulkEmailResponse{
		TotalEmails: len(req.Recipients),
		Results:     results,
		StartedAt:   startedAt,
		CompletedAt: completedAt,
		DurationMs:  completedAt.Sub(startedAt).Milliseconds(),
	}
	for _, r := range results {
		if r.Success {
			response.SuccessCount++
		} else {
			response.FailureCount++
		}
	}

	b.logger.Info("bulk email send finished", map[string]interface{}{
		"total":      response.TotalEmails,
		"successes":  response.SuccessCount,
		"failures":   response.FailureCount,
		"durationMs": response.DurationMs,
	})

	return response
}

func (b *BulkMailer) sendOne(ctx context.Context, req *models.BulkEmailRequest, to string) models.EmailResponse {
	email := &models.EmailRequest{
		To:      to,
		Subject: req.Subject,
		Body:    req.Body,
		IsHTML:  req.IsHTML,
	}

	if err := b.sender.Send(ctx, email); err != nil {
		b.logger.Warn("bulk recipient send failed", map[string]interface{}{
			"to":    to,
			"error": err.Error(),
		})
		return models.EmailResponse{
			Success:      false,
			Message:      "Failed to send email",
			To:           to,
			Subject:      req.Subject,
			SentAt:       time.Now().UTC(),
			ErrorDetails: err.Error(),
		}
	}

	return models.EmailResponse{
		Success:   true,
		Message:   "Email sent successfully",
		MessageID: generateMessageID(to, "formflow"),
		To:        to,
		Subject:   req.Subject,
		SentAt:    time.Now().UTC(),
	}
}
