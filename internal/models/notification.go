// internal/models/notification.go
package models

import "time"

// NotificationRequest is the payload the submission pipeline hands to the
/// notification dispatcher. Type selects the channel: email, sms, webhook.
type NotificationRequest struct {
	Type         string            `json:"type"`
	SubmissionID string            `json:"submissionId"`
	UserID       string            `json:"userId,omitempty"`
	Intent       Intent            `json:"intent"`
	FieldValues  map[string]string `json:"fieldValues,omitempty"`
	Recipient    string            `json:"recipient,omitempty"`
	Subject      string            `json:"subject,omitempty"`
	Message      string            `json:"message,omitempty"`
}

// NotificationResponse reports the outcome of a single dispatch.
type NotificationResponse struct {
	Success        bool      `json:"success"`
	Message        string    `json:"message"`
	NotificationID string    `json:"notificationId,omitempty"`
	SentAt         time.Time `json:"sentAt,omitempty"`
}

// EmailRequest describes one outbound email.
type EmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	IsHTML  bool   `json:"isHtml,omitempty"`
}

// EmailResponse reports a single send attempt.
type EmailResponse struct {
	Success      bool      `json:"success"`
	Message      string    `json:"message"`
	MessageID    string    `json:"messageId,omitempty"`
	To           string    `json:"to"`
	Subject      string    `json:"subject"`
	SentAt       time.Time `json:"sentAt"`
	ErrorDetails string    `json:"errorDetails,omitempty"`
}

// BulkEmailRequest sends the same message to many recipients in batches.
// Recipients are processed BatchSize at a time; sends within a batch run
// concurrently and the batch completes before the next one starts, with
// DelayBetweenBatchesMs of idle time in between.
type BulkEmailRequest struct {
	Recipients            []string `json:"recipients"`
	Subject               string   `json:"subject"`
	Body                  string   `json:"body"`
	IsHTML                bool     `json:"isHtml,omitempty"`
	BatchSize             int      `json:"batchSize,omitempty"`
	DelayBetweenBatchesMs int      `json:"delayBetweenBatchesMs,omitempty"`
}

// BulkEmailResponse aggregates per-recipient outcomes of a bulk send.
// A failing recipient never aborts the batch; its failure is recorded in
// Results and counted in FailureCount.
type BulkEmailResponse struct {
	TotalEmails  int             `json:"totalEmails"`
	SuccessCount int             `json:"successCount"`
	FailureCount int             `json:"failureCount"`
	Results      []EmailResponse `json:"results"`
	StartedAt    time.Time       `json:"startedAt"`
	CompletedAt  time.Time       `json:"completedAt"`
	DurationMs   int64           `json:"durationMs"`
}
