// internal/models/submission.go
package models

import "time"

// SubmissionStatus tracks the lifecycle of a recorded submission.
// The only legal transition is Pending -> Processed|Failed.
type SubmissionStatus string

const (
	SubmissionPending   SubmissionStatus = "Pending"
	SubmissionProcessed SubmissionStatus = "Processed"
	SubmissionFailed    SubmissionStatus = "Failed"
)

// SubmissionRecord is one validated submission against a generated form.
// Immutable after creation except for the status transition.
type SubmissionRecord struct {
	SubmissionID string            `json:"submissionId"`
	FormID       string            `json:"formId"`
	UserID       string            `json:"userId,omitempty"`
	FieldValues  map[string]string `json:"fieldValues"`
	SubmittedAt  time.Time         `json:"submittedAt"`
	ProcessedAt  time.Time         `json:"processedAt"`
	Status       SubmissionStatus  `json:"status"`
	Intent       Intent            `json:"intent"`
}

// FormSubmissionRequest is the payload of POST /api/form/submit.
type FormSubmissionRequest struct {
	FormID      string            `json:"formId"`
	FieldValues map[string]string `json:"fieldValues"`
	UserID      string            `json:"userId,omitempty"`
}

// FormSubmissionResponse is returned for a processed submission. On
// validation failure Success is false and ValidationErrors lists one
// message per violated field, in form field order.
type FormSubmissionResponse struct {
	Success          bool      `json:"success"`
	Message          string    `json:"message"`
	SubmissionID     string    `json:"submissionId,omitempty"`
	FormID           string    `json:"formId,omitempty"`
	SubmittedAt      time.Time `json:"submittedAt,omitempty"`
	ProcessedAt      time.Time `json:"processedAt,omitempty"`
	ValidationErrors []string  `json:"validationErrors,omitempty"`
}
