// internal/services/notification/dispatcher_test.go
package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formflow/internal/common/config"
	stderrors "formflow/internal/common/errors"
	"formflow/internal/common/logger"
	"formflow/internal/models"
)

type fakeEmailSender struct {
	mu   sync.Mutex
	sent []*models.EmailRequest
	err  error
}

func (f *fakeEmailSender) Send(ctx context.Context, req *models.EmailRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, req)
	return nil
}

type fakeSMSSender struct {
	numbers  []string
	messages []string
	err      error
}

func (f *fakeSMSSender) PublishSMS(ctx context.Context, phoneNumber, message string) error {
	if f.err != nil {
		return f.err
	}
	f.numbers = append(f.numbers, phoneNumber)
	f.messages = append(f.messages, message)
	return nil
}

func emailEnabledConfig() config.NotificationConfig {
	return config.NotificationConfig{
		Email:            config.EmailConfig{Enabled: true, Provider: "smtp", From: "noreply@formflow.local"},
		DefaultRecipient: "ops@formflow.local",
	}
}

func submissionRequest() *models.NotificationRequest {
	return &models.NotificationRequest{
		Type:         "submission",
		SubmissionID: "sub-1",
		UserID:       "user-1",
		Intent:       models.IntentBookFlight,
		FieldValues: map[string]string{
			"destination": "paris",
			"email":       "traveler@example.com",
		},
	}
}

func TestDispatcher_SubmissionGoesToSubmitterEmail(t *testing.T) {
	email := &fakeEmailSender{}
	d := NewDispatcher(emailEnabledConfig(), email, nil, logger.NewTestLogger(t))

	require.NoError(t, d.Notify(context.Background(), submissionRequest()))

	require.Len(t, email.sent, 1)
	sent := email.sent[0]
	assert.Equal(t, "traveler@example.com", sent.To)
	assert.Equal(t, "New flight booking request", sent.Subject)
	assert.Contains(t, sent.Body, "sub-1")
	assert.Contains(t, sent.Body, "destination: paris")
}

func TestDispatcher_FallsBackToDefaultRecipient(t *testing.T) {
	email := &fakeEmailSender{}
	d := NewDispatcher(emailEnabledConfig(), email, nil, logger.NewTestLogger(t))

	req := submissionRequest()
	delete(req.FieldValues, "email")
	require.NoError(t, d.Notify(context.Background(), req))

	require.Len(t, email.sent, 1)
	assert.Equal(t, "ops@formflow.local", email.sent[0].To)
}

func TestDispatcher_ExplicitRecipientWins(t *testing.T) {
	email := &fakeEmailSender{}
	d := NewDispatcher(emailEnabledConfig(), email, nil, logger.NewTestLogger(t))

	req := submissionRequest()
	req.Recipient = "vip@example.com"
	require.NoError(t, d.Notify(context.Background(), req))

	require.Len(t, email.sent, 1)
	assert.Equal(t, "vip@example.com", email.sent[0].To)
}

func TestDispatcher_DisabledEmailChannelDropsSilently(t *testing.T) {
	email := &fakeEmailSender{}
	cfg := emailEnabledConfig()
	cfg.Email.Enabled = false
	d := NewDispatcher(cfg, email, nil, logger.NewTestLogger(t))

	require.NoError(t, d.Notify(context.Background(), submissionRequest()))
	assert.Empty(t, email.sent)
}

func TestDispatcher_SMS(t *testing.T) {
	sms := &fakeSMSSender{}
	cfg := emailEnabledConfig()
	cfg.SMS = config.SMSConfig{Enabled: true, Region: "us-east-1"}
	d := NewDispatcher(cfg, nil, sms, logger.NewTestLogger(t))

	req := submissionRequest()
	req.Type = "sms"
	req.FieldValues["phone"] = "+15551234567"
	require.NoError(t, d.Notify(context.Background(), req))

	require.Len(t, sms.numbers, 1)
	assert.Equal(t, "+15551234567", sms.numbers[0])
	assert.Equal(t, "New flight booking request", sms.messages[0])
}

func TestDispatcher_SMSWithoutChannelFails(t *testing.T) {
	d := NewDispatcher(emailEnabledConfig(), &fakeEmailSender{}, nil, logger.NewTestLogger(t))

	req := submissionRequest()
	req.Type = "sms"
	err := d.Notify(context.Background(), req)

	require.Error(t, err)
	stdErr, ok := err.(*stderrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, stderrors.ErrCodeNotificationSendFailed, stdErr.Code)
}

func TestDispatcher_Webhook(t *testing.T) {
	var received *models.NotificationRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var req models.NotificationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		received = &req
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := emailEnabledConfig()
	cfg.Webhook = config.WebhookConfig{Enabled: true, URL: server.URL}
	d := NewDispatcher(cfg, nil, nil, logger.NewTestLogger(t))

	req := submissionRequest()
	req.Type = "webhook"
	require.NoError(t, d.Notify(context.Background(), req))

	require.NotNil(t, received)
	assert.Equal(t, "sub-1", received.SubmissionID)
	assert.Equal(t, models.IntentBookFlight, received.Intent)
}

func TestDispatcher_WebhookNon2xxFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	cfg := emailEnabledConfig()
	cfg.Webhook = config.WebhookConfig{Enabled: true, URL: server.URL}
	d := NewDispatcher(cfg, nil, nil, logger.NewTestLogger(t))

	req := submissionRequest()
	req.Type = "webhook"
	err := d.Notify(context.Background(), req)

	require.Error(t, err)
}

func TestDispatcher_EmailSendFailurePropagates(t *testing.T) {
	email := &fakeEmailSender{err: fmt.Errorf("smtp down")}
	d := NewDispatcher(emailEnabledConfig(), email, nil, logger.NewTestLogger(t))

	err := d.Notify(context.Background(), submissionRequest())
	require.Error(t, err)
}

func TestValidatePayload(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]interface{}
		valid   bool
	}{
		{
			name: "minimal valid payload",
			payload: map[string]interface{}{
				"type":         "submission",
				"submissionId": "sub-1",
			},
			valid: true,
		},
		{
			name: "full payload",
			payload: map[string]interface{}{
				"type":         "email",
				"submissionId": "sub-1",
				"userId":       "user-1",
				"intent":       "Feedback",
				"fieldValues":  map[string]interface{}{"email": "a@b.co"},
				"recipient":    "ops@example.com",
				"subject":      "s",
				"message":      "m",
			},
			valid: true,
		},
		{
			name:    "missing type",
			payload: map[string]interface{}{"submissionId": "sub-1"},
			valid:   false,
		},
		{
			name: "unknown type value",
			payload: map[string]interface{}{
				"type":         "carrier-pigeon",
				"submissionId": "sub-1",
			},
			valid: false,
		},
		{
			name: "empty submissionId",
			payload: map[string]interface{}{
				"type":         "email",
				"submissionId": "",
			},
			valid: false,
		},
		{
			name: "wrong fieldValues type",
			payload: map[string]interface{}{
				"type":         "email",
				"submissionId": "sub-1",
				"fieldValues":  "not-an-object",
			},
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePayload(tt.payload)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
