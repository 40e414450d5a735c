// internal/services/notification/dispatcher.go
package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"formflow/internal/common/aws"
	"formflow/internal/common/config"
	stderrors "formflow/internal/common/errors"
	"formflow/internal/common/httpclient"
	"formflow/internal/common/logger"
	"formflow/internal/common/metrics"
	"formflow/internal/common/validation"
	"formflow/internal/models"
)

// SMSSender publishes a text message. aws.SNSClient is the production
// implementation.
type SMSSender interface {
	PublishSMS(ctx context.Context, phoneNumber, message string) error
}

// Dispatcher routes notifications to the configured channel. Email is
// the default; sms and webhook are available when configured. A request
// without an explicit recipient falls back to the submission's email
// field, then to the configured default recipient.
type Dispatcher struct {
	cfg    config.NotificationConfig
	email  EmailSender
	sms    SMSSender
	client *httpclient.Client
	logger logger.Logger
}

func NewDispatcher(cfg config.NotificationConfig, email EmailSender, sms SMSSender, log logger.Logger) *Dispatcher {
	return &Dispatcher{
		cfg:    cfg,
		email:  email,
		sms:    sms,
		client: httpclient.NewClient(15 * time.Second),
		logger: log.With(map[string]interface{}{"component": "dispatcher"}),
	}
}

var _ SMSSender = (*aws.SNSClient)(nil)

// notificationSchema validates dispatch payloads arriving over HTTP.
var notificationSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"type", "submissionId"},
	"properties": map[string]interface{}{
		"type": map[string]interface{}{
			"type": "string",
			"enum": []interface{}{"email", "sms", "webhook", "submission"},
		},
		"submissionId": map[string]interface{}{"type": "string", "minLength": 1},
		"userId":       map[string]interface{}{"type": "string"},
		"intent":       map[string]interface{}{"type": "string"},
		"fieldValues":  map[string]interface{}{"type": "object"},
		"recipient":    map[string]interface{}{"type": "string"},
		"subject":      map[string]interface{}{"type": "string"},
		"message":      map[string]interface{}{"type": "string"},
	},
}

// ValidatePayload checks a dispatch document against the notification
// schema before it is accepted.
func ValidatePayload(document map[string]interface{}) error {
	if err := validation.ValidateJSON(notificationSchema, document); err != nil {
		return stderrors.NewValidationFailedError(err.Error())
	}
	return nil
}

// Notify dispatches one notification. The "submission" type is what the
// form pipeline emits; it is delivered over email when enabled.
func (d *Dispatcher) Notify(ctx context.Context, req *models.NotificationRequest) error {
	var err error
	switch req.Type {
	case "sms":
		err = d.sendSMS(ctx, req)
	case "webhook":
		err = d.sendWebhook(ctx, req)
	default:
		err = d.sendEmail(ctx, req)
	}

	status := "sent"
	if err != nil {
		status = "failed"
	}
	metrics.NotificationsTotal.WithLabelValues(req.Type, status).Inc()

	if err != nil {
		return err
	}

	d.logger.Info("notification dispatched", map[string]interface{}{
		"type":         req.Type,
		"submissionId": req.SubmissionID,
		"intent":       string(req.Intent),
	})
	return nil
}

func (d *Dispatcher) sendEmail(ctx context.Context, req *models.NotificationRequest) error {
	if !d.cfg.Email.Enabled || d.email == nil {
		d.logger.Debug("email channel disabled, dropping notification", map[string]interface{}{
			"submissionId": req.SubmissionID,
		})
		return nil
	}

	recipient := req.Recipient
	if recipient == "" {
		recipient = req.FieldValues["email"]
	}
	if recipient == "" {
		recipient = d.cfg.DefaultRecipient
	}
	if recipient == "" {
		return stderrors.NewNotificationSendFailedError("email", fmt.Errorf("no recipient available"))
	}

	subject := req.Subject
	if subject == "" {
		subject = submissionSubject(req.Intent)
	}
	body := req.Message
	if body == "" {
		body = submissionBody(req)
	}

	return d.email.Send(ctx, &models.EmailRequest{
		To:      recipient,
		Subject: subject,
		Body:    body,
	})
}

func (d *Dispatcher) sendSMS(ctx context.Context, req *models.NotificationRequest) error {
	if !d.cfg.SMS.Enabled || d.sms == nil {
		return stderrors.NewNotificationSendFailedError("sms", fmt.Errorf("sms channel not configured"))
	}

	recipient := req.Recipient
	if recipient == "" {
		recipient = req.FieldValues["phone"]
	}
	if recipient == "" {
		return stderrors.NewNotificationSendFailedError("sms", fmt.Errorf("no phone number available"))
	}

	message := req.Message
	if message == "" {
		message = submissionSubject(req.Intent)
	}

	if err := d.sms.PublishSMS(ctx, recipient, message); err != nil {
		return stderrors.NewNotificationSendFailedError("sms", err)
	}
	return nil
}

func (d *Dispatcher) sendWebhook(ctx context.Context, req *models.NotificationRequest) error {
	if !d.cfg.Webhook.Enabled || d.cfg.Webhook.URL == "" {
		return stderrors.NewNotificationSendFailedError("webhook", fmt.Errorf("webhook channel not configured"))
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return stderrors.NewNotificationSendFailedError("webhook", err)
	}

	resp, err := d.client.PostJSON(ctx, d.cfg.Webhook.URL, payload, nil)
	if err != nil {
		return stderrors.NewNotificationSendFailedError("webhook", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return stderrors.NewNotificationSendFailedError("webhook",
			fmt.Errorf("webhook returned status %d", resp.StatusCode))
	}
	return nil
}
