// internal/services/notification/email.go
package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"formflow/internal/common/aws"
	"formflow/internal/common/config"
	stderrors "formflow/internal/common/errors"
	"formflow/internal/common/validation"
	"formflow/internal/models"
)

// EmailSender sends a single email. SMTPSender and SESSender are the
// production implementations.
type EmailSender interface {
	Send(ctx context.Context, req *models.EmailRequest) error
}

// smtpSendFunc matches smtp.SendMail; tests substitute a fake.
type smtpSendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender delivers email over plain SMTP with optional PLAIN auth.
type SMTPSender struct {
	cfg      config.EmailConfig
	sendMail smtpSendFunc
}

func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg, sendMail: smtp.SendMail}
}

// NewSMTPSenderWithTransport injects the wire-level send function.
func NewSMTPSenderWithTransport(cfg config.EmailConfig, send smtpSendFunc) *SMTPSender {
	return &SMTPSender{cfg: cfg, sendMail: send}
}

func (s *SMTPSender) Send(ctx context.Context, req *models.EmailRequest) error {
	if !validation.ValidateEmail(req.To) {
		return stderrors.NewValidationFailedError(fmt.Sprintf("invalid recipient address: %s", req.To))
	}
	if err := ctx.Err(); err != nil {
		return stderrors.NewEmailSendFailedError(req.To, err)
	}

	var auth smtp.Auth
	if s.cfg.SMTP.Username != "" && s.cfg.SMTP.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTP.Username, s.cfg.SMTP.Password, s.cfg.SMTP.Host)
	}

	message := buildEmailMessage(s.cfg.From, req)
	if err := s.sendMail(s.cfg.SMTP.Addr(), auth, s.cfg.From, []string{req.To}, []byte(message)); err != nil {
		return stderrors.NewEmailSendFailedError(req.To, err)
	}
	return nil
}

func buildEmailMessage(from string, req *models.EmailRequest) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("From: %s\r\n", from))
	builder.WriteString(fmt.Sprintf("To: %s\r\n", req.To))
	builder.WriteString(fmt.Sprintf("Subject: %s\r\n", req.Subject))
	builder.WriteString("MIME-Version: 1.0\r\n")
	if req.IsHTML {
		builder.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	} else {
		builder.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	}
	builder.WriteString("\r\n")
	builder.WriteString(req.Body)

	return builder.String()
}

// SESSender delivers email through Amazon SES.
type SESSender struct {
	client *aws.SESClient
	from   string
}

func NewSESSender(client *aws.SESClient, from string) *SESSender {
	return &SESSender{client: client, from: from}
}

func (s *SESSender) Send(ctx context.Context, req *models.EmailRequest) error {
	if !validation.ValidateEmail(req.To) {
		return stderrors.NewValidationFailedError(fmt.Sprintf("invalid recipient address: %s", req.To))
	}
	if err := s.client.SendSimpleEmail(ctx, s.from, req.To, req.Subject, req.Body, req.IsHTML); err != nil {
		return stderrors.NewEmailSendFailedError(req.To, err)
	}
	return nil
}

func generateMessageID(to, host string) string {
	local := to
	if at := strings.Index(to, "@"); at > 0 {
		local = to[:at]
	}
	return fmt.Sprintf("<%d.%s@%s>", time.Now().UnixNano(), local, host)
}
