// internal/services/notification/handler.go
package notification

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	stderrors "formflow/internal/common/errors"
	"formflow/internal/common/logger"
	"formflow/internal/models"
)

type Handler struct {
	dispatcher *Dispatcher
	mailer     EmailSender
	bulk       *BulkMailer
	errorsH    *stderrors.HTTPHandler
}

func NewHandler(dispatcher *Dispatcher, mailer EmailSender, bulk *BulkMailer, log logger.Logger) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		mailer:     mailer,
		bulk:       bulk,
		errorsH:    stderrors.NewHTTPHandler(log),
	}
}

// RegisterNotification mounts POST /send on the notification group.
func (h *Handler) RegisterNotification(rg *gin.RouterGroup) {
	rg.POST("/send", h.Send)
}

// RegisterEmail mounts the direct email endpoints.
func (h *Handler) RegisterEmail(rg *gin.RouterGroup) {
	rg.POST("/send", h.SendEmail)
	rg.POST("/send-bulk", h.SendBulkEmail)
}

func (h *Handler) Send(c *gin.Context) {
	var document map[string]interface{}
	if err := c.ShouldBindJSON(&document); err != nil {
		h.errorsH.Respond(c, stderrors.NewValidationFailedError("request body must be valid JSON"))
		return
	}
	if err := ValidatePayload(document); err != nil {
		h.errorsH.Respond(c, err)
		return
	}

	var req models.NotificationRequest
	bindDocument(document, &req)

	if err := h.dispatcher.Notify(c.Request.Context(), &req); err != nil {
		h.errorsH.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NotificationResponse{
		Success:        true,
		Message:        "Notification dispatched",
		NotificationID: uuid.NewString(),
		SentAt:         time.Now().UTC(),
	})
}

func (h *Handler) SendEmail(c *gin.Context) {
	var req models.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorsH.Respond(c, stderrors.NewValidationFailedError("request body must be valid JSON"))
		return
	}
	if req.To == "" || req.Subject == "" || req.Body == "" {
		h.errorsH.Respond(c, stderrors.NewValidationFailedError("to, subject and body are required"))
		return
	}
	if h.mailer == nil {
		h.errorsH.Respond(c, stderrors.NewNotificationSendFailedError("email", fmt.Errorf("email channel not configured")))
		return
	}

	if err := h.mailer.Send(c.Request.Context(), &req); err != nil {
		h.errorsH.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, models.EmailResponse{
		Success:   true,
		Message:   "Email sent successfully",
		MessageID: generateMessageID(req.To, "formflow"),
		To:        req.To,
		Subject:   req.Subject,
		SentAt:    time.Now().UTC(),
	})
}

func (h *Handler) SendBulkEmail(c *gin.Context) {
	var req models.BulkEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorsH.Respond(c, stderrors.NewValidationFailedError("request body must be valid JSON"))
		return
	}
	if len(req.Recipients) == 0 {
		h.errorsH.Respond(c, stderrors.NewValidationFailedError("recipients is required"))
		return
	}
	if req.Subject == "" || req.Body == "" {
		h.errorsH.Respond(c, stderrors.NewValidationFailedError("subject and body are required"))
		return
	}
	if h.bulk == nil {
		h.errorsH.Respond(c, stderrors.NewNotificationSendFailedError("email", fmt.Errorf("email channel not configured")))
		return
	}

	c.JSON(http.StatusOK, h.bulk.Send(c.Request.Context(), &req))
}

// bindDocument copies the schema-validated document into the typed
// request; field types are already known to line up.
func bindDocument(document map[string]interface{}, req *models.NotificationRequest) {
	if v, ok := document["type"].(string); ok {
		req.Type = v
	}
	if v, ok := document["submissionId"].(string); ok {
		req.SubmissionID = v
	}
	if v, ok := document["userId"].(string); ok {
		req.UserID = v
	}
	if v, ok := document["intent"].(string); ok {
		req.Intent = models.ParseIntent(v)
	}
	if v, ok := document["recipient"].(string); ok {
		req.Recipient = v
	}
	if v, ok := document["subject"].(string); ok {
		req.Subject = v
	}
	if v, ok := document["message"].(string); ok {
		req.Message = v
	}
	if values, ok := document["fieldValues"].(map[string]interface{}); ok {
		req.FieldValues = make(map[string]string, len(values))
		for name, value := range values {
			if s, ok := value.(string); ok {
				req.FieldValues[name] = s
			}
		}
	}
}
