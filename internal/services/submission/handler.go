// internal/services/submission/handler.go
package submission

import (
	"net/http"

	"github.com/gin-gonic/gin"

	stderrors "formflow/internal/common/errors"
	"formflow/internal/common/logger"
	"formflow/internal/models"
)

type Handler struct {
	service *Service
	errorsH *stderrors.HTTPHandler
}

func NewHandler(service *Service, log logger.Logger) *Handler {
	return &Handler{
		service: service,
		errorsH: stderrors.NewHTTPHandler(log),
	}
}

// RegisterSubmit mounts POST /submit on the form route group, keeping
// the submit URL embedded in generated forms stable.
func (h *Handler) RegisterSubmit(rg *gin.RouterGroup) {
	rg.POST("/submit", h.Submit)
}

// RegisterQueries mounts the submission lookup routes.
func (h *Handler) RegisterQueries(rg *gin.RouterGroup) {
	rg.GET("/:submissionId", h.Get)
	rg.GET("/user/:userId", h.ListByUser)
}

func (h *Handler) Submit(c *gin.Context) {
	var req models.FormSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorsH.Respond(c, stderrors.NewValidationFailedError("request body must be valid JSON"))
		return
	}
	if req.FormID == "" {
		h.errorsH.Respond(c, stderrors.NewValidationFailedError("formId is required"))
		return
	}
	if len(req.FieldValues) == 0 {
		h.errorsH.Respond(c, stderrors.NewValidationFailedError("fieldValues is required"))
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), &req)
	if err != nil {
		h.errorsH.Respond(c, err)
		return
	}

	if !resp.Success {
		c.JSON(http.StatusBadRequest, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Get(c *gin.Context) {
	record, err := h.service.Get(c.Request.Context(), c.Param("submissionId"))
	if err != nil {
		h.errorsH.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *Handler) ListByUser(c *gin.Context) {
	records, err := h.service.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.errorsH.Respond(c, err)
		return
	}
	if records == nil {
		records = []*models.SubmissionRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"submissions": records, "count": len(records)})
}
