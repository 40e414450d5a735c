// internal/services/generation/handler.go
package generation

import (
	"net/http"
	"strings"

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

// Register mounts the form generation routes on the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/generate", h.Generate)
	rg.GET("/:formId", h.Get)
	rg.DELETE("/:formId", h.Delete)
	rg.GET("/user/:userId", h.ListByUser)
}

func (h *Handler) Generate(c *gin.Context) {
	var req models.FormGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorsH.Respond(c, stderrors.NewValidationFailedError("request body must be valid JSON"))
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		h.errorsH.Respond(c, stderrors.NewValidationFailedError("text is required"))
		return
	}

	form, err := h.service.Generate(c.Request.Context(), req.Text, req.UserID)
	if err != nil {
		h.errorsH.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

func (h *Handler) Get(c *gin.Context) {
	form, err := h.service.Get(c.Request.Context(), c.Param("formId"))
	if err != nil {
		h.errorsH.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, form)
}

func (h *Handler) Delete(c *gin.Context) {
	formID := c.Param("formId")
	deleted, err := h.service.Delete(c.Request.Context(), formID)
	if err != nil {
		h.errorsH.Respond(c, err)
		return
	}
	if !deleted {
		h.errorsH.Respond(c, stderrors.NewFormNotFoundError(formID))
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true, "formId": formID})
}

func (h *Handler) ListByUser(c *gin.Context) {
	forms, err := h.service.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.errorsH.Respond(c, err)
		return
	}
	if forms == nil {
		forms = []*models.GeneratedForm{}
	}
	c.JSON(http.StatusOK, gin.H{"forms": forms, "count": len(forms)})
}
