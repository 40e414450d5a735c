// internal/services/analysis/handler.go
package analysis

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
	logger  logger.Logger
}

func NewHandler(service *Service, log logger.Logger) *Handler {
	return &Handler{
		service: service,
		errorsH: stderrors.NewHTTPHandler(log),
		logger:  log.With(map[string]interface{}{"handler": "analysis"}),
	}
}

// Register mounts the analysis routes on the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.Analyze)
	rg.GET("/health", h.Health)
}

func (h *Handler) Analyze(c *gin.Context) {
	var req models.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorsH.Respond(c, stderrors.NewValidationFailedError("request body must be valid JSON"))
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		h.errorsH.Respond(c, stderrors.NewValidationFailedError("text is required"))
		return
	}

	resp, err := h.service.Analyze(c.Request.Context(), &req)
	if err != nil {
		h.errorsH.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Health(c *gin.Context) {
	if !h.service.Healthy(c.Request.Context()) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
