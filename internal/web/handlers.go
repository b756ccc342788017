// internal/web/handlers.go
package web

import (
	stderrors "errors"
	"net/http"

	"creditpath/internal/common/errors"
	"creditpath/internal/common/logger"
	"creditpath/internal/letters"
	"creditpath/internal/models"
	"creditpath/internal/service"

	"github.com/gin-gonic/gin"
)

// Handler adapts the service layer to gin routes.
type Handler struct {
	svc    *service.Service
	logger logger.Logger
}

func NewHandler(svc *service.Service, log logger.Logger) *Handler {
	return &Handler{svc: svc, logger: log}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) ListLetterTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"letterTypes": letters.All()})
}

func (h *Handler) RunAudit(c *gin.Context) {
	result, err := h.svc.RunAudit(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.svc.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) SaveProfile(c *gin.Context) {
	var profile models.CreditProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile payload: " + err.Error()})
		return
	}
	if err := h.svc.SaveProfile(c.Request.Context(), c.Param("id"), &profile); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) MergeProfile(c *gin.Context) {
	var partial map[string]interface{}
	if err := c.ShouldBindJSON(&partial); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid merge payload: " + err.Error()})
		return
	}
	profile, err := h.svc.MergeProfile(c.Request.Context(), c.Param("id"), partial)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) SubmitDispute(c *gin.Context) {
	var req service.DisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dispute payload: " + err.Error()})
		return
	}
	result, err := h.svc.SubmitDispute(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	if result.NeedsAddress {
		// Not an error: the caller should collect a mailing address and retry.
		c.JSON(http.StatusAccepted, result)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *Handler) SubmitToAllBureaus(c *gin.Context) {
	var req service.DisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dispute payload: " + err.Error()})
		return
	}
	req.AllBureaus = true
	result, err := h.svc.SubmitDispute(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		// Partial success: some bureaus may have been reached before the
		// failure. Surface both.
		if result != nil && len(result.Records) > 0 {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "records": result.Records})
			return
		}
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *Handler) GetDisputeStatus(c *gin.Context) {
	status, err := h.svc.GetDisputeStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

type statusUpdateRequest struct {
	Status  models.DisputeStatus  `json:"status" binding:"required"`
	Outcome models.DisputeOutcome `json:"outcome,omitempty"`
}

func (h *Handler) UpdateDisputeStatus(c *gin.Context) {
	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status payload: " + err.Error()})
		return
	}
	err := h.svc.UpdateDisputeStatus(c.Request.Context(), c.Param("id"), c.Param("recordId"), req.Status, req.Outcome)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

// renderError maps error codes to HTTP statuses. Guidance travels with the
// body so clients can show the user a next step.
func (h *Handler) renderError(c *gin.Context, err error) {
	var stdErr *errors.StandardError
	if !stderrors.As(err, &stdErr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.IsNotFound(stdErr):
		status = http.StatusNotFound
	case stdErr.Code == errors.ErrCodeUnknownLetterType || stdErr.Code == errors.ErrCodeRecordValidationFailed:
		status = http.StatusBadRequest
	case stdErr.Code == errors.ErrCodeMailTimeout:
		status = http.StatusGatewayTimeout
	case stdErr.Code == errors.ErrCodeMailSendFailed:
		status = http.StatusBadGateway
	}

	body := gin.H{"error": stdErr.Message, "code": stdErr.Code}
	if stdErr.Guidance != "" {
		body["guidance"] = stdErr.Guidance
	}
	c.JSON(status, body)
}
