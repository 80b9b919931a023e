package handler

import (
	"net/http"

	"homewire_backend/internal/quotes/service"
	"homewire_backend/internal/quotes/transport"
	"homewire_backend/platform/httpkit"
	"homewire_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// PublicHandler handles the customer-facing quote wizard endpoints.
type PublicHandler struct {
	svc *service.Service
	val *validator.Validator
}

// NewPublic creates a new public quotes handler.
func NewPublic(svc *service.Service, val *validator.Validator) *PublicHandler {
	return &PublicHandler{svc: svc, val: val}
}

// RegisterRoutes registers the public quote routes.
func (h *PublicHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/preview", h.Preview)
	rg.POST("", h.Submit)
	rg.POST("/:number/attachments", h.CreateAttachment)
}

// Preview handles POST /api/v1/public/quotes/preview
func (h *PublicHandler) Preview(c *gin.Context) {
	var req transport.PreviewQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Preview(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Submit handles POST /api/v1/public/quotes
func (h *PublicHandler) Submit(c *gin.Context) {
	var req transport.SubmitQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Submit(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, result)
}

// CreateAttachment handles POST /api/v1/public/quotes/:number/attachments
func (h *PublicHandler) CreateAttachment(c *gin.Context) {
	var req transport.CreateAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.CreateAttachment(c.Request.Context(), c.Param("number"), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, result)
}
