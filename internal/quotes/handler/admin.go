package handler

import (
	"net/http"

	"homewire_backend/internal/quotes/service"
	"homewire_backend/internal/quotes/transport"
	"homewire_backend/platform/httpkit"
	"homewire_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminHandler handles the back-office quote and invoice endpoints.
type AdminHandler struct {
	svc *service.Service
	val *validator.Validator
}

// NewAdmin creates a new admin quotes handler.
func NewAdmin(svc *service.Service, val *validator.Validator) *AdminHandler {
	return &AdminHandler{svc: svc, val: val}
}

// RegisterQuoteRoutes registers the admin quote routes.
func (h *AdminHandler) RegisterQuoteRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.GET("/:id/attachments", h.ListAttachments)
	rg.PATCH("/:id/status", h.UpdateStatus)
	rg.POST("/:id/invoice", h.CreateInvoice)
}

// RegisterInvoiceRoutes registers the admin invoice routes.
func (h *AdminHandler) RegisterInvoiceRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.ListInvoices)
	rg.PATCH("/:id/status", h.UpdateInvoiceStatus)
}

// List handles GET /api/v1/admin/quotes
func (h *AdminHandler) List(c *gin.Context) {
	var req transport.ListQuotesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.List(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Get handles GET /api/v1/admin/quotes/:id
func (h *AdminHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// ListAttachments handles GET /api/v1/admin/quotes/:id/attachments
func (h *AdminHandler) ListAttachments(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.ListAttachments(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// UpdateStatus handles PATCH /api/v1/admin/quotes/:id/status
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.UpdateQuoteStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// CreateInvoice handles POST /api/v1/admin/quotes/:id/invoice
func (h *AdminHandler) CreateInvoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.CreateInvoice(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, result)
}

// ListInvoices handles GET /api/v1/admin/invoices
func (h *AdminHandler) ListInvoices(c *gin.Context) {
	status := c.Query("status")
	if status != "" && status != "issued" && status != "paid" && status != "void" {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, "unknown invoice status")
		return
	}

	result, err := h.svc.ListInvoices(c.Request.Context(), status)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// UpdateInvoiceStatus handles PATCH /api/v1/admin/invoices/:id/status
func (h *AdminHandler) UpdateInvoiceStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req struct {
		Status string `json:"status" validate:"required,oneof=paid void"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.UpdateInvoiceStatus(c.Request.Context(), id, req.Status)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}
