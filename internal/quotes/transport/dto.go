package transport

import (
	"time"

	"github.com/google/uuid"
)

// Service types offered by the quote wizard.
const (
	ServiceTypeDropsOnly = "drops-only"
	ServiceTypeWholeHome = "whole-home"
)

// RunSelection is the cable run counts from the wizard.
type RunSelection struct {
	Coax  int `json:"coax" validate:"min=0,max=50"`
	Cat6  int `json:"cat6" validate:"min=0,max=50"`
	Fiber int `json:"fiber" validate:"min=0,max=50"`
}

// ServiceSelection is the add-on service counts from the wizard.
type ServiceSelection struct {
	APMounts       int `json:"apMount" validate:"min=0,max=20"`
	EthRelocations int `json:"ethRelocation" validate:"min=0,max=20"`
}

// CentralizationSelection is the optional termination choice.
type CentralizationSelection struct {
	Type             string `json:"type" validate:"omitempty,oneof=media-panel patch-panel loose-termination"`
	HasExistingPanel bool   `json:"hasExistingPanel"`
}

// PreviewQuoteRequest prices a selection without persisting anything.
type PreviewQuoteRequest struct {
	ServiceType     string                  `json:"serviceType" validate:"required,oneof=drops-only whole-home"`
	Runs            RunSelection            `json:"runs"`
	Services        ServiceSelection        `json:"services"`
	DiscountPercent int                     `json:"discountPercent" validate:"min=0,max=100"`
	Centralization  CentralizationSelection `json:"centralization"`
}

// PreviewQuoteResponse is the pricing preview. TotalCents is null for
// whole-home quotes, whose final price comes from the on-site survey.
type PreviewQuoteResponse struct {
	ServiceType     string `json:"serviceType"`
	TotalCents      *int64 `json:"totalCents"`
	DepositCents    int64  `json:"depositCents"`
	DurationMinutes int    `json:"durationMinutes"`
}

// SubmitQuoteRequest submits a quote for admin review.
type SubmitQuoteRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	Email string `json:"email" validate:"required,email,max=254"`
	Phone string `json:"phone,omitempty" validate:"omitempty,max=30"`

	ServiceType     string                  `json:"serviceType" validate:"required,oneof=drops-only whole-home"`
	Runs            RunSelection            `json:"runs"`
	Services        ServiceSelection        `json:"services"`
	DiscountPercent int                     `json:"discountPercent" validate:"min=0,max=100"`
	Centralization  CentralizationSelection `json:"centralization"`
}

// QuoteResponse is the full quote view.
type QuoteResponse struct {
	ID              uuid.UUID               `json:"id"`
	QuoteNumber     string                  `json:"quoteNumber"`
	Name            string                  `json:"name"`
	Email           string                  `json:"email"`
	Phone           string                  `json:"phone,omitempty"`
	ServiceType     string                  `json:"serviceType"`
	Runs            RunSelection            `json:"runs"`
	Services        ServiceSelection        `json:"services"`
	DiscountPercent int                     `json:"discountPercent"`
	Centralization  CentralizationSelection `json:"centralization"`
	TotalCents      *int64                  `json:"totalCents"`
	DepositCents    int64                   `json:"depositCents"`
	Status          string                  `json:"status"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
}

// ListQuotesRequest is the admin query for listing quotes.
type ListQuotesRequest struct {
	Status string `form:"status" validate:"omitempty,oneof=pending reviewed approved rejected completed"`
	Email  string `form:"email" validate:"omitempty,max=254"`
	Limit  int    `form:"limit" validate:"min=0,max=200"`
	Offset int    `form:"offset" validate:"min=0"`
}

// UpdateQuoteStatusRequest moves a quote through its lifecycle.
type UpdateQuoteStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=reviewed approved rejected completed"`
}

// CreateAttachmentRequest asks for a presigned upload URL and registers the
// attachment against the quote.
type CreateAttachmentRequest struct {
	FileName    string `json:"fileName" validate:"required,max=255"`
	ContentType string `json:"contentType" validate:"required,max=100"`
	SizeBytes   int64  `json:"sizeBytes" validate:"required,min=1"`
}

// AttachmentResponse describes a registered attachment, with the presigned
// upload URL when freshly created.
type AttachmentResponse struct {
	ID          uuid.UUID `json:"id"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	UploadURL   string    `json:"uploadUrl,omitempty"`
	DownloadURL string    `json:"downloadUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// InvoiceResponse is the admin view of an invoice.
type InvoiceResponse struct {
	ID          uuid.UUID  `json:"id"`
	QuoteID     uuid.UUID  `json:"quoteId"`
	QuoteNumber string     `json:"quoteNumber,omitempty"`
	AmountCents int64      `json:"amountCents"`
	Status      string     `json:"status"`
	IssuedAt    time.Time  `json:"issuedAt"`
	PaidAt      *time.Time `json:"paidAt,omitempty"`
}
