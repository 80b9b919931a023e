package service

import (
	"context"
	"strings"
	"time"

	"homewire_backend/internal/adapters/storage"
	"homewire_backend/internal/events"
	"homewire_backend/internal/pricing"
	"homewire_backend/internal/quotes/repository"
	"homewire_backend/internal/quotes/transport"
	"homewire_backend/platform/apperr"
	"homewire_backend/platform/logger"
	"homewire_backend/platform/phone"

	"github.com/google/uuid"
)

const (
	defaultListLimit   = 50
	maxAttachmentCount = 10
	attachmentFolder   = "quotes"
)

// Reason code for an empty selection on the submission path.
const ReasonNothingSelected = "nothing selected"

// Admin-only status transitions for a quote.
var statusTransitions = map[string][]string{
	"pending":  {"reviewed"},
	"reviewed": {"approved", "rejected"},
	"approved": {"completed"},
}

// RateBookLoader supplies the current pricing rates.
type RateBookLoader interface {
	LoadRateBook(ctx context.Context) (*pricing.RateBook, error)
}

// Service provides business logic for quotes, attachments and invoices.
type Service struct {
	repo    *repository.Repository
	rates   RateBookLoader
	numbers *NumberGenerator
	store   storage.Service
	bucket  string
	bus     events.Bus
	log     *logger.Logger
	now     func() time.Time
}

// New creates a new quotes service. store may be nil when object storage is
// not configured; attachment endpoints then report storage as unavailable.
func New(repo *repository.Repository, rates RateBookLoader, store storage.Service, bucket string, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:    repo,
		rates:   rates,
		numbers: NewNumberGenerator(repo, nil),
		store:   store,
		bucket:  bucket,
		bus:     bus,
		log:     log,
		now:     time.Now,
	}
}

// Preview prices a selection without persisting anything.
func (s *Service) Preview(ctx context.Context, req transport.PreviewQuoteRequest) (*transport.PreviewQuoteResponse, error) {
	rates, err := s.rates.LoadRateBook(ctx)
	if err != nil {
		return nil, err
	}

	if req.ServiceType == transport.ServiceTypeWholeHome {
		result := pricing.CalculateWholeHome(*rates)
		return &transport.PreviewQuoteResponse{
			ServiceType:     req.ServiceType,
			DepositCents:    result.DepositCents,
			DurationMinutes: pricing.WholeHomeDurationMinutes,
		}, nil
	}

	input := dropsInput(req.Runs, req.Services, req.DiscountPercent, req.Centralization)
	result := pricing.CalculateDropsOnly(input, *rates)
	duration := pricing.EstimateDurationMinutes(input.Runs, input.Services, rates.LaborHours)

	return &transport.PreviewQuoteResponse{
		ServiceType:     req.ServiceType,
		TotalCents:      &result.TotalCents,
		DepositCents:    result.DepositCents,
		DurationMinutes: duration,
	}, nil
}

// Submit validates and persists a quote request, assigns it a number, and
// announces it on the bus. An all-zero drops-only selection is rejected as
// "nothing selected" rather than priced at zero.
func (s *Service) Submit(ctx context.Context, req transport.SubmitQuoteRequest) (*transport.QuoteResponse, error) {
	rates, err := s.rates.LoadRateBook(ctx)
	if err != nil {
		return nil, err
	}

	runs := pricing.RunCounts{Coax: req.Runs.Coax, Cat6: req.Runs.Cat6, Fiber: req.Runs.Fiber}
	services := pricing.ServiceCounts{APMounts: req.Services.APMounts, EthRelocations: req.Services.EthRelocations}

	var totalCents *int64
	var depositCents int64
	if req.ServiceType == transport.ServiceTypeWholeHome {
		depositCents = pricing.CalculateWholeHome(*rates).DepositCents
	} else {
		if pricing.NothingSelected(runs, services) {
			return nil, apperr.Rejected(ReasonNothingSelected, "select at least one run or service")
		}
		result := pricing.CalculateDropsOnly(dropsInput(req.Runs, req.Services, req.DiscountPercent, req.Centralization), *rates)
		totalCents = &result.TotalCents
		depositCents = result.DepositCents
	}

	number, err := s.numbers.Next(ctx)
	if err != nil {
		return nil, err
	}

	var centralizationType *string
	if req.Centralization.Type != "" {
		centralizationType = &req.Centralization.Type
	}

	now := s.now()
	quote := &repository.Quote{
		ID:                 uuid.New(),
		QuoteNumber:        number,
		CustomerName:       strings.TrimSpace(req.Name),
		CustomerEmail:      strings.ToLower(strings.TrimSpace(req.Email)),
		CustomerPhone:      phone.NormalizeE164(req.Phone),
		ServiceType:        req.ServiceType,
		CoaxRuns:           req.Runs.Coax,
		Cat6Runs:           req.Runs.Cat6,
		FiberRuns:          req.Runs.Fiber,
		APMounts:           req.Services.APMounts,
		EthRelocations:     req.Services.EthRelocations,
		DiscountPercent:    req.DiscountPercent,
		CentralizationType: centralizationType,
		HasExistingPanel:   req.Centralization.HasExistingPanel,
		TotalCents:         totalCents,
		DepositCents:       depositCents,
		Status:             "pending",
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.Create(ctx, quote); err != nil {
		// A lost race on the quote number counts as a consumed retry; the
		// client may resubmit.
		if apperr.Is(err, apperr.KindConflict) {
			return nil, apperr.Internal("quote number collision, retry the submission")
		}
		return nil, err
	}

	s.bus.Publish(ctx, events.NewQuoteSubmitted(
		quote.ID, quote.QuoteNumber, quote.CustomerName, quote.CustomerEmail,
		quote.ServiceType, totalOrZero(totalCents), depositCents,
	))

	return quoteResponse(quote), nil
}

// Get retrieves a quote by ID for the admin view.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*transport.QuoteResponse, error) {
	quote, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return quoteResponse(quote), nil
}

// List returns quotes for the admin list view.
func (s *Service) List(ctx context.Context, req transport.ListQuotesRequest) ([]transport.QuoteResponse, error) {
	limit := req.Limit
	if limit == 0 {
		limit = defaultListLimit
	}

	quotes, err := s.repo.List(ctx, req.Status, strings.ToLower(req.Email), limit, req.Offset)
	if err != nil {
		return nil, err
	}

	out := make([]transport.QuoteResponse, 0, len(quotes))
	for i := range quotes {
		out = append(out, *quoteResponse(&quotes[i]))
	}
	return out, nil
}

// UpdateStatus moves a quote through its lifecycle. Illegal transitions are
// conflicts, not validation errors: the quote exists, its state disagrees.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, newStatus string) (*transport.QuoteResponse, error) {
	quote, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !transitionAllowed(quote.Status, newStatus) {
		return nil, apperr.Conflict("cannot move quote from " + quote.Status + " to " + newStatus)
	}

	if err := s.repo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, events.NewQuoteStatusChanged(
		quote.ID, quote.QuoteNumber, quote.CustomerName, quote.CustomerEmail, quote.Status, newStatus,
	))

	quote.Status = newStatus
	quote.UpdatedAt = s.now()
	return quoteResponse(quote), nil
}

// CreateAttachment issues a presigned upload URL and registers the attachment
// against the quote identified by its public number.
func (s *Service) CreateAttachment(ctx context.Context, quoteNumber string, req transport.CreateAttachmentRequest) (*transport.AttachmentResponse, error) {
	if s.store == nil {
		return nil, apperr.Internal("file storage is not configured")
	}

	quote, err := s.repo.GetByNumber(ctx, quoteNumber)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountAttachments(ctx, quote.ID)
	if err != nil {
		return nil, err
	}
	if count >= maxAttachmentCount {
		return nil, apperr.Conflict("quote already has the maximum number of attachments")
	}

	if err := s.store.ValidateContentType(req.ContentType); err != nil {
		return nil, apperr.Validation(err.Error())
	}
	if err := s.store.ValidateFileSize(req.SizeBytes); err != nil {
		return nil, apperr.Validation(err.Error())
	}

	folder := attachmentFolder + "/" + quote.ID.String()
	presigned, err := s.store.GenerateUploadURL(ctx, s.bucket, folder, req.FileName, req.ContentType, req.SizeBytes)
	if err != nil {
		return nil, err
	}

	attachment := &repository.Attachment{
		ID:          uuid.New(),
		QuoteID:     quote.ID,
		FileKey:     presigned.FileKey,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
		CreatedAt:   s.now(),
	}
	if err := s.repo.CreateAttachment(ctx, attachment); err != nil {
		return nil, err
	}

	return &transport.AttachmentResponse{
		ID:          attachment.ID,
		FileName:    attachment.FileName,
		ContentType: attachment.ContentType,
		SizeBytes:   attachment.SizeBytes,
		UploadURL:   presigned.URL,
		CreatedAt:   attachment.CreatedAt,
	}, nil
}

// ListAttachments returns a quote's attachments with presigned download URLs
// for the admin view.
func (s *Service) ListAttachments(ctx context.Context, quoteID uuid.UUID) ([]transport.AttachmentResponse, error) {
	attachments, err := s.repo.ListAttachments(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	out := make([]transport.AttachmentResponse, 0, len(attachments))
	for _, a := range attachments {
		resp := transport.AttachmentResponse{
			ID:          a.ID,
			FileName:    a.FileName,
			ContentType: a.ContentType,
			SizeBytes:   a.SizeBytes,
			CreatedAt:   a.CreatedAt,
		}
		if s.store != nil {
			presigned, err := s.store.GenerateDownloadURL(ctx, s.bucket, a.FileKey)
			if err != nil {
				s.log.Error("failed to presign attachment download", "attachmentId", a.ID, "error", err)
			} else {
				resp.DownloadURL = presigned.URL
			}
		}
		out = append(out, resp)
	}
	return out, nil
}

// CreateInvoice issues the invoice for an approved quote. Whole-home quotes
// invoice their deposit; drops-only quotes invoice the computed total.
func (s *Service) CreateInvoice(ctx context.Context, quoteID uuid.UUID) (*transport.InvoiceResponse, error) {
	quote, err := s.repo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if quote.Status != "approved" && quote.Status != "completed" {
		return nil, apperr.Conflict("only approved quotes can be invoiced")
	}

	amount := quote.DepositCents
	if quote.TotalCents != nil {
		amount = *quote.TotalCents
	}

	invoice := &repository.Invoice{
		ID:          uuid.New(),
		QuoteID:     quote.ID,
		AmountCents: amount,
		Status:      "issued",
		IssuedAt:    s.now(),
	}
	if err := s.repo.CreateInvoice(ctx, invoice); err != nil {
		return nil, err
	}

	return invoiceResponse(invoice, quote.QuoteNumber), nil
}

// ListInvoices returns invoices for the admin view.
func (s *Service) ListInvoices(ctx context.Context, status string) ([]transport.InvoiceResponse, error) {
	invoices, numbers, err := s.repo.ListInvoices(ctx, status)
	if err != nil {
		return nil, err
	}

	out := make([]transport.InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		out = append(out, *invoiceResponse(&invoices[i], numbers[invoices[i].QuoteID]))
	}
	return out, nil
}

// UpdateInvoiceStatus marks an invoice paid or void. Paid and void are both
// terminal.
func (s *Service) UpdateInvoiceStatus(ctx context.Context, id uuid.UUID, status string) (*transport.InvoiceResponse, error) {
	invoice, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.Status != "issued" {
		return nil, apperr.Conflict("invoice is already " + invoice.Status)
	}

	var paidAt *time.Time
	if status == "paid" {
		now := s.now()
		paidAt = &now
	}
	if err := s.repo.UpdateInvoiceStatus(ctx, id, status, paidAt); err != nil {
		return nil, err
	}

	invoice.Status = status
	invoice.PaidAt = paidAt
	return invoiceResponse(invoice, ""), nil
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func dropsInput(runs transport.RunSelection, services transport.ServiceSelection, discount int, c transport.CentralizationSelection) pricing.DropsOnlyInput {
	input := pricing.DropsOnlyInput{
		Runs:            pricing.RunCounts{Coax: runs.Coax, Cat6: runs.Cat6, Fiber: runs.Fiber},
		Services:        pricing.ServiceCounts{APMounts: services.APMounts, EthRelocations: services.EthRelocations},
		DiscountPercent: discount,
	}
	if c.Type != "" {
		input.Centralization = &pricing.Centralization{
			Type:             pricing.CentralizationType(c.Type),
			HasExistingPanel: c.HasExistingPanel,
		}
	}
	return input
}

func totalOrZero(total *int64) int64 {
	if total == nil {
		return 0
	}
	return *total
}

func quoteResponse(q *repository.Quote) *transport.QuoteResponse {
	centralization := transport.CentralizationSelection{HasExistingPanel: q.HasExistingPanel}
	if q.CentralizationType != nil {
		centralization.Type = *q.CentralizationType
	}

	return &transport.QuoteResponse{
		ID:              q.ID,
		QuoteNumber:     q.QuoteNumber,
		Name:            q.CustomerName,
		Email:           q.CustomerEmail,
		Phone:           q.CustomerPhone,
		ServiceType:     q.ServiceType,
		Runs:            transport.RunSelection{Coax: q.CoaxRuns, Cat6: q.Cat6Runs, Fiber: q.FiberRuns},
		Services:        transport.ServiceSelection{APMounts: q.APMounts, EthRelocations: q.EthRelocations},
		DiscountPercent: q.DiscountPercent,
		Centralization:  centralization,
		TotalCents:      q.TotalCents,
		DepositCents:    q.DepositCents,
		Status:          q.Status,
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
	}
}

func invoiceResponse(inv *repository.Invoice, quoteNumber string) *transport.InvoiceResponse {
	return &transport.InvoiceResponse{
		ID:          inv.ID,
		QuoteID:     inv.QuoteID,
		QuoteNumber: quoteNumber,
		AmountCents: inv.AmountCents,
		Status:      inv.Status,
		IssuedAt:    inv.IssuedAt,
		PaidAt:      inv.PaidAt,
	}
}
