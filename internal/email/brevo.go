package email

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"homewire_backend/platform/config"
)

// Attachment represents a file attachment for an email.
type Attachment struct {
	Content  []byte // raw file bytes (will be base64-encoded for Brevo)
	FileName string // e.g. "invoice-48291032.pdf"
	MIMEType string // e.g. "application/pdf"
}

type Sender interface {
	SendQuoteReceivedEmail(ctx context.Context, toEmail, customerName, quoteNumber string, amountCents int64, isDeposit bool) error
	SendQuoteAdminNotifyEmail(ctx context.Context, toEmail, quoteNumber, customerName, customerEmail, serviceType string, amountCents int64) error
	SendQuoteApprovedEmail(ctx context.Context, toEmail, customerName, quoteNumber string) error
	SendBookingConfirmedEmail(ctx context.Context, toEmail, customerName, appointmentType, appointmentDate, startTime string) error
	SendBookingReminderEmail(ctx context.Context, toEmail, customerName, appointmentType, appointmentDate, startTime string) error
	SendBookingCancelledEmail(ctx context.Context, toEmail, customerName, appointmentDate, startTime string) error
	SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error
}

type NoopSender struct{}

func (NoopSender) SendQuoteReceivedEmail(ctx context.Context, toEmail, customerName, quoteNumber string, amountCents int64, isDeposit bool) error {
	return nil
}

func (NoopSender) SendQuoteAdminNotifyEmail(ctx context.Context, toEmail, quoteNumber, customerName, customerEmail, serviceType string, amountCents int64) error {
	return nil
}

func (NoopSender) SendQuoteApprovedEmail(ctx context.Context, toEmail, customerName, quoteNumber string) error {
	return nil
}

func (NoopSender) SendBookingConfirmedEmail(ctx context.Context, toEmail, customerName, appointmentType, appointmentDate, startTime string) error {
	return nil
}

func (NoopSender) SendBookingReminderEmail(ctx context.Context, toEmail, customerName, appointmentType, appointmentDate, startTime string) error {
	return nil
}

func (NoopSender) SendBookingCancelledEmail(ctx context.Context, toEmail, customerName, appointmentDate, startTime string) error {
	return nil
}

func (NoopSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return nil
}

type BrevoSender struct {
	apiKey    string
	fromName  string
	fromEmail string
	client    *http.Client
}

type brevoAttachment struct {
	Content string `json:"content"` // base64-encoded file content
	Name    string `json:"name"`
}

type brevoEmailRequest struct {
	Sender struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"sender"`
	To []struct {
		Email string `json:"email"`
	} `json:"to"`
	Subject     string            `json:"subject"`
	HTMLContent string            `json:"htmlContent"`
	Attachment  []brevoAttachment `json:"attachment,omitempty"`
}

func NewSender(cfg config.EmailConfig) (Sender, error) {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}, nil
	}

	client := &http.Client{Timeout: 10 * time.Second}
	return &BrevoSender{
		apiKey:    cfg.GetBrevoAPIKey(),
		fromName:  cfg.GetEmailFromName(),
		fromEmail: cfg.GetEmailFromAddress(),
		client:    client,
	}, nil
}

func (b *BrevoSender) SendQuoteReceivedEmail(ctx context.Context, toEmail, customerName, quoteNumber string, amountCents int64, isDeposit bool) error {
	subject := fmt.Sprintf(subjectQuoteReceivedFmt, quoteNumber)
	content, err := renderEmailTemplate("quote_received.html", quoteReceivedEmailData{
		baseEmailData: baseEmailData{
			Title:   "Quote request received",
			Heading: "We received your quote request",
		},
		CustomerName:    customerName,
		QuoteNumber:     quoteNumber,
		AmountFormatted: formatCurrencyUSD(amountCents),
		IsDeposit:       isDeposit,
	})
	if err != nil {
		return err
	}
	return b.send(ctx, toEmail, subject, content)
}

func (b *BrevoSender) SendQuoteAdminNotifyEmail(ctx context.Context, toEmail, quoteNumber, customerName, customerEmail, serviceType string, amountCents int64) error {
	subject := fmt.Sprintf(subjectQuoteAdminNotifyFmt, quoteNumber)
	content, err := renderEmailTemplate("quote_admin_notify.html", quoteAdminNotifyEmailData{
		baseEmailData: baseEmailData{
			Title:   "New quote request",
			Heading: "New quote request",
		},
		QuoteNumber:     quoteNumber,
		CustomerName:    customerName,
		CustomerEmail:   customerEmail,
		ServiceType:     serviceType,
		AmountFormatted: formatCurrencyUSD(amountCents),
	})
	if err != nil {
		return err
	}
	return b.send(ctx, toEmail, subject, content)
}

func (b *BrevoSender) SendQuoteApprovedEmail(ctx context.Context, toEmail, customerName, quoteNumber string) error {
	subject := fmt.Sprintf(subjectQuoteApprovedFmt, quoteNumber)
	content, err := renderEmailTemplate("quote_approved.html", quoteApprovedEmailData{
		baseEmailData: baseEmailData{
			Title:   "Quote approved",
			Heading: "Your quote has been approved",
		},
		CustomerName: customerName,
		QuoteNumber:  quoteNumber,
	})
	if err != nil {
		return err
	}
	return b.send(ctx, toEmail, subject, content)
}

func (b *BrevoSender) SendBookingConfirmedEmail(ctx context.Context, toEmail, customerName, appointmentType, appointmentDate, startTime string) error {
	subject := subjectBookingConfirmed
	content, err := renderEmailTemplate("booking_confirmed.html", bookingEmailData{
		baseEmailData: baseEmailData{
			Title:   "Appointment confirmed",
			Heading: "Your appointment is confirmed",
		},
		CustomerName:    customerName,
		AppointmentType: appointmentType,
		AppointmentDate: appointmentDate,
		StartTime:       startTime,
	})
	if err != nil {
		return err
	}
	return b.send(ctx, toEmail, subject, content)
}

func (b *BrevoSender) SendBookingReminderEmail(ctx context.Context, toEmail, customerName, appointmentType, appointmentDate, startTime string) error {
	subject := subjectBookingReminder
	content, err := renderEmailTemplate("booking_reminder.html", bookingEmailData{
		baseEmailData: baseEmailData{
			Title:   "Appointment reminder",
			Heading: "Your appointment is coming up",
		},
		CustomerName:    customerName,
		AppointmentType: appointmentType,
		AppointmentDate: appointmentDate,
		StartTime:       startTime,
	})
	if err != nil {
		return err
	}
	return b.send(ctx, toEmail, subject, content)
}

func (b *BrevoSender) SendBookingCancelledEmail(ctx context.Context, toEmail, customerName, appointmentDate, startTime string) error {
	subject := subjectBookingCancelled
	content, err := renderEmailTemplate("booking_cancelled.html", bookingEmailData{
		baseEmailData: baseEmailData{
			Title:   "Appointment cancelled",
			Heading: "Your appointment has been cancelled",
		},
		CustomerName:    customerName,
		AppointmentDate: appointmentDate,
		StartTime:       startTime,
	})
	if err != nil {
		return err
	}
	return b.send(ctx, toEmail, subject, content)
}

func (b *BrevoSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return b.send(ctx, toEmail, subject, htmlContent)
}

func (b *BrevoSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	return b.sendWithAttachments(ctx, toEmail, subject, htmlContent)
}

func (b *BrevoSender) sendWithAttachments(ctx context.Context, toEmail, subject, htmlContent string, attachments ...Attachment) error {
	payload := brevoEmailRequest{
		Subject:     subject,
		HTMLContent: htmlContent,
	}
	payload.Sender.Name = b.fromName
	payload.Sender.Email = b.fromEmail
	payload.To = []struct {
		Email string `json:"email"`
	}{{Email: toEmail}}

	for _, att := range attachments {
		payload.Attachment = append(payload.Attachment, brevoAttachment{
			Content: base64.StdEncoding.EncodeToString(att.Content),
			Name:    att.FileName,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.brevo.com/v3/smtp/email", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", b.apiKey)
	req.Header.Set("content-type", "application/json")
	req.Header.Set("accept", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("brevo send failed: status %d: %s", resp.StatusCode, string(data))
	}

	return nil
}
