package email

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements the Sender interface using a direct SMTP connection via go-mail.
// It renders the same HTML templates as BrevoSender but delivers via the operator's own SMTP server.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a new SMTPSender with the given SMTP credentials.
func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string, attachments ...Attachment) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	for _, att := range attachments {
		msg.AttachReader(att.FileName, bytes.NewReader(att.Content))
	}

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func (s *SMTPSender) SendQuoteReceivedEmail(ctx context.Context, toEmail, customerName, quoteNumber string, amountCents int64, isDeposit bool) error {
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
	return s.send(ctx, toEmail, subject, content)
}

func (s *SMTPSender) SendQuoteAdminNotifyEmail(ctx context.Context, toEmail, quoteNumber, customerName, customerEmail, serviceType string, amountCents int64) error {
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
	return s.send(ctx, toEmail, subject, content)
}

func (s *SMTPSender) SendQuoteApprovedEmail(ctx context.Context, toEmail, customerName, quoteNumber string) error {
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
	return s.send(ctx, toEmail, subject, content)
}

func (s *SMTPSender) SendBookingConfirmedEmail(ctx context.Context, toEmail, customerName, appointmentType, appointmentDate, startTime string) error {
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
	return s.send(ctx, toEmail, subjectBookingConfirmed, content)
}

func (s *SMTPSender) SendBookingReminderEmail(ctx context.Context, toEmail, customerName, appointmentType, appointmentDate, startTime string) error {
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
	return s.send(ctx, toEmail, subjectBookingReminder, content)
}

func (s *SMTPSender) SendBookingCancelledEmail(ctx context.Context, toEmail, customerName, appointmentDate, startTime string) error {
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
	return s.send(ctx, toEmail, subjectBookingCancelled, content)
}

func (s *SMTPSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return s.send(ctx, toEmail, subject, htmlContent)
}
