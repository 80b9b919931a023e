package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title      string
	Heading    string
	Subheading string
	CTALabel   string
	CTAURL     string
}

type quoteReceivedEmailData struct {
	baseEmailData
	CustomerName    string
	QuoteNumber     string
	AmountFormatted string
	IsDeposit       bool
}

type quoteAdminNotifyEmailData struct {
	baseEmailData
	QuoteNumber     string
	CustomerName    string
	CustomerEmail   string
	ServiceType     string
	AmountFormatted string
}

type quoteApprovedEmailData struct {
	baseEmailData
	CustomerName string
	QuoteNumber  string
}

type bookingEmailData struct {
	baseEmailData
	CustomerName    string
	AppointmentType string
	AppointmentDate string
	StartTime       string
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}

func formatCurrencyUSD(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}
