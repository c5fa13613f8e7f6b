package services

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"log"
	"mime"
	"mime/quotedprintable"
	"net/smtp"
	"strings"
	texttemplate "text/template"

	"github.com/google/uuid"

	"seatrade/internal/config"
	"seatrade/internal/domain"
)

// EmailService handles sending emails
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// NotifyNewInquiry emails the configured sales inbox about a new inquiry.
func (s *EmailService) NotifyNewInquiry(inquiry *domain.Inquiry) error {
	if s.cfg.AdminNotify == "" {
		log.Printf("[EMAIL] New inquiry #%d from %s (%s), no ADMIN_NOTIFY_EMAIL configured", inquiry.ID, inquiry.FullName(), inquiry.Email)
		return nil
	}

	view := newInquiryView(inquiry)
	var html, text bytes.Buffer
	if err := inquiryHTMLTemplate.Execute(&html, view); err != nil {
		return fmt.Errorf("failed to render inquiry email: %w", err)
	}
	if err := inquiryTextTemplate.Execute(&text, view); err != nil {
		return fmt.Errorf("failed to render inquiry email: %w", err)
	}

	subject := fmt.Sprintf("New %s inquiry from %s", view.Topic, view.Name)
	return s.SendHTMLEmail(s.cfg.AdminNotify, subject, html.String(), text.String())
}

type inquiryView struct {
	ID        uint
	Name      string
	Email     string
	Phone     string
	Company   string
	Topic     string
	Message   string
	Submitted string
}

func newInquiryView(i *domain.Inquiry) inquiryView {
	v := inquiryView{
		ID:        i.ID,
		Name:      i.FullName(),
		Email:     i.Email,
		Phone:     "Not provided",
		Company:   "Not provided",
		Topic:     "general",
		Message:   i.Message,
		Submitted: i.CreatedAt.Format("January 2, 2006 at 3:04 PM MST"),
	}
	if i.Phone != nil && *i.Phone != "" {
		v.Phone = *i.Phone
	}
	if i.Company != nil && *i.Company != "" {
		v.Company = *i.Company
	}
	if i.Topic != nil && *i.Topic != "" {
		v.Topic = string(*i.Topic)
	}
	return v
}

var inquiryHTMLTemplate = htmltemplate.Must(htmltemplate.New("inquiry").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>New Inquiry</title>
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #334155;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #0B4F6C;">New Inquiry: {{.Topic}}</h2>
        <div style="background: #F8FAFC; padding: 20px; border-radius: 8px; margin: 20px 0;">
            <p><strong>Name:</strong> {{.Name}}</p>
            <p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
            <p><strong>Phone:</strong> {{.Phone}}</p>
            <p><strong>Company:</strong> {{.Company}}</p>
            <p><strong>Submitted:</strong> {{.Submitted}}</p>
        </div>
        <div style="background: #FFFFFF; padding: 20px; border-left: 4px solid #0B4F6C; border-radius: 4px; margin: 20px 0;">
            <h3 style="margin-top: 0;">Message:</h3>
            <p style="white-space: pre-wrap;">{{.Message}}</p>
        </div>
        <p style="color: #64748B; font-size: 14px;">Inquiry ID: #{{.ID}}</p>
    </div>
</body>
</html>`))

var inquiryTextTemplate = texttemplate.Must(texttemplate.New("inquiry").Parse(`New Inquiry: {{.Topic}}

Name: {{.Name}}
Email: {{.Email}}
Phone: {{.Phone}}
Company: {{.Company}}
Submitted: {{.Submitted}}

Message:
{{.Message}}

Inquiry ID: #{{.ID}}`))

// SendHTMLEmail sends an HTML email with plain text fallback
func (s *EmailService) SendHTMLEmail(to, subject, htmlBody, textBody string) error {
	if !s.cfg.Enabled {
		log.Printf("[EMAIL] Would send to %s: %s", to, subject)
		return nil
	}

	// Validate configuration
	if s.cfg.SMTPHost == "" || s.cfg.Username == "" || s.cfg.Password == "" {
		return fmt.Errorf("email service not properly configured")
	}

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)

	message, err := s.buildMessage(to, subject, htmlBody, textBody)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	if err := smtp.SendMail(addr, auth, s.cfg.FromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildMessage renders a multipart/alternative message with quoted-printable parts.
func (s *EmailService) buildMessage(to, subject, htmlBody, textBody string) ([]byte, error) {
	from := s.cfg.FromEmail
	if s.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.FromEmail)
	}

	boundary := "----=_Part_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary)

	parts := []struct{ contentType, body string }{{"text/plain", textBody}}
	if htmlBody != "" {
		parts = append(parts, struct{ contentType, body string }{"text/html", htmlBody})
	}
	for _, p := range parts {
		fmt.Fprintf(&buf, "--%s\r\n", boundary)
		fmt.Fprintf(&buf, "Content-Type: %s; charset=UTF-8\r\n", p.contentType)
		buf.WriteString("Content-Transfer-Encoding: quoted-printable\r\n\r\n")
		qp := quotedprintable.NewWriter(&buf)
		if _, err := qp.Write([]byte(p.body)); err != nil {
			return nil, fmt.Errorf("failed to encode email body: %w", err)
		}
		if err := qp.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode email body: %w", err)
		}
		buf.WriteString("\r\n")
	}
	fmt.Fprintf(&buf, "--%s--\r\n", boundary)

	return buf.Bytes(), nil
}

// IsEnabled returns whether email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.cfg.Enabled
}
