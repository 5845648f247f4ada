package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"breeder-site-backend/internal/models"

	"github.com/rs/zerolog/log"
	"github.com/wneessen/go-mail"
)

// Email is one outbound HTML message
type Email struct {
	To      string
	Subject string
	HTML    string
}

// Mailer delivers e-mail
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// SMTPOptions configures an authenticated SMTP relay
type SMTPOptions struct {
	Host     string
	Port     int
	Username string
	Password string
	// From defaults to Username
	From     string
	FromName string
}

// SMTPMailer sends through an SMTP relay with STARTTLS and PLAIN auth
type SMTPMailer struct {
	opts SMTPOptions
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(opts SMTPOptions) *SMTPMailer {
	return &SMTPMailer{opts: opts}
}

// Send dials the relay and delivers one message
func (m *SMTPMailer) Send(ctx context.Context, email Email) error {
	msg := mail.NewMsg()
	from := m.opts.From
	if from == "" {
		from = m.opts.Username
	}
	if err := msg.FromFormat(m.opts.FromName, from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := msg.To(email.To); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}
	msg.Subject(email.Subject)
	msg.SetBodyString(mail.TypeTextHTML, email.HTML)

	client, err := mail.NewClient(m.opts.Host,
		mail.WithPort(m.opts.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.opts.Username),
		mail.WithPassword(m.opts.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

// LogMailer only logs messages. It is used when SMTP is not configured.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, email Email) error {
	log.Info().Str("to", email.To).Str("subject", email.Subject).Msg("SMTP not configured, e-mail skipped")
	return nil
}

var (
	adminInquiryTmpl = template.Must(template.New("admin").Parse(`<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #eee; border-radius: 10px;">
  <h2 style="color: #c08c5d;">New Inquiry Received</h2>
  <p><strong>From:</strong> {{.Inquiry.FullName}}</p>
  <p><strong>Email:</strong> {{.Inquiry.Email}}</p>
  <p><strong>Phone:</strong> {{.Inquiry.Phone}}</p>
  <p><strong>Address:</strong> {{.Inquiry.Address}}</p>
  <p><strong>Selected Puppy:</strong> {{if .PuppyName}}{{.PuppyName}}{{else}}None selected{{end}}</p>
  <div style="margin-top: 20px; padding: 15px; background: #f9f9f9; border-radius: 5px;">
    <p><strong>Message:</strong></p>
    <p style="white-space: pre-wrap;">{{.Inquiry.Message}}</p>
  </div>
</div>`))

	userInquiryTmpl = template.Must(template.New("user").Parse(`<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #eee; border-radius: 10px;">
  <h2 style="color: #c08c5d;">Inquiry Received</h2>
  <p>Hi {{.Inquiry.FullName}},</p>
  <p>Thank you for reaching out to us about {{if .PuppyName}}our puppy {{.PuppyName}}{{else}}a puppy placement{{end}}. We have received your inquiry and will review it thoughtfully.</p>
  <p>We typically respond within 1-2 business days to discuss next steps and compatibility.</p>
  <div style="margin-top: 20px; padding: 15px; background: #f9f9f9; border-radius: 5px;">
    <p><strong>Your Message Summary:</strong></p>
    <p style="white-space: pre-wrap;">{{.Inquiry.Message}}</p>
  </div>
  <p style="margin-top: 20px; color: #888; font-size: 12px;">This is an automated confirmation. We'll be in touch soon!</p>
</div>`))
)

type inquiryEmailData struct {
	Inquiry   models.Inquiry
	PuppyName string
}

// AdminInquiryEmail renders the operator notification for a new inquiry
func AdminInquiryEmail(to string, inquiry models.Inquiry, puppyName string) (Email, error) {
	var buf bytes.Buffer
	if err := adminInquiryTmpl.Execute(&buf, inquiryEmailData{Inquiry: inquiry, PuppyName: puppyName}); err != nil {
		return Email{}, fmt.Errorf("failed to render admin email: %w", err)
	}
	return Email{
		To:      to,
		Subject: "New inquiry from " + inquiry.FullName,
		HTML:    buf.String(),
	}, nil
}

// UserInquiryEmail renders the confirmation sent to the submitter
func UserInquiryEmail(inquiry models.Inquiry, puppyName string) (Email, error) {
	var buf bytes.Buffer
	if err := userInquiryTmpl.Execute(&buf, inquiryEmailData{Inquiry: inquiry, PuppyName: puppyName}); err != nil {
		return Email{}, fmt.Errorf("failed to render confirmation email: %w", err)
	}
	return Email{
		To:      inquiry.Email,
		Subject: "We received your inquiry",
		HTML:    buf.String(),
	}, nil
}
