package mail

import (
	"context"
	"crypto/x509"

	"github.com/ryan-gang/outreach-send/internal/config"
	"github.com/ryan-gang/outreach-send/internal/contacts"
	"github.com/ryan-gang/outreach-send/internal/message"
)

// MailSender defines the interface for delivering one outreach email
type MailSender interface {
	Send(ctx context.Context, to contacts.Contact, msg message.Message) error
}

// SMTPMailSender implements MailSender with one SMTP session per call
type SMTPMailSender struct {
	cfg config.ConfigProvider

	// rootCAs overrides the system pool when verifying the server
	rootCAs *x509.CertPool
}

// NewSMTPMailSender creates a new SMTP mail sender
func NewSMTPMailSender(cfg config.ConfigProvider) *SMTPMailSender {
	return &SMTPMailSender{cfg: cfg}
}
