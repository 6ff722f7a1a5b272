// Package email sends notification e-mails through Resend.
//
// Bodies are rendered from HTML templates embedded in the binary.
package email

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/deppfellow/portfolio/internal/config"
)

// DefaultFromEmail is Resend's shared sender, used when no sender is
// configured.
const DefaultFromEmail = "onboarding@resend.dev"

// Client wraps the Resend client.
type Client struct {
	client *resend.Client
	from   string
	logger *zerolog.Logger
}

// NewClient creates a Client using the Resend API key from cfg.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	from := cfg.Integration.FromEmail
	if from == "" {
		from = DefaultFromEmail
	}

	return &Client{
		client: resend.NewClient(cfg.Integration.ResendAPIKey),
		from:   from,
		logger: logger,
	}
}

// SendEmail renders templateName with data and sends it to a single
// recipient.
func (c *Client) SendEmail(to, subject string, templateName Template, data any) error {
	body, err := Render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", "Portfolio", c.from),
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}

	sent, err := c.client.Emails.Send(params)
	if err != nil {
		return errors.Wrapf(err, "failed to send %s email", templateName)
	}

	c.logger.Debug().
		Str("template", string(templateName)).
		Str("email_id", sent.Id).
		Msg("email sent")

	return nil
}
