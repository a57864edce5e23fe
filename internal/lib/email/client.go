// Package email sends notification emails through Resend.
//
// Templates are embedded HTML files rendered with html/template.
package email

import (
	"context"
	"fmt"

	"github.com/deppfellow/heroes/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// Client wraps the Resend client.
type Client struct {
	client *resend.Client
	from   string
	logger *zerolog.Logger
}

// NewClient creates an email Client from the integration config.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	return &Client{
		client: resend.NewClient(cfg.Integration.ResendAPIKey),
		from:   cfg.Integration.EmailFrom,
		logger: logger,
	}
}

// SendEmail renders templateName with data and sends it to a single recipient.
func (c *Client) SendEmail(ctx context.Context, to, subject string, templateName Template, data any) error {
	body, err := render(templateName, data)
	if err != nil {
		return errors.Wrapf(err, "failed to render email template %s", templateName)
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}

	sent, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.logger.Debug().
		Str("email_id", sent.Id).
		Str("template", string(templateName)).
		Msg("email sent")

	return nil
}
