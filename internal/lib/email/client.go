// Package email sends transactional email through Resend.
//
// Bodies are rendered from HTML templates embedded in the binary. When no
// Resend API key is configured the client is disabled and sending is a
// logged no-op.
package email

import (
	"bytes"
	"context"
	"fmt"

	"github.com/deppfellow/job-board/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

type Client struct {
	client *resend.Client // nil when disabled
	from   string
	logger *zerolog.Logger
}

func NewClient(cfg *config.IntegrationConfig, logger *zerolog.Logger) *Client {
	c := &Client{
		from:   cfg.EmailFrom,
		logger: logger,
	}
	if cfg.ResendAPIKey != "" {
		c.client = resend.NewClient(cfg.ResendAPIKey)
	}
	return c
}

// Enabled reports whether an API key was configured.
func (c *Client) Enabled() bool {
	return c.client != nil
}

// SendEmail renders templateName with data and sends it to a single recipient.
func (c *Client) SendEmail(ctx context.Context, to, subject string, templateName Template, data map[string]string) error {
	var body bytes.Buffer
	if err := Render(&body, templateName, data); err != nil {
		return err
	}

	if !c.Enabled() {
		c.logger.Debug().
			Str("to", to).
			Str("template", string(templateName)).
			Msg("email disabled, not sending")
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    body.String(),
	}

	sent, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return errors.Wrapf(err, "failed to send %s email", templateName)
	}

	c.logger.Info().
		Str("email_id", sent.Id).
		Str("template", string(templateName)).
		Msg("email sent")

	return nil
}

// SendWelcomeEmail greets a newly registered company.
func (c *Client) SendWelcomeEmail(ctx context.Context, to, companyName string) error {
	data := map[string]string{
		"CompanyName": companyName,
	}

	return c.SendEmail(ctx, to, fmt.Sprintf("Welcome to Job Board, %s!", companyName), TemplateWelcome, data)
}
