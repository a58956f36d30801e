// Package email renders embedded HTML templates and sends them through
// Resend.
package email

import (
	"bytes"
	"context"
	"fmt"

	"github.com/deppfellow/restaurant-backend/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

const defaultFrom = "Reservations <onboarding@resend.dev>"

type emailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type Client struct {
	emails emailSender
	from   string
	logger *zerolog.Logger
}

func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	from := cfg.Integration.EmailFrom
	if from == "" {
		from = defaultFrom
	}

	var emails emailSender
	if cfg.Integration.ResendAPIKey != "" {
		emails = resend.NewClient(cfg.Integration.ResendAPIKey).Emails
	}

	return &Client{
		emails: emails,
		from:   from,
		logger: logger,
	}
}

// Enabled reports whether a Resend API key was configured.
func (c *Client) Enabled() bool {
	return c.emails != nil
}

// Render executes a template into an HTML string.
func Render(name Template, data any) (string, error) {
	var body bytes.Buffer
	if err := parsed.ExecuteTemplate(&body, name.file(), data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", name)
	}
	return body.String(), nil
}

// SendEmail renders name with data and sends it to a single recipient.
// Without an API key the email is logged and dropped.
func (c *Client) SendEmail(ctx context.Context, to, subject string, name Template, data any) error {
	html, err := Render(name, data)
	if err != nil {
		return err
	}

	if !c.Enabled() {
		c.logger.Warn().
			Str("template", string(name)).
			Str("to", to).
			Msg("email provider not configured, skipping send")
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	if _, err := c.emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
