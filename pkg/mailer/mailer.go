package mailer

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/config"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/logger"
)

// Mailer sends transactional email. Services depend on the interface so
// tests can stub delivery.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Message is a plain-text email.
type Message struct {
	To      string
	Subject string
	Text    string
}

// APIClient is a resty-backed implementation of Mailer for the Resend
// HTTP API.
type APIClient struct {
	httpClient *resty.Client
	from       string
}

// NewClient builds a Resend API client from the mail configuration.
func NewClient(cfg config.MailConfig) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.ResendAPIKey)).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{
		httpClient: restyClient,
		from:       cfg.From,
	}
}

type sendEmailResponse struct {
	ID string `json:"id"`
}

// apiError mirrors the Resend error payload.
type apiError struct {
	StatusCode int    `json:"statusCode"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}

func (c *APIClient) Send(ctx context.Context, msg Message) error {
	payload := map[string]any{
		"from":    c.from,
		"to":      []string{msg.To},
		"subject": msg.Subject,
		"text":    msg.Text,
	}

	result := new(sendEmailResponse)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(result).
		SetError(apiErr).
		Post("/emails")
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := ""
		code := resp.StatusCode()
		if apiErr != nil {
			message = apiErr.Message
			if apiErr.StatusCode != 0 {
				code = apiErr.StatusCode
			}
		}
		return fmt.Errorf("resend api error: code=%d, message=%s", code, message)
	}

	return nil
}

// LogMailer writes messages to the log instead of delivering them. It
// backs local development when no Resend API key is configured.
type LogMailer struct {
	logg *logger.Logger
}

// NewLogMailer builds a Mailer that only logs.
func NewLogMailer(logg *logger.Logger) *LogMailer {
	return &LogMailer{logg: logg}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	ctx = m.logg.WithFields(ctx, map[string]any{
		"to":      msg.To,
		"subject": msg.Subject,
		"body":    msg.Text,
	})
	m.logg.Info(ctx, "mail delivery skipped, no api key configured")
	return nil
}

// FromConfig picks the API client when a key is configured and the log
// mailer otherwise.
func FromConfig(cfg config.MailConfig, logg *logger.Logger) Mailer {
	if cfg.ResendAPIKey == "" {
		return NewLogMailer(logg)
	}
	return NewClient(cfg)
}
