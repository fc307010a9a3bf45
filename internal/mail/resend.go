// ABOUTME: Inquiry notification emails sent through the Resend REST API
// ABOUTME: Best-effort delivery; failures are logged and never fail the inquiry

package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/apexforge/studio/internal/store"
)

// DefaultEndpoint is the Resend send-email endpoint.
const DefaultEndpoint = "https://api.resend.com/emails"

// Notifier is notified when a visitor submits an inquiry.
type Notifier interface {
	InquiryReceived(ctx context.Context, inquiry *store.Inquiry) error
}

// Config holds Resend API settings. An empty APIKey disables sending.
type Config struct {
	APIKey   string
	From     string
	To       string
	Endpoint string // defaults to DefaultEndpoint
}

// ResendNotifier sends inquiry notifications through the Resend API.
type ResendNotifier struct {
	cfg    Config
	client *http.Client
	logger *slog.Logger
}

// NewResendNotifier creates a notifier for the given Resend configuration.
func NewResendNotifier(cfg Config) *ResendNotifier {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	return &ResendNotifier{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: slog.Default().With("component", "mail"),
	}
}

// sendRequest is the JSON body for POST /emails.
type sendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// InquiryReceived sends the notification email for a new inquiry. A
// missing API key disables sending with a warning. Errors are returned
// for logging; callers must not fail the inquiry on them.
func (n *ResendNotifier) InquiryReceived(ctx context.Context, inquiry *store.Inquiry) error {
	if n.cfg.APIKey == "" {
		n.logger.Warn("resend API key not configured, email not sent", "inquiry_id", inquiry.ID)
		return nil
	}

	body, err := json.Marshal(sendRequest{
		From:    n.cfg.From,
		To:      n.cfg.To,
		Subject: fmt.Sprintf("New Contact Inquiry from %s", inquiry.Name),
		HTML:    renderInquiryHTML(inquiry),
	})
	if err != nil {
		return fmt.Errorf("encoding email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("resend API returned status %d", resp.StatusCode)
	}

	n.logger.Info("email sent for inquiry", "inquiry_id", inquiry.ID)
	return nil
}

// renderInquiryHTML produces the notification body. Visitor-supplied
// fields are escaped before interpolation.
func renderInquiryHTML(inquiry *store.Inquiry) string {
	return fmt.Sprintf(`
<html>
  <body style="font-family: 'Inter', sans-serif; background: #fff; color: #000; padding: 40px;">
    <h1 style="font-family: 'Playfair Display', serif; font-size: 32px; margin-bottom: 20px;">New Inquiry</h1>
    <div style="border-left: 2px solid #000; padding-left: 20px; margin: 30px 0;">
      <p><strong>Name:</strong> %s</p>
      <p><strong>Email:</strong> %s</p>
      <p><strong>Date:</strong> %s</p>
    </div>
    <div style="margin-top: 30px; padding: 20px; background: #f5f5f5;">
      <p style="font-size: 14px; line-height: 1.6;"><strong>Message:</strong></p>
      <p style="font-size: 14px; line-height: 1.6;">%s</p>
    </div>
  </body>
</html>`,
		html.EscapeString(inquiry.Name),
		html.EscapeString(inquiry.Email),
		inquiry.CreatedAt.Format("January 2, 2006 at 15:04 UTC"),
		html.EscapeString(inquiry.Message),
	)
}
