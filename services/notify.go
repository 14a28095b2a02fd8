package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/models"
)

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// NotifyNewMessage emails the site owner when a contact message arrives.
// Returns nil when notifications are not configured.
//
// Requires environment variables:
//   - RESEND_API_KEY: Resend API key
//   - CONTACT_NOTIFY_EMAIL: recipient address
//
// Optional:
//   - RESEND_FROM_EMAIL: sender address, e.g. "Portfolio <onboarding@resend.dev>"
func NotifyNewMessage(message *models.ContactMessage) error {
	cfg := config.New()

	apiKey := config.GetString(cfg, "RESEND_API_KEY", "")
	recipient := config.GetString(cfg, "CONTACT_NOTIFY_EMAIL", "")
	if apiKey == "" || recipient == "" {
		log.Debug().Msg("contact notifications not configured, skipping")
		return nil
	}

	subject := fmt.Sprintf("New contact message: %s", message.Subject)
	body := fmt.Sprintf("From: %s <%s>\n\n%s", message.Name, message.Email, message.Message)

	return SendEmail(subject, body, []string{recipient})
}

// SendEmail sends a plain-text email through the Resend API.
func SendEmail(subject, body string, recipients []string) error {
	if len(recipients) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}

	cfg := config.New()

	apiKey := config.GetString(cfg, "RESEND_API_KEY", "")
	if apiKey == "" {
		return fmt.Errorf("RESEND_API_KEY environment variable is required")
	}
	fromEmail := config.GetString(cfg, "RESEND_FROM_EMAIL", "Portfolio <onboarding@resend.dev>")

	payload := ResendEmailRequest{
		From:    fromEmail,
		To:      recipients,
		Subject: subject,
		Text:    body,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error marshaling email request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, "https://api.resend.com/emails", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		var resendErr ResendErrorResponse
		if err := json.Unmarshal(respBody, &resendErr); err == nil && resendErr.Message != "" {
			return fmt.Errorf("resend API error (%d): %s", resp.StatusCode, resendErr.Message)
		}
		return fmt.Errorf("resend API returned status %d", resp.StatusCode)
	}

	var resendResp ResendEmailResponse
	if err := json.NewDecoder(resp.Body).Decode(&resendResp); err == nil {
		log.Info().Str("emailID", resendResp.ID).Msg("Notification email sent")
	}

	return nil
}
