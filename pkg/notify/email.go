// Package notify holds the outbound email/SMS clients. Both are best-effort
// side channels: callers log failures and move on.
package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const brevoEndpoint = "https://api.brevo.com/v3/smtp/email"

// BrevoClient sends transactional email through the Brevo REST API.
type BrevoClient struct {
	APIKey     string
	Sender     string
	Endpoint   string
	HTTPClient *http.Client
}

func NewBrevoClient(apiKey, sender string) *BrevoClient {
	return &BrevoClient{
		APIKey:     apiKey,
		Sender:     sender,
		Endpoint:   brevoEndpoint,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (b *BrevoClient) SendEmail(to, subject, htmlBody, textBody string) error {
	payload, err := json.Marshal(map[string]any{
		"sender":      map[string]string{"email": b.Sender, "name": "TiffinHub"},
		"to":          []map[string]string{{"email": to}},
		"subject":     subject,
		"htmlContent": htmlBody,
		"textContent": textBody,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, b.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", b.APIKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := b.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		return fmt.Errorf("brevo: send failed with status %d", res.StatusCode)
	}
	return nil
}
