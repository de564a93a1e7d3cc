// Package razorpay is a thin client for the Razorpay orders API plus the
// payment-signature check used at checkout.
package razorpay

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const defaultBaseURL = "https://api.razorpay.com/v1"

type Client struct {
	KeyID      string
	KeySecret  string
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(keyID, keySecret string) *Client {
	return &Client{
		KeyID:      keyID,
		KeySecret:  keySecret,
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// GatewayOrder is the subset of the orders API response we use.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CreateOrder registers an order with the gateway. Amount is in paise.
func (cl *Client) CreateOrder(amount int64, currency string) (*GatewayOrder, error) {
	if currency == "" {
		currency = "INR"
	}
	body, err := json.Marshal(map[string]any{
		"amount":   amount,
		"currency": currency,
		"receipt":  "rcpt_" + uuid.NewString(),
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, cl.BaseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(cl.KeyID, cl.KeySecret)
	req.Header.Set("Content-Type", "application/json")

	res, err := cl.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("razorpay: create order failed with status %d", res.StatusCode)
	}

	var out GatewayOrder
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifySignature checks the checkout callback signature:
// hex(HMAC-SHA256(orderId + "|" + paymentId, keySecret)).
func (cl *Client) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(cl.KeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
