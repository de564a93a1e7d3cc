package notify

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TwilioClient sends SMS through the Twilio messages API.
type TwilioClient struct {
	AccountSID string
	AuthToken  string
	From       string
	Endpoint   string
	HTTPClient *http.Client
}

func NewTwilioClient(accountSID, authToken, from string) *TwilioClient {
	return &TwilioClient{
		AccountSID: accountSID,
		AuthToken:  authToken,
		From:       from,
		Endpoint:   fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", accountSID),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (t *TwilioClient) SendSMS(to, message string) error {
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", t.From)
	form.Set("Body", message)

	req, err := http.NewRequest(http.MethodPost, t.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(t.AccountSID, t.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := t.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		return fmt.Errorf("twilio: send failed with status %d", res.StatusCode)
	}
	return nil
}
