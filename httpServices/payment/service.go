package payment

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/SaddamHosen42/zap-shift-server/apperrors"
)

const defaultBaseURL = "https://api.stripe.com"

// Client talks to the card processor's payment-intent API. Failures are
// surfaced as GatewayError and never retried here.
type Client struct {
	httpClient *http.Client
	baseURL    string
	secretKey  string
}

// NewClient builds a processor client. An empty baseURL selects the live
// endpoint; tests point it at a local stub.
func NewClient(baseURL, secretKey string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:   baseURL,
		secretKey: secretKey,
	}
}

// CreatePaymentIntent opens a card payment intent for the given amount in
// minor units (USD cents) and returns the client secret the frontend needs
// to confirm it.
func (c *Client) CreatePaymentIntent(amountMinorUnits int64) (string, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountMinorUnits, 10))
	form.Set("currency", "usd")
	form.Add("payment_method_types[]", "card")

	httpReq, err := http.NewRequest(http.MethodPost,
		c.baseURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return "", apperrors.Ef(apperrors.ErrGateway, "build request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", apperrors.Ef(apperrors.ErrGateway, "request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.Ef(apperrors.ErrGateway, "read response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		var ge gatewayError
		if json.Unmarshal(body, &ge) == nil && ge.Error.Message != "" {
			return "", apperrors.Ef(apperrors.ErrGateway,
				"processor returned %d: %s", resp.StatusCode, ge.Error.Message)
		}
		return "", apperrors.Ef(apperrors.ErrGateway,
			"processor returned %d", resp.StatusCode)
	}

	var intent IntentResponse
	if err := json.Unmarshal(body, &intent); err != nil {
		return "", apperrors.Ef(apperrors.ErrGateway, "decode response: %v", err)
	}
	if intent.ClientSecret == "" {
		return "", apperrors.E(apperrors.ErrGateway, "processor response carries no client secret")
	}

	return intent.ClientSecret, nil
}
