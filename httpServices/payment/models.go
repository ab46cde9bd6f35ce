package payment

// IntentResponse is the subset of the processor's payment-intent object this
// service reads.
type IntentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

// gatewayError is the processor's error envelope.
type gatewayError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}
