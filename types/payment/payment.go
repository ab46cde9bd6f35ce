package payment

// CreateIntentRequest is the body of POST /api/payments/create-intent.
// Amount is in minor units (cents); the gateway currency is fixed to USD.
type CreateIntentRequest struct {
	AmountCents int64 `json:"amount_cents" validate:"required,gt=0"`
}

// RecordRequest is the body of POST /api/payments and settles one parcel.
type RecordRequest struct {
	ParcelID        string  `json:"parcel_id" validate:"required"`
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	PaymentMethodID string  `json:"payment_method_id" validate:"max=120"`
	TransactionID   string  `json:"transaction_id" validate:"required,max=120"`
}
