package payment

import (
	"time"
)

// Payment is one settlement ledger row. Rows are written exactly once, inside
// the same transaction that flips the parcel to paid, and never updated.
type Payment struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ParcelID        uint      `gorm:"not null;index" json:"parcel_id"`
	Email           string    `gorm:"type:varchar(255);not null;index" json:"email"`
	Amount          float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentMethodID string    `gorm:"type:varchar(120)" json:"payment_method_id"`
	TransactionID   string    `gorm:"type:varchar(120);not null;uniqueIndex" json:"transaction_id"`
	PaidAt          time.Time `gorm:"not null" json:"paid_at"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}
