package tracking

import (
	"time"
)

// TrackingLog is one append-only event on a parcel's tracking timeline.
// ParcelID is optional; when present it must reference an existing parcel.
type TrackingLog struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TrackingID string    `gorm:"type:varchar(64);not null;index" json:"tracking_id"`
	ParcelID   *uint     `gorm:"index" json:"parcel_id,omitempty"`
	Status     string    `gorm:"type:varchar(50);not null" json:"status"`
	Message    string    `gorm:"type:text" json:"message"`
	UpdatedBy  string    `gorm:"type:varchar(255)" json:"updated_by"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Well-known tracking statuses written by the service itself. Callers may
// append other statuses (e.g. warehouse scans) freely.
const (
	StatusSubmitted = "parcel_submitted"
	StatusAssigned  = "rider_assigned"
	StatusDelivered = "delivered"
)
