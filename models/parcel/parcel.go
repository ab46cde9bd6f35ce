package parcel

import (
	"time"
)

// Parcel is a shipment request. Delivery and payment state advance
// independently: delivery via rider assignment, payment via settlement.
type Parcel struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	TrackingID string `gorm:"type:varchar(64);not null;uniqueIndex" json:"tracking_id"`
	Type       string `gorm:"type:varchar(30);not null" json:"type"`
	Title      string `gorm:"type:varchar(255);not null" json:"title"`

	SenderName      string `gorm:"type:varchar(255);not null" json:"sender_name"`
	SenderContact   string `gorm:"type:varchar(30);not null" json:"sender_contact"`
	SenderRegion    string `gorm:"type:varchar(120)" json:"sender_region"`
	SenderCenter    string `gorm:"type:varchar(120)" json:"sender_center"`
	SenderAddress   string `gorm:"type:text" json:"sender_address"`
	ReceiverName    string `gorm:"type:varchar(255);not null" json:"receiver_name"`
	ReceiverContact string `gorm:"type:varchar(30);not null" json:"receiver_contact"`
	ReceiverRegion  string `gorm:"type:varchar(120)" json:"receiver_region"`
	ReceiverCenter  string `gorm:"type:varchar(120)" json:"receiver_center"`
	ReceiverAddress string `gorm:"type:text" json:"receiver_address"`

	Weight float64 `gorm:"type:decimal(10,2)" json:"weight"`
	Cost   float64 `gorm:"type:decimal(10,2)" json:"cost"`

	CreatedBy      string `gorm:"type:varchar(255);not null;index" json:"created_by"`
	PaymentStatus  string `gorm:"type:varchar(20);not null;index" json:"payment_status"`
	DeliveryStatus string `gorm:"type:varchar(20);not null;index" json:"delivery_status"`

	AssignedRiderID   *uint  `gorm:"index" json:"assigned_rider_id,omitempty"`
	AssignedRiderName string `gorm:"type:varchar(255)" json:"assigned_rider_name,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

const (
	DeliveryStatusPending   = "pending"
	DeliveryStatusInTransit = "in_transit"
	DeliveryStatusDelivered = "delivered"
)
