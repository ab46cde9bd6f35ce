package rider

import (
	"time"
)

// Rider is a self-registered delivery rider. Admin approval flips Status to
// active and promotes the matching User to the rider role; Assignment flips
// WorkStatus to in_delivery.
type Rider struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Email    string `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Contact  string `gorm:"type:varchar(30);not null" json:"contact"`
	Age      int    `gorm:"type:int" json:"age"`
	NidNo    string `gorm:"type:varchar(30)" json:"nid_no"`
	Region   string `gorm:"type:varchar(120);not null" json:"region"`
	District string `gorm:"type:varchar(120);not null;index" json:"district"`

	Status     string `gorm:"type:varchar(20);not null;index" json:"status"`
	WorkStatus string `gorm:"type:varchar(20);not null;index" json:"work_status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

const (
	StatusPending     = "pending"
	StatusActive      = "active"
	StatusDeactivated = "deactivated"
)

const (
	WorkStatusAvailable  = "available"
	WorkStatusInDelivery = "in_delivery"
)

// IsValidStatus reports whether s is an assignable rider status.
func IsValidStatus(s string) bool {
	return s == StatusPending || s == StatusActive || s == StatusDeactivated
}
