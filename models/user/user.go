package user

import (
	"time"
)

// User is the local account record, upserted by email on first
// authenticated login. Identity itself lives at the external provider;
// this row only carries the role and login bookkeeping.
type User struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Email     string     `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Name      string     `gorm:"type:varchar(255)" json:"name"`
	Role      string     `gorm:"type:varchar(20);not null;default:user" json:"role"`
	LastLogIn *time.Time `json:"last_log_in,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
