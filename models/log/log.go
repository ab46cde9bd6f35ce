package log

import (
	"time"
)

// Log is one persisted HTTP request/response audit row.
type Log struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Method          string    `gorm:"type:varchar(10);not null" json:"method"`
	URL             string    `gorm:"type:text;not null" json:"url"`
	ClientIP        string    `gorm:"type:varchar(45)" json:"client_ip"`
	Principal       string    `gorm:"type:varchar(255);index" json:"principal"`
	RequestBody     string    `gorm:"type:text" json:"request_body"`
	RequestHeaders  string    `gorm:"type:text" json:"request_headers"`
	ResponseBody    string    `gorm:"type:text" json:"response_body"`
	ResponseHeaders string    `gorm:"type:text" json:"response_headers"`
	StatusCode      int       `gorm:"type:int" json:"status_code"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName keeps audit rows under a name that cannot collide with the
// domain tables.
func (Log) TableName() string {
	return "api_logs"
}
