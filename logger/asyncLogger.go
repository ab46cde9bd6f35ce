package logger

import (
	"log"

	"gorm.io/gorm"

	logModel "github.com/SaddamHosen42/zap-shift-server/models/log"
	"github.com/SaddamHosen42/zap-shift-server/types"
)

// AsyncLogger persists HTTP audit entries without blocking request handlers.
// Entries flow through a buffered channel into the api_logs table.
type AsyncLogger struct {
	db      *gorm.DB
	channel chan types.LogEntry
}

func NewAsyncLogger(db *gorm.DB) *AsyncLogger {
	return &AsyncLogger{
		db:      db,
		channel: make(chan types.LogEntry, 100),
	}
}

// ProcessLog drains the channel. Run it in its own goroutine.
func (l *AsyncLogger) ProcessLog() {
	for entry := range l.channel {
		row := logModel.Log{
			Method:          entry.Method,
			URL:             entry.URL,
			ClientIP:        entry.ClientIP,
			Principal:       entry.Principal,
			RequestBody:     entry.RequestBody,
			ResponseBody:    entry.ResponseBody,
			RequestHeaders:  entry.RequestHeaders,
			ResponseHeaders: entry.ResponseHeaders,
			StatusCode:      entry.StatusCode,
			CreatedAt:       entry.CreatedAt,
		}

		if err := l.db.Create(&row).Error; err != nil {
			log.Printf("failed to insert audit log entry: %v", err)
		}
	}
}

// Log queues an entry for persistence. Drops nothing: the channel is
// buffered and the writer keeps draining for the process lifetime.
func (l *AsyncLogger) Log(entry types.LogEntry) {
	l.channel <- entry
}
