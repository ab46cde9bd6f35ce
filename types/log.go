package types

import "time"

// LogEntry is an in-flight HTTP audit record, queued for asynchronous
// persistence.
type LogEntry struct {
	Method          string
	URL             string
	ClientIP        string
	Principal       string
	RequestBody     string
	ResponseBody    string
	RequestHeaders  string
	ResponseHeaders string
	StatusCode      int
	CreatedAt       time.Time
}
