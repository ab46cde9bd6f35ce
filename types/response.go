package types

// ApiResponse is the envelope every handler returns.
type ApiResponse struct {
	Message string      `json:"message"`
	Status  int         `json:"status"`
	Data    interface{} `json:"data,omitempty"`
}
