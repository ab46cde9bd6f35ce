package tracking

// AppendRequest is the body of POST /api/tracking.
type AppendRequest struct {
	TrackingID string `json:"tracking_id" validate:"required,max=64"`
	ParcelID   *uint  `json:"parcel_id,omitempty"`
	Status     string `json:"status" validate:"required,max=50"`
	Message    string `json:"message" validate:"max=2000"`
}
