package parcel

// CreateRequest is the body of POST /api/parcels.
type CreateRequest struct {
	Type            string  `json:"type" validate:"required,oneof=document non-document"`
	Title           string  `json:"title" validate:"required,max=255"`
	SenderName      string  `json:"sender_name" validate:"required,max=255"`
	SenderContact   string  `json:"sender_contact" validate:"required,max=30"`
	SenderRegion    string  `json:"sender_region" validate:"max=120"`
	SenderCenter    string  `json:"sender_center" validate:"max=120"`
	SenderAddress   string  `json:"sender_address" validate:"max=2000"`
	ReceiverName    string  `json:"receiver_name" validate:"required,max=255"`
	ReceiverContact string  `json:"receiver_contact" validate:"required,max=30"`
	ReceiverRegion  string  `json:"receiver_region" validate:"max=120"`
	ReceiverCenter  string  `json:"receiver_center" validate:"max=120"`
	ReceiverAddress string  `json:"receiver_address" validate:"max=2000"`
	Weight          float64 `json:"weight" validate:"gte=0"`
	Cost            float64 `json:"cost" validate:"gte=0"`
}

// AssignRequest is the body of PATCH /api/parcels/:id/assign.
type AssignRequest struct {
	RiderID uint `json:"rider_id" validate:"required"`
}
