package rider

// RegisterRequest is the body of POST /api/riders (rider self-registration).
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Contact  string `json:"contact" validate:"required,max=30"`
	Age      int    `json:"age" validate:"gte=18,lte=70"`
	NidNo    string `json:"nid_no" validate:"max=30"`
	Region   string `json:"region" validate:"required,max=120"`
	District string `json:"district" validate:"required,max=120"`
}

// UpdateStatusRequest is the body of PATCH /api/riders/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending active deactivated"`
}
