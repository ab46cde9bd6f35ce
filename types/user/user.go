package user

// UpsertRequest is the body of POST /api/users, sent on every login.
// The email is taken from the verified principal, never from the body.
type UpsertRequest struct {
	Name string `json:"name" validate:"max=255"`
}

// UpdateRoleRequest is the body of PATCH /api/users/:id/role.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin rider"`
}
