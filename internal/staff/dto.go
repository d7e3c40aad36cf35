package staff

// CreateAdminRequest carries the fields to create a staff login.
type CreateAdminRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,max=20"`
	Password string `json:"password" validate:"required,min=8"`
	Role     Role   `json:"role" validate:"required,oneof=admin manager staff"`
}

// UpdateAdminRequest carries optional staff fields; nil means unchanged.
type UpdateAdminRequest struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,max=120"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Password   *string `json:"password,omitempty" validate:"omitempty,min=8"`
	Role       *Role   `json:"role,omitempty" validate:"omitempty,oneof=admin manager staff"`
	IsVerified *bool   `json:"is_verified,omitempty"`
}

// ListAdminsRequest narrows and paginates the staff listing.
type ListAdminsRequest struct {
	Search string
	Role   *Role
	Page   int
	Limit  int
}
