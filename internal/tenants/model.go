package tenants

import "time"

// Tenant is a business account. Every other entity in the system hangs
// off a tenant id; the tenant itself is the only unscoped entity.
type Tenant struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RoleOwner is the role recorded on tenant accounts.
const RoleOwner = "owner"
