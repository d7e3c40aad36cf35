package shared

import "context"

// ActorKind distinguishes a tenant owner login from a staff login.
type ActorKind string

const (
	ActorTenant ActorKind = "tenant"
	ActorStaff  ActorKind = "staff"
)

// Identity is the authenticated caller resolved from the auth token.
// TenantID is the partition key every repository query must filter on.
type Identity struct {
	TenantID int64
	ActorID  int64
	Kind     ActorKind
	Role     string
}

type identityContextKey struct{}

// ContextWithIdentity stores the resolved identity in context.
func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext extracts the identity from context, nil when absent.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityContextKey{}).(*Identity)
	return id
}
