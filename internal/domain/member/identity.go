package member

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Identity is the identity platform's sign-in record for a member
type Identity struct {
	ID             uuid.UUID
	Email          string
	Phone          string
	EmailConfirmed bool
	Metadata       map[string]any
	CreatedAt      time.Time
}

// NewIdentity carries the fields used to create a sign-in identity
type NewIdentity struct {
	Email        string
	Password     string
	Phone        string
	EmailConfirm bool
	Metadata     map[string]any
}

// IdentityUpdate lists the identity fields to change; nil fields are kept
type IdentityUpdate struct {
	Phone        *string
	Password     *string
	EmailConfirm *bool
	Metadata     map[string]any
}

// IdentityAdmin is the privileged identity-management API of the platform.
// FindUserByEmail returns shared.ErrNotFound when no identity matches.
type IdentityAdmin interface {
	CreateUser(ctx context.Context, identity NewIdentity) (*Identity, error)
	UpdateUser(ctx context.Context, id uuid.UUID, update IdentityUpdate) (*Identity, error)
	FindUserByEmail(ctx context.Context, email string) (*Identity, error)
}
