package member

import (
	"context"

	"github.com/google/uuid"
)

// ProfileIdentifiers are the only columns read by the provisioning lookup
type ProfileIdentifiers struct {
	ID     uuid.UUID
	UserID *uuid.UUID
}

// HasUsableUserID reports whether the row is linked to an identity
func (i ProfileIdentifiers) HasUsableUserID() bool {
	return i.UserID != nil && *i.UserID != uuid.Nil
}

// ProfileRepository defines the profile store.
// Lookups return shared.ErrNotFound when no row matches.
type ProfileRepository interface {
	// FindIdentifiersByEmail matches email case-insensitively
	FindIdentifiersByEmail(ctx context.Context, email string) (*ProfileIdentifiers, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	FindByEmail(ctx context.Context, email string) (*Profile, error)
	Create(ctx context.Context, profile *Profile) error
	// Update writes profile if its stored version is one below profile's
	Update(ctx context.Context, profile *Profile) error
}
