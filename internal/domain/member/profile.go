// Package member holds the society member profile aggregate and the
// contracts of the stores it lives in.
package member

import (
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/society/backend/internal/domain/shared"
)

// DefaultRole is the role assigned to onboarded members.
const DefaultRole = "resident"

// Details are the profile columns a provisioning call may set.
type Details struct {
	Phone            *string
	Role             string
	IsOwner          bool
	UnitNumber       *string
	FamilyMembers    []string
	EmergencyContact *string
	VehicleDetails   *string
	IsActive         bool
}

// Profile is the durable record of a society member. Its ID is shared with
// the sign-in identity that was created for the member.
type Profile struct {
	shared.BaseAggregateRoot
	UserID    *uuid.UUID
	Email     string
	FullName  string
	SocietyID string
	Details
}

// NewProfile creates a profile linked to the identity userID.
func NewProfile(userID uuid.UUID, email, fullName, societyID string, details Details) (*Profile, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "Profile requires a user id")
	}
	if err := ValidateFields(email, fullName, societyID); err != nil {
		return nil, err
	}

	uid := userID
	p := &Profile{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(shared.NewBaseEntityWithID(userID)),
		UserID:            &uid,
		Email:             strings.ToLower(strings.TrimSpace(email)),
		FullName:          strings.TrimSpace(fullName),
		SocietyID:         strings.TrimSpace(societyID),
		Details:           withDefaults(details),
	}
	return p, nil
}

// HasUsableUserID reports whether the profile is linked to an identity.
func (p *Profile) HasUsableUserID() bool {
	return p.UserID != nil && *p.UserID != uuid.Nil
}

// Refresh overwrites the member-supplied columns of an existing profile.
func (p *Profile) Refresh(fullName, societyID string, details Details) error {
	if err := validateFullName(fullName); err != nil {
		return err
	}
	if err := validateSocietyID(societyID); err != nil {
		return err
	}
	p.FullName = strings.TrimSpace(fullName)
	p.SocietyID = strings.TrimSpace(societyID)
	p.Details = withDefaults(details)
	p.MarkModified()
	return nil
}

// IdentityMetadata is the contact metadata mirrored onto the identity.
func (p *Profile) IdentityMetadata() map[string]any {
	md := map[string]any{
		"full_name":  p.FullName,
		"society_id": p.SocietyID,
		"role":       p.Role,
	}
	if p.Phone != nil {
		md["phone"] = *p.Phone
	}
	return md
}

// ValidateFields checks the identifying columns a new profile needs, so
// callers can reject a request before anything is written.
func ValidateFields(email, fullName, societyID string) error {
	if _, err := normalizeEmail(email); err != nil {
		return err
	}
	if err := validateFullName(fullName); err != nil {
		return err
	}
	return validateSocietyID(societyID)
}

func withDefaults(d Details) Details {
	if strings.TrimSpace(d.Role) == "" {
		d.Role = DefaultRole
	}
	if len(d.FamilyMembers) == 0 {
		d.FamilyMembers = nil
	}
	return d
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return email, nil
}

func validateFullName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Full name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Full name cannot exceed 200 characters")
	}
	return nil
}

func validateSocietyID(societyID string) error {
	if strings.TrimSpace(societyID) == "" {
		return shared.NewDomainError("INVALID_SOCIETY", "Society id cannot be empty")
	}
	return nil
}
