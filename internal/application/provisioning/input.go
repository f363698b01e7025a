package provisioning

import (
	"strings"

	"github.com/society/backend/internal/domain/member"
)

// ProvisionInput is a provisioning request as received by the function.
// MemberData is a pointer so an absent object can be told from an empty one.
type ProvisionInput struct {
	Email      string           `json:"email" validate:"required"`
	Phone      *string          `json:"phone"`
	FullName   string           `json:"fullName" validate:"required"`
	SocietyID  string           `json:"societyId" validate:"required"`
	MemberData *MemberDataInput `json:"memberData" validate:"required"`
}

// MemberDataInput holds the optional profile columns. Nil fields take the
// server defaults.
type MemberDataInput struct {
	FamilyMembers    []string `json:"family_members"`
	Role             *string  `json:"role"`
	IsOwner          *bool    `json:"is_owner"`
	UnitNumber       *string  `json:"unit_number"`
	EmergencyContact *string  `json:"emergency_contact"`
	VehicleDetails   *string  `json:"vehicle_details"`
	IsActive         *bool    `json:"is_active"`
}

// normalizedEmail is the lookup key for the member
func (in ProvisionInput) normalizedEmail() string {
	return strings.ToLower(strings.TrimSpace(in.Email))
}

// details returns the profile columns with defaults applied and free text
// passed through clean.
func (in ProvisionInput) details(clean func(string) string) member.Details {
	md := in.MemberData
	d := member.Details{
		Phone:    cleanOptional(in.Phone, clean),
		Role:     member.DefaultRole,
		IsActive: true,
	}
	if md == nil {
		return d
	}
	if md.Role != nil && strings.TrimSpace(*md.Role) != "" {
		d.Role = clean(*md.Role)
	}
	if md.IsOwner != nil {
		d.IsOwner = *md.IsOwner
	}
	if md.IsActive != nil {
		d.IsActive = *md.IsActive
	}
	d.UnitNumber = cleanOptional(md.UnitNumber, clean)
	d.EmergencyContact = cleanOptional(md.EmergencyContact, clean)
	d.VehicleDetails = cleanOptional(md.VehicleDetails, clean)
	for _, fm := range md.FamilyMembers {
		if v := clean(fm); v != "" {
			d.FamilyMembers = append(d.FamilyMembers, v)
		}
	}
	return d
}

func cleanOptional(s *string, clean func(string) string) *string {
	if s == nil {
		return nil
	}
	v := clean(*s)
	if v == "" {
		return nil
	}
	return &v
}
