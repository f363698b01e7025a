package onboarding

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Session is the caller's read-only sign-in context
type Session struct {
	CurrentUserID    string
	CurrentSocietyID string
}

// MemberData is the memberData object of the provisioning request
type MemberData struct {
	FamilyMembers    []string `json:"family_members"`
	Role             string   `json:"role"`
	IsOwner          bool     `json:"is_owner"`
	UnitNumber       *string  `json:"unit_number"`
	EmergencyContact *string  `json:"emergency_contact"`
	VehicleDetails   *string  `json:"vehicle_details"`
	IsActive         bool     `json:"is_active"`
}

// ProvisioningRequest is the payload sent to the provisioning function
type ProvisioningRequest struct {
	Email      string     `json:"email"`
	Phone      *string    `json:"phone"`
	FullName   string     `json:"fullName"`
	SocietyID  string     `json:"societyId"`
	MemberData MemberData `json:"memberData"`
}

// Operation tags what the provisioning function did
type Operation string

const (
	OperationCreated Operation = "created"
	OperationUpdated Operation = "updated"
)

// ProvisioningResult is the provisioning function's success body
type ProvisioningResult struct {
	Status            string    `json:"status"`
	Operation         Operation `json:"operation"`
	UserID            string    `json:"userId"`
	TemporaryPassword *string   `json:"temporaryPassword"`
}

const (
	residentRole              = "resident"
	emergencyContactSeparator = " - "
)

// NormalizeOptions carries the society context supplied by the caller
type NormalizeOptions struct {
	SocietyID string
	Session   Session
}

// Normalize turns a validated draft into the provisioning payload. The
// society is the draft's own when set, then opts.SocietyID, then the
// session's current society. It has no side effects.
func Normalize(d *MemberDraft, opts NormalizeOptions) (*ProvisioningRequest, error) {
	society := firstNonBlank(d.SocietyID, opts.SocietyID, opts.Session.CurrentSocietyID)
	if society == "" {
		return nil, &ConfigurationError{Reason: "no society is available for this member"}
	}

	return &ProvisioningRequest{
		Email:     strings.ToLower(trim(d.Email)),
		Phone:     optional(d.Mobile),
		FullName:  FullName(d.FirstName, d.MiddleName, d.LastName),
		SocietyID: society,
		MemberData: MemberData{
			FamilyMembers:    FormatFamilyMembers(d.FamilyMembers),
			Role:             residentRole,
			IsOwner:          d.MembershipType == MembershipOwner,
			UnitNumber:       optional(d.UnitNumber),
			EmergencyContact: JoinEmergencyContact(d.EmergencyContactName, d.EmergencyContactNumber),
			VehicleDetails:   JoinVehicleNumbers(d.VehicleNumbers),
			IsActive:         true,
		},
	}, nil
}

// FullName joins the name parts with single spaces
func FullName(parts ...string) string {
	return CollapseWhitespace(strings.Join(parts, " "))
}

// CollapseWhitespace NFC-normalizes s and squeezes whitespace runs to one space
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

// FormatFamilyMembers renders "<name> (<relation>)" for rows with a name.
// It returns nil rather than an empty slice when no row qualifies.
func FormatFamilyMembers(members []FamilyMember) []string {
	var out []string
	for _, m := range members {
		name := CollapseWhitespace(m.Name)
		if name == "" {
			continue
		}
		out = append(out, name+" ("+CollapseWhitespace(m.Relation)+")")
	}
	return out
}

// JoinVehicleNumbers comma-joins the non-empty trimmed numbers, or nil
func JoinVehicleNumbers(numbers []string) *string {
	var kept []string
	for _, n := range numbers {
		if n = trim(n); n != "" {
			kept = append(kept, n)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	joined := strings.Join(kept, ", ")
	return &joined
}

// JoinEmergencyContact joins the present parts of name and number, or nil
func JoinEmergencyContact(name, number string) *string {
	var parts []string
	if name = trim(name); name != "" {
		parts = append(parts, name)
	}
	if number = trim(number); number != "" {
		parts = append(parts, number)
	}
	if len(parts) == 0 {
		return nil
	}
	joined := strings.Join(parts, emergencyContactSeparator)
	return &joined
}

func optional(s string) *string {
	s = trim(s)
	if s == "" {
		return nil
	}
	return &s
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = trim(v); v != "" {
			return v
		}
	}
	return ""
}
