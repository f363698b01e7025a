package onboarding

import (
	"time"

	"github.com/shopspring/decimal"
)

// MembershipType is how the member holds the unit
type MembershipType string

const (
	MembershipOwner     MembershipType = "owner"
	MembershipAssociate MembershipType = "associate"
	MembershipTenant    MembershipType = "tenant"
)

// IsValid reports whether t is a known membership type
func (t MembershipType) IsValid() bool {
	switch t {
	case MembershipOwner, MembershipAssociate, MembershipTenant:
		return true
	}
	return false
}

// FamilyMember is one row of the family step
type FamilyMember struct {
	Name        string `json:"name"`
	Relation    string `json:"relation"`
	DateOfBirth Date   `json:"date_of_birth"`
}

// ParkingSlot is an allotted parking space
type ParkingSlot struct {
	Type       string `json:"type"`
	SlotNumber string `json:"slot_number"`
}

// Nominee receives Percentage of the member's share on transfer
type Nominee struct {
	Name       string          `json:"name"`
	Address    string          `json:"address"`
	Percentage decimal.Decimal `json:"percentage"`
}

// DocumentRef points at an uploaded onboarding document
type DocumentRef struct {
	Kind      string `json:"kind"`
	ObjectKey string `json:"object_key"`
	FileName  string `json:"file_name"`
}

// MemberDraft is the in-progress wizard form. Every field of every step
// lives here; which ones are checked depends on the step being validated.
type MemberDraft struct {
	// Personal
	Salutation         string `json:"salutation"`
	FirstName          string `json:"first_name"`
	MiddleName         string `json:"middle_name"`
	LastName           string `json:"last_name"`
	ResidentialAddress string `json:"residential_address"`
	OfficeAddress      string `json:"office_address"`
	Mobile             string `json:"mobile"`
	Email              string `json:"email"`
	DateOfBirth        Date   `json:"date_of_birth"`
	NationalID         string `json:"national_id"`
	IsMinor            bool   `json:"is_minor"`
	GuardianName       string `json:"guardian_name"`
	GuardianRelation   string `json:"guardian_relation"`

	// Family
	FamilyMembers []FamilyMember `json:"family_members"`

	// Property
	SocietyID           string         `json:"society_id,omitempty"`
	UnitNumber          string         `json:"unit_number"`
	MembershipType      MembershipType `json:"membership_type"`
	DateOfPossession    Date           `json:"date_of_possession"`
	DateOfShareTransfer Date           `json:"date_of_share_transfer"`
	ParkingSlots        []ParkingSlot  `json:"parking_slots"`

	// Membership
	DateOfAdmission        Date            `json:"date_of_admission"`
	EntranceFee            decimal.Decimal `json:"entrance_fee"`
	ShareCertificateNumber string          `json:"share_certificate_number"`
	Nominees               []Nominee       `json:"nominees"`

	// Additional
	EmergencyContactName   string        `json:"emergency_contact_name"`
	EmergencyContactNumber string        `json:"emergency_contact_number"`
	VehicleNumbers         []string      `json:"vehicle_numbers"`
	Documents              []DocumentRef `json:"documents"`
	AcceptTerms            bool          `json:"accept_terms"`
	AcceptPrivacy          bool          `json:"accept_privacy"`
}

// NewMemberDraft returns an empty draft with one blank family row
func NewMemberDraft() *MemberDraft {
	return &MemberDraft{
		MembershipType: MembershipOwner,
		FamilyMembers:  []FamilyMember{{}},
	}
}

// SetDateOfBirth stores dob and recomputes the minor flag against now
func (d *MemberDraft) SetDateOfBirth(dob Date, now time.Time) {
	d.DateOfBirth = dob
	d.RefreshDerived(now)
}

// RefreshDerived recomputes fields derived from other fields
func (d *MemberDraft) RefreshDerived(now time.Time) {
	d.IsMinor = IsMinorOn(d.DateOfBirth, now)
}

// NomineeTotal returns the sum of all nominee percentages
func (d *MemberDraft) NomineeTotal() decimal.Decimal {
	return NomineeTotal(d.Nominees)
}

// AddFamilyMember appends a blank family row
func (d *MemberDraft) AddFamilyMember() {
	d.FamilyMembers = append(d.FamilyMembers, FamilyMember{})
}

// RemoveFamilyMember drops row i, keeping at least one row
func (d *MemberDraft) RemoveFamilyMember(i int) {
	if i < 0 || i >= len(d.FamilyMembers) || len(d.FamilyMembers) == 1 {
		return
	}
	d.FamilyMembers = append(d.FamilyMembers[:i], d.FamilyMembers[i+1:]...)
}

// Clone returns a deep copy of the draft
func (d *MemberDraft) Clone() *MemberDraft {
	c := *d
	c.FamilyMembers = append([]FamilyMember(nil), d.FamilyMembers...)
	c.ParkingSlots = append([]ParkingSlot(nil), d.ParkingSlots...)
	c.Nominees = append([]Nominee(nil), d.Nominees...)
	c.VehicleNumbers = append([]string(nil), d.VehicleNumbers...)
	c.Documents = append([]DocumentRef(nil), d.Documents...)
	return &c
}
