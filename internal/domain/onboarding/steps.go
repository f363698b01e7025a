package onboarding

import "fmt"

// Step is a wizard page index
type Step int

const (
	StepPersonal Step = iota
	StepFamily
	StepProperty
	StepDocuments
	StepReview
)

// StepCount is the number of wizard steps
const StepCount = 5

var stepNames = [StepCount]string{"Personal", "Family", "Property", "Documents", "Review"}

// String returns the step's display name
func (s Step) String() string {
	if !s.IsValid() {
		return fmt.Sprintf("Step(%d)", int(s))
	}
	return stepNames[s]
}

// IsValid reports whether s is one of the five steps
func (s Step) IsValid() bool {
	return s >= StepPersonal && s <= StepReview
}

// Field names a draft field by its JSON key
type Field string

const (
	FieldSalutation             Field = "salutation"
	FieldFirstName              Field = "first_name"
	FieldMiddleName             Field = "middle_name"
	FieldLastName               Field = "last_name"
	FieldResidentialAddress     Field = "residential_address"
	FieldOfficeAddress          Field = "office_address"
	FieldMobile                 Field = "mobile"
	FieldEmail                  Field = "email"
	FieldDateOfBirth            Field = "date_of_birth"
	FieldNationalID             Field = "national_id"
	FieldGuardianName           Field = "guardian_name"
	FieldGuardianRelation       Field = "guardian_relation"
	FieldFamilyMembers          Field = "family_members"
	FieldUnitNumber             Field = "unit_number"
	FieldMembershipType         Field = "membership_type"
	FieldDateOfPossession       Field = "date_of_possession"
	FieldDateOfShareTransfer    Field = "date_of_share_transfer"
	FieldParkingSlots           Field = "parking_slots"
	FieldDateOfAdmission        Field = "date_of_admission"
	FieldEntranceFee            Field = "entrance_fee"
	FieldShareCertificateNumber Field = "share_certificate_number"
	FieldNominees               Field = "nominees"
	FieldEmergencyContactName   Field = "emergency_contact_name"
	FieldEmergencyContactNumber Field = "emergency_contact_number"
	FieldVehicleNumbers         Field = "vehicle_numbers"
	FieldDocuments              Field = "documents"
	FieldAcceptTerms            Field = "accept_terms"
	FieldAcceptPrivacy          Field = "accept_privacy"
)

// StepFields lists, in display order, the fields each step validates on Next.
var StepFields = map[Step][]Field{
	StepPersonal: {
		FieldSalutation, FieldFirstName, FieldMiddleName, FieldLastName,
		FieldResidentialAddress, FieldOfficeAddress, FieldMobile, FieldEmail,
		FieldDateOfBirth, FieldNationalID, FieldGuardianName, FieldGuardianRelation,
	},
	StepFamily: {
		FieldFamilyMembers,
	},
	StepProperty: {
		FieldUnitNumber, FieldMembershipType, FieldDateOfPossession, FieldDateOfShareTransfer,
		FieldParkingSlots, FieldDateOfAdmission, FieldEntranceFee, FieldShareCertificateNumber,
		FieldNominees,
	},
	StepDocuments: {
		FieldEmergencyContactName, FieldEmergencyContactNumber, FieldVehicleNumbers, FieldDocuments,
	},
	StepReview: {
		FieldAcceptTerms, FieldAcceptPrivacy,
	},
}

// AllFields returns every field in step order
func AllFields() []Field {
	var fields []Field
	for s := StepPersonal; s <= StepReview; s++ {
		fields = append(fields, StepFields[s]...)
	}
	return fields
}

// StepOf returns the step that shows field
func StepOf(field Field) (Step, bool) {
	for s := StepPersonal; s <= StepReview; s++ {
		for _, f := range StepFields[s] {
			if f == field {
				return s, true
			}
		}
	}
	return 0, false
}
