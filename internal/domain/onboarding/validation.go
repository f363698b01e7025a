package onboarding

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Validator checks draft fields against the rule table. Rules are declared
// once and applied per step on Next and across all steps on Submit.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
	rules    map[Field]fieldRule
}

// fieldRule is either a validator tag applied to a single value, or a
// custom check for list fields and cross-field conditions.
type fieldRule struct {
	tag     string
	message string
	value   func(d *MemberDraft) any
	check   func(v *Validator, d *MemberDraft) ValidationErrors
}

// ValidatorOption configures a Validator
type ValidatorOption func(*Validator)

// WithClock sets the clock used for age and date checks
func WithClock(now func() time.Time) ValidatorOption {
	return func(v *Validator) {
		v.now = now
	}
}

// NewValidator creates a Validator with the member onboarding rules
func NewValidator(opts ...ValidatorOption) *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation("digits", isDigits)

	v := &Validator{
		validate: validate,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	v.rules = memberRules()
	return v
}

// Now returns the validator's current time
func (v *Validator) Now() time.Time {
	return v.now()
}

// ValidateFields checks fields in order. Fields without a rule always pass.
func (v *Validator) ValidateFields(d *MemberDraft, fields []Field) ValidationErrors {
	var errs ValidationErrors
	for _, f := range fields {
		rule, ok := v.rules[f]
		if !ok {
			continue
		}
		if rule.check != nil {
			errs = append(errs, rule.check(v, d)...)
			continue
		}
		if err := v.validate.Var(rule.value(d), rule.tag); err != nil {
			errs = append(errs, FieldError{Field: f, Path: string(f), Message: rule.message})
		}
	}
	return errs
}

// ValidateStep checks the fields shown on step
func (v *Validator) ValidateStep(d *MemberDraft, step Step) ValidationErrors {
	return v.ValidateFields(d, StepFields[step])
}

// ValidateAll checks every field of every step
func (v *Validator) ValidateAll(d *MemberDraft) ValidationErrors {
	return v.ValidateFields(d, AllFields())
}

func memberRules() map[Field]fieldRule {
	return map[Field]fieldRule{
		FieldSalutation: {
			tag:     "omitempty,oneof=Mr Mrs Ms Miss Dr",
			message: "Choose a valid salutation",
			value:   func(d *MemberDraft) any { return trim(d.Salutation) },
		},
		FieldFirstName: {
			tag:     "required,min=2",
			message: "First name must be at least 2 characters",
			value:   func(d *MemberDraft) any { return trim(d.FirstName) },
		},
		FieldLastName: {
			tag:     "required,min=2",
			message: "Last name must be at least 2 characters",
			value:   func(d *MemberDraft) any { return trim(d.LastName) },
		},
		FieldResidentialAddress: {
			tag:     "required,min=5",
			message: "Residential address must be at least 5 characters",
			value:   func(d *MemberDraft) any { return trim(d.ResidentialAddress) },
		},
		FieldMobile: {
			tag:     "required,digits,len=10",
			message: "Mobile number must be exactly 10 digits",
			value:   func(d *MemberDraft) any { return trim(d.Mobile) },
		},
		FieldEmail: {
			tag:     "required,email",
			message: "Enter a valid email address",
			value:   func(d *MemberDraft) any { return trim(d.Email) },
		},
		FieldDateOfBirth: {
			check: func(v *Validator, d *MemberDraft) ValidationErrors {
				return v.requiredPastDate(FieldDateOfBirth, d.DateOfBirth, "Date of birth")
			},
		},
		FieldNationalID: {
			tag:     "required,digits,len=12",
			message: "National ID must be exactly 12 digits",
			value:   func(d *MemberDraft) any { return trim(d.NationalID) },
		},
		FieldGuardianName: {
			check: func(v *Validator, d *MemberDraft) ValidationErrors {
				if !IsMinorOn(d.DateOfBirth, v.now()) || len([]rune(trim(d.GuardianName))) >= 2 {
					return nil
				}
				return single(FieldGuardianName, "Guardian name is required for members under 18")
			},
		},
		FieldGuardianRelation: {
			check: func(v *Validator, d *MemberDraft) ValidationErrors {
				if !IsMinorOn(d.DateOfBirth, v.now()) || !isBlank(d.GuardianRelation) {
					return nil
				}
				return single(FieldGuardianRelation, "Guardian relation is required for members under 18")
			},
		},
		FieldFamilyMembers: {
			check: checkFamilyMembers,
		},
		FieldUnitNumber: {
			tag:     "required",
			message: "Flat/unit number is required",
			value:   func(d *MemberDraft) any { return trim(d.UnitNumber) },
		},
		FieldMembershipType: {
			check: func(v *Validator, d *MemberDraft) ValidationErrors {
				if d.MembershipType.IsValid() {
					return nil
				}
				return single(FieldMembershipType, "Membership type must be owner, associate or tenant")
			},
		},
		FieldDateOfPossession: {
			check: func(v *Validator, d *MemberDraft) ValidationErrors {
				return v.requiredPastDate(FieldDateOfPossession, d.DateOfPossession, "Date of possession")
			},
		},
		FieldDateOfShareTransfer: {
			check: func(v *Validator, d *MemberDraft) ValidationErrors {
				if !d.DateOfShareTransfer.IsSet() {
					return nil
				}
				return v.requiredPastDate(FieldDateOfShareTransfer, d.DateOfShareTransfer, "Date of share transfer")
			},
		},
		FieldParkingSlots: {
			check: checkParkingSlots,
		},
		FieldDateOfAdmission: {
			check: func(v *Validator, d *MemberDraft) ValidationErrors {
				return v.requiredPastDate(FieldDateOfAdmission, d.DateOfAdmission, "Date of admission")
			},
		},
		FieldEntranceFee: {
			check: func(v *Validator, d *MemberDraft) ValidationErrors {
				if d.EntranceFee.IsNegative() {
					return single(FieldEntranceFee, "Entrance fee cannot be negative")
				}
				return nil
			},
		},
		FieldNominees: {
			check: func(v *Validator, d *MemberDraft) ValidationErrors {
				return ValidateNomineeShares(d.Nominees)
			},
		},
		FieldEmergencyContactName: {
			tag:     "omitempty,min=2",
			message: "Emergency contact name must be at least 2 characters",
			value:   func(d *MemberDraft) any { return trim(d.EmergencyContactName) },
		},
		FieldEmergencyContactNumber: {
			tag:     "omitempty,digits,len=10",
			message: "Emergency contact number must be exactly 10 digits",
			value:   func(d *MemberDraft) any { return trim(d.EmergencyContactNumber) },
		},
		FieldVehicleNumbers: {
			check: checkVehicleNumbers,
		},
		FieldDocuments: {
			check: checkDocuments,
		},
		FieldAcceptTerms: {
			check: func(v *Validator, d *MemberDraft) ValidationErrors {
				if d.AcceptTerms {
					return nil
				}
				return single(FieldAcceptTerms, "You must accept the terms and conditions")
			},
		},
		FieldAcceptPrivacy: {
			check: func(v *Validator, d *MemberDraft) ValidationErrors {
				if d.AcceptPrivacy {
					return nil
				}
				return single(FieldAcceptPrivacy, "You must accept the privacy policy")
			},
		},
	}
}

func (v *Validator) requiredPastDate(field Field, date Date, label string) ValidationErrors {
	if !date.IsSet() {
		return single(field, label+" is required")
	}
	if date.After(NewDate(v.now()).Time) {
		return single(field, label+" cannot be in the future")
	}
	return nil
}

// checkFamilyMembers skips rows left with a blank name; the normalizer
// drops them as well.
func checkFamilyMembers(v *Validator, d *MemberDraft) ValidationErrors {
	if len(d.FamilyMembers) == 0 {
		return single(FieldFamilyMembers, "Add at least one family member")
	}
	var errs ValidationErrors
	for i, m := range d.FamilyMembers {
		if isBlank(m.Name) {
			continue
		}
		path := fmt.Sprintf("%s[%d]", FieldFamilyMembers, i)
		if len([]rune(trim(m.Name))) < 2 {
			errs = append(errs, FieldError{Field: FieldFamilyMembers, Path: path + ".name", Message: "Name must be at least 2 characters"})
		}
		if isBlank(m.Relation) {
			errs = append(errs, FieldError{Field: FieldFamilyMembers, Path: path + ".relation", Message: "Relation is required"})
		}
		if m.DateOfBirth.IsSet() && m.DateOfBirth.After(NewDate(v.now()).Time) {
			errs = append(errs, FieldError{Field: FieldFamilyMembers, Path: path + ".date_of_birth", Message: "Date of birth cannot be in the future"})
		}
	}
	return errs
}

func checkParkingSlots(v *Validator, d *MemberDraft) ValidationErrors {
	var errs ValidationErrors
	for i, s := range d.ParkingSlots {
		path := fmt.Sprintf("%s[%d]", FieldParkingSlots, i)
		if isBlank(s.Type) {
			errs = append(errs, FieldError{Field: FieldParkingSlots, Path: path + ".type", Message: "Parking type is required"})
		}
		if isBlank(s.SlotNumber) {
			errs = append(errs, FieldError{Field: FieldParkingSlots, Path: path + ".slot_number", Message: "Slot number is required"})
		}
	}
	return errs
}

func checkVehicleNumbers(v *Validator, d *MemberDraft) ValidationErrors {
	var errs ValidationErrors
	for i, n := range d.VehicleNumbers {
		if err := v.validate.Var(trim(n), "omitempty,max=15"); err != nil {
			errs = append(errs, FieldError{
				Field:   FieldVehicleNumbers,
				Path:    fmt.Sprintf("%s[%d]", FieldVehicleNumbers, i),
				Message: "Vehicle number cannot exceed 15 characters",
			})
		}
	}
	return errs
}

func checkDocuments(v *Validator, d *MemberDraft) ValidationErrors {
	var errs ValidationErrors
	for i, doc := range d.Documents {
		if isBlank(doc.ObjectKey) {
			errs = append(errs, FieldError{
				Field:   FieldDocuments,
				Path:    fmt.Sprintf("%s[%d].object_key", FieldDocuments, i),
				Message: "Document upload did not complete",
			})
		}
	}
	return errs
}

func isDigits(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func single(field Field, message string) ValidationErrors {
	return ValidationErrors{{Field: field, Path: string(field), Message: message}}
}

func trim(s string) string {
	return strings.TrimSpace(s)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
