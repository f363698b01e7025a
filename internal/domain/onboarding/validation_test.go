package onboarding

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.March, 15, 9, 0, 0, 0, time.UTC)

func newTestValidator() *Validator {
	return NewValidator(WithClock(func() time.Time { return fixedNow }))
}

// completeDraft returns a draft that passes every step.
func completeDraft() *MemberDraft {
	d := NewMemberDraft()
	d.Salutation = "Ms"
	d.FirstName = "Asha"
	d.LastName = "Rao"
	d.ResidentialAddress = "Flat B-402, Lake View Society"
	d.Mobile = "9876543210"
	d.Email = "asha@example.com"
	d.SetDateOfBirth(NewDate(time.Date(1990, time.May, 1, 0, 0, 0, 0, time.UTC)), fixedNow)
	d.NationalID = "123456789012"
	d.FamilyMembers = []FamilyMember{{Name: "Dev Rao", Relation: "Spouse"}}
	d.UnitNumber = "B-402"
	d.MembershipType = MembershipOwner
	d.DateOfPossession = NewDate(time.Date(2020, time.January, 10, 0, 0, 0, 0, time.UTC))
	d.DateOfAdmission = NewDate(time.Date(2020, time.February, 1, 0, 0, 0, 0, time.UTC))
	d.EntranceFee = decimal.NewFromInt(500)
	d.Nominees = []Nominee{{Name: "Dev Rao", Address: "B-402", Percentage: decimal.NewFromInt(100)}}
	d.AcceptTerms = true
	d.AcceptPrivacy = true
	return d
}

func TestValidateAll_CompleteDraft(t *testing.T) {
	assert.Empty(t, newTestValidator().ValidateAll(completeDraft()))
}

func TestValidateStep_Personal(t *testing.T) {
	v := newTestValidator()

	t.Run("empty mobile is the only error", func(t *testing.T) {
		d := completeDraft()
		d.Mobile = ""
		errs := v.ValidateStep(d, StepPersonal)
		require.Len(t, errs, 1)
		assert.Equal(t, FieldMobile, errs.First().Field)
	})

	t.Run("mobile must be ten digits", func(t *testing.T) {
		for _, mobile := range []string{"98765", "98765432101", "98765-4321", "+919876543"} {
			d := completeDraft()
			d.Mobile = mobile
			assert.True(t, v.ValidateStep(d, StepPersonal).Has(FieldMobile), mobile)
		}
	})

	t.Run("first invalid field follows declared order", func(t *testing.T) {
		d := NewMemberDraft()
		errs := v.ValidateStep(d, StepPersonal)
		require.NotEmpty(t, errs)
		assert.Equal(t, FieldFirstName, errs.First().Field)
		assert.True(t, errs.Has(FieldEmail))
		assert.True(t, errs.Has(FieldNationalID))
	})

	t.Run("guardian required only for minors", func(t *testing.T) {
		d := completeDraft()
		d.SetDateOfBirth(NewDate(fixedNow.AddDate(-18, 0, 1)), fixedNow)
		errs := v.ValidateStep(d, StepPersonal)
		assert.True(t, errs.Has(FieldGuardianName))
		assert.True(t, errs.Has(FieldGuardianRelation))

		d.GuardianName = "Dev Rao"
		d.GuardianRelation = "Father"
		assert.Empty(t, v.ValidateStep(d, StepPersonal))

		d.GuardianName = ""
		d.SetDateOfBirth(NewDate(fixedNow.AddDate(-18, 0, 0)), fixedNow)
		assert.Empty(t, v.ValidateStep(d, StepPersonal))
	})

	t.Run("date of birth cannot be in the future", func(t *testing.T) {
		d := completeDraft()
		d.DateOfBirth = NewDate(fixedNow.AddDate(0, 0, 1))
		assert.True(t, v.ValidateStep(d, StepPersonal).Has(FieldDateOfBirth))
	})
}

func TestValidateStep_Family(t *testing.T) {
	v := newTestValidator()

	d := completeDraft()
	d.FamilyMembers = nil
	assert.True(t, v.ValidateStep(d, StepFamily).Has(FieldFamilyMembers))

	d.FamilyMembers = []FamilyMember{{Name: "Asha", Relation: "Daughter"}, {Name: "", Relation: "Son"}}
	assert.Empty(t, v.ValidateStep(d, StepFamily))

	d.FamilyMembers = []FamilyMember{{Name: "Asha"}}
	errs := v.ValidateStep(d, StepFamily)
	require.Len(t, errs, 1)
	assert.Equal(t, "family_members[0].relation", errs[0].Path)
}

func TestValidateStep_Property(t *testing.T) {
	v := newTestValidator()

	d := completeDraft()
	d.MembershipType = "landlord"
	d.ParkingSlots = []ParkingSlot{{Type: "covered"}}
	d.EntranceFee = decimal.NewFromInt(-1)
	d.Nominees = append(d.Nominees, Nominee{Name: "Meena", Percentage: decimal.NewFromInt(10)})

	errs := v.ValidateStep(d, StepProperty)
	assert.True(t, errs.Has(FieldMembershipType))
	assert.True(t, errs.Has(FieldParkingSlots))
	assert.True(t, errs.Has(FieldEntranceFee))
	assert.True(t, errs.Has(FieldNominees))
	assert.False(t, errs.Has(FieldUnitNumber))
}

func TestValidateStep_Review(t *testing.T) {
	v := newTestValidator()
	d := completeDraft()
	d.AcceptPrivacy = false

	errs := v.ValidateStep(d, StepReview)
	require.Len(t, errs, 1)
	assert.Equal(t, FieldAcceptPrivacy, errs[0].Field)
}

func TestValidateStep_DocumentsOptionalContact(t *testing.T) {
	v := newTestValidator()
	d := completeDraft()
	assert.Empty(t, v.ValidateStep(d, StepDocuments))

	d.EmergencyContactNumber = "12345"
	d.Documents = []DocumentRef{{Kind: "id_proof", FileName: "aadhaar.pdf"}}
	errs := v.ValidateStep(d, StepDocuments)
	assert.True(t, errs.Has(FieldEmergencyContactNumber))
	assert.True(t, errs.Has(FieldDocuments))
}

func TestStepOf(t *testing.T) {
	step, ok := StepOf(FieldNominees)
	require.True(t, ok)
	assert.Equal(t, StepProperty, step)

	_, ok = StepOf("unknown")
	assert.False(t, ok)
	assert.Equal(t, "Review", StepReview.String())
	assert.Equal(t, "Step(7)", Step(7).String())
}

func TestMemberDraft_JSONRoundTripDates(t *testing.T) {
	raw := []byte(`{"first_name":"Asha","date_of_birth":"1990-05-01","date_of_share_transfer":null,"entrance_fee":"250.50"}`)
	var d MemberDraft
	require.NoError(t, json.Unmarshal(raw, &d))

	assert.Equal(t, "1990-05-01", d.DateOfBirth.String())
	assert.False(t, d.DateOfShareTransfer.IsSet())
	assert.True(t, d.EntranceFee.Equal(decimal.RequireFromString("250.5")))

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"date_of_birth":"1990-05-01"`)
	assert.Contains(t, string(out), `"date_of_possession":null`)
}

func TestMemberDraft_FamilyRows(t *testing.T) {
	d := NewMemberDraft()
	require.Len(t, d.FamilyMembers, 1)

	d.RemoveFamilyMember(0)
	assert.Len(t, d.FamilyMembers, 1)

	d.AddFamilyMember()
	d.FamilyMembers[1].Name = "Asha"
	d.RemoveFamilyMember(0)
	require.Len(t, d.FamilyMembers, 1)
	assert.Equal(t, "Asha", d.FamilyMembers[0].Name)

	c := d.Clone()
	c.FamilyMembers[0].Name = "changed"
	assert.Equal(t, "Asha", d.FamilyMembers[0].Name)
}
