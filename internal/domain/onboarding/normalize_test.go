package onboarding

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	d := NewMemberDraft()
	d.FirstName = "  Asha "
	d.MiddleName = ""
	d.LastName = " Rao\t Kulkarni "
	d.Email = "  Asha.Rao@Example.COM "
	d.Mobile = " 9876543210 "
	d.UnitNumber = " B-402 "
	d.MembershipType = MembershipOwner
	d.FamilyMembers = []FamilyMember{
		{Name: "Asha", Relation: "Daughter"},
		{Name: "", Relation: "Son"},
	}
	d.VehicleNumbers = []string{" MH12AB1234 ", "", "  ", "MH14CD5678"}
	d.EmergencyContactName = " Ravi "
	d.EmergencyContactNumber = "9123456780"

	req, err := Normalize(d, NormalizeOptions{SocietyID: "soc-1"})
	require.NoError(t, err)

	assert.Equal(t, "asha.rao@example.com", req.Email)
	require.NotNil(t, req.Phone)
	assert.Equal(t, "9876543210", *req.Phone)
	assert.Equal(t, "Asha Rao Kulkarni", req.FullName)
	assert.Equal(t, "soc-1", req.SocietyID)
	assert.Equal(t, []string{"Asha (Daughter)"}, req.MemberData.FamilyMembers)
	assert.Equal(t, "resident", req.MemberData.Role)
	assert.True(t, req.MemberData.IsOwner)
	assert.True(t, req.MemberData.IsActive)
	require.NotNil(t, req.MemberData.UnitNumber)
	assert.Equal(t, "B-402", *req.MemberData.UnitNumber)
	require.NotNil(t, req.MemberData.VehicleDetails)
	assert.Equal(t, "MH12AB1234, MH14CD5678", *req.MemberData.VehicleDetails)
	require.NotNil(t, req.MemberData.EmergencyContact)
	assert.Equal(t, "Ravi - 9123456780", *req.MemberData.EmergencyContact)
}

func TestNormalize_EmptyCollectionsBecomeNull(t *testing.T) {
	d := NewMemberDraft()
	d.FirstName = "Asha"
	d.LastName = "Rao"
	d.Email = "asha@example.com"
	d.MembershipType = MembershipTenant

	req, err := Normalize(d, NormalizeOptions{SocietyID: "soc-1"})
	require.NoError(t, err)

	assert.Nil(t, req.Phone)
	assert.Nil(t, req.MemberData.FamilyMembers)
	assert.Nil(t, req.MemberData.VehicleDetails)
	assert.Nil(t, req.MemberData.EmergencyContact)
	assert.False(t, req.MemberData.IsOwner)

	raw, err := json.Marshal(req)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"family_members":null`)
	assert.Contains(t, string(raw), `"vehicle_details":null`)
	assert.Contains(t, string(raw), `"phone":null`)
}

func TestNormalize_SocietyResolution(t *testing.T) {
	session := Session{CurrentSocietyID: "soc-session"}
	tests := []struct {
		name      string
		draftSoc  string
		opts      NormalizeOptions
		wantSoc   string
		wantError bool
	}{
		{"session fallback", "", NormalizeOptions{Session: session}, "soc-session", false},
		{"explicit option beats session", "", NormalizeOptions{SocietyID: "soc-explicit", Session: session}, "soc-explicit", false},
		{"draft beats option", " soc-draft ", NormalizeOptions{SocietyID: "soc-explicit", Session: session}, "soc-draft", false},
		{"blank everywhere", " ", NormalizeOptions{SocietyID: "  "}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewMemberDraft()
			d.Email = "a@b.co"
			d.SocietyID = tt.draftSoc

			req, err := Normalize(d, tt.opts)
			if tt.wantError {
				var cfgErr *ConfigurationError
				require.True(t, errors.As(err, &cfgErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSoc, req.SocietyID)
		})
	}
}

func TestJoinEmergencyContact(t *testing.T) {
	tests := []struct {
		name, contact, number string
		want                  *string
	}{
		{"both", "Ravi", "9123456780", ptr("Ravi - 9123456780")},
		{"name only", " Ravi ", " ", ptr("Ravi")},
		{"number only", "", "9123456780", ptr("9123456780")},
		{"neither", " ", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinEmergencyContact(tt.contact, tt.number))
		})
	}
}

func TestOwnershipFlag(t *testing.T) {
	for _, mt := range []MembershipType{MembershipAssociate, MembershipTenant, "Owner", ""} {
		d := NewMemberDraft()
		d.MembershipType = mt
		req, err := Normalize(d, NormalizeOptions{SocietyID: "soc-1"})
		require.NoError(t, err)
		assert.False(t, req.MemberData.IsOwner, string(mt))
	}
}

func ptr(s string) *string { return &s }
