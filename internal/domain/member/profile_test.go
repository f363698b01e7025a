package member

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/society/backend/internal/domain/shared"
)

func strPtr(s string) *string { return &s }

func TestNewProfile(t *testing.T) {
	userID := uuid.New()

	t.Run("creates profile sharing identity id", func(t *testing.T) {
		p, err := NewProfile(userID, "  Asha@Example.COM ", "Asha Rao", "soc-1", Details{IsActive: true})
		require.NoError(t, err)

		assert.Equal(t, userID, p.ID)
		require.NotNil(t, p.UserID)
		assert.Equal(t, userID, *p.UserID)
		assert.Equal(t, "asha@example.com", p.Email)
		assert.Equal(t, DefaultRole, p.Role)
		assert.Equal(t, 1, p.GetVersion())
		assert.True(t, p.HasUsableUserID())
	})

	t.Run("empty family list is stored as nil", func(t *testing.T) {
		p, err := NewProfile(userID, "a@b.co", "A B", "soc-1", Details{FamilyMembers: []string{}})
		require.NoError(t, err)
		assert.Nil(t, p.FamilyMembers)
	})

	tests := []struct {
		name    string
		userID  uuid.UUID
		email   string
		full    string
		society string
		code    string
	}{
		{"nil user id", uuid.Nil, "a@b.co", "A", "s", "INVALID_USER_ID"},
		{"empty email", userID, " ", "A", "s", "INVALID_EMAIL"},
		{"bad email", userID, "not-an-email", "A", "s", "INVALID_EMAIL"},
		{"empty name", userID, "a@b.co", "  ", "s", "INVALID_NAME"},
		{"empty society", userID, "a@b.co", "A", "", "INVALID_SOCIETY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProfile(tt.userID, tt.email, tt.full, tt.society, Details{})
			require.Error(t, err)
			var de *shared.DomainError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tt.code, de.Code)
		})
	}
}

func TestValidateFields(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		fullName  string
		societyID string
		wantCode  string
	}{
		{"valid", " Asha@Example.com ", "Asha Rao", "soc-1", ""},
		{"malformed email", "asha@@example", "Asha Rao", "soc-1", "INVALID_EMAIL"},
		{"name too long", "asha@example.com", strings.Repeat("a", 201), "soc-1", "INVALID_NAME"},
		{"blank society", "asha@example.com", "Asha Rao", "  ", "INVALID_SOCIETY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFields(tt.email, tt.fullName, tt.societyID)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			var domainErr *shared.DomainError
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, tt.wantCode, domainErr.Code)
		})
	}
}

func TestProfile_Refresh(t *testing.T) {
	p, err := NewProfile(uuid.New(), "a@b.co", "Old Name", "soc-1", Details{})
	require.NoError(t, err)

	err = p.Refresh(" New Name ", "soc-2", Details{Phone: strPtr("9876543210"), IsOwner: true})
	require.NoError(t, err)

	assert.Equal(t, "New Name", p.FullName)
	assert.Equal(t, "soc-2", p.SocietyID)
	assert.True(t, p.IsOwner)
	assert.Equal(t, 2, p.GetVersion())

	md := p.IdentityMetadata()
	assert.Equal(t, "New Name", md["full_name"])
	assert.Equal(t, "9876543210", md["phone"])

	assert.Error(t, p.Refresh("", "soc-2", Details{}))
}

func TestProfileIdentifiers_HasUsableUserID(t *testing.T) {
	id := uuid.New()
	nilID := uuid.Nil
	assert.True(t, ProfileIdentifiers{ID: id, UserID: &id}.HasUsableUserID())
	assert.False(t, ProfileIdentifiers{ID: id}.HasUsableUserID())
	assert.False(t, ProfileIdentifiers{ID: id, UserID: &nilID}.HasUsableUserID())
}

func TestProfileEvents(t *testing.T) {
	p, err := NewProfile(uuid.New(), "a@b.co", "A B", "soc-1", Details{UnitNumber: strPtr("B-402")})
	require.NoError(t, err)

	created := NewMemberProvisionedEvent(p, true)
	assert.Equal(t, EventTypeMemberProvisioned, created.EventType())
	assert.Equal(t, "soc-1", created.SocietyID())
	assert.Equal(t, "B-402", created.UnitNumber)
	assert.True(t, created.RecoveredOrphan)

	refreshed := NewMemberRefreshedEvent(p, false)
	assert.Equal(t, EventTypeMemberRefreshed, refreshed.EventType())
	assert.Equal(t, p.ID, refreshed.AggregateID())
	assert.False(t, refreshed.MetadataSynced)
}
