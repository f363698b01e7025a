package event

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/society/backend/internal/domain/member"
)

func newProvisionedEvent(t *testing.T) *member.MemberProvisionedEvent {
	t.Helper()
	unit := "B-204"
	p, err := member.NewProfile(uuid.New(), "asha@example.com", "Asha Rao", "soc-1", member.Details{UnitNumber: &unit})
	require.NoError(t, err)
	return member.NewMemberProvisionedEvent(p, true)
}

func TestEventSerializer_EncodeEnvelope(t *testing.T) {
	s := NewMemberEventSerializer()
	ev := newProvisionedEvent(t)

	data, err := s.Encode(ev)
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(data, &env))
	assert.Equal(t, ev.EventID(), env.ID)
	assert.Equal(t, member.EventTypeMemberProvisioned, env.Type)
	assert.Equal(t, "soc-1", env.SocietyID)
	assert.Contains(t, string(env.Payload), `"email":"asha@example.com"`)
}

func TestEventSerializer_Decode(t *testing.T) {
	s := NewMemberEventSerializer()
	ev := newProvisionedEvent(t)

	data, err := s.Encode(ev)
	require.NoError(t, err)

	decoded, err := s.Decode(data)
	require.NoError(t, err)

	got, ok := decoded.(*member.MemberProvisionedEvent)
	require.True(t, ok)
	assert.Equal(t, ev.EventID(), got.EventID())
	assert.Equal(t, ev.UserID, got.UserID)
	assert.Equal(t, "B-204", got.UnitNumber)
	assert.True(t, got.RecoveredOrphan)
}

func TestEventSerializer_DecodeErrors(t *testing.T) {
	s := NewMemberEventSerializer()

	_, err := s.Decode([]byte("not json"))
	assert.ErrorContains(t, err, "unmarshal envelope")

	_, err = s.Decode([]byte(`{"type":"member.deleted","payload":{}}`))
	assert.ErrorContains(t, err, "unknown event type")
}

func TestEventSerializer_IsRegistered(t *testing.T) {
	s := NewMemberEventSerializer()
	assert.True(t, s.IsRegistered(member.EventTypeMemberProvisioned))
	assert.True(t, s.IsRegistered(member.EventTypeMemberRefreshed))
	assert.False(t, s.IsRegistered("member.deleted"))
}
