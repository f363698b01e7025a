package member

import (
	"github.com/google/uuid"

	"github.com/society/backend/internal/domain/shared"
)

// AggregateTypeProfile is the aggregate type of member profiles
const AggregateTypeProfile = "Profile"

// Profile domain event types
const (
	EventTypeMemberProvisioned = "member.provisioned"
	EventTypeMemberRefreshed   = "member.refreshed"
)

// MemberProvisionedEvent is published after a new identity and profile pair exists
type MemberProvisionedEvent struct {
	shared.BaseDomainEvent
	UserID          uuid.UUID `json:"user_id"`
	Email           string    `json:"email"`
	UnitNumber      string    `json:"unit_number,omitempty"`
	RecoveredOrphan bool      `json:"recovered_orphan"`
}

// NewMemberProvisionedEvent creates a MemberProvisionedEvent for p
func NewMemberProvisionedEvent(p *Profile, recoveredOrphan bool) *MemberProvisionedEvent {
	return &MemberProvisionedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMemberProvisioned, AggregateTypeProfile, p.ID, p.SocietyID),
		UserID:          p.ID,
		Email:           p.Email,
		UnitNumber:      deref(p.UnitNumber),
		RecoveredOrphan: recoveredOrphan,
	}
}

// MemberRefreshedEvent is published after an existing profile was updated
type MemberRefreshedEvent struct {
	shared.BaseDomainEvent
	UserID         uuid.UUID `json:"user_id"`
	Email          string    `json:"email"`
	MetadataSynced bool      `json:"metadata_synced"`
}

// NewMemberRefreshedEvent creates a MemberRefreshedEvent for p
func NewMemberRefreshedEvent(p *Profile, metadataSynced bool) *MemberRefreshedEvent {
	return &MemberRefreshedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMemberRefreshed, AggregateTypeProfile, p.ID, p.SocietyID),
		UserID:          *p.UserID,
		Email:           p.Email,
		MetadataSynced:  metadataSynced,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
