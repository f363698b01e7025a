package models

import (
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/society/backend/internal/domain/member"
)

var modelLogger = zap.L().Named("member.models")

// ProfileModel is the persistence model for the member Profile aggregate.
// Its ID equals the identity platform's user id.
type ProfileModel struct {
	AggregateModel
	UserID            *uuid.UUID `gorm:"type:uuid;index"`
	Email             string     `gorm:"type:varchar(320);not null;uniqueIndex"`
	FullName          string     `gorm:"type:varchar(200);not null"`
	SocietyID         string     `gorm:"type:varchar(64);not null;index"`
	Phone             *string    `gorm:"type:varchar(32)"`
	Role              string     `gorm:"type:varchar(32);not null;default:'resident'"`
	IsOwner           bool       `gorm:"not null;default:false"`
	UnitNumber        *string    `gorm:"type:varchar(64)"`
	FamilyMembersJSON *string    `gorm:"column:family_members;type:jsonb"`
	EmergencyContact  *string    `gorm:"type:varchar(200)"`
	VehicleDetails    *string    `gorm:"type:text"`
	IsActive          bool       `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ProfileModel) TableName() string {
	return "profiles"
}

// ToDomain converts the persistence model to a domain Profile
func (m *ProfileModel) ToDomain() *member.Profile {
	p := &member.Profile{
		BaseAggregateRoot: m.AggregateModel.root(),
		UserID:            m.UserID,
		Email:             m.Email,
		FullName:          m.FullName,
		SocietyID:         m.SocietyID,
		Details: member.Details{
			Phone:            m.Phone,
			Role:             m.Role,
			IsOwner:          m.IsOwner,
			UnitNumber:       m.UnitNumber,
			EmergencyContact: m.EmergencyContact,
			VehicleDetails:   m.VehicleDetails,
			IsActive:         m.IsActive,
		},
	}
	if m.FamilyMembersJSON != nil && *m.FamilyMembersJSON != "" {
		if err := json.Unmarshal([]byte(*m.FamilyMembersJSON), &p.FamilyMembers); err != nil {
			modelLogger.Warn("Failed to parse family members",
				zap.String("profile_id", m.ID.String()),
				zap.Error(err),
			)
		}
	}
	return p
}

// ProfileModelFromDomain converts a domain Profile to the persistence model
func ProfileModelFromDomain(p *member.Profile) *ProfileModel {
	m := &ProfileModel{
		AggregateModel:   aggregateModelOf(p.BaseAggregateRoot),
		UserID:           p.UserID,
		Email:            p.Email,
		FullName:         p.FullName,
		SocietyID:        p.SocietyID,
		Phone:            p.Phone,
		Role:             p.Role,
		IsOwner:          p.IsOwner,
		UnitNumber:       p.UnitNumber,
		EmergencyContact: p.EmergencyContact,
		VehicleDetails:   p.VehicleDetails,
		IsActive:         p.IsActive,
	}
	if len(p.FamilyMembers) > 0 {
		if raw, err := json.Marshal(p.FamilyMembers); err == nil {
			s := string(raw)
			m.FamilyMembersJSON = &s
		}
	}
	return m
}

// ProfileIdentifiersModel reads only the identifying columns of a profile
type ProfileIdentifiersModel struct {
	ID     uuid.UUID
	UserID *uuid.UUID
}
