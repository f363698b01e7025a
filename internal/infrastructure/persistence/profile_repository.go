package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/society/backend/internal/domain/member"
	"github.com/society/backend/internal/domain/shared"
	"github.com/society/backend/internal/infrastructure/persistence/models"
)

// GormProfileRepository implements member.ProfileRepository using GORM
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GormProfileRepository
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// FindIdentifiersByEmail selects only id and user_id of the profile for email
func (r *GormProfileRepository) FindIdentifiersByEmail(ctx context.Context, email string) (*member.ProfileIdentifiers, error) {
	var row models.ProfileIdentifiersModel
	err := r.db.WithContext(ctx).
		Model(&models.ProfileModel{}).
		Select("id", "user_id").
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &member.ProfileIdentifiers{ID: row.ID, UserID: row.UserID}, nil
}

// FindByID finds a profile by ID
func (r *GormProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*member.Profile, error) {
	var model models.ProfileModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a profile by email, ignoring case
func (r *GormProfileRepository) FindByEmail(ctx context.Context, email string) (*member.Profile, error) {
	var model models.ProfileModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Create inserts a new profile
func (r *GormProfileRepository) Create(ctx context.Context, profile *member.Profile) error {
	model := models.ProfileModelFromDomain(profile)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update writes profile with optimistic locking. The stored version must be
// one below the profile's version.
func (r *GormProfileRepository) Update(ctx context.Context, profile *member.Profile) error {
	model := models.ProfileModelFromDomain(profile)
	result := r.db.WithContext(ctx).
		Model(&models.ProfileModel{}).
		Where("id = ? AND version = ?", profile.ID, profile.Version-1).
		Select("*").
		Omit("id", "created_at", "email").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}
