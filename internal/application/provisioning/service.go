// Package provisioning creates or refreshes exactly one identity and
// profile pair per member email.
package provisioning

import (
	"context"
	"errors"
	"html"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/society/backend/internal/domain/member"
	"github.com/society/backend/internal/domain/onboarding"
	"github.com/society/backend/internal/domain/shared"
	"github.com/society/backend/internal/infrastructure/telemetry"
)

const statusSuccess = "success"

// Config holds provisioning settings
type Config struct {
	LockTTL    time.Duration
	LockPrefix string
}

// DefaultConfig returns the default provisioning settings
func DefaultConfig() Config {
	return Config{
		LockTTL:    30 * time.Second,
		LockPrefix: "provisioning:lock:",
	}
}

// Option configures a Service
type Option func(*Service)

// WithLocker serializes requests for the same email through locker
func WithLocker(locker shared.Locker) Option {
	return func(s *Service) {
		s.locker = locker
	}
}

// WithEventPublisher publishes member events after each successful call
func WithEventPublisher(publisher shared.EventPublisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

// WithMetrics records provisioning counters
func WithMetrics(metrics *telemetry.ProvisioningMetrics) Option {
	return func(s *Service) {
		s.metrics = metrics
	}
}

// WithPasswordGenerator replaces the temporary password source
func WithPasswordGenerator(g PasswordGenerator) Option {
	return func(s *Service) {
		s.passwords = g
	}
}

// WithConfig sets the provisioning settings
func WithConfig(cfg Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

// Service is the core of the member provisioning function
type Service struct {
	profiles   member.ProfileRepository
	identities member.IdentityAdmin
	locker     shared.Locker
	publisher  shared.EventPublisher
	metrics    *telemetry.ProvisioningMetrics
	passwords  PasswordGenerator
	validate   *validator.Validate
	policy     *bluemonday.Policy
	config     Config
	logger     *zap.Logger
}

// NewService creates a provisioning service
func NewService(
	profiles member.ProfileRepository,
	identities member.IdentityAdmin,
	logger *zap.Logger,
	opts ...Option,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		profiles:   profiles,
		identities: identities,
		passwords:  NewRandomPasswordGenerator(DefaultPasswordLength),
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		policy:     bluemonday.StrictPolicy(),
		config:     DefaultConfig(),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Provision creates the member when no profile matches the email, and
// refreshes the existing profile otherwise.
func (s *Service) Provision(ctx context.Context, in ProvisionInput) (result *onboarding.ProvisioningResult, err error) {
	start := time.Now()
	operation := "unknown"
	defer func() {
		s.metrics.Record(ctx, operation, outcomeOf(err), time.Since(start))
	}()

	in.Email = in.normalizedEmail()
	in.FullName = s.clean(in.FullName)
	in.SocietyID = strings.TrimSpace(in.SocietyID)
	if err := s.validate.Struct(in); err != nil {
		s.logger.Info("Rejected provisioning request", zap.Error(err))
		return nil, ErrInvalidRequest
	}
	if err := member.ValidateFields(in.Email, in.FullName, in.SocietyID); err != nil {
		s.logger.Info("Rejected provisioning request", zap.Error(err))
		return nil, invalidField(err)
	}

	release, err := s.lock(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	defer release()

	ids, err := s.profiles.FindIdentifiersByEmail(ctx, in.Email)
	switch {
	case err == nil:
		operation = string(onboarding.OperationUpdated)
		return s.update(ctx, ids, in)
	case errors.Is(err, shared.ErrNotFound):
		operation = string(onboarding.OperationCreated)
		return s.create(ctx, in)
	default:
		s.logger.Error("Failed to look up profile by email", zap.String("email", in.Email), zap.Error(err))
		return nil, ErrLookupFailed.WithCause(err)
	}
}

func (s *Service) update(ctx context.Context, ids *member.ProfileIdentifiers, in ProvisionInput) (*onboarding.ProvisioningResult, error) {
	if !ids.HasUsableUserID() {
		s.logger.Error("Existing profile has no user id", zap.String("profile_id", ids.ID.String()))
		return nil, ErrMisconfiguredRecord
	}

	profile, err := s.profiles.FindByID(ctx, ids.ID)
	if err != nil {
		s.logger.Error("Failed to load profile for update", zap.String("profile_id", ids.ID.String()), zap.Error(err))
		return nil, ErrProfileUpdateFailed.WithCause(err)
	}
	if err := profile.Refresh(in.FullName, in.SocietyID, in.details(s.clean)); err != nil {
		s.logger.Info("Rejected profile refresh", zap.Error(err))
		return nil, invalidField(err)
	}
	if err := s.profiles.Update(ctx, profile); err != nil {
		s.logger.Error("Failed to update profile", zap.String("profile_id", ids.ID.String()), zap.Error(err))
		return nil, ErrProfileUpdateFailed.WithCause(err)
	}

	userID := *ids.UserID
	metadataSynced := true
	if _, err := s.identities.UpdateUser(ctx, userID, member.IdentityUpdate{
		Phone:    profile.Phone,
		Metadata: profile.IdentityMetadata(),
	}); err != nil {
		metadataSynced = false
		s.logger.Warn("Failed to update identity metadata",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}

	s.publish(ctx, member.NewMemberRefreshedEvent(profile, metadataSynced))
	s.logger.Info("Member profile updated",
		zap.String("user_id", userID.String()),
		zap.String("society_id", profile.SocietyID),
	)

	return &onboarding.ProvisioningResult{
		Status:    statusSuccess,
		Operation: onboarding.OperationUpdated,
		UserID:    userID.String(),
	}, nil
}

func (s *Service) create(ctx context.Context, in ProvisionInput) (*onboarding.ProvisioningResult, error) {
	password, err := s.passwords.Generate()
	if err != nil {
		s.logger.Error("Failed to generate temporary password", zap.Error(err))
		return nil, ErrIdentityCreateFailed.WithCause(err)
	}

	details := in.details(s.clean)
	metadata := map[string]any{
		"full_name":  in.FullName,
		"society_id": in.SocietyID,
		"role":       details.Role,
	}

	identity, recovered, err := s.ensureIdentity(ctx, in, details, password, metadata)
	if err != nil {
		return nil, err
	}

	profile, err := member.NewProfile(identity.ID, in.Email, in.FullName, in.SocietyID, details)
	if err != nil {
		s.logger.Error("Identity created but profile is invalid",
			zap.String("user_id", identity.ID.String()),
			zap.Error(err),
		)
		return nil, ErrProfileCreateFailed.WithCause(err)
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		// The identity stays; the next call for this email reuses it.
		s.logger.Error("Failed to create profile for new identity",
			zap.String("user_id", identity.ID.String()),
			zap.Error(err),
		)
		return nil, ErrProfileCreateFailed.WithCause(err)
	}

	s.publish(ctx, member.NewMemberProvisionedEvent(profile, recovered))
	s.logger.Info("Member provisioned",
		zap.String("user_id", identity.ID.String()),
		zap.String("society_id", profile.SocietyID),
		zap.Bool("recovered_orphan", recovered),
	)

	return &onboarding.ProvisioningResult{
		Status:            statusSuccess,
		Operation:         onboarding.OperationCreated,
		UserID:            identity.ID.String(),
		TemporaryPassword: &password,
	}, nil
}

// ensureIdentity reuses an identity left without a profile by an earlier
// failed call, resetting its password, or creates a new pre-confirmed one.
func (s *Service) ensureIdentity(
	ctx context.Context,
	in ProvisionInput,
	details member.Details,
	password string,
	metadata map[string]any,
) (*member.Identity, bool, error) {
	existing, err := s.identities.FindUserByEmail(ctx, in.Email)
	switch {
	case err == nil:
		confirmed := true
		identity, err := s.identities.UpdateUser(ctx, existing.ID, member.IdentityUpdate{
			Phone:        details.Phone,
			Password:     &password,
			EmailConfirm: &confirmed,
			Metadata:     metadata,
		})
		if err != nil {
			s.logger.Error("Failed to reset orphaned identity",
				zap.String("user_id", existing.ID.String()),
				zap.Error(err),
			)
			return nil, false, ErrIdentityCreateFailed.WithCause(err)
		}
		s.metrics.RecordOrphanRecovered(ctx)
		s.logger.Warn("Recovered identity without profile", zap.String("user_id", existing.ID.String()))
		return withID(identity, existing.ID), true, nil
	case errors.Is(err, shared.ErrNotFound):
	default:
		s.logger.Error("Failed to look up identity by email", zap.String("email", in.Email), zap.Error(err))
		return nil, false, ErrLookupFailed.WithCause(err)
	}

	phone := ""
	if details.Phone != nil {
		phone = *details.Phone
	}
	identity, err := s.identities.CreateUser(ctx, member.NewIdentity{
		Email:        in.Email,
		Password:     password,
		Phone:        phone,
		EmailConfirm: true,
		Metadata:     metadata,
	})
	if err != nil {
		s.logger.Error("Failed to create identity", zap.String("email", in.Email), zap.Error(err))
		return nil, false, ErrIdentityCreateFailed.WithCause(err)
	}
	if identity == nil || identity.ID == uuid.Nil {
		s.logger.Error("Identity platform returned no user id", zap.String("email", in.Email))
		return nil, false, ErrIdentityCreateFailed
	}
	return identity, false, nil
}

// lock takes the per-email lock. A locker failure is logged and the call
// proceeds unlocked.
func (s *Service) lock(ctx context.Context, email string) (func(), error) {
	noop := func() {}
	if s.locker == nil {
		return noop, nil
	}

	key := s.config.LockPrefix + email
	token, acquired, err := s.locker.Acquire(ctx, key, s.config.LockTTL)
	if err != nil {
		s.logger.Warn("Provisioning lock unavailable, continuing without it", zap.Error(err))
		return noop, nil
	}
	if !acquired {
		s.logger.Info("Provisioning already in progress", zap.String("email", email))
		return nil, ErrProvisioningInProgress
	}

	return func() {
		// Released on a fresh context so a cancelled request still frees the key.
		if err := s.locker.Release(context.WithoutCancel(ctx), key, token); err != nil {
			s.logger.Warn("Failed to release provisioning lock", zap.String("key", key), zap.Error(err))
		}
	}, nil
}

func (s *Service) publish(ctx context.Context, event shared.DomainEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish member event",
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
	}
}

// policyEntities are the escapes the policy adds to plain text. Only these
// are decoded on output so names like O'Brien survive.
var policyEntities = strings.NewReplacer("&#39;", "'", "&#34;", `"`, "&amp;", "&")

// clean strips markup and surrounding whitespace from member-supplied text.
// Input entities are decoded first so escaped markup is sanitized too.
func (s *Service) clean(v string) string {
	return strings.TrimSpace(policyEntities.Replace(s.policy.Sanitize(html.UnescapeString(v))))
}

func withID(identity *member.Identity, id uuid.UUID) *member.Identity {
	if identity == nil {
		return &member.Identity{ID: id}
	}
	if identity.ID == uuid.Nil {
		identity.ID = id
	}
	return identity
}

func outcomeOf(err error) string {
	if err == nil {
		return statusSuccess
	}
	var de *shared.DomainError
	if errors.As(err, &de) {
		return strings.ToLower(de.Code)
	}
	return "error"
}
