package identityadmin

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/society/backend/internal/domain/member"
	"github.com/society/backend/internal/domain/shared"
)

// ErrEmailExists is returned when creating an identity for a taken email
var ErrEmailExists = errors.New("identityadmin: email already registered")

type storedIdentity struct {
	identity     member.Identity
	passwordHash []byte
}

// MemoryStore is an in-process member.IdentityAdmin. Passwords are kept
// only as bcrypt hashes.
type MemoryStore struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*storedIdentity
	byEmail map[string]uuid.UUID
	cost    int
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:    make(map[uuid.UUID]*storedIdentity),
		byEmail: make(map[string]uuid.UUID),
		cost:    bcrypt.MinCost,
	}
}

// CreateUser stores a new identity
func (s *MemoryStore) CreateUser(_ context.Context, identity member.NewIdentity) (*member.Identity, error) {
	email := strings.ToLower(strings.TrimSpace(identity.Email))
	hash, err := bcrypt.GenerateFromPassword([]byte(identity.Password), s.cost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[email]; exists {
		return nil, ErrEmailExists
	}

	stored := &storedIdentity{
		identity: member.Identity{
			ID:             uuid.New(),
			Email:          email,
			Phone:          identity.Phone,
			EmailConfirmed: identity.EmailConfirm,
			Metadata:       copyMetadata(identity.Metadata),
			CreatedAt:      time.Now(),
		},
		passwordHash: hash,
	}
	s.byID[stored.identity.ID] = stored
	s.byEmail[email] = stored.identity.ID
	return stored.copy(), nil
}

// UpdateUser applies the non-nil fields of update. Metadata keys are merged.
func (s *MemoryStore) UpdateUser(_ context.Context, id uuid.UUID, update member.IdentityUpdate) (*member.Identity, error) {
	var hash []byte
	if update.Password != nil {
		h, err := bcrypt.GenerateFromPassword([]byte(*update.Password), s.cost)
		if err != nil {
			return nil, err
		}
		hash = h
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	if hash != nil {
		stored.passwordHash = hash
	}
	if update.Phone != nil {
		stored.identity.Phone = *update.Phone
	}
	if update.EmailConfirm != nil {
		stored.identity.EmailConfirmed = *update.EmailConfirm
	}
	if len(update.Metadata) > 0 {
		if stored.identity.Metadata == nil {
			stored.identity.Metadata = make(map[string]any, len(update.Metadata))
		}
		for k, v := range update.Metadata {
			stored.identity.Metadata[k] = v
		}
	}
	return stored.copy(), nil
}

// FindUserByEmail returns the identity for email, or shared.ErrNotFound
func (s *MemoryStore) FindUserByEmail(_ context.Context, email string) (*member.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return s.byID[id].copy(), nil
}

// CheckPassword reports whether password is the current password of email
func (s *MemoryStore) CheckPassword(email, password string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword(s.byID[id].passwordHash, []byte(password)) == nil
}

func (si *storedIdentity) copy() *member.Identity {
	c := si.identity
	c.Metadata = copyMetadata(si.identity.Metadata)
	return &c
}

func copyMetadata(md map[string]any) map[string]any {
	if md == nil {
		return nil
	}
	out := make(map[string]any, len(md))
	for k, v := range md {
		out[k] = v
	}
	return out
}
