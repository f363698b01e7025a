package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_Is(t *testing.T) {
	wrapped := fmt.Errorf("repo: %w", NewDomainError("NOT_FOUND", "profile not found"))

	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.False(t, errors.Is(wrapped, ErrAlreadyExists))
	assert.Equal(t, "profile not found", errors.Unwrap(wrapped).Error())
}

func TestDomainError_WithCause(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.4:5432: connection refused")
	err := ErrNotFound.WithCause(cause)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Resource not found", err.Error())
	assert.Nil(t, ErrNotFound.Cause, "sentinel must stay untouched")

	var de *DomainError
	require.ErrorAs(t, fmt.Errorf("lookup: %w", err), &de)
	assert.Equal(t, "NOT_FOUND", de.Code)
}

func TestBaseAggregateRoot_MarkModified(t *testing.T) {
	root := NewBaseAggregateRoot(NewBaseEntity())
	created := root.UpdatedAt
	assert.Equal(t, 1, root.GetVersion())

	root.MarkModified()
	root.MarkModified()

	assert.Equal(t, 3, root.GetVersion())
	assert.False(t, root.UpdatedAt.Before(created))
	assert.Equal(t, root.CreatedAt, created)
}

func TestNewBaseDomainEvent(t *testing.T) {
	root := NewBaseAggregateRoot(NewBaseEntity())
	ev := NewBaseDomainEvent("member.provisioned", "Profile", root.ID, "soc-1")

	assert.NotEqual(t, root.ID, ev.EventID())
	assert.Equal(t, root.ID, ev.AggregateID())
	assert.Equal(t, "soc-1", ev.SocietyID())
	assert.Equal(t, 1, ev.Version)
}
