package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlerRegistry(t *testing.T) {
	t.Run("typed handlers come before wildcard handlers", func(t *testing.T) {
		r := NewHandlerRegistry()
		typed := newTestHandler()
		wildcard := newTestHandler()

		r.Register(wildcard)
		r.Register(typed, "member.provisioned")

		handlers := r.GetHandlers("member.provisioned")
		assert.Len(t, handlers, 2)
		assert.Same(t, typed, handlers[0])
		assert.Same(t, wildcard, handlers[1])
		assert.Len(t, r.GetHandlers("member.refreshed"), 1)
	})

	t.Run("duplicate registration is ignored", func(t *testing.T) {
		r := NewHandlerRegistry()
		h := newTestHandler()

		r.Register(h, "member.provisioned")
		r.Register(h, "member.provisioned", "member.refreshed")

		assert.Len(t, r.GetHandlers("member.provisioned"), 1)
		assert.Equal(t, 1, r.Len())
	})

	t.Run("unregister removes handler everywhere", func(t *testing.T) {
		r := NewHandlerRegistry()
		h := newTestHandler()
		other := newTestHandler()

		r.Register(h, "member.provisioned", "member.refreshed")
		r.Register(h)
		r.Register(other, "member.refreshed")
		r.Unregister(h)

		assert.Empty(t, r.GetHandlers("member.provisioned"))
		assert.Len(t, r.GetHandlers("member.refreshed"), 1)
		assert.Equal(t, 1, r.Len())
	})
}
