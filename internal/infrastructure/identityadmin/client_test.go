package identityadmin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/society/backend/internal/domain/member"
	"github.com/society/backend/internal/domain/shared"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL + "/", ServiceKey: "service-key", Timeout: time.Second}, nil)
	require.NoError(t, err)
	return c
}

func TestNewClient_RequiresPlatformValues(t *testing.T) {
	_, err := NewClient(Config{ServiceKey: "k"}, nil)
	assert.ErrorIs(t, err, ErrMissingURL)

	_, err = NewClient(Config{BaseURL: "https://platform.example.com", ServiceKey: " "}, nil)
	assert.ErrorIs(t, err, ErrMissingServiceKey)
}

func TestClient_CreateUser(t *testing.T) {
	id := uuid.New()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/v1/admin/users", r.URL.Path)
		assert.Equal(t, "service-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "asha@example.com", body["email"])
		assert.Equal(t, "Tmp#Pass1234xy", body["password"])
		assert.Equal(t, true, body["email_confirm"])
		assert.Equal(t, "soc-1", body["user_metadata"].(map[string]any)["society_id"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"` + id.String() + `","email":"asha@example.com","email_confirmed_at":"2026-03-15T09:00:00Z"}`))
	})

	identity, err := c.CreateUser(context.Background(), member.NewIdentity{
		Email:        "asha@example.com",
		Password:     "Tmp#Pass1234xy",
		EmailConfirm: true,
		Metadata:     map[string]any{"society_id": "soc-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, id, identity.ID)
	assert.True(t, identity.EmailConfirmed)
}

func TestClient_CreateUser_PlatformError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"code":422,"error_code":"email_exists","msg":"A user with this email address has already been registered"}`))
	})

	_, err := c.CreateUser(context.Background(), member.NewIdentity{Email: "asha@example.com", Password: "x"})
	var pe *PlatformError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, http.StatusUnprocessableEntity, pe.Status)
	assert.Equal(t, "email_exists", pe.Code)
	assert.Contains(t, pe.Message, "already been registered")
}

func TestClient_UpdateUser(t *testing.T) {
	id := uuid.New()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/auth/v1/admin/users/"+id.String(), r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, hasPassword := body["password"]
		assert.False(t, hasPassword)
		assert.Equal(t, "Asha Rao", body["user_metadata"].(map[string]any)["full_name"])

		_, _ = w.Write([]byte(`{"id":"` + id.String() + `"}`))
	})

	identity, err := c.UpdateUser(context.Background(), id, member.IdentityUpdate{
		Metadata: map[string]any{"full_name": "Asha Rao"},
	})
	require.NoError(t, err)
	assert.Equal(t, id, identity.ID)
}

func TestClient_UpdateUser_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"msg":"User not found"}`))
	})

	_, err := c.UpdateUser(context.Background(), uuid.New(), member.IdentityUpdate{})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestClient_FindUserByEmail(t *testing.T) {
	id := uuid.New()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "asha@example.com", r.URL.Query().Get("filter"))
		_, _ = w.Write([]byte(`{"users":[
			{"id":"` + uuid.NewString() + `","email":"asha@example.com.au"},
			{"id":"` + id.String() + `","email":"Asha@Example.com"}
		]}`))
	})

	identity, err := c.FindUserByEmail(context.Background(), " ASHA@example.com ")
	require.NoError(t, err)
	assert.Equal(t, id, identity.ID)

	c = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"users":[]}`))
	})
	_, err = c.FindUserByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
