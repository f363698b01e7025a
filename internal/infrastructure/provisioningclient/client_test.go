package provisioningclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/society/backend/internal/domain/onboarding"
)

func TestNew_RequiresURL(t *testing.T) {
	_, err := New(Config{})
	assert.ErrorIs(t, err, ErrMissingURL)
}

func TestClient_Submit(t *testing.T) {
	var got onboarding.ProvisioningRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer session-token", r.Header.Get("Authorization"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"status":"success","operation":"created","userId":"u-1","temporaryPassword":"Tmp#Pass1234xy"}`))
	}))
	defer srv.Close()

	c, err := New(Config{URL: srv.URL, APIKey: "anon-key", AccessToken: "session-token"})
	require.NoError(t, err)

	result, err := c.Submit(context.Background(), &onboarding.ProvisioningRequest{
		Email:     "asha@example.com",
		FullName:  "Asha Rao",
		SocietyID: "soc-1",
	})
	require.NoError(t, err)
	assert.Equal(t, onboarding.OperationCreated, result.Operation)
	require.NotNil(t, result.TemporaryPassword)
	assert.Equal(t, "asha@example.com", got.Email)
}

func TestClient_Submit_ServerError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"with reason", http.StatusBadRequest, `{"error":"Missing required fields"}`, "Missing required fields"},
		{"without body", http.StatusBadGateway, ``, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c, err := New(Config{URL: srv.URL})
			require.NoError(t, err)

			_, err = c.Submit(context.Background(), &onboarding.ProvisioningRequest{})
			var se *ServerError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.status, se.Status)
			assert.Equal(t, tt.message, se.Reason())
		})
	}
}
