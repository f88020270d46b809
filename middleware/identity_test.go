package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateActorHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/rumors", nil)
	req.Header.Set("X-Actor-ID", "alice")

	id, httpErr := ValidateActor(req)
	require.Nil(t, httpErr)
	assert.Equal(t, "alice", id)
}

func TestValidateActorAuthorizationFallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/rumors", nil)
	req.Header.Set("Authorization", "Actor bob:campus.edu")

	id, httpErr := ValidateActor(req)
	require.Nil(t, httpErr)
	assert.Equal(t, "bob:campus.edu", id)
}

func TestResolveActorBodyFallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/rumors", nil)
	id, httpErr := ResolveActor(req, "carol")
	require.Nil(t, httpErr)
	assert.Equal(t, "carol", id)

	// Header identity wins over the body id.
	req.Header.Set("X-Actor-ID", "alice")
	id, httpErr = ResolveActor(req, "carol")
	require.Nil(t, httpErr)
	assert.Equal(t, "alice", id)
}

func TestValidateActorRejections(t *testing.T) {
	cases := []struct {
		name    string
		actorID string
	}{
		{"missing identity", ""},
		{"embedded space", "alice smith"},
		{"path traversal", "../etc/passwd"},
		{"too long", strings.Repeat("a", 101)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/rumors", nil)
			if tc.actorID != "" {
				req.Header.Set("X-Actor-ID", tc.actorID)
			}
			_, httpErr := ValidateActor(req)
			require.NotNil(t, httpErr)
			assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
		})
	}
}
