package adapters

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListVersionsPreservesFeedOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/system.text.json/index.json", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string][]string{
			"versions": {"6.0.2", "6.0.1", "6.0.1-preview1"},
		})
	}))
	defer server.Close()

	adapter := NewNuGetFeedAdapter(server.URL, "", "", 5)
	versions, err := adapter.ListVersions(t.Context(), "System.Text.Json")
	require.NoError(t, err)
	assert.Equal(t, []string{"6.0.2", "6.0.1", "6.0.1-preview1"}, versions)
}

func TestListVersionsUnknownPackage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	adapter := NewNuGetFeedAdapter(server.URL, "", "", 5)
	versions, err := adapter.ListVersions(t.Context(), "Nonexistent.Package")
	require.NoError(t, err)
	assert.Empty(t, versions)
}

func TestListVersionsSendsBasicAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, key, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "api", user)
		assert.Equal(t, "secret", key)
		_ = json.NewEncoder(w).Encode(map[string][]string{"versions": {"1.0.0"}})
	}))
	defer server.Close()

	adapter := NewNuGetFeedAdapter(server.URL, "", "secret", 5)
	_, err := adapter.ListVersions(t.Context(), "Some.Package")
	require.NoError(t, err)
}

func TestListVersionsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "feed exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	adapter := NewNuGetFeedAdapter(server.URL, "", "", 5)
	_, err := adapter.ListVersions(t.Context(), "Some.Package")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nuget feed query failed")
}

func TestNewNuGetFeedAdapterDefaults(t *testing.T) {
	adapter := NewNuGetFeedAdapter("", "", "", 0)
	assert.Equal(t, NuGetOrgEndpoint, adapter.Endpoint)
	assert.Equal(t, defaultFeedTimeout, adapter.Timeout)
}
