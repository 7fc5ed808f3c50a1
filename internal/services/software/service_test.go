package software

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/tweakforge/tweakforge/internal/common"
)

func newTestService(t *testing.T, catalogURL string) *Service {
	t.Helper()

	config := &common.SoftwareConfig{
		CatalogURL:     catalogURL,
		RequestTimeout: "5s",
		RateLimit:      100,
	}
	svc := NewService(config, arbor.NewLogger())
	return svc.(*Service)
}

func TestEmbeddedCatalogAvailableAtStartup(t *testing.T) {
	svc := newTestService(t, "")

	catalog := svc.Catalog()
	assert.NotEmpty(t, catalog)
	assert.Contains(t, catalog, "discord")
	assert.Contains(t, catalog, "logitech-ghub")
	assert.True(t, svc.LastRefreshed().IsZero(), "no remote refresh has happened")

	for key, pkg := range catalog {
		assert.NotEmpty(t, pkg.InstallerID, "package %s missing installer ID", key)
		assert.NotEmpty(t, pkg.Name, "package %s missing name", key)
		assert.NotEmpty(t, pkg.Category, "package %s missing category", key)
	}
}

func TestRefreshReplacesCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"discord": {"installer_id": "Discord.Discord", "name": "Discord", "category": "communication"},
			"new-tool": {"installer_id": "Example.Tool", "name": "Example Tool", "category": "utilities"}
		}`))
	}))
	defer server.Close()

	svc := newTestService(t, server.URL)
	require.NoError(t, svc.Refresh(context.Background()))

	catalog := svc.Catalog()
	assert.Len(t, catalog, 2)
	assert.Contains(t, catalog, "new-tool")
	assert.NotContains(t, catalog, "steam", "remote catalog fully replaces the embedded one")
	assert.False(t, svc.LastRefreshed().IsZero())
}

func TestRefreshSkipsInvalidEntries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"good": {"installer_id": "Good.Tool", "name": "Good Tool", "category": "utilities"},
			"no-installer": {"name": "Broken", "category": "utilities"},
			"no-name": {"installer_id": "X.Y", "category": "utilities"}
		}`))
	}))
	defer server.Close()

	svc := newTestService(t, server.URL)
	require.NoError(t, svc.Refresh(context.Background()))

	catalog := svc.Catalog()
	assert.Len(t, catalog, 1)
	assert.Contains(t, catalog, "good")
}

func TestRefreshFailureKeepsCatalog(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"not json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>nope</html>"))
		}},
		{"all entries invalid", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"broken": {"category": "utilities"}}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			svc := newTestService(t, server.URL)
			before := svc.Catalog()

			err := svc.Refresh(context.Background())
			assert.Error(t, err)
			assert.Equal(t, before, svc.Catalog(), "failed refresh must keep previous catalog")
			assert.True(t, svc.LastRefreshed().IsZero())
		})
	}
}

func TestRefreshWithoutURLIsNoop(t *testing.T) {
	svc := newTestService(t, "")
	require.NoError(t, svc.Refresh(context.Background()))
	assert.True(t, svc.LastRefreshed().IsZero())
}
