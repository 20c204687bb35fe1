package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nordpick/internal/model"
)

func TestFromFileDecodesFixture(t *testing.T) {
	cat, err := FromFile(filepath.Join("testdata", "servers.json"))
	require.NoError(t, err)

	// Duplicate be1, empty domain and out-of-range load are skipped.
	assert.Equal(t, []string{"us1.nordvpn.com", "us2.nordvpn.com", "be1.nordvpn.com"}, cat.Domains())

	us1 := cat.Servers[0]
	assert.Equal(t, "US", us1.Flag, "flag is normalized to uppercase")
	assert.Equal(t, 50, us1.Load)
	assert.Equal(t, []model.Category{model.CategoryStandard, model.CategoryP2P}, us1.Categories)
	assert.True(t, us1.Features.WireGuardUDP)
}

func TestDecodeKeepsUnrecognizedCategories(t *testing.T) {
	cat, err := FromFile(filepath.Join("testdata", "servers.json"))
	require.NoError(t, err)

	be1 := cat.Servers[2]
	require.Equal(t, "be1.nordvpn.com", be1.Domain)
	assert.Equal(t, []model.Category{model.CategoryUnknown}, be1.Categories)
	assert.Equal(t, 5, be1.Load, "first occurrence of a duplicate domain wins")
}

func TestFromAPI(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "servers.json"))
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(data)
	}))
	defer srv.Close()

	cat, err := FromAPI(context.Background(), srv.Client(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 3, cat.Len())
}

func TestFromAPIRejectsNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := FromAPI(context.Background(), srv.Client(), srv.URL)
	assert.Error(t, err)
}

func TestLoadDomainSetFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blacklist.txt")
	content := "# slow servers\nus1.nordvpn.com\n\nnot a domain line\nbe1.nordvpn.com\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	set, err := LoadDomainSet(context.Background(), http.DefaultClient, path)
	require.NoError(t, err)

	assert.Len(t, set, 2)
	assert.Contains(t, set, "us1.nordvpn.com")
	assert.Contains(t, set, "be1.nordvpn.com")
}

func TestLoadDomainSetFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("us2.nordvpn.com\n#comment\n"))
	}))
	defer srv.Close()

	set, err := LoadDomainSet(context.Background(), srv.Client(), srv.URL)
	require.NoError(t, err)

	assert.Len(t, set, 1)
	assert.Contains(t, set, "us2.nordvpn.com")
}
