package filestore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/esther-pixel31/swiftsend-go/session/filestore"
)

const (
	testAccess  = "access-token-value"
	testRefresh = "refresh-token-value"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tokens.json")
	store := filestore.New(path)

	require.NoError(t, store.Save(testAccess, testRefresh))

	access, refresh, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, testAccess, access)
	require.Equal(t, testRefresh, refresh)
}

func TestStoreLoadMissingFile(t *testing.T) {
	store := filestore.New(filepath.Join(t.TempDir(), "tokens.json"))

	access, refresh, err := store.Load()
	require.NoError(t, err)
	require.Empty(t, access)
	require.Empty(t, refresh)
}

func TestStoreClearIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	store := filestore.New(path)

	require.NoError(t, store.Save(testAccess, testRefresh))
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())

	access, _, err := store.Load()
	require.NoError(t, err)
	require.Empty(t, access)
}

func TestStoreFilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	store := filestore.New(path)

	require.NoError(t, store.Save(testAccess, testRefresh))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestEncryptedStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.bin")
	store, err := filestore.NewEncrypted(path, "correct horse battery staple")
	require.NoError(t, err)

	require.NoError(t, store.Save(testAccess, testRefresh))

	// Ciphertext must not leak the tokens.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(raw), testAccess)

	access, refresh, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, testAccess, access)
	require.Equal(t, testRefresh, refresh)
}

func TestEncryptedStoreWrongPassphrase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.bin")
	store, err := filestore.NewEncrypted(path, "passphrase-one")
	require.NoError(t, err)
	require.NoError(t, store.Save(testAccess, testRefresh))

	other, err := filestore.NewEncrypted(path, "passphrase-two")
	require.NoError(t, err)
	_, _, err = other.Load()
	require.Error(t, err)
}

func TestEncryptedStoreRequiresPassphrase(t *testing.T) {
	_, err := filestore.NewEncrypted(filepath.Join(t.TempDir(), "tokens.bin"), "")
	require.Error(t, err)
}
