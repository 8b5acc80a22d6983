// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/cyferkey/internal/logger"
	"github.com/MKhiriev/cyferkey/internal/session"
	"github.com/MKhiriev/cyferkey/internal/units"
	"github.com/MKhiriev/cyferkey/models"
)

func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	sess, err := session.New("alice", "master-key")
	require.NoError(t, err)
	return sess
}

func newTestVault(t *testing.T) (*Vault, string) {
	t.Helper()
	dir := t.TempDir()
	v, err := NewVault(dir, newTestSession(t), logger.Nop())
	require.NoError(t, err)
	return v, dir
}

// plain returns the decrypted secrets stored under key.
func plain(t *testing.T, v *Vault, sess *session.Session, key string) []string {
	t.Helper()
	r, ok := v.Fetch(key)
	require.True(t, ok, "key %q not found", key)
	r.Decrypt(sess.Cipher())
	return r.Strings()
}

func TestVaultPath(t *testing.T) {
	path, err := VaultPath("data", "alice")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("data", "alice.encrypt"), path)

	for _, bad := range []string{"", ".", "..", "../evil", "a/b"} {
		_, err := VaultPath("data", bad)
		assert.ErrorIs(t, err, ErrInvalidIdentity, bad)
	}
}

func TestNewVault_CreatesEmptyFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	v, err := NewVault(dir, newTestSession(t), logger.Nop())
	require.NoError(t, err)

	info, err := os.Stat(v.Path())
	require.NoError(t, err)
	assert.Zero(t, info.Size())
	assert.Zero(t, v.Len())

	exists, err := VaultExists(dir, "alice")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestNewVault_UnwritableDir(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	// a regular file cannot be used as a directory
	_, err := NewVault(filepath.Join(blocker, "data"), newTestSession(t), logger.Nop())
	require.Error(t, err)
}

func TestOpenVault_RequiresExistingFile(t *testing.T) {
	dir := t.TempDir()
	sess := newTestSession(t)

	_, err := OpenVault(dir, sess, logger.Nop())
	require.ErrorIs(t, err, ErrVaultNotFound)

	_, err = NewVault(dir, sess, logger.Nop())
	require.NoError(t, err)

	v, err := OpenVault(dir, sess, logger.Nop())
	require.NoError(t, err)
	assert.NotNil(t, v)
}

// TestVault_SaveAndReload walks the basic scenario: put, save, and read the
// record back through a fresh vault.
func TestVault_SaveAndReload(t *testing.T) {
	v, dir := newTestVault(t)
	sess := newTestSession(t)

	require.NoError(t, v.Put(models.NewPlaintextRecord("example.com", "abc123")))
	require.NoError(t, v.Save())

	reloaded, err := NewVault(dir, sess, logger.Nop())
	require.NoError(t, err)

	r, ok := reloaded.Fetch("example.com")
	require.True(t, ok)
	assert.Equal(t, models.Ciphertext, r.State())

	r.Decrypt(sess.Cipher())
	assert.Equal(t, []string{"abc123"}, r.Strings())
}

func TestVault_KeysWithLoneSurrogatesSurviveSave(t *testing.T) {
	dir := t.TempDir()
	sess := newTestSession(t)

	path, err := VaultPath(dir, sess.Identity())
	require.NoError(t, err)

	high := units.Text{0xD800, 'a'}
	low := units.Text{0xDC00, 'a'}
	raw := units.Marshal(units.Concat(
		high, units.Text{delimiter, 1, 'x'},
		low, units.Text{delimiter, 1, 'y'},
	))
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	v, err := NewVault(dir, sess, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, 2, v.Len())

	r, ok := v.Fetch(high.RawString())
	require.True(t, ok)
	assert.Equal(t, []units.Text{{'x'}}, r.Secrets())

	require.NoError(t, v.Save())

	reloaded, err := NewVault(dir, sess, logger.Nop())
	require.NoError(t, err)
	for _, key := range []units.Text{high, low} {
		_, ok := reloaded.Fetch(key.RawString())
		assert.True(t, ok, "key %v lost on save", []uint16(key))
	}
}

func TestVault_SaveWritesCiphertext(t *testing.T) {
	v, _ := newTestVault(t)

	require.NoError(t, v.Put(models.NewPlaintextRecord("example.com", "abc123")))
	require.NoError(t, v.Save())

	data, err := os.ReadFile(v.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "example.com")
	assert.NotContains(t, string(data), "abc123")

	// save leaves records encrypted in memory
	r, ok := v.Fetch("example.com")
	require.True(t, ok)
	assert.Equal(t, models.Ciphertext, r.State())
}

func TestVault_SaveFailureKeepsMemory(t *testing.T) {
	v, dir := newTestVault(t)
	sess := newTestSession(t)
	require.NoError(t, v.Put(models.NewPlaintextRecord("example.com", "abc123")))

	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o700) })

	require.Error(t, v.Save())
	assert.Equal(t, []string{"abc123"}, plain(t, v, sess, "example.com"))
}

func TestVault_PutNewKeyInsertsAsGiven(t *testing.T) {
	v, _ := newTestVault(t)

	record := models.NewPlaintextRecord("a.com", "one", "two")
	require.NoError(t, v.Put(record))

	got, ok := v.Fetch("a.com")
	require.True(t, ok)
	assert.Equal(t, models.Plaintext, got.State())
	assert.Equal(t, []string{"one", "two"}, got.Strings())

	// the vault keeps its own copy
	record.PutData(units.FromString("three"))
	got, _ = v.Fetch("a.com")
	assert.Equal(t, 2, got.Len())
}

func TestVault_PutExistingKeyAppends(t *testing.T) {
	v, dir := newTestVault(t)
	sess := newTestSession(t)

	require.NoError(t, v.Put(models.NewPlaintextRecord("a.com", "one")))
	require.NoError(t, v.Save())

	reloaded, err := NewVault(dir, sess, logger.Nop())
	require.NoError(t, err)

	require.NoError(t, reloaded.Put(models.NewPlaintextRecord("a.com", "two", "one")))
	assert.Equal(t, []string{"one", "two", "one"}, plain(t, reloaded, sess, "a.com"))
}

func TestVault_PutCiphertextIncoming(t *testing.T) {
	v, _ := newTestVault(t)
	sess := newTestSession(t)

	require.NoError(t, v.Put(models.NewPlaintextRecord("a.com", "one")))

	incoming := models.NewPlaintextRecord("a.com", "two")
	incoming.Encrypt(sess.Cipher())
	require.NoError(t, v.Put(incoming))

	assert.Equal(t, []string{"one", "two"}, plain(t, v, sess, "a.com"))
}

func TestVault_PutRejectsInvalidRecords(t *testing.T) {
	v, _ := newTestVault(t)

	assert.ErrorIs(t, v.Put(nil), ErrEmptyKey)
	assert.ErrorIs(t, v.Put(models.NewPlaintextRecord("", "x")), ErrEmptyKey)
	assert.ErrorIs(t, v.Put(models.NewPlaintextRecord("a.com")), ErrNoSecrets)

	long := make(units.Text, 1<<16)
	assert.ErrorIs(t, v.Put(models.NewRecord("a.com", models.Plaintext, long)), ErrSecretTooLong)

	assert.Zero(t, v.Len())
}

func TestVault_Remove(t *testing.T) {
	t.Run("only secret deletes record", func(t *testing.T) {
		v, _ := newTestVault(t)
		require.NoError(t, v.Put(models.NewPlaintextRecord("a.com", "only")))

		v.Remove("a.com", units.FromString("something else"))

		_, ok := v.Fetch("a.com")
		assert.False(t, ok)
	})

	t.Run("one of many keeps order", func(t *testing.T) {
		v, _ := newTestVault(t)
		sess := newTestSession(t)
		require.NoError(t, v.Put(models.NewPlaintextRecord("a.com", "one", "two", "three", "two")))

		v.Remove("a.com", units.FromString("two"))

		assert.Equal(t, []string{"one", "three"}, plain(t, v, sess, "a.com"))
	})

	t.Run("all equal secrets delete record", func(t *testing.T) {
		v, _ := newTestVault(t)
		require.NoError(t, v.Put(models.NewPlaintextRecord("a.com", "dup", "dup")))

		v.Remove("a.com", units.FromString("dup"))

		_, ok := v.Fetch("a.com")
		assert.False(t, ok)
	})

	t.Run("absent key is a no-op", func(t *testing.T) {
		v, _ := newTestVault(t)
		require.NoError(t, v.Put(models.NewPlaintextRecord("a.com", "one")))

		v.Remove("missing", units.FromString("one"))
		assert.Equal(t, 1, v.Len())
	})

	t.Run("decrypts stored ciphertext before matching", func(t *testing.T) {
		v, dir := newTestVault(t)
		sess := newTestSession(t)
		require.NoError(t, v.Put(models.NewPlaintextRecord("a.com", "one", "two")))
		require.NoError(t, v.Save())

		reloaded, err := NewVault(dir, sess, logger.Nop())
		require.NoError(t, err)
		reloaded.Remove("a.com", units.FromString("one"))

		assert.Equal(t, []string{"two"}, plain(t, reloaded, sess, "a.com"))
	})
}

func TestVault_FetchAllSnapshots(t *testing.T) {
	v, _ := newTestVault(t)
	require.NoError(t, v.Put(models.NewPlaintextRecord("b.com", "2")))
	require.NoError(t, v.Put(models.NewPlaintextRecord("a.com", "1")))

	all := v.FetchAll()
	keys := make([]string, 0, len(all))
	for _, r := range all {
		keys = append(keys, r.Key())
		r.Remove(units.FromString(r.Strings()[0]))
	}
	sort.Strings(keys)
	assert.Equal(t, []string{"a.com", "b.com"}, keys)

	// mutating snapshots leaves the vault alone
	r, ok := v.Fetch("a.com")
	require.True(t, ok)
	assert.Equal(t, 1, r.Len())
}

func TestVault_ConcurrentPuts(t *testing.T) {
	v, dir := newTestVault(t)
	sess := newTestSession(t)

	var wg sync.WaitGroup
	for range 20 {
		wg.Go(func() {
			assert.NoError(t, v.Put(models.NewPlaintextRecord("shared.com", "secret")))
			_ = v.FetchAll()
		})
	}
	wg.Wait()

	require.NoError(t, v.Save())
	reloaded, err := NewVault(dir, sess, logger.Nop())
	require.NoError(t, err)
	assert.Len(t, plain(t, reloaded, sess, "shared.com"), 20)
}

func TestVault_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alice.encrypt"), []byte{'a', '#', 0xC3}, 0o600))

	_, err := NewVault(dir, newTestSession(t), logger.Nop())
	require.ErrorIs(t, err, units.ErrInvalidEncoding)
}
