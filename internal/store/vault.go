// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/MKhiriev/cyferkey/internal/logger"
	"github.com/MKhiriev/cyferkey/internal/session"
	"github.com/MKhiriev/cyferkey/internal/units"
	"github.com/MKhiriev/cyferkey/models"
)

var _ VaultStorage = (*Vault)(nil)

// vaultExt is appended to the identity to name its vault file.
const vaultExt = ".encrypt"

// Vault is the in-memory record collection of one identity, backed by the
// file <dataDir>/<identity>.encrypt.
//
// The file is read once when the Vault is built. Put and Remove change
// memory only; Save rewrites the whole file. Every method holds one mutex,
// so the sync server and the terminal UI may share a Vault.
type Vault struct {
	mu      sync.Mutex
	path    string
	session *session.Session
	records map[string]*models.Record
	logger  *logger.Logger
}

// VaultPath returns the file backing identity inside dataDir.
func VaultPath(dataDir, identity string) (string, error) {
	if identity == "" || identity == "." || identity == ".." || filepath.Base(identity) != identity {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentity, identity)
	}
	return filepath.Join(dataDir, identity+vaultExt), nil
}

// VaultExists reports whether identity already has a vault file.
func VaultExists(dataDir, identity string) (bool, error) {
	path, err := VaultPath(dataDir, identity)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("error checking vault file: %w", err)
	}
}

// NewVault loads the vault of the session identity, creating an empty file
// (and dataDir) when none exists. Failing to create or read the file is
// returned as an error; the caller cannot continue without a vault.
func NewVault(dataDir string, sess *session.Session, log *logger.Logger) (*Vault, error) {
	path, err := VaultPath(dataDir, sess.Identity())
	if err != nil {
		return nil, err
	}

	v := &Vault{
		path:    path,
		session: sess,
		records: make(map[string]*models.Record),
		logger:  log,
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		if err := createVaultFile(path); err != nil {
			log.Err(err).Str("func", "NewVault").Str("path", path).Msg("error creating vault file")
			return nil, err
		}
		log.Info().Str("func", "NewVault").Str("path", path).Msg("created empty vault")
		return v, nil
	}
	if err != nil {
		log.Err(err).Str("func", "NewVault").Str("path", path).Msg("error opening vault file")
		return nil, fmt.Errorf("error opening vault file: %w", err)
	}
	defer f.Close()

	records, err := decodeVault(f)
	if err != nil {
		log.Err(err).Str("func", "NewVault").Str("path", path).Msg("error reading vault file")
		return nil, err
	}
	v.records = records

	log.Info().Str("func", "NewVault").Str("path", path).Int("records", len(records)).Msg("vault loaded")
	return v, nil
}

// OpenVault is NewVault for an identity that must already have a vault.
func OpenVault(dataDir string, sess *session.Session, log *logger.Logger) (*Vault, error) {
	exists, err := VaultExists(dataDir, sess.Identity())
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrVaultNotFound, sess.Identity())
	}

	return NewVault(dataDir, sess, log)
}

func createVaultFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("error creating vault dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("error creating vault file: %w", err)
	}
	return f.Close()
}

// Path returns the backing file.
func (v *Vault) Path() string {
	return v.path
}

// Len returns the number of records.
func (v *Vault) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return len(v.records)
}

// Fetch returns a snapshot of the record stored under key.
func (v *Vault) Fetch(key string) (*models.Record, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	r, ok := v.records[key]
	if !ok {
		return nil, false
	}
	return r.Clone(), true
}

// FetchAll returns snapshots of every record in no particular order.
func (v *Vault) FetchAll() []*models.Record {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := make([]*models.Record, 0, len(v.records))
	for _, r := range v.records {
		out = append(out, r.Clone())
	}
	return out
}

// Put stores record. A new key is inserted as given. For an existing key the
// stored secrets are decrypted and the incoming ones, decrypted as well if
// needed, are appended after them.
func (v *Vault) Put(record *models.Record) error {
	if record == nil || record.Key() == "" {
		return ErrEmptyKey
	}
	if record.Len() == 0 {
		return ErrNoSecrets
	}
	for _, s := range record.Secrets() {
		if s.Len() > math.MaxUint16 {
			return fmt.Errorf("%w: key %q", ErrSecretTooLong, record.Key())
		}
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	stored, ok := v.records[record.Key()]
	if !ok {
		v.records[record.Key()] = record.Clone()
		return nil
	}

	incoming := record.Clone()
	incoming.Decrypt(v.session.Cipher())
	stored.Decrypt(v.session.Cipher())
	stored.PutData(incoming.Secrets()...)

	return nil
}

// Remove deletes secret from the record under key. A record holding a single
// secret is deleted whatever that secret is. Absent keys are ignored.
func (v *Vault) Remove(key string, secret units.Text) {
	v.mu.Lock()
	defer v.mu.Unlock()

	r, ok := v.records[key]
	if !ok {
		return
	}

	if r.Len() == 1 {
		delete(v.records, key)
		return
	}

	r.Decrypt(v.session.Cipher())
	r.Remove(secret)
	if r.Len() == 0 {
		delete(v.records, key)
	}
}

// Save encrypts every record and replaces the vault file with the result.
// Records stay encrypted even when writing fails.
func (v *Vault) Save() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	records := make([]*models.Record, 0, len(v.records))
	for _, r := range v.records {
		r.Encrypt(v.session.Cipher())
		records = append(records, r)
	}

	var buf bytes.Buffer
	if err := encodeVault(&buf, records); err != nil {
		v.logger.Err(err).Str("func", "Vault.Save").Msg("error encoding vault")
		return err
	}

	if err := writeFileAtomic(v.path, buf.Bytes()); err != nil {
		v.logger.Err(err).Str("func", "Vault.Save").Str("path", v.path).Msg("error writing vault")
		return err
	}

	v.logger.Info().Str("func", "Vault.Save").Int("records", len(records)).Msg("vault saved")
	return nil
}

// writeFileAtomic writes data next to path and renames it over path, so a
// failed write leaves the previous file intact.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("error creating vault dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("error writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("error closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("error setting vault permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("error replacing vault file: %w", err)
	}

	return nil
}
