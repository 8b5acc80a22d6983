// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/cyferkey/internal/config"
	httphandler "github.com/MKhiriev/cyferkey/internal/handler/http"
	"github.com/MKhiriev/cyferkey/internal/logger"
	"github.com/MKhiriev/cyferkey/internal/service"
	"github.com/MKhiriev/cyferkey/internal/session"
	"github.com/MKhiriev/cyferkey/internal/store"
	"github.com/MKhiriev/cyferkey/internal/units"
	"github.com/MKhiriev/cyferkey/models"
)

const (
	testIdentity = "alice"
	testKey      = "master-key"
)

// newVaultServer runs the real sync stack over a temp vault.
func newVaultServer(t *testing.T) (*httptest.Server, *store.Vault) {
	t.Helper()

	sess, err := session.New(testIdentity, testKey)
	require.NoError(t, err)

	vault, err := store.NewVault(t.TempDir(), sess, logger.Nop())
	require.NoError(t, err)

	services, err := service.NewServices(vault, store.NewNopActivityRepository(), sess, config.App{GeneratedLength: 10}, logger.Nop())
	require.NoError(t, err)

	router := httphandler.NewHandler(services, config.Server{MaxBodyBytes: 64 << 10}, logger.Nop()).Init()
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, vault
}

func newTestClient(t *testing.T, address, identity, key string) SyncClient {
	t.Helper()

	client, err := NewHTTPSyncClient(config.CtlConfig{
		Address:        address,
		Identity:       identity,
		Key:            key,
		RequestTimeout: 5 * time.Second,
	}, logger.Nop())
	require.NoError(t, err)
	return client
}

func TestNewHTTPSyncClient_InvalidConfig(t *testing.T) {
	_, err := NewHTTPSyncClient(config.CtlConfig{Address: "127.0.0.1:6700", Identity: "alice", RequestTimeout: time.Second}, logger.Nop())
	assert.ErrorIs(t, err, config.ErrInvalidCtlConfigs)

	_, err = NewHTTPSyncClient(config.CtlConfig{Address: "http://", Identity: "alice", Key: "k", RequestTimeout: time.Second}, logger.Nop())
	assert.Error(t, err)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "127.0.0.1:6700", want: "http://127.0.0.1:6700"},
		{raw: " http://localhost:6700/ ", want: "http://localhost:6700"},
		{raw: "", wantErr: true},
		{raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate(t *testing.T) {
	srv, _ := newVaultServer(t)

	assert.NoError(t, newTestClient(t, srv.URL, testIdentity, testKey).Validate(context.Background()))
	assert.ErrorIs(t, newTestClient(t, srv.URL, "mallory", testKey).Validate(context.Background()), ErrBadRequest)
	assert.ErrorIs(t, newTestClient(t, srv.URL, testIdentity, "wrong").Validate(context.Background()), ErrBadRequest)
}

func TestPasswords(t *testing.T) {
	srv, vault := newVaultServer(t)
	require.NoError(t, vault.Put(models.NewPlaintextRecord("example.com", "abc123", "ünïcode 🔑")))

	client := newTestClient(t, srv.URL, testIdentity, testKey)

	got, err := client.Passwords(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"abc123", "ünïcode 🔑"}, got)

	_, err = client.Passwords(context.Background(), "absent.org")
	assert.ErrorIs(t, err, ErrBadRequest)

	_, err = newTestClient(t, srv.URL, "bobby", testKey).Passwords(context.Background(), "example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGenerate_TwiceBothRetrievable(t *testing.T) {
	srv, _ := newVaultServer(t)
	client := newTestClient(t, srv.URL, testIdentity, testKey)

	first, err := client.Generate(context.Background(), "example.com")
	require.NoError(t, err)
	second, err := client.Generate(context.Background(), "example.com")
	require.NoError(t, err)

	assert.Len(t, first, 10)
	assert.Len(t, second, 10)

	got, err := client.Passwords(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{first, second}, got)
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusMethodNotAllowed, ErrMethodNotAllowed},
		{http.StatusInternalServerError, ErrInternalServerError},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			err := newTestClient(t, srv.URL, testIdentity, testKey).Validate(context.Background())
			assert.ErrorIs(t, err, tt.want)
		})
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()
	err := newTestClient(t, srv.URL, testIdentity, testKey).Validate(context.Background())
	assert.ErrorContains(t, err, "418")
}

func TestMalformedResponses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte{0xff})
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL, testIdentity, testKey).Generate(context.Background(), "a.com")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestDecodeSecrets(t *testing.T) {
	got, err := decodeSecrets(units.Text{2, 'a', 'b', 0, 1, 'c'})
	require.NoError(t, err)
	assert.Equal(t, []string{"ab", "", "c"}, got)

	got, err = decodeSecrets(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = decodeSecrets(units.Text{5, 'a'})
	assert.ErrorIs(t, err, ErrMalformedResponse)
}
