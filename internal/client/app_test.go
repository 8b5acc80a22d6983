// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"net"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/cyferkey/internal/app"
	"github.com/MKhiriev/cyferkey/internal/config"
	"github.com/MKhiriev/cyferkey/internal/logger"
	"github.com/MKhiriev/cyferkey/internal/service"
	"github.com/MKhiriev/cyferkey/internal/session"
	"github.com/MKhiriev/cyferkey/internal/store"
	"github.com/MKhiriev/cyferkey/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// stubUI plays a scripted session instead of a terminal.
type stubUI struct {
	creds    models.Credentials
	signup   bool
	loginErr error

	mainLoop   func(ctx context.Context, services *service.Services, sess *session.Session) error
	syncStatus string
}

func (u *stubUI) LoginFlow(context.Context) (models.Credentials, bool, error) {
	return u.creds, u.signup, u.loginErr
}

func (u *stubUI) MainLoop(ctx context.Context, services *service.Services, sess *session.Session, syncStatus string) error {
	u.syncStatus = syncStatus
	if u.mainLoop == nil {
		return nil
	}
	return u.mainLoop(ctx, services, sess)
}

func testConfig(t *testing.T) *config.StructuredConfig {
	t.Helper()
	cfg := config.Defaults()
	cfg.Storage.DataDir = t.TempDir()
	cfg.Storage.ActivityDSN = filepath.Join(t.TempDir(), "activity.db")
	cfg.Server.Address = "127.0.0.1:0"
	cfg.Server.ShutdownTimeout = time.Second
	return cfg
}

func TestNewApp_NoUI(t *testing.T) {
	_, err := NewApp(config.Defaults(), nil, logger.Nop())
	assert.ErrorIs(t, err, errNoUIProvided)
}

func TestApp_LoginQuit(t *testing.T) {
	quit := errors.New("user quit")
	a, err := NewApp(testConfig(t), &stubUI{loginErr: quit}, logger.Nop())
	require.NoError(t, err)

	assert.ErrorIs(t, a.Run(context.Background()), quit)
}

func TestApp_SignupAddAndSave(t *testing.T) {
	cfg := testConfig(t)
	ui := &stubUI{
		creds:  models.Credentials{Identity: "alice", MasterKey: "secret"},
		signup: true,
		mainLoop: func(ctx context.Context, services *service.Services, _ *session.Session) error {
			return services.VaultService.Add(ctx, models.Entry{Key: "example.com", Secrets: []string{"hunter2"}})
		},
	}

	a, err := NewApp(cfg, ui, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, a.Run(context.Background()))

	assert.True(t, strings.HasPrefix(ui.syncStatus, app.MsgSyncListening+"127.0.0.1:"))

	sess, err := session.New("alice", "secret")
	require.NoError(t, err)
	vault, err := store.OpenVault(cfg.Storage.DataDir, sess, logger.Nop())
	require.NoError(t, err)

	record, ok := vault.Fetch("example.com")
	require.True(t, ok)
	record.Decrypt(sess.Cipher())
	assert.Equal(t, []string{"hunter2"}, record.Strings())
}

func TestApp_LoginMissingVault(t *testing.T) {
	ui := &stubUI{creds: models.Credentials{Identity: "nobody", MasterKey: "secret"}}

	a, err := NewApp(testConfig(t), ui, logger.Nop())
	require.NoError(t, err)

	assert.ErrorIs(t, a.Run(context.Background()), store.ErrVaultNotFound)
}

func TestApp_SyncUnavailable(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	cfg := testConfig(t)
	cfg.Server.Address = busy.Addr().String()
	cfg.Storage.ActivityDSN = config.ActivityDisabled

	ui := &stubUI{creds: models.Credentials{Identity: "bob", MasterKey: "pw"}, signup: true}
	a, err := NewApp(cfg, ui, logger.Nop())
	require.NoError(t, err)

	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, app.MsgSyncUnavailable, ui.syncStatus)
}

func TestApp_CancelStopsMainLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ui := &stubUI{
		creds:  models.Credentials{Identity: "carol", MasterKey: "pw"},
		signup: true,
		mainLoop: func(ctx context.Context, _ *service.Services, _ *session.Session) error {
			cancel()
			<-ctx.Done()
			return nil
		},
	}

	a, err := NewApp(testConfig(t), ui, logger.Nop())
	require.NoError(t, err)
	assert.NoError(t, a.Run(ctx))
}
