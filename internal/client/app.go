// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/cyferkey/internal/app"
	"github.com/MKhiriev/cyferkey/internal/config"
	"github.com/MKhiriev/cyferkey/internal/handler"
	"github.com/MKhiriev/cyferkey/internal/logger"
	"github.com/MKhiriev/cyferkey/internal/server"
	"github.com/MKhiriev/cyferkey/internal/service"
	"github.com/MKhiriev/cyferkey/internal/session"
	"github.com/MKhiriev/cyferkey/internal/store"
	"github.com/MKhiriev/cyferkey/internal/workers"
	"golang.org/x/sync/errgroup"
)

var errNoUIProvided = errors.New("no ui provided")

type App struct {
	cfg    *config.StructuredConfig
	ui     UI
	logger *logger.Logger
}

func NewApp(cfg *config.StructuredConfig, ui UI, logger *logger.Logger) (*App, error) {
	if ui == nil {
		return nil, errNoUIProvided
	}
	if cfg == nil {
		cfg = config.Defaults()
	}

	return &App{cfg: cfg, ui: ui, logger: logger}, nil
}

// Run logs the user in, serves the vault until the UI exits and saves it.
// It returns tui.ErrUserQuit unchanged when the user leaves the login flow.
func (a *App) Run(ctx context.Context) error {
	creds, signup, err := a.ui.LoginFlow(ctx)
	if err != nil {
		return err
	}

	sess, err := session.New(creds.Identity, creds.MasterKey)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	vault, err := a.openVault(sess, signup)
	if err != nil {
		return err
	}

	storages, err := store.NewStorages(ctx, a.cfg.Storage, a.logger)
	if err != nil {
		return fmt.Errorf("create storages: %w", err)
	}
	defer func() {
		if closeErr := storages.Close(); closeErr != nil {
			a.logger.Err(closeErr).Msg("closing storages failed")
		}
	}()

	services, err := service.NewServices(vault, storages.ActivityRepository, sess, a.cfg.App, a.logger)
	if err != nil {
		return fmt.Errorf("create services: %w", err)
	}

	handlers, err := handler.NewHandlers(services, a.cfg.Server, a.logger)
	if err != nil {
		return fmt.Errorf("create handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, a.cfg.Server, a.logger)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	syncStatus := app.MsgSyncUnavailable
	listening := false
	if listenErr := srv.Listen(); listenErr != nil {
		a.logger.Warn().Err(listenErr).Msg("sync listener unavailable, running offline")
	} else {
		listening = true
		syncStatus = app.MsgSyncListening + srv.Addr() + " │ " + app.MsgNoExtensionConnected
	}

	bg := workers.NewWorkers(services, a.cfg.Storage, a.cfg.Workers, a.logger)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gCtx := errgroup.WithContext(runCtx)
	if listening {
		g.Go(func() error { return srv.RunServer(gCtx) })
	}
	g.Go(func() error { return bg.Run(gCtx) })
	g.Go(func() error {
		// the UI owns the lifetime of everything else
		defer cancel()
		return a.ui.MainLoop(gCtx, services, sess, syncStatus)
	})

	runErr := g.Wait()

	if saveErr := services.VaultService.Save(context.WithoutCancel(ctx)); saveErr != nil {
		a.logger.Err(saveErr).Str("path", vault.Path()).Msg("final save failed")
		return errors.Join(runErr, saveErr)
	}

	a.logger.Info().Str("path", vault.Path()).Msg("vault saved on exit")
	return runErr
}

func (a *App) openVault(sess *session.Session, signup bool) (*store.Vault, error) {
	if signup {
		vault, err := store.NewVault(a.cfg.Storage.DataDir, sess, a.logger)
		if err != nil {
			return nil, fmt.Errorf("create vault: %w", err)
		}
		return vault, nil
	}

	vault, err := store.OpenVault(a.cfg.Storage.DataDir, sess, a.logger)
	if err != nil {
		return nil, fmt.Errorf("open vault: %w", err)
	}
	return vault, nil
}
