// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui is the terminal front end of the vault: the login flow and the
// main record list.
package tui

import (
	"context"
	"errors"

	"github.com/MKhiriev/cyferkey/internal/logger"
	"github.com/MKhiriev/cyferkey/internal/service"
	"github.com/MKhiriev/cyferkey/internal/session"
	"github.com/MKhiriev/cyferkey/internal/store"
	"github.com/MKhiriev/cyferkey/internal/validators"
	"github.com/MKhiriev/cyferkey/models"
	tea "github.com/charmbracelet/bubbletea"
)

type TUI struct {
	dataDir   string
	validator validators.Validator
	logger    *logger.Logger

	// programOptions are appended to every tea.NewProgram call.
	programOptions []tea.ProgramOption
}

func New(dataDir string, logger *logger.Logger) *TUI {
	return &TUI{
		dataDir:        dataDir,
		validator:      validators.NewRecordValidator(),
		logger:         logger,
		programOptions: []tea.ProgramOption{tea.WithAltScreen()},
	}
}

// LoginFlow asks for credentials until the user logs in to an existing vault
// or signs up for a new one. signup reports which of the two happened.
func (t *TUI) LoginFlow(ctx context.Context) (creds models.Credentials, signup bool, err error) {
	pages := map[string]tea.Model{
		pageMenu:   NewMenuModel(),
		pageLogin:  NewCredentialsModel(ctx, t.dataDir, false, t.validator, store.VaultExists),
		pageSignup: NewCredentialsModel(ctx, t.dataDir, true, t.validator, store.VaultExists),
	}

	root := NewRootModel(pages, pageMenu)
	finalModel, runErr := tea.NewProgram(root, t.options(ctx)...).Run()
	if runErr != nil {
		if ctx.Err() != nil {
			return models.Credentials{}, false, ErrUserQuit
		}
		return models.Credentials{}, false, runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return models.Credentials{}, false, tea.ErrProgramKilled
	}
	if result.quitByUser || result.result == nil {
		return models.Credentials{}, false, ErrUserQuit
	}

	t.logger.Info().
		Str("identity", result.result.Credentials.Identity).
		Bool("signup", result.result.Signup).
		Msg("credentials accepted")

	return result.result.Credentials, result.result.Signup, nil
}

// MainLoop shows the vault until the user quits or ctx is cancelled.
// Session events reach the view as status updates.
func (t *TUI) MainLoop(ctx context.Context, services *service.Services, sess *session.Session, syncStatus string) error {
	model := NewVaultModel(ctx, services.VaultService, services.ActivityService, sess.Identity(), syncStatus)
	program := tea.NewProgram(model, t.options(ctx)...)

	forwarder := newEventForwarder(eventBuffer)
	unsubscribe := sess.Subscribe(func(e session.Event) {
		if !forwarder.push(e) {
			t.logger.Warn().Int("kind", int(e.Kind)).Msg("status event dropped, ui is behind")
		}
	})
	go forwarder.run(program.Send)

	_, err := program.Run()
	unsubscribe()
	// Run has cancelled the program context, so a pending Send returns.
	forwarder.stop()

	if err != nil {
		if ctx.Err() != nil || errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	}

	return nil
}

func (t *TUI) options(ctx context.Context) []tea.ProgramOption {
	opts := make([]tea.ProgramOption, 0, len(t.programOptions)+1)
	opts = append(opts, t.programOptions...)
	return append(opts, tea.WithContext(ctx))
}
