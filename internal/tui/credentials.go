// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/cyferkey/internal/validators"
	"github.com/MKhiriev/cyferkey/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// vaultExistsFunc reports whether identity already has a vault in dataDir.
type vaultExistsFunc func(dataDir, identity string) (bool, error)

// CredentialsModel is the login and the sign up form. Both ask for the same
// two fields and differ only in whether the vault must already exist.
type CredentialsModel struct {
	ctx       context.Context
	dataDir   string
	signup    bool
	validator validators.Validator
	exists    vaultExistsFunc

	inputs []textinput.Model
	focus  int
	errMsg string
}

func NewCredentialsModel(ctx context.Context, dataDir string, signup bool, validator validators.Validator, exists vaultExistsFunc) *CredentialsModel {
	identity := textinput.New()
	identity.Placeholder = "username"
	identity.CharLimit = 128
	identity.Focus()

	masterKey := textinput.New()
	masterKey.Placeholder = "password"
	masterKey.EchoMode = textinput.EchoPassword
	masterKey.EchoCharacter = '•'
	masterKey.CharLimit = 256

	return &CredentialsModel{
		ctx:       ctx,
		dataDir:   dataDir,
		signup:    signup,
		validator: validator,
		exists:    exists,
		inputs:    []textinput.Model{identity, masterKey},
	}
}

func (m *CredentialsModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *CredentialsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case CredentialsResult:
		if msg.Err != nil {
			m.errMsg = humanizeError(msg.Err)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			m.reset()
			return m, func() tea.Msg { return NavigateTo{Page: pageMenu} }
		case key.Matches(msg, keys.tab), key.Matches(msg, keys.arrowDown):
			m.focusNext()
			return m, nil
		case key.Matches(msg, keys.backtab), key.Matches(msg, keys.arrowUp):
			m.focusPrev()
			return m, nil
		case key.Matches(msg, keys.enter):
			if m.focus < len(m.inputs)-1 {
				m.focusNext()
				return m, nil
			}
			m.errMsg = ""
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *CredentialsModel) View() string {
	title := "LOGIN"
	if m.signup {
		title = "SIGN UP"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Username: %s\n", m.inputs[0].View())
	fmt.Fprintf(&b, "Password: %s", m.inputs[1].View())
	if m.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(m.errMsg))
	}

	return renderPage(title, b.String(), "enter: submit │ tab: next field │ esc: back")
}

// submit validates the form and checks the vault file. The check is cheap
// but still runs as a command to keep Update free of I/O.
func (m *CredentialsModel) submit() tea.Cmd {
	creds := models.Credentials{
		Identity:  strings.TrimSpace(m.inputs[0].Value()),
		MasterKey: m.inputs[1].Value(),
	}
	signup := m.signup
	ctx, dataDir, validator, exists := m.ctx, m.dataDir, m.validator, m.exists

	return func() tea.Msg {
		result := CredentialsResult{Credentials: creds, Signup: signup}

		if err := validator.Validate(ctx, creds); err != nil {
			result.Err = err
			return result
		}

		found, err := exists(dataDir, creds.Identity)
		switch {
		case err != nil:
			result.Err = err
		case signup && found:
			result.Err = ErrAccountExists
		case !signup && !found:
			result.Err = ErrAccountNotFound
		}
		return result
	}
}

func (m *CredentialsModel) focusNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *CredentialsModel) focusPrev() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *CredentialsModel) reset() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.focus = 0
	m.inputs[0].Focus()
	m.errMsg = ""
}
