// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/cyferkey/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	addFieldKey = iota
	addFieldSecret
)

type addSubmitMsg struct {
	entry models.Entry
}

type addCancelMsg struct{}

// AddFormModel collects one website and any number of passwords for it.
// Enter on a filled password field appends it to the list; enter on an empty
// one (or ctrl+s) submits.
type AddFormModel struct {
	inputs  []textinput.Model
	focus   int
	secrets []string
	errMsg  string
}

func NewAddFormModel() *AddFormModel {
	website := textinput.New()
	website.Placeholder = "example.com"
	website.CharLimit = 256
	website.Focus()

	secret := textinput.New()
	secret.Placeholder = "password"
	secret.CharLimit = 1024

	return &AddFormModel{inputs: []textinput.Model{website, secret}}
}

func (m *AddFormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *AddFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		return m, func() tea.Msg { return addCancelMsg{} }
	case key.Matches(keyMsg, keys.tab), key.Matches(keyMsg, keys.backtab):
		m.switchFocus()
		return m, nil
	case key.Matches(keyMsg, keys.submit):
		return m, m.submit()
	case key.Matches(keyMsg, keys.enter):
		if m.focus == addFieldKey {
			m.switchFocus()
			return m, nil
		}
		if secret := m.inputs[addFieldSecret].Value(); secret != "" {
			m.secrets = append(m.secrets, secret)
			m.inputs[addFieldSecret].SetValue("")
			m.errMsg = ""
			return m, nil
		}
		return m, m.submit()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *AddFormModel) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Website:  %s\n", m.inputs[addFieldKey].View())
	fmt.Fprintf(&b, "Password: %s\n", m.inputs[addFieldSecret].View())

	b.WriteString("\nPasswords to add:\n")
	if len(m.secrets) == 0 {
		b.WriteString("  (none yet)")
	}
	for i, s := range m.secrets {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "  %d. %s", i+1, mask(s))
	}

	if m.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(m.errMsg))
	}

	return renderPage("ADD PASSWORDS", b.String(), "enter: add password │ empty enter / ctrl+s: save │ tab: switch │ esc: cancel")
}

// SetError shows err under the form. The vault view calls it when the
// entry was refused.
func (m *AddFormModel) SetError(err error) {
	m.errMsg = humanizeError(err)
}

// Entry is what submit would send: the pending list plus a typed but not yet
// appended password.
func (m *AddFormModel) Entry() models.Entry {
	secrets := append([]string(nil), m.secrets...)
	if pending := m.inputs[addFieldSecret].Value(); pending != "" {
		secrets = append(secrets, pending)
	}
	return models.Entry{
		Key:     strings.TrimSpace(m.inputs[addFieldKey].Value()),
		Secrets: secrets,
	}
}

func (m *AddFormModel) submit() tea.Cmd {
	entry := m.Entry()
	m.errMsg = ""
	return func() tea.Msg { return addSubmitMsg{entry: entry} }
}

func (m *AddFormModel) switchFocus() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}
