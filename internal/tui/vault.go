// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/cyferkey/internal/service"
	"github.com/MKhiriev/cyferkey/internal/session"
	"github.com/MKhiriev/cyferkey/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type vaultMode int

const (
	modeList vaultMode = iota
	modeFilter
	modeConfirmDelete
	modeAdd
	modeActivity
)

const (
	activityLimit  = 20
	maxVisibleRows = 15
)

// vaultRow is one secret of one record.
type vaultRow struct {
	key    string
	secret string
}

// VaultModel is the main screen: every (website, password) pair of the
// vault, one per line.
type VaultModel struct {
	ctx      context.Context
	vault    service.VaultService
	activity service.ActivityService

	identity   string
	syncStatus string
	copy       func(string) error

	mode         vaultMode
	rows         []vaultRow
	visible      []vaultRow
	idx          int
	reveal       bool
	filter       textinput.Model
	addForm      *AddFormModel
	activityRows []models.Activity

	status string
	errMsg string
}

func NewVaultModel(ctx context.Context, vault service.VaultService, activity service.ActivityService, identity, syncStatus string) *VaultModel {
	filter := textinput.New()
	filter.Prompt = "/"
	filter.Placeholder = "filter by website"
	filter.CharLimit = 256

	return &VaultModel{
		ctx:        ctx,
		vault:      vault,
		activity:   activity,
		identity:   identity,
		syncStatus: syncStatus,
		copy:       clipboard.WriteAll,
		filter:     filter,
	}
}

func (m *VaultModel) Init() tea.Cmd {
	return m.loadRecords()
}

func (m *VaultModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionEventMsg:
		m.status = msg.Message
		if msg.Kind == session.EventReload {
			return m, m.loadRecords()
		}
		return m, nil

	case recordsLoadedMsg:
		m.setRecords(msg.records)
		return m, nil

	case addSubmitMsg:
		entry := msg.entry
		return m, func() tea.Msg {
			return addDoneMsg{err: m.vault.Add(m.ctx, entry)}
		}

	case addDoneMsg:
		if msg.err != nil {
			if m.addForm != nil {
				m.addForm.SetError(msg.err)
			}
			return m, nil
		}
		m.addForm = nil
		m.mode = modeList
		m.status = "passwords added"
		return m, m.loadRecords()

	case addCancelMsg:
		m.addForm = nil
		m.mode = modeList
		return m, nil

	case deletedMsg:
		m.status = "password deleted"
		return m, m.loadRecords()

	case generatedMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.status = "generated a password for " + msg.key
		return m, m.loadRecords()

	case savedMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.errMsg = "copy failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "copied to clipboard"
		return m, nil

	case activityLoadedMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.activityRows = msg.rows
		m.mode = modeActivity
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.mode == modeAdd && m.addForm != nil {
		_, cmd := m.addForm.Update(msg)
		return m, cmd
	}
	if m.mode == modeFilter {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *VaultModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case modeAdd:
		_, cmd := m.addForm.Update(msg)
		return m, cmd

	case modeFilter:
		switch {
		case key.Matches(msg, keys.esc):
			m.filter.SetValue("")
			m.filter.Blur()
			m.mode = modeList
			m.applyFilter()
			return m, nil
		case key.Matches(msg, keys.enter):
			m.filter.Blur()
			m.mode = modeList
			return m, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.applyFilter()
		return m, cmd

	case modeConfirmDelete:
		switch {
		case key.Matches(msg, keys.yes):
			m.mode = modeList
			row, ok := m.selected()
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg {
				m.vault.Delete(m.ctx, row.key, row.secret)
				return deletedMsg{}
			}
		case key.Matches(msg, keys.no):
			m.mode = modeList
		}
		return m, nil

	case modeActivity:
		if key.Matches(msg, keys.esc) || key.Matches(msg, keys.activity) {
			m.mode = modeList
		}
		if key.Matches(msg, keys.quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	m.errMsg = ""

	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.visible)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.search):
		m.mode = modeFilter
		return m, m.filter.Focus()
	case key.Matches(msg, keys.esc):
		if m.filter.Value() != "" {
			m.filter.SetValue("")
			m.applyFilter()
		}
	case key.Matches(msg, keys.reveal):
		m.reveal = !m.reveal
	case key.Matches(msg, keys.newItem):
		m.addForm = NewAddFormModel()
		if row, ok := m.selected(); ok {
			m.addForm.inputs[addFieldKey].SetValue(row.key)
		}
		m.mode = modeAdd
		return m, m.addForm.Init()
	case key.Matches(msg, keys.delete):
		if _, ok := m.selected(); ok {
			m.mode = modeConfirmDelete
		}
	case key.Matches(msg, keys.copy):
		row, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg { return copiedMsg{err: m.copy(row.secret)} }
	case key.Matches(msg, keys.generate):
		row, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			_, err := m.vault.Generate(m.ctx, row.key)
			return generatedMsg{key: row.key, err: err}
		}
	case key.Matches(msg, keys.save):
		return m, func() tea.Msg { return savedMsg{err: m.vault.Save(m.ctx)} }
	case key.Matches(msg, keys.activity):
		return m, func() tea.Msg {
			rows, err := m.activity.Recent(m.ctx, activityLimit)
			return activityLoadedMsg{rows: rows, err: err}
		}
	}

	return m, nil
}

func (m *VaultModel) View() string {
	switch m.mode {
	case modeAdd:
		return m.addForm.View()
	case modeActivity:
		return renderActivity(m.activityRows)
	}

	var b strings.Builder
	b.WriteString(m.renderRows())

	if m.mode == modeFilter || m.filter.Value() != "" {
		b.WriteString("\n\n")
		b.WriteString(m.filter.View())
	}

	if m.mode == modeConfirmDelete {
		if row, ok := m.selected(); ok {
			b.WriteString("\n\n")
			b.WriteString(overlayBoxStyle.Render(fmt.Sprintf("Delete this password for %s? (y/n)", row.key)))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(statusStyle.Render(m.statusLine()))
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
	}

	return renderPage(
		"CYFERKEY: "+m.identity,
		b.String(),
		"n: add │ d: delete │ c: copy │ g: generate │ s: save │ r: reveal │ /: filter │ a: activity │ q: quit",
	)
}

func (m *VaultModel) renderRows() string {
	if len(m.visible) == 0 {
		if len(m.rows) == 0 {
			return "No passwords yet. Press n to add one."
		}
		return "Nothing matches the filter."
	}

	start := 0
	if m.idx >= maxVisibleRows {
		start = m.idx - maxVisibleRows + 1
	}
	end := min(start+maxVisibleRows, len(m.visible))

	var b strings.Builder
	fmt.Fprintf(&b, "  %-32s %s\n", "WEBSITE", "PASSWORD")
	for i := start; i < end; i++ {
		row := m.visible[i]
		cursor := " "
		if i == m.idx {
			cursor = ">"
		}
		secret := mask(row.secret)
		if m.reveal {
			secret = row.secret
		}
		fmt.Fprintf(&b, "%s %-32s %s", cursor, fitText(row.key, 32), fitText(secret, 40))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m *VaultModel) statusLine() string {
	parts := []string{m.syncStatus}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return strings.Join(parts, " │ ")
}

func (m *VaultModel) loadRecords() tea.Cmd {
	return func() tea.Msg {
		return recordsLoadedMsg{records: m.vault.List(m.ctx)}
	}
}

func (m *VaultModel) setRecords(records []*models.Record) {
	m.rows = m.rows[:0]
	for _, r := range records {
		for _, secret := range r.Strings() {
			m.rows = append(m.rows, vaultRow{key: r.Key(), secret: secret})
		}
	}
	m.applyFilter()
}

func (m *VaultModel) applyFilter() {
	needle := strings.ToLower(strings.TrimSpace(m.filter.Value()))

	m.visible = m.visible[:0]
	for _, row := range m.rows {
		if needle == "" || strings.Contains(strings.ToLower(row.key), needle) {
			m.visible = append(m.visible, row)
		}
	}

	if m.idx >= len(m.visible) {
		m.idx = max(len(m.visible)-1, 0)
	}
}

func (m *VaultModel) selected() (vaultRow, bool) {
	if m.idx < 0 || m.idx >= len(m.visible) {
		return vaultRow{}, false
	}
	return m.visible[m.idx], true
}
