// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/MKhiriev/cyferkey/internal/session"
	"github.com/MKhiriev/cyferkey/models"
)

// NavigateTo asks [RootModel] to switch pages.
type NavigateTo struct {
	Page    string
	Payload any
}

// CredentialsResult finishes the login flow.
type CredentialsResult struct {
	Credentials models.Credentials
	Signup      bool
	Err         error
}

// sessionEventMsg carries a session event into the program.
type sessionEventMsg session.Event

type recordsLoadedMsg struct {
	records []*models.Record
}

type addDoneMsg struct {
	err error
}

type deletedMsg struct{}

type generatedMsg struct {
	key string
	err error
}

type savedMsg struct {
	err error
}

type copiedMsg struct {
	err error
}

type activityLoadedMsg struct {
	rows []models.Activity
	err  error
}
