// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer message strings used by the
// sync services and the terminal UI.
//
// Msg* constants describe the outcome of an operation in the status line of
// the UI and in session events. Keeping them in one place keeps the wording
// consistent between the places that publish a status and the ones that
// show it.
package app

const (
	// MsgNoExtensionConnected is the sync status before any client proved
	// the identity.
	MsgNoExtensionConnected = "no extension connected"

	// MsgSyncUnavailable is the sync status when the listener could not be
	// bound. The vault stays usable locally.
	MsgSyncUnavailable = "sync unavailable"

	// MsgSyncListening prefixes the listener address in the sync status.
	MsgSyncListening = "sync on "

	// MsgExtensionConnected is published when a client passed /validate.
	MsgExtensionConnected = "extension connected"

	// MsgExtensionRejected is published when a client failed /validate.
	MsgExtensionRejected = "extension failed the identity check"

	// MsgSecretGenerated prefixes the key a new secret was generated for.
	MsgSecretGenerated = "secret generated for "

	// MsgVaultSaved is published after the vault file was written.
	MsgVaultSaved = "vault saved"

	// MsgSaveFailed prefixes the error of a failed vault write.
	MsgSaveFailed = "save failed: "
)
