// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Entry is a record as typed into the add form, before it becomes a
// [Record].
type Entry struct {
	// Key is the lookup key, usually a website host.
	Key string
	// Secrets are the passwords to store under Key, in order.
	Secrets []string
}

// Credentials are the login or signup form values.
type Credentials struct {
	// Identity is the account name. It names the vault file.
	Identity string
	// MasterKey is the password that keys the cipher. It is never stored.
	MasterKey string
}
