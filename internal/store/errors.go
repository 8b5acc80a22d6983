// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by the vault to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrSecretTooLong is returned when a secret does not fit the single
	// code unit length prefix of the vault file format.
	ErrSecretTooLong = errors.New("secret longer than 65535 code units")

	// ErrEmptyKey is returned by Put for a record without a lookup key.
	ErrEmptyKey = errors.New("record key must not be empty")

	// ErrNoSecrets is returned by Put for a record holding no secrets.
	ErrNoSecrets = errors.New("record must hold at least one secret")

	// ErrVaultNotFound is returned by OpenVault when the identity has no
	// vault file yet.
	ErrVaultNotFound = errors.New("vault file not found")

	// ErrInvalidIdentity is returned when an identity cannot name a file
	// inside the data directory.
	ErrInvalidIdentity = errors.New("identity is not a valid file name")
)

// Low-level database operation errors returned (wrapped) by the activity
// repository when a SQL-level operation fails.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan activity rows")
)
