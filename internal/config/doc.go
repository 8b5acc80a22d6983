// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// facilities for cyferkey and cyferctl.
//
// Vault configuration is assembled from multiple sources in the following
// priority order (later sources override earlier non-zero fields):
//  0. Built-in defaults
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry points are [GetStructuredConfig] for the vault binary and
// [GetCtlConfig] for the companion CLI.
package config
