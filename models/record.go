// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"slices"

	"github.com/MKhiriev/cyferkey/internal/units"
)

// CipherState tells whether the secrets of a [Record] are currently
// transformed by the session cipher.
type CipherState int

const (
	// Plaintext secrets are readable as entered by the user.
	Plaintext CipherState = iota
	// Ciphertext secrets are the output of the session cipher. Records read
	// from disk start in this state.
	Ciphertext
)

// String implements fmt.Stringer.
func (s CipherState) String() string {
	switch s {
	case Plaintext:
		return "plaintext"
	case Ciphertext:
		return "ciphertext"
	default:
		return "unknown"
	}
}

// Transformer is the keyed transform a Record uses to switch state.
// *cipher.Cipher satisfies it.
type Transformer interface {
	Transform(data units.Text) units.Text
}

// Record holds every secret stored under one lookup key (typically a
// website) together with their cipher state.
//
// All secrets share one state: Encrypt and Decrypt convert the whole set as a
// single step. A Record is not safe for concurrent use; the vault serializes
// access to the records it owns.
type Record struct {
	key     string
	secrets []units.Text
	state   CipherState
}

// NewRecord builds a Record from already converted secrets in the given state.
func NewRecord(key string, state CipherState, secrets ...units.Text) *Record {
	return &Record{
		key:     key,
		secrets: cloneTexts(secrets),
		state:   state,
	}
}

// NewPlaintextRecord builds a Plaintext Record from Go strings.
func NewPlaintextRecord(key string, secrets ...string) *Record {
	return &Record{
		key:     key,
		secrets: units.FromStrings(secrets...),
		state:   Plaintext,
	}
}

// Key returns the lookup key.
func (r *Record) Key() string {
	return r.key
}

// State returns the current cipher state.
func (r *Record) State() CipherState {
	return r.state
}

// Len returns the number of secrets.
func (r *Record) Len() int {
	return len(r.secrets)
}

// Secrets returns a copy of the secrets in their current state.
func (r *Record) Secrets() []units.Text {
	return cloneTexts(r.secrets)
}

// Strings renders the secrets as Go strings. It is meant for Plaintext
// records; ciphertext rarely forms valid text.
func (r *Record) Strings() []string {
	out := make([]string, 0, len(r.secrets))
	for _, s := range r.secrets {
		out = append(out, s.String())
	}
	return out
}

// Decrypt transforms every secret to Plaintext. It does nothing when the
// Record is already Plaintext.
func (r *Record) Decrypt(c Transformer) {
	if r.state == Plaintext {
		return
	}
	r.apply(c)
	r.state = Plaintext
}

// Encrypt transforms every secret to Ciphertext. It does nothing when the
// Record is already Ciphertext.
func (r *Record) Encrypt(c Transformer) {
	if r.state == Ciphertext {
		return
	}
	r.apply(c)
	r.state = Ciphertext
}

func (r *Record) apply(c Transformer) {
	for i, s := range r.secrets {
		r.secrets[i] = c.Transform(s)
	}
}

// PutData appends secrets after the existing ones. Duplicates are kept.
// The appended secrets must be in the Record's current state.
func (r *Record) PutData(more ...units.Text) {
	r.secrets = append(r.secrets, cloneTexts(more)...)
}

// Remove deletes every secret equal to secret, keeping the order of the rest.
func (r *Record) Remove(secret units.Text) {
	r.secrets = slices.DeleteFunc(r.secrets, func(s units.Text) bool {
		return s.Equal(secret)
	})
}

// Clone returns a deep copy of r.
func (r *Record) Clone() *Record {
	return &Record{
		key:     r.key,
		secrets: cloneTexts(r.secrets),
		state:   r.state,
	}
}

func cloneTexts(in []units.Text) []units.Text {
	out := make([]units.Text, 0, len(in))
	for _, s := range in {
		out = append(out, s.Clone())
	}
	return out
}
