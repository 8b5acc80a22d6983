// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cipher implements the vault's repeating-key XOR transform.
//
// Output unit i is input unit i XORed with key unit i mod len(key). The
// transform is its own inverse. There is no nonce and no integrity tag: equal
// plaintext prefixes under one key give equal ciphertext prefixes. The
// transform is kept for compatibility with existing vault files and the
// browser extension, not for strength.
package cipher

import (
	"errors"

	"github.com/MKhiriev/cyferkey/internal/units"
)

// ErrEmptyKey is returned when a transform is requested with an empty key.
var ErrEmptyKey = errors.New("cipher key must not be empty")

// Transform applies the keyed XOR transform to data and returns a new Text.
func Transform(data, key units.Text) (units.Text, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	return xor(data, key), nil
}

func xor(data, key units.Text) units.Text {
	out := make(units.Text, len(data))
	for i, u := range data {
		out[i] = u ^ key[i%len(key)]
	}
	return out
}

// Cipher is a Transform bound to one key.
type Cipher struct {
	key units.Text
}

// New returns a Cipher keyed with the code units of key.
func New(key string) (*Cipher, error) {
	k := units.FromString(key)
	if len(k) == 0 {
		return nil, ErrEmptyKey
	}
	return &Cipher{key: k}, nil
}

// Transform applies the keyed transform to data.
func (c *Cipher) Transform(data units.Text) units.Text {
	return xor(data, c.key)
}

// TransformString applies the keyed transform to the code units of s.
func (c *Cipher) TransformString(s string) units.Text {
	return xor(units.FromString(s), c.key)
}
