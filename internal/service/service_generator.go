// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"math/rand/v2"
	"strings"
	"sync"
)

// alphabet is the character set of generated secrets.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// passwordGenerator draws characters uniformly from alphabet. The source is
// not cryptographically secure.
type passwordGenerator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewPasswordGenerator returns a generator backed by the runtime's global
// random source.
func NewPasswordGenerator() PasswordGenerator {
	return &passwordGenerator{}
}

// NewSeededPasswordGenerator returns a generator drawing from src. Useful for
// reproducible output in tests.
func NewSeededPasswordGenerator(src rand.Source) PasswordGenerator {
	return &passwordGenerator{rnd: rand.New(src)}
}

// Generate returns length random characters, or "" for a non-positive length.
func (g *passwordGenerator) Generate(length int) string {
	if length <= 0 {
		return ""
	}

	var sb strings.Builder
	sb.Grow(length)

	if g.rnd == nil {
		for range length {
			sb.WriteByte(alphabet[rand.IntN(len(alphabet))])
		}
		return sb.String()
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for range length {
		sb.WriteByte(alphabet[g.rnd.IntN(len(alphabet))])
	}
	return sb.String()
}
