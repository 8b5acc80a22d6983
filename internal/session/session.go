// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session holds the state created by a successful login or signup:
// the identity, the cipher keyed with the master key, and the subscribers
// that want to hear about status changes.
//
// A Session is created once and passed explicitly to every component that
// needs it. The master key never leaves the cipher.
package session

import (
	"errors"
	"strings"
	"sync"

	"github.com/MKhiriev/cyferkey/internal/cipher"
	"github.com/MKhiriev/cyferkey/internal/units"
)

var (
	// ErrEmptyIdentity is returned by [New] for a blank identity.
	ErrEmptyIdentity = errors.New("identity must not be empty")
	// ErrEmptyMasterKey is returned by [New] for a blank master key.
	ErrEmptyMasterKey = errors.New("master key must not be empty")
)

// EventKind classifies a status [Event].
type EventKind int

const (
	// EventConnected is published when a client proves the identity.
	EventConnected EventKind = iota
	// EventRejected is published when a client fails the identity check.
	EventRejected
	// EventReload asks views to refetch records changed outside of them.
	EventReload
	// EventSaved is published after the vault was written to disk.
	EventSaved
	// EventSaveFailed is published when writing the vault failed.
	EventSaveFailed
)

// Event is a status notification delivered to subscribers.
type Event struct {
	Kind    EventKind
	Message string
}

// Session is the process-wide login context.
type Session struct {
	identity string
	cipher   *cipher.Cipher

	mu     sync.RWMutex
	nextID int
	subs   map[int]func(Event)
}

// New validates the credentials and returns a Session keyed with masterKey.
func New(identity, masterKey string) (*Session, error) {
	if strings.TrimSpace(identity) == "" {
		return nil, ErrEmptyIdentity
	}
	if strings.TrimSpace(masterKey) == "" {
		return nil, ErrEmptyMasterKey
	}

	c, err := cipher.New(masterKey)
	if err != nil {
		return nil, err
	}

	return &Session{
		identity: identity,
		cipher:   c,
		subs:     make(map[int]func(Event)),
	}, nil
}

// Identity returns the account name.
func (s *Session) Identity() string {
	return s.identity
}

// IdentityText returns the account name as code units.
func (s *Session) IdentityText() units.Text {
	return units.FromString(s.identity)
}

// Cipher returns the cipher keyed with the master key.
func (s *Session) Cipher() *cipher.Cipher {
	return s.cipher
}

// Subscribe registers fn for every later [Event] and returns a function that
// removes it. fn runs on the publisher's goroutine and must not block.
func (s *Session) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Publish delivers e to every subscriber.
func (s *Session) Publish(e Event) {
	s.mu.RLock()
	subs := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(e)
	}
}
