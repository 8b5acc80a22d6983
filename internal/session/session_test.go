// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Validation(t *testing.T) {
	_, err := New("  ", "key")
	assert.ErrorIs(t, err, ErrEmptyIdentity)

	_, err = New("alice", "")
	assert.ErrorIs(t, err, ErrEmptyMasterKey)
}

func TestNew_BindsCipherToMasterKey(t *testing.T) {
	s, err := New("alice", "hunter2")
	require.NoError(t, err)

	assert.Equal(t, "alice", s.Identity())
	assert.Equal(t, "alice", s.IdentityText().String())

	enc := s.Cipher().TransformString("alice")
	assert.Equal(t, "alice", s.Cipher().Transform(enc).String())
}

func TestSubscribe_PublishAndUnsubscribe(t *testing.T) {
	s, err := New("alice", "hunter2")
	require.NoError(t, err)

	var first, second []Event
	unsubscribe := s.Subscribe(func(e Event) { first = append(first, e) })
	s.Subscribe(func(e Event) { second = append(second, e) })

	s.Publish(Event{Kind: EventConnected, Message: "connected"})
	unsubscribe()
	s.Publish(Event{Kind: EventReload})

	assert.Equal(t, []Event{{Kind: EventConnected, Message: "connected"}}, first)
	assert.Len(t, second, 2)
	assert.Equal(t, EventReload, second[1].Kind)
}
