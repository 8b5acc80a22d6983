// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/cyferkey/internal/logger"
	"github.com/MKhiriev/cyferkey/internal/mock"
	"github.com/MKhiriev/cyferkey/internal/session"
	"github.com/MKhiriev/cyferkey/internal/store"
	"github.com/MKhiriev/cyferkey/internal/units"
	"github.com/MKhiriev/cyferkey/models"
)

const (
	testIdentity  = "alice"
	testMasterKey = "correct horse"
)

func newTestSession(t *testing.T) (*session.Session, *[]session.Event) {
	t.Helper()

	sess, err := session.New(testIdentity, testMasterKey)
	require.NoError(t, err)

	var events []session.Event
	sess.Subscribe(func(e session.Event) { events = append(events, e) })
	return sess, &events
}

// request builds a protocol body the way the extension does.
func request(sess *session.Session, identity, key string) units.Text {
	return sess.Cipher().TransformString(identity + key)
}

// decodeSecrets reverses the /passwords payload encoding.
func decodeSecrets(t *testing.T, sess *session.Session, payload units.Text) []string {
	t.Helper()

	plain := sess.Cipher().Transform(payload)
	var out []string
	for len(plain) > 0 {
		n := int(plain[0])
		require.LessOrEqual(t, 1+n, len(plain), "length unit overruns payload")
		out = append(out, plain[1:1+n].String())
		plain = plain[1+n:]
	}
	return out
}

func TestSyncService_Validate(t *testing.T) {
	ctrl := gomock.NewController(t)
	sess, events := newTestSession(t)
	svc := NewSyncService(mock.NewMockVaultStorage(ctrl), sess, NewPasswordGenerator(), 10, logger.Nop())

	require.NoError(t, svc.Validate(context.Background(), sess.Cipher().TransformString(testIdentity)))
	require.Len(t, *events, 1)
	assert.Equal(t, session.EventConnected, (*events)[0].Kind)

	err := svc.Validate(context.Background(), sess.Cipher().TransformString("mallory"))
	assert.ErrorIs(t, err, ErrIdentityMismatch)
	require.Len(t, *events, 2)
	assert.Equal(t, session.EventRejected, (*events)[1].Kind)

	// the identity transformed under another key does not validate
	other, err := session.New(testIdentity, "wrong key")
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Validate(context.Background(), other.Cipher().TransformString(testIdentity)), ErrIdentityMismatch)
}

func TestSyncService_Passwords_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	sess, _ := newTestSession(t)
	vault := mock.NewMockVaultStorage(ctrl)
	svc := NewSyncService(vault, sess, NewPasswordGenerator(), 10, logger.Nop())

	_, _, err := svc.Passwords(context.Background(), sess.Cipher().TransformString("ali"))
	assert.ErrorIs(t, err, ErrMalformedRequest)

	_, _, err = svc.Passwords(context.Background(), nil)
	assert.ErrorIs(t, err, ErrMalformedRequest)

	key, _, err := svc.Passwords(context.Background(), request(sess, "bobby", "example.com"))
	assert.ErrorIs(t, err, ErrIdentityMismatch)
	assert.Empty(t, key)

	vault.EXPECT().Fetch("example.com").Return(nil, false)
	key, _, err = svc.Passwords(context.Background(), request(sess, testIdentity, "example.com"))
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.Equal(t, "example.com", key)
}

func TestSyncService_Passwords_Found(t *testing.T) {
	ctrl := gomock.NewController(t)
	sess, _ := newTestSession(t)
	vault := mock.NewMockVaultStorage(ctrl)
	svc := NewSyncService(vault, sess, NewPasswordGenerator(), 10, logger.Nop())

	stored := models.NewRecord("example.com", models.Ciphertext,
		sess.Cipher().TransformString("abc123"),
		sess.Cipher().TransformString(""),
		sess.Cipher().TransformString("#hash"),
	)
	vault.EXPECT().Fetch("example.com").Return(stored, true)

	key, payload, err := svc.Passwords(context.Background(), request(sess, testIdentity, "example.com"))
	require.NoError(t, err)
	assert.Equal(t, "example.com", key)
	assert.Equal(t, []string{"abc123", "", "#hash"}, decodeSecrets(t, sess, payload))
}

func TestSyncService_Generate(t *testing.T) {
	ctrl := gomock.NewController(t)
	sess, events := newTestSession(t)
	vault := mock.NewMockVaultStorage(ctrl)
	gen := NewSeededPasswordGenerator(rand.NewPCG(1, 2))
	svc := NewSyncService(vault, sess, gen, 12, logger.Nop())

	var put *models.Record
	vault.EXPECT().Put(gomock.Any()).DoAndReturn(func(r *models.Record) error {
		put = r
		return nil
	})

	key, payload, err := svc.Generate(context.Background(), request(sess, testIdentity, "example.com"))
	require.NoError(t, err)
	assert.Equal(t, "example.com", key)

	secret := sess.Cipher().Transform(payload).String()
	assert.Len(t, secret, 12)

	require.NotNil(t, put)
	assert.Equal(t, "example.com", put.Key())
	assert.Equal(t, models.Plaintext, put.State())
	assert.Equal(t, []string{secret}, put.Strings())

	require.Len(t, *events, 1)
	assert.Equal(t, session.EventReload, (*events)[0].Kind)
}

func TestSyncService_Generate_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	sess, events := newTestSession(t)
	vault := mock.NewMockVaultStorage(ctrl)
	svc := NewSyncService(vault, sess, NewPasswordGenerator(), 10, logger.Nop())

	_, _, err := svc.Generate(context.Background(), request(sess, "eve", ""))
	assert.ErrorIs(t, err, ErrMalformedRequest)

	_, _, err = svc.Generate(context.Background(), request(sess, "alicf", "x.com"))
	assert.ErrorIs(t, err, ErrIdentityMismatch)

	vault.EXPECT().Put(gomock.Any()).Return(store.ErrEmptyKey)
	_, _, err = svc.Generate(context.Background(), request(sess, testIdentity, ""))
	assert.ErrorIs(t, err, ErrMalformedRequest)

	assert.Empty(t, *events)
}

func TestSyncService_TwoGeneratesBothRetrievable(t *testing.T) {
	sess, _ := newTestSession(t)
	vault, err := store.NewVault(t.TempDir(), sess, logger.Nop())
	require.NoError(t, err)

	svc := NewSyncService(vault, sess, NewPasswordGenerator(), 10, logger.Nop())
	body := request(sess, testIdentity, "example.com")

	_, first, err := svc.Generate(context.Background(), body)
	require.NoError(t, err)
	_, second, err := svc.Generate(context.Background(), body)
	require.NoError(t, err)

	_, payload, err := svc.Passwords(context.Background(), body)
	require.NoError(t, err)

	assert.Equal(t, []string{
		sess.Cipher().Transform(first).String(),
		sess.Cipher().Transform(second).String(),
	}, decodeSecrets(t, sess, payload))
}

func TestSyncService_KeysDifferingInLoneSurrogatesStayApart(t *testing.T) {
	sess, _ := newTestSession(t)
	vault, err := store.NewVault(t.TempDir(), sess, logger.Nop())
	require.NoError(t, err)

	svc := NewSyncService(vault, sess, NewPasswordGenerator(), 10, logger.Nop())
	body := func(key units.Text) units.Text {
		return sess.Cipher().Transform(units.Concat(sess.IdentityText(), key))
	}

	highKey, _, err := svc.Generate(context.Background(), body(units.Text{0xD800}))
	require.NoError(t, err)
	lowKey, _, err := svc.Generate(context.Background(), body(units.Text{0xDC00}))
	require.NoError(t, err)

	assert.NotEqual(t, highKey, lowKey)
	assert.Equal(t, 2, vault.Len())

	_, payload, err := svc.Passwords(context.Background(), body(units.Text{0xD800}))
	require.NoError(t, err)
	assert.Len(t, decodeSecrets(t, sess, payload), 1)
}
