// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cipher

import (
	"math/rand/v2"
	"testing"

	"github.com/MKhiriev/cyferkey/internal/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransform_KnownValue(t *testing.T) {
	out, err := Transform(units.Text{'a', 'b', 'c'}, units.Text{1, 2})
	require.NoError(t, err)

	assert.Equal(t, units.Text{'a' ^ 1, 'b' ^ 2, 'c' ^ 1}, out)
}

func TestTransform_EmptyKey(t *testing.T) {
	_, err := Transform(units.FromString("data"), nil)
	assert.ErrorIs(t, err, ErrEmptyKey)

	_, err = New("")
	assert.ErrorIs(t, err, ErrEmptyKey)
}

func TestTransform_EmptyData(t *testing.T) {
	out, err := Transform(units.Text{}, units.FromString("k"))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestTransform_SelfInverse(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for range 200 {
		data := randomText(rng, rng.IntN(64))
		key := randomText(rng, 1+rng.IntN(16))

		once, err := Transform(data, key)
		require.NoError(t, err)
		twice, err := Transform(once, key)
		require.NoError(t, err)

		assert.True(t, data.Equal(twice))
	}
}

func TestTransform_DoesNotModifyInput(t *testing.T) {
	data := units.FromString("secret")
	_, err := Transform(data, units.FromString("key"))
	require.NoError(t, err)

	assert.Equal(t, "secret", data.String())
}

func TestCipher_TransformString(t *testing.T) {
	c, err := New("master")
	require.NoError(t, err)

	enc := c.TransformString("alice")
	assert.NotEqual(t, "alice", enc.String())
	assert.Equal(t, "alice", c.Transform(enc).String())
}

func TestCipher_PrefixLeak(t *testing.T) {
	c, err := New("k3y")
	require.NoError(t, err)

	a := c.TransformString("password1")
	b := c.TransformString("password2")

	assert.Equal(t, a[:8], b[:8])
}

func randomText(rng *rand.Rand, n int) units.Text {
	t := make(units.Text, n)
	for i := range t {
		t[i] = uint16(rng.UintN(1 << 16))
	}
	return t
}
