// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package units

import (
	"slices"
	"unicode/utf16"
)

// Text is a sequence of UTF-16 code units.
type Text []uint16

// FromString converts a Go string to code units. Runes outside the Basic
// Multilingual Plane become surrogate pairs.
func FromString(s string) Text {
	return Text(utf16.Encode([]rune(s)))
}

// FromStrings converts every element of ss with [FromString].
func FromStrings(ss ...string) []Text {
	out := make([]Text, 0, len(ss))
	for _, s := range ss {
		out = append(out, FromString(s))
	}
	return out
}

// String renders t as a Go string. Unpaired surrogates are replaced with
// U+FFFD, so String is only lossless for well-formed text.
func (t Text) String() string {
	return string(utf16.Decode(t))
}

// RawString renders t as a Go string holding its byte encoding. Unlike
// [Text.String] it keeps unpaired surrogates, so distinct texts give distinct
// strings. Well-formed text renders the same as with String.
func (t Text) RawString() string {
	return string(Marshal(t))
}

// FromRawString reverses [Text.RawString]. A string that is not a valid
// encoding is converted with [FromString].
func FromRawString(s string) Text {
	t, err := Unmarshal([]byte(s))
	if err != nil {
		return FromString(s)
	}
	return t
}

// Len returns the number of code units in t.
func (t Text) Len() int {
	return len(t)
}

// Equal reports whether t and o hold the same code units.
func (t Text) Equal(o Text) bool {
	return slices.Equal(t, o)
}

// Clone returns a copy of t that shares no memory with it.
func (t Text) Clone() Text {
	if t == nil {
		return nil
	}
	return slices.Clone(t)
}

// Concat joins parts without a separator.
func Concat(parts ...Text) Text {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make(Text, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
