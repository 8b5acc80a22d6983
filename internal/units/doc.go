// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package units models vault text as a sequence of 16-bit UTF-16 code units.
//
// The vault file format and the sync protocol both count characters in code
// units: length prefixes are a single code unit and the cipher combines code
// units pairwise with the key. Cipher output routinely contains unpaired
// surrogates, which a Go string cannot carry losslessly, so vault text is kept
// as [Text] until it is rendered for display.
//
// [Writer] and [Reader] convert between code units and bytes. The byte form is
// UTF-8 for every well-formed surrogate pair and for all other code units, and
// the three-byte UTF-8 bit layout for an unpaired surrogate (the generalized
// form known as WTF-8). Files produced by the legacy UTF-8 writer therefore
// decode unchanged, and every code unit sequence survives a round trip.
package units
