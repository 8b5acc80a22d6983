// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package units

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// ErrInvalidEncoding is returned by [Reader.ReadUnit] and [Unmarshal] when
// the byte stream is not valid generalized UTF-8.
var ErrInvalidEncoding = errors.New("invalid code unit encoding")

const (
	surrogateMin     = 0xD800
	highSurrogateMax = 0xDBFF
	lowSurrogateMin  = 0xDC00
	surrogateMax     = 0xDFFF
	supplementaryMin = 0x10000
)

func isHighSurrogate(u uint16) bool { return u >= surrogateMin && u <= highSurrogateMax }
func isLowSurrogate(u uint16) bool  { return u >= lowSurrogateMin && u <= surrogateMax }

// Writer encodes code units onto an underlying io.Writer.
//
// A high surrogate is held back until the next unit is known so that a
// well-formed pair can be written as one four-byte sequence. Flush must be
// called to emit a trailing held-back unit.
type Writer struct {
	w *bufio.Writer

	high    uint16
	hasHigh bool
}

// NewWriter returns a Writer buffering onto w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteUnit encodes a single code unit.
func (w *Writer) WriteUnit(u uint16) error {
	if w.hasHigh {
		w.hasHigh = false
		if isLowSurrogate(u) {
			r := supplementaryMin + (rune(w.high-surrogateMin)<<10 | rune(u-lowSurrogateMin))
			return w.writeBytes(
				byte(0xF0|r>>18),
				byte(0x80|(r>>12)&0x3F),
				byte(0x80|(r>>6)&0x3F),
				byte(0x80|r&0x3F),
			)
		}
		if err := w.writeSingle(w.high); err != nil {
			return err
		}
	}

	if isHighSurrogate(u) {
		w.high = u
		w.hasHigh = true
		return nil
	}

	return w.writeSingle(u)
}

// WriteText encodes every unit of t in order.
func (w *Writer) WriteText(t Text) error {
	for _, u := range t {
		if err := w.WriteUnit(u); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes any held-back surrogate and flushes the buffer.
func (w *Writer) Flush() error {
	if w.hasHigh {
		w.hasHigh = false
		if err := w.writeSingle(w.high); err != nil {
			return err
		}
	}
	return w.w.Flush()
}

func (w *Writer) writeSingle(u uint16) error {
	switch {
	case u < 0x80:
		return w.w.WriteByte(byte(u))
	case u < 0x800:
		return w.writeBytes(byte(0xC0|u>>6), byte(0x80|u&0x3F))
	default:
		return w.writeBytes(byte(0xE0|u>>12), byte(0x80|(u>>6)&0x3F), byte(0x80|u&0x3F))
	}
}

func (w *Writer) writeBytes(b ...byte) error {
	_, err := w.w.Write(b)
	return err
}

// Reader decodes code units from an underlying byte stream.
type Reader struct {
	r io.ByteReader

	low    uint16
	hasLow bool
}

// NewReader returns a Reader over r. r is wrapped in a bufio.Reader unless it
// already implements io.ByteReader.
func NewReader(r io.Reader) *Reader {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{r: br}
}

// ReadUnit returns the next code unit, or io.EOF once the stream is
// exhausted. A four-byte sequence yields two units across two calls.
func (r *Reader) ReadUnit() (uint16, error) {
	if r.hasLow {
		r.hasLow = false
		return r.low, nil
	}

	b0, err := r.r.ReadByte()
	if err != nil {
		return 0, err
	}

	switch {
	case b0 < 0x80:
		return uint16(b0), nil
	case b0&0xE0 == 0xC0:
		b1, err := r.continuation()
		if err != nil {
			return 0, err
		}
		return uint16(b0&0x1F)<<6 | uint16(b1), nil
	case b0&0xF0 == 0xE0:
		b1, err := r.continuation()
		if err != nil {
			return 0, err
		}
		b2, err := r.continuation()
		if err != nil {
			return 0, err
		}
		return uint16(b0&0x0F)<<12 | uint16(b1)<<6 | uint16(b2), nil
	case b0&0xF8 == 0xF0:
		cp := rune(b0 & 0x07)
		for range 3 {
			b, err := r.continuation()
			if err != nil {
				return 0, err
			}
			cp = cp<<6 | rune(b)
		}
		if cp < supplementaryMin || cp > 0x10FFFF {
			return 0, fmt.Errorf("%w: code point %#x out of range", ErrInvalidEncoding, cp)
		}
		cp -= supplementaryMin
		r.low = uint16(lowSurrogateMin + cp&0x3FF)
		r.hasLow = true
		return uint16(surrogateMin + cp>>10), nil
	default:
		return 0, fmt.Errorf("%w: unexpected leading byte %#x", ErrInvalidEncoding, b0)
	}
}

// continuation reads one continuation byte and returns its six payload bits.
func (r *Reader) continuation() (byte, error) {
	b, err := r.r.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("%w: truncated sequence", ErrInvalidEncoding)
		}
		return 0, err
	}
	if b&0xC0 != 0x80 {
		return 0, fmt.Errorf("%w: bad continuation byte %#x", ErrInvalidEncoding, b)
	}
	return b & 0x3F, nil
}

// Marshal encodes t into a new byte slice.
func Marshal(t Text) []byte {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	// bytes.Buffer writes cannot fail
	_ = w.WriteText(t)
	_ = w.Flush()
	return buf.Bytes()
}

// Unmarshal decodes b into code units.
func Unmarshal(b []byte) (Text, error) {
	r := NewReader(bytes.NewReader(b))
	out := make(Text, 0, len(b))
	for {
		u, err := r.ReadUnit()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
}
