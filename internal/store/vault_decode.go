// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/cyferkey/internal/units"
	"github.com/MKhiriev/cyferkey/models"
)

// delimiter separates a key from its first secret and one secret from the
// next.
const delimiter uint16 = '#'

type decodeState int

const (
	stateKey decodeState = iota
	stateSize
	stateValue
)

// decoder rebuilds records from the vault file one code unit at a time.
//
// In the value state the unit following a complete secret is looked at
// before it is consumed: a delimiter announces another secret for the same
// key, anything else starts the next key. Keys are not length prefixed, so a
// key holding the delimiter is split at it and misparsed. Existing files
// depend on this layout, so the ambiguity is kept.
type decoder struct {
	state   decodeState
	key     units.Text
	value   units.Text
	secrets []units.Text
	size    int

	records map[string]*models.Record
}

func newDecoder() *decoder {
	return &decoder{
		state:   stateKey,
		records: make(map[string]*models.Record),
	}
}

func (d *decoder) feed(u uint16) {
	switch d.state {
	case stateKey:
		if u == delimiter {
			d.state = stateSize
			return
		}
		d.key = append(d.key, u)

	case stateSize:
		d.size = int(u)
		d.state = stateValue

	case stateValue:
		if len(d.value) < d.size {
			d.value = append(d.value, u)
			return
		}

		d.pushValue()
		if u == delimiter {
			d.state = stateSize
			return
		}

		d.finishRecord()
		d.state = stateKey
		d.key = append(d.key, u)
	}
}

// flush finalizes the record still pending at end of input.
func (d *decoder) flush() {
	if len(d.key) == 0 {
		return
	}
	d.pushValue()
	d.finishRecord()
}

func (d *decoder) pushValue() {
	d.secrets = append(d.secrets, d.value)
	d.value = nil
}

func (d *decoder) finishRecord() {
	key := d.key.RawString()
	// a repeated key replaces the earlier record
	d.records[key] = models.NewRecord(key, models.Ciphertext, d.secrets...)
	d.key = nil
	d.secrets = nil
}

// decodeVault reads every record from r. All records come back as
// Ciphertext.
func decodeVault(r io.Reader) (map[string]*models.Record, error) {
	ur := units.NewReader(r)
	d := newDecoder()

	for {
		u, err := ur.ReadUnit()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error decoding vault: %w", err)
		}
		d.feed(u)
	}
	d.flush()

	return d.records, nil
}
