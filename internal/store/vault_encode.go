// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"io"
	"math"

	"github.com/MKhiriev/cyferkey/internal/units"
	"github.com/MKhiriev/cyferkey/models"
)

// encodeVault writes records in the vault file layout: the key, then for
// every secret a delimiter, one length unit and the secret itself. Records
// must already be Ciphertext.
func encodeVault(w io.Writer, records []*models.Record) error {
	uw := units.NewWriter(w)

	for _, r := range records {
		if err := uw.WriteText(units.FromRawString(r.Key())); err != nil {
			return fmt.Errorf("error writing key: %w", err)
		}

		for _, secret := range r.Secrets() {
			if secret.Len() > math.MaxUint16 {
				return fmt.Errorf("%w: key %q", ErrSecretTooLong, r.Key())
			}
			if err := uw.WriteUnit(delimiter); err != nil {
				return fmt.Errorf("error writing delimiter: %w", err)
			}
			if err := uw.WriteUnit(uint16(secret.Len())); err != nil {
				return fmt.Errorf("error writing length: %w", err)
			}
			if err := uw.WriteText(secret); err != nil {
				return fmt.Errorf("error writing secret: %w", err)
			}
		}
	}

	return uw.Flush()
}
