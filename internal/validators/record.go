// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"regexp"
	"strings"

	"github.com/MKhiriev/cyferkey/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldKey targets the lookup key of an entry or record.
	FieldKey = "key"

	// FieldSecrets targets the secret list of an entry or record.
	FieldSecrets = "secrets"

	// FieldIdentity targets the account name of credentials.
	FieldIdentity = "identity"

	// FieldMasterKey targets the master key of credentials.
	FieldMasterKey = "master_key"
)

// keyPattern is the set of keys the add form accepts.
var keyPattern = regexp.MustCompile(`^[a-zA-Z0-9.]+$`)

// RecordValidator implements [Validator] for the user input of the vault:
// [models.Entry], [models.Credentials] and [models.Record].
//
// It supports both value and pointer arguments for every model type and
// allows optional field-level scoping via variadic field name arguments.
type RecordValidator struct {
}

// NewRecordValidator constructs a new RecordValidator and returns it as the
// Validator interface.
func NewRecordValidator() Validator {
	return &RecordValidator{}
}

// Validate dispatches validation to the appropriate type-specific method.
// It returns [ErrUnsupportedType] for any other type.
func (v *RecordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Entry:
		return v.validateEntry(ctx, value, fields...)
	case *models.Entry:
		return v.validateEntry(ctx, *value, fields...)

	case models.Credentials:
		return v.validateCredentials(ctx, value, fields...)
	case *models.Credentials:
		return v.validateCredentials(ctx, *value, fields...)

	case *models.Record:
		return v.validateRecord(ctx, value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func validKey(key string) bool {
	return strings.TrimSpace(key) != "" && keyPattern.MatchString(key)
}

func (v *RecordValidator) validateEntry(ctx context.Context, entry models.Entry, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldKey, FieldSecrets}
	}

	for _, f := range fields {
		switch f {
		case FieldKey:
			if !validKey(entry.Key) {
				return ErrInvalidKey
			}
		case FieldSecrets:
			if len(entry.Secrets) == 0 {
				return ErrNoSecrets
			}
			for _, s := range entry.Secrets {
				if s == "" {
					return ErrEmptySecret
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RecordValidator) validateCredentials(ctx context.Context, creds models.Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldIdentity, FieldMasterKey}
	}

	for _, f := range fields {
		switch f {
		case FieldIdentity:
			if strings.TrimSpace(creds.Identity) == "" {
				return ErrEmptyIdentity
			}
			if strings.ContainsAny(creds.Identity, `/\`) || creds.Identity == "." || creds.Identity == ".." {
				return ErrInvalidIdentity
			}
		case FieldMasterKey:
			if strings.TrimSpace(creds.MasterKey) == "" {
				return ErrEmptyMasterKey
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RecordValidator) validateRecord(ctx context.Context, record *models.Record, fields ...string) error {
	if record == nil {
		return ErrUnsupportedType
	}
	if len(fields) == 0 {
		fields = []string{FieldKey, FieldSecrets}
	}

	for _, f := range fields {
		switch f {
		case FieldKey:
			if record.Key() == "" {
				return ErrInvalidKey
			}
		case FieldSecrets:
			if record.Len() == 0 {
				return ErrNoSecrets
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
