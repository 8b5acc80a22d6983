// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/cyferkey/models"
)

func TestNewRecordValidator(t *testing.T) {
	v := NewRecordValidator()
	require.NotNil(t, v)
	assert.IsType(t, &RecordValidator{}, v)
}

func TestValidate_UnsupportedType(t *testing.T) {
	v := NewRecordValidator()
	assert.ErrorIs(t, v.Validate(context.Background(), 42), ErrUnsupportedType)
	assert.ErrorIs(t, v.Validate(context.Background(), (*models.Record)(nil)), ErrUnsupportedType)
}

func TestValidate_Entry(t *testing.T) {
	tests := []struct {
		name    string
		entry   models.Entry
		fields  []string
		wantErr error
	}{
		{
			name:  "valid",
			entry: models.Entry{Key: "mail.example.com", Secrets: []string{"hunter2"}},
		},
		{
			name:    "blank key",
			entry:   models.Entry{Key: "   ", Secrets: []string{"x"}},
			wantErr: ErrInvalidKey,
		},
		{
			name:    "key with slash",
			entry:   models.Entry{Key: "example.com/login", Secrets: []string{"x"}},
			wantErr: ErrInvalidKey,
		},
		{
			name:    "key with delimiter",
			entry:   models.Entry{Key: "a#b", Secrets: []string{"x"}},
			wantErr: ErrInvalidKey,
		},
		{
			name:    "no secrets",
			entry:   models.Entry{Key: "a.com"},
			wantErr: ErrNoSecrets,
		},
		{
			name:    "empty secret",
			entry:   models.Entry{Key: "a.com", Secrets: []string{"x", ""}},
			wantErr: ErrEmptySecret,
		},
		{
			name:   "key only scope ignores secrets",
			entry:  models.Entry{Key: "a.com"},
			fields: []string{FieldKey},
		},
		{
			name:    "unknown field",
			entry:   models.Entry{Key: "a.com", Secrets: []string{"x"}},
			fields:  []string{"bogus"},
			wantErr: ErrUnknownField,
		},
	}

	v := NewRecordValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.entry, tt.fields...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}

			// pointer form behaves the same
			entry := tt.entry
			assert.Equal(t, err, v.Validate(context.Background(), &entry, tt.fields...))
		})
	}
}

func TestValidate_Credentials(t *testing.T) {
	tests := []struct {
		name    string
		creds   models.Credentials
		wantErr error
	}{
		{name: "valid", creds: models.Credentials{Identity: "alice", MasterKey: "pw"}},
		{name: "blank identity", creds: models.Credentials{Identity: " ", MasterKey: "pw"}, wantErr: ErrEmptyIdentity},
		{name: "path identity", creds: models.Credentials{Identity: "../bob", MasterKey: "pw"}, wantErr: ErrInvalidIdentity},
		{name: "dot identity", creds: models.Credentials{Identity: "..", MasterKey: "pw"}, wantErr: ErrInvalidIdentity},
		{name: "blank key", creds: models.Credentials{Identity: "alice", MasterKey: "\t"}, wantErr: ErrEmptyMasterKey},
	}

	v := NewRecordValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.creds)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_Record(t *testing.T) {
	v := NewRecordValidator()

	assert.NoError(t, v.Validate(context.Background(), models.NewPlaintextRecord("a.com", "x")))
	assert.ErrorIs(t, v.Validate(context.Background(), models.NewPlaintextRecord("", "x")), ErrInvalidKey)
	assert.ErrorIs(t, v.Validate(context.Background(), models.NewPlaintextRecord("a.com")), ErrNoSecrets)
}
