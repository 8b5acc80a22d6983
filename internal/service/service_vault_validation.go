// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/cyferkey/internal/validators"
	"github.com/MKhiriev/cyferkey/models"
)

// VaultServiceWrapper defines middleware composition for VaultService.
// Implementations wrap an existing VaultService to add behavior such as
// validating.
type VaultServiceWrapper interface {
	Wrap(VaultService) VaultService // returns a decorated VaultService applying additional behavior
}

// VaultValidationService checks form input before it reaches the wrapped
// VaultService.
type VaultValidationService struct {
	inner     VaultService
	validator validators.Validator
}

func NewVaultValidationService() VaultServiceWrapper {
	return &VaultValidationService{
		validator: validators.NewRecordValidator(),
	}
}

func (v *VaultValidationService) List(ctx context.Context) []*models.Record {
	return v.inner.List(ctx)
}

func (v *VaultValidationService) Add(ctx context.Context, entry models.Entry) error {
	if err := v.validator.Validate(ctx, entry); err != nil {
		return fmt.Errorf("error during entry validation before saving: %w", err)
	}
	return v.inner.Add(ctx, entry)
}

func (v *VaultValidationService) Delete(ctx context.Context, key, secret string) {
	v.inner.Delete(ctx, key, secret)
}

func (v *VaultValidationService) Generate(ctx context.Context, key string) (string, error) {
	if err := v.validator.Validate(ctx, models.Entry{Key: key}, validators.FieldKey); err != nil {
		return "", fmt.Errorf("error during key validation before generating: %w", err)
	}
	return v.inner.Generate(ctx, key)
}

func (v *VaultValidationService) Save(ctx context.Context) error {
	return v.inner.Save(ctx)
}

func (v *VaultValidationService) Wrap(wrapper VaultService) VaultService {
	v.inner = wrapper
	return v
}
