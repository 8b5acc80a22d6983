// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/cyferkey/internal/cipher"
	"github.com/MKhiriev/cyferkey/internal/config"
	"github.com/MKhiriev/cyferkey/internal/logger"
	"github.com/MKhiriev/cyferkey/internal/units"
	"github.com/MKhiriev/cyferkey/internal/utils"
)

type httpSyncClient struct {
	client   *utils.HTTPClient
	identity units.Text
	cipher   *cipher.Cipher

	logger *logger.Logger
}

// NewHTTPSyncClient constructs the HTTP implementation of [SyncClient].
// It validates cfg, keys the cipher with cfg.Key and normalises cfg.Address
// into a base URL.
func NewHTTPSyncClient(cfg config.CtlConfig, logger *logger.Logger) (SyncClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	baseURL, err := normalizeBaseURL(cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid sync address: %w", err)
	}

	c, err := cipher.New(cfg.Key)
	if err != nil {
		return nil, err
	}

	return &httpSyncClient{
		client:   utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		identity: units.FromString(cfg.Identity),
		cipher:   c,
		logger:   logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpSyncClient) Validate(ctx context.Context) error {
	_, err := h.post(ctx, "/validate", h.identity)
	return err
}

func (h *httpSyncClient) Passwords(ctx context.Context, key string) ([]string, error) {
	plain, err := h.post(ctx, "/passwords", units.Concat(h.identity, units.FromRawString(key)))
	if err != nil {
		return nil, err
	}
	return decodeSecrets(plain)
}

func (h *httpSyncClient) Generate(ctx context.Context, key string) (string, error) {
	plain, err := h.post(ctx, "/generate", units.Concat(h.identity, units.FromRawString(key)))
	if err != nil {
		return "", err
	}
	return plain.String(), nil
}

// post transforms text, sends it to path and returns the response body with
// the transform reversed.
func (h *httpSyncClient) post(ctx context.Context, path string, text units.Text) (units.Text, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "text/plain").
		SetBody(units.Marshal(h.cipher.Transform(text))).
		Post(path)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().
			Str("path", path).
			Int("status", resp.StatusCode()).
			Msg("sync request refused")
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	body, err := units.Unmarshal(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return h.cipher.Transform(body), nil
}

// decodeSecrets splits a /passwords payload: each secret is one length unit
// followed by that many code units.
func decodeSecrets(plain units.Text) ([]string, error) {
	var secrets []string
	for len(plain) > 0 {
		n := int(plain[0])
		if 1+n > len(plain) {
			return nil, fmt.Errorf("%w: length %d overruns payload", ErrMalformedResponse, n)
		}
		secrets = append(secrets, plain[1:1+n].String())
		plain = plain[1+n:]
	}
	return secrets, nil
}
