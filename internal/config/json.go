// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations.
type StructuredJSONConfig struct {
	App struct {
		GeneratedLength int `json:"generated_length"`
	} `json:"app,omitempty"`

	Storage struct {
		DataDir     string `json:"data_dir"`
		ActivityDSN string `json:"activity_dsn"`
	} `json:"storage,omitempty"`

	Server struct {
		Address         string   `json:"address"`
		MaxBodyBytes    int64    `json:"max_body_bytes"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"server,omitempty"`

	Workers struct {
		PruneInterval     Duration `json:"prune_interval"`
		ActivityRetention Duration `json:"activity_retention"`
	} `json:"workers,omitempty"`

	Log struct {
		File  string `json:"file"`
		Level string `json:"level"`
	} `json:"log,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			GeneratedLength: jsonCfg.App.GeneratedLength,
		},
		Storage: Storage{
			DataDir:     jsonCfg.Storage.DataDir,
			ActivityDSN: jsonCfg.Storage.ActivityDSN,
		},
		Server: Server{
			Address:         jsonCfg.Server.Address,
			MaxBodyBytes:    jsonCfg.Server.MaxBodyBytes,
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
		},
		Workers: Workers{
			PruneInterval:     time.Duration(jsonCfg.Workers.PruneInterval),
			ActivityRetention: time.Duration(jsonCfg.Workers.ActivityRetention),
		},
		Log: Log{
			File:  jsonCfg.Log.File,
			Level: jsonCfg.Log.Level,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
