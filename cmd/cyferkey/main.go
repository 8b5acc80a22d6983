// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/cyferkey/internal/client"
	"github.com/MKhiriev/cyferkey/internal/config"
	"github.com/MKhiriev/cyferkey/internal/logger"
	"github.com/MKhiriev/cyferkey/internal/tui"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("cyferkey").Fatal().Err(err).Msg("error getting configs")
	}

	log, closer := logger.NewFileLogger("cyferkey", cfg.Log.File)
	log = log.WithLevel(cfg.Log.Level)

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	app, err := client.NewApp(cfg, tui.New(cfg.Storage.DataDir, log), log)
	if err == nil {
		err = app.Run(ctx)
	}
	stop()

	if err != nil && !errors.Is(err, tui.ErrUserQuit) {
		log.Err(err).Msg("cyferkey run error")
		fmt.Fprintf(os.Stderr, "cyferkey: %v\n", err)
		closer.Close()
		os.Exit(1)
	}
	closer.Close()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
