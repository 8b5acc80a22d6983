// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"

	"github.com/MKhiriev/cyferkey/internal/config"
	"github.com/MKhiriev/cyferkey/internal/handler"
	"github.com/MKhiriev/cyferkey/internal/logger"
)

type server struct {
	httpServer *httpServer
	logger     *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.Address == "" {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		logger:     logger,
	}, nil
}

func (s *server) Listen() error {
	if s.httpServer.listener != nil {
		return nil
	}
	return s.httpServer.Listen()
}

func (s *server) Addr() string {
	if s.httpServer.listener != nil {
		return s.httpServer.listener.Addr().String()
	}
	return s.httpServer.server.Addr
}

func (s *server) RunServer(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		done <- s.httpServer.RunServer()
	}()
	s.logger.Info().Str("address", s.Addr()).Msg("sync server listening")

	select {
	case <-ctx.Done():
		s.Shutdown()
		err := <-done
		s.logger.Info().Msg("sync server shut down gracefully")
		return err
	case err := <-done:
		return err
	}
}

func (s *server) Shutdown() {
	s.httpServer.Shutdown()
}
