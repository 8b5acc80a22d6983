// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses the vault configuration flags from args.
//
// Flags:
//
//	-a sync server address in format [host]:[port]
//	-d vault data directory
//	-activity-dsn activity log SQLite DSN ("off" disables it)
//	-gen-length generated password length
//	-max-body-bytes request body limit
//	-log-file log file path
//	-log-level log level (debug, info, warn, error)
//	-c/-config json file path with configs
func parseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var dataDir, activityDSN string
	var generatedLength int
	var maxBodyBytes int64
	var logFile, logLevel string
	var jsonConfigPath string

	fs := flag.NewFlagSet("cyferkey", flag.ContinueOnError)
	fs.Var(&serverAddress, "a", "Sync server address host:port")
	fs.StringVar(&dataDir, "d", "", "Vault data directory")
	fs.StringVar(&activityDSN, "activity-dsn", "", "Activity log SQLite DSN (off disables)")
	fs.IntVar(&generatedLength, "gen-length", 0, "Generated password length")
	fs.Int64Var(&maxBodyBytes, "max-body-bytes", 0, "Request body limit in bytes")
	fs.StringVar(&logFile, "log-file", "", "Log file path")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			GeneratedLength: generatedLength,
		},
		Storage: Storage{
			DataDir:     dataDir,
			ActivityDSN: activityDSN,
		},
		Server: Server{
			Address:      serverAddress.String(),
			MaxBodyBytes: maxBodyBytes,
		},
		Log: Log{
			File:  logFile,
			Level: logLevel,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
