// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/AleutianAI/CivicDesk/cmd/civicdesk/config"
	"github.com/AleutianAI/CivicDesk/pkg/api"
	"github.com/AleutianAI/CivicDesk/pkg/logging"
	"github.com/mattn/go-isatty"
)

// resolveRegistryURL picks the registry endpoint: flag, then environment,
// then config file, then the compiled-in default.
func resolveRegistryURL() string {
	if registryURL != "" {
		return registryURL
	}
	if env := os.Getenv("CIVICDESK_REGISTRY_URL"); env != "" {
		return env
	}
	if config.Global.Registry.BaseURL != "" {
		return config.Global.Registry.BaseURL
	}
	return api.DefaultBaseURL
}

// newRegistryClient builds the API client from the resolved configuration.
func newRegistryClient() *api.Client {
	logger := logging.New(logging.Config{
		Level:   logging.ParseLevel(config.Global.Logging.Level),
		LogDir:  config.Global.Logging.Dir,
		Service: "civicdesk",
	})
	return api.NewClient(resolveRegistryURL(), logger.Logger)
}

// requestContext applies the configured per-request timeout, if any.
func requestContext() (context.Context, context.CancelFunc) {
	if secs := config.Global.Registry.TimeoutSeconds; secs > 0 {
		return context.WithTimeout(context.Background(), time.Duration(secs)*time.Second)
	}
	return context.Background(), func() {}
}

// isInteractive reports whether stdout is a terminal. Piped output and CI
// runs get plain output and no prompts.
func isInteractive() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode output: %v", err)
	}
	fmt.Println(string(data))
}

// fatalRequest turns an API error into an actionable exit message.
func fatalRequest(op string, err error) {
	if api.IsNotFound(err) {
		log.Fatalf("%s: record not found", op)
	}
	if api.IsConflict(err) {
		log.Fatalf("%s: %v", op, err)
	}
	log.Fatalf("%s: %v", op, err)
}

// parseID converts a positional id argument.
func parseID(arg string) int {
	var id int
	if _, err := fmt.Sscanf(arg, "%d", &id); err != nil || id <= 0 {
		log.Fatalf("Invalid id %q: expected a positive number", arg)
	}
	return id
}
