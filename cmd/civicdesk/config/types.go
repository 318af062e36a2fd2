// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

type CivicDeskConfig struct {
	// Registry: where the complaint registry service lives
	Registry RegistryConfig `yaml:"registry"`

	// Logging: verbosity and optional file destination
	Logging LoggingConfig `yaml:"logging"`

	// Cache: client-side read cache behavior
	Cache CacheConfig `yaml:"cache"`
}

type RegistryConfig struct {
	BaseURL        string `yaml:"base_url"`        // e.g. http://localhost:3000/api
	TimeoutSeconds int    `yaml:"timeout_seconds"` // per-request timeout, 0 = none
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	Dir   string `yaml:"dir"`   // empty disables file logging
}

type CacheConfig struct {
	// TTLSeconds bounds how long a successful read is served from cache
	// without a refetch. 0 keeps data until invalidated.
	TTLSeconds int `yaml:"ttl_seconds"`
}

func DefaultConfig() CivicDeskConfig {
	return CivicDeskConfig{
		Registry: RegistryConfig{
			BaseURL:        "http://localhost:3000/api",
			TimeoutSeconds: 0,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Cache: CacheConfig{
			TTLSeconds: 0,
		},
	}
}
