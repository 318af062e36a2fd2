// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package querycache

import (
	"log/slog"
	"time"
)

// Options configures a Store.
type Options struct {
	// Logger receives fetch/invalidation events. Defaults to slog.Default().
	Logger *slog.Logger

	// TTL bounds how long a success result is served without refetching.
	// Zero disables expiry; the cache is then invalidation-driven only,
	// which is the CivicDesk default.
	TTL time.Duration

	// EventBuffer is the channel capacity for each subscription.
	EventBuffer int
}

// StoreOption mutates Options.
type StoreOption func(*Options)

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		Logger:      slog.Default(),
		TTL:         0,
		EventBuffer: 32,
	}
}

// WithLogger sets the store logger.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// WithTTL sets a success-result expiry.
func WithTTL(ttl time.Duration) StoreOption {
	return func(o *Options) {
		o.TTL = ttl
	}
}

// WithEventBuffer sets the per-subscription channel capacity.
func WithEventBuffer(n int) StoreOption {
	return func(o *Options) {
		if n > 0 {
			o.EventBuffer = n
		}
	}
}
