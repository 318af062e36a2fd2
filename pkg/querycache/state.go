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

// State is the lifecycle position of a keyed read.
//
// The per-key machine is idle -> loading -> success|error. Terminal states
// are retained (stale-but-available) until the key is invalidated or a
// forced refetch runs.
type State int

const (
	// StateIdle means no read has run (or the key was invalidated).
	StateIdle State = iota

	// StateLoading means a read is in flight.
	StateLoading

	// StateSuccess means the last read resolved; Data holds the value.
	StateSuccess

	// StateError means the last read failed; Err holds the failure.
	StateError
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Result is the observable outcome for a key.
type Result struct {
	State State

	// Data holds the fetched value in StateSuccess, else nil.
	Data any

	// Err holds the failure in StateError, else nil.
	Err error

	// FetchedAtMilli is when the terminal state was reached (Unix ms).
	FetchedAtMilli int64
}

// Event is a (key, result) transition published to subscribers. Views
// re-render from these instead of polling the store.
type Event struct {
	Key    Key
	Result Result
}
