// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package querycache keeps list/detail views, forms, and the registry
// consistent after create/update/delete.
//
// # Description
//
// The store holds the latest known Result per key, deduplicates concurrent
// identical reads with singleflight, and propagates writes to dependent
// reads by invalidating every key under the mutated entity kind. Views
// subscribe to (key, result) events instead of polling.
//
// # Ordering
//
// Mutate invalidates only after the mutation resolves, and invalidation
// bumps a per-key generation so a read that was already in flight when the
// mutation landed can never overwrite the cache with pre-mutation data.
//
// # Thread Safety
//
// Store is safe for concurrent use. The at-most-one-in-flight rule is
// enforced per key, not globally.
package querycache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// FetchFunc loads the value for one key, usually a single api.Client call.
type FetchFunc func(ctx context.Context) (any, error)

// MutateFunc performs one write against the registry.
type MutateFunc func(ctx context.Context) error

// Store is the process-wide query/mutation cache. Create one at startup,
// pass it to every consumer, and Close it on shutdown.
type Store struct {
	mu      sync.RWMutex
	entries map[string]Result
	gens    map[string]uint64
	flight  singleflight.Group
	options Options

	subMu   sync.Mutex
	subs    map[int]*Subscription
	nextSub int
	closed  bool

	hits          int64
	misses        int64
	fetches       int64
	fetchErrors   int64
	invalidations int64
}

// Stats reports store counters for diagnostics.
type Stats struct {
	Entries       int
	Hits          int64
	Misses        int64
	Fetches       int64
	FetchErrors   int64
	Invalidations int64
}

// NewStore creates a Store with the given options.
func NewStore(opts ...StoreOption) *Store {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return &Store{
		entries: make(map[string]Result),
		gens:    make(map[string]uint64),
		options: options,
		subs:    make(map[int]*Subscription),
	}
}

// Get peeks at the retained result for a key without triggering a fetch.
// Returns false when the key is idle (never fetched or invalidated).
func (s *Store) Get(key Key) (Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, ok := s.entries[key.String()]
	if !ok {
		return Result{State: StateIdle}, false
	}
	return res, true
}

// Fetch resolves a key, deduplicating concurrent identical reads.
//
// A retained success result is served as-is; the cache is invalidation
// driven, not freshness driven (unless a TTL is configured). A retained
// error does not short-circuit: requesting the key again retries.
//
// The fetch itself runs detached from the caller's cancellation, so a view
// that navigates away mid-read still leaves the result behind for any other
// consumer of the key.
func (s *Store) Fetch(ctx context.Context, key Key, fn FetchFunc) (Result, error) {
	id := key.String()

	s.mu.RLock()
	res, ok := s.entries[id]
	gen := s.gens[id]
	s.mu.RUnlock()

	if ok && res.State == StateSuccess && !s.expired(res) {
		atomic.AddInt64(&s.hits, 1)
		return res, nil
	}
	atomic.AddInt64(&s.misses, 1)

	s.markLoading(key)

	// Detach cancellation: the result outlives any one caller.
	fetchCtx := context.WithoutCancel(ctx)

	v, err, _ := s.flight.Do(id, func() (any, error) {
		atomic.AddInt64(&s.fetches, 1)
		data, err := fn(fetchCtx)

		now := time.Now().UnixMilli()
		var result Result
		if err != nil {
			atomic.AddInt64(&s.fetchErrors, 1)
			result = Result{State: StateError, Err: err, FetchedAtMilli: now}
		} else {
			result = Result{State: StateSuccess, Data: data, FetchedAtMilli: now}
		}

		s.store(key, gen, result)
		return result, nil
	})
	if err != nil {
		// Unreachable: the flight func never returns an error directly.
		return Result{State: StateError, Err: err}, err
	}

	result := v.(Result)
	return result, result.Err
}

// Invalidate removes every cached entry whose key begins with one of the
// given kinds and notifies subscribers. The next Fetch for any removed key
// transitions back to loading and refetches.
func (s *Store) Invalidate(kinds ...Kind) {
	var removed []Key

	s.mu.Lock()
	for id := range s.entries {
		key := parseKey(id)
		for _, kind := range kinds {
			if key.Kind == kind {
				delete(s.entries, id)
				s.gens[id]++
				removed = append(removed, key)
				break
			}
		}
	}
	s.mu.Unlock()

	for _, key := range removed {
		atomic.AddInt64(&s.invalidations, 1)
		// A new flight must run even if one is mid-air for this key.
		s.flight.Forget(key.String())
		s.publish(Event{Key: key, Result: Result{State: StateIdle}})
	}

	if len(removed) > 0 {
		s.options.Logger.Debug("cache invalidated", "kinds", kindStrings(kinds), "keys", len(removed))
	}
}

// Mutate runs a write and, only if it succeeds, invalidates the given kinds.
// Failures are returned untouched for the caller to surface; nothing is
// invalidated so views keep their stale-but-available data.
func (s *Store) Mutate(ctx context.Context, fn MutateFunc, kinds ...Kind) error {
	if err := fn(ctx); err != nil {
		return err
	}
	s.Invalidate(kinds...)
	return nil
}

// Stats returns current counters.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	entries := len(s.entries)
	s.mu.RUnlock()

	return Stats{
		Entries:       entries,
		Hits:          atomic.LoadInt64(&s.hits),
		Misses:        atomic.LoadInt64(&s.misses),
		Fetches:       atomic.LoadInt64(&s.fetches),
		FetchErrors:   atomic.LoadInt64(&s.fetchErrors),
		Invalidations: atomic.LoadInt64(&s.invalidations),
	}
}

// Close tears the store down and closes every subscription channel.
// Fetch results arriving after Close are discarded.
func (s *Store) Close() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	for id, sub := range s.subs {
		close(sub.ch)
		delete(s.subs, id)
	}
}

// markLoading records the loading transition and tells subscribers, unless
// the key is already loading (a concurrent caller got there first).
func (s *Store) markLoading(key Key) {
	id := key.String()

	s.mu.Lock()
	if res, ok := s.entries[id]; ok && res.State == StateLoading {
		s.mu.Unlock()
		return
	}
	s.entries[id] = Result{State: StateLoading}
	s.mu.Unlock()

	s.publish(Event{Key: key, Result: Result{State: StateLoading}})
}

// store retains a terminal result unless the key's generation moved while
// the fetch was in flight (an invalidation raced it); stale results are
// dropped so the next read refetches.
func (s *Store) store(key Key, gen uint64, result Result) {
	id := key.String()

	s.mu.Lock()
	if s.gens[id] != gen {
		// Entry was invalidated mid-flight. Keep whatever state the
		// invalidation left (idle) rather than resurrecting old data.
		if res, ok := s.entries[id]; ok && res.State == StateLoading {
			delete(s.entries, id)
		}
		s.mu.Unlock()
		s.options.Logger.Debug("discarded stale fetch result", "key", id)
		return
	}
	s.entries[id] = result
	s.mu.Unlock()

	s.publish(Event{Key: key, Result: result})
}

func (s *Store) expired(res Result) bool {
	if s.options.TTL == 0 {
		return false
	}
	return time.Since(time.UnixMilli(res.FetchedAtMilli)) > s.options.TTL
}

func kindStrings(kinds []Kind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}
