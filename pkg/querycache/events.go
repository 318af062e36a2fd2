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

// Subscription is one consumer's view of cache transitions. Unsubscribing
// is the cancellation point for a discarded view: after Unsubscribe returns,
// no further events are delivered and the channel is closed.
type Subscription struct {
	id    int
	kinds []Kind
	ch    chan Event
}

// Events returns the receive channel. It is closed by Unsubscribe or by
// Store.Close.
func (s *Subscription) Events() <-chan Event {
	return s.ch
}

// wants reports whether the subscription filters in the given key.
func (s *Subscription) wants(key Key) bool {
	if len(s.kinds) == 0 {
		return true
	}
	for _, k := range s.kinds {
		if k == key.Kind {
			return true
		}
	}
	return false
}

// Subscribe registers a consumer for (key, result) transitions. With no
// kinds, every transition is delivered; otherwise only the named kinds.
// Returns nil if the store is already closed.
func (s *Store) Subscribe(kinds ...Kind) *Subscription {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	if s.closed {
		return nil
	}

	sub := &Subscription{
		id:    s.nextSub,
		kinds: kinds,
		ch:    make(chan Event, s.options.EventBuffer),
	}
	s.subs[sub.id] = sub
	s.nextSub++
	return sub
}

// Unsubscribe removes the subscription and closes its channel. Safe to call
// with nil or an already-removed subscription.
func (s *Store) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	s.subMu.Lock()
	defer s.subMu.Unlock()

	if _, ok := s.subs[sub.id]; !ok {
		return
	}
	delete(s.subs, sub.id)
	close(sub.ch)
}

// publish delivers an event to every interested subscriber without ever
// blocking the cache. A full subscriber loses the event; views recover on
// their next peek, so this trades completeness for liveness.
func (s *Store) publish(ev Event) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	if s.closed {
		return
	}

	for _, sub := range s.subs {
		if !sub.wants(ev.Key) {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
			s.options.Logger.Warn("dropped cache event for slow subscriber",
				"key", ev.Key.String(), "state", ev.Result.State.String())
		}
	}
}
