// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package tui

import (
	"context"
	"fmt"

	"github.com/AleutianAI/CivicDesk/pkg/api"
	"github.com/AleutianAI/CivicDesk/pkg/querycache"
	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// Messages
// =============================================================================

// dataMsg carries the outcome of a cached read back into the event loop.
type dataMsg struct {
	key    querycache.Key
	result querycache.Result
	err    error
}

// cacheEventMsg wraps a store event for views that watch background
// transitions (a read issued by one view landing while another is showing).
type cacheEventMsg struct {
	event querycache.Event
}

// mutationDoneMsg signals a write completed; status describes it for the
// footer line.
type mutationDoneMsg struct {
	status string
	err    error
}

// =============================================================================
// Source
// =============================================================================

// Source binds the registry client to the query cache and produces bubbletea
// commands for every read and write the views need. Reads are deduplicated
// and cached by the store; writes invalidate the affected kind on success.
type Source struct {
	Store  *querycache.Store
	Client *api.Client
}

func (s Source) fetch(key querycache.Key, fn querycache.FetchFunc) tea.Cmd {
	return func() tea.Msg {
		res, err := s.Store.Fetch(context.Background(), key, fn)
		return dataMsg{key: key, result: res, err: err}
	}
}

// Complaints reads the complaint collection.
func (s Source) Complaints() tea.Cmd {
	return s.fetch(querycache.CollectionKey(querycache.KindComplaints),
		func(ctx context.Context) (any, error) { return s.Client.ListComplaints(ctx) })
}

// Complaint reads a single complaint record.
func (s Source) Complaint(id int) tea.Cmd {
	return s.fetch(querycache.RecordKey(querycache.KindComplaints, id),
		func(ctx context.Context) (any, error) { return s.Client.GetComplaint(ctx, id) })
}

// Agencies reads the agency collection.
func (s Source) Agencies() tea.Cmd {
	return s.fetch(querycache.CollectionKey(querycache.KindAgencies),
		func(ctx context.Context) (any, error) { return s.Client.ListAgencies(ctx) })
}

// Agency reads a single agency record, including its complaints.
func (s Source) Agency(id int) tea.Cmd {
	return s.fetch(querycache.RecordKey(querycache.KindAgencies, id),
		func(ctx context.Context) (any, error) { return s.Client.GetAgency(ctx, id) })
}

// DeleteComplaint removes a complaint and invalidates complaint reads.
func (s Source) DeleteComplaint(id int) tea.Cmd {
	return func() tea.Msg {
		err := s.Store.Mutate(context.Background(), func(ctx context.Context) error {
			return s.Client.DeleteComplaint(ctx, id)
		}, querycache.KindComplaints)
		return mutationDoneMsg{status: fmt.Sprintf("Complaint #%d deleted", id), err: err}
	}
}

// DeleteAgency removes an agency. Both kinds are invalidated: complaint
// records embed agency names, so they must refetch too.
func (s Source) DeleteAgency(id int) tea.Cmd {
	return func() tea.Msg {
		err := s.Store.Mutate(context.Background(), func(ctx context.Context) error {
			return s.Client.DeleteAgency(ctx, id)
		}, querycache.KindAgencies, querycache.KindComplaints)
		return mutationDoneMsg{status: fmt.Sprintf("Agency #%d deleted", id), err: err}
	}
}

// Refresh invalidates a kind so the next read goes to the registry.
func (s Source) Refresh(kind querycache.Kind) {
	s.Store.Invalidate(kind)
}

// waitForEvent blocks on the subscription and re-emits the next store event
// as a message. The app re-arms it after every delivery.
func waitForEvent(sub *querycache.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-sub.Events()
		if !ok {
			return nil
		}
		return cacheEventMsg{event: ev}
	}
}
