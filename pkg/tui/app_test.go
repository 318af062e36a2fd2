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
	"strings"
	"testing"

	"github.com/AleutianAI/CivicDesk/pkg/api"
	"github.com/AleutianAI/CivicDesk/pkg/querycache"
	tea "github.com/charmbracelet/bubbletea"
)

// seed plants a successful read in the store so views render from cache.
func seed(t *testing.T, store *querycache.Store, key querycache.Key, data any) querycache.Result {
	t.Helper()
	res, err := store.Fetch(context.Background(), key, func(ctx context.Context) (any, error) {
		return data, nil
	})
	if err != nil {
		t.Fatalf("seeding %s failed: %v", key, err)
	}
	return res
}

func newTestApp(t *testing.T) (App, *querycache.Store) {
	t.Helper()
	store := querycache.NewStore()
	t.Cleanup(store.Close)
	return NewApp(Source{Store: store, Client: api.NewClient("http://localhost:0", nil)}), store
}

func TestApp_EmptyStates(t *testing.T) {
	app, store := newTestApp(t)

	seed(t, store, querycache.CollectionKey(querycache.KindComplaints), []api.Complaint{})
	if view := app.View(); !strings.Contains(view, "No complaints found") {
		t.Errorf("empty complaint list missing empty state:\n%s", view)
	}

	app.view = viewAgencies
	seed(t, store, querycache.CollectionKey(querycache.KindAgencies), []api.Agency{})
	if view := app.View(); !strings.Contains(view, "No agencies found") {
		t.Errorf("empty agency list missing empty state:\n%s", view)
	}
}

func TestApp_LoadingStateBeforeData(t *testing.T) {
	app, _ := newTestApp(t)
	if view := app.View(); !strings.Contains(view, "Loading complaints") {
		t.Errorf("expected loading state before any data:\n%s", view)
	}
}

func TestApp_ComplaintRowsPopulate(t *testing.T) {
	app, store := newTestApp(t)

	complaints := []api.Complaint{
		{ID: 1, Title: "Pothole on Main St", Category: "Infrastructure", Status: "Open", AgencyID: 2},
		{ID: 2, Title: "Broken streetlight", Category: "Utilities", Status: "Resolved", AgencyID: 2},
	}
	res := seed(t, store, querycache.CollectionKey(querycache.KindComplaints), complaints)

	model, _ := app.Update(dataMsg{
		key:    querycache.CollectionKey(querycache.KindComplaints),
		result: res,
	})
	app = model.(App)

	view := app.View()
	for _, want := range []string{"Pothole on Main St", "Broken streetlight"} {
		if !strings.Contains(view, want) {
			t.Errorf("list view missing %q:\n%s", want, view)
		}
	}
}

func TestApp_DependentAgencyRead(t *testing.T) {
	app, store := newTestApp(t)
	app.view = viewComplaintDetail
	app.detailID = 7

	key := querycache.RecordKey(querycache.KindComplaints, 7)
	res := seed(t, store, key, &api.Complaint{
		ID: 7, Title: "Pothole", Description: "Large pothole", Category: "Infrastructure",
		Status: "Open", AgencyID: 3,
	})

	// Delivering a complaint without an embedded agency must chain a
	// follow-up read for the agency record.
	_, cmd := app.Update(dataMsg{key: key, result: res})
	if cmd == nil {
		t.Fatal("expected a dependent agency fetch command")
	}

	// Once the agency is cached, the detail shows its name.
	seed(t, store, querycache.RecordKey(querycache.KindAgencies, 3), &api.Agency{ID: 3, Name: "Roads Dept"})
	if view := app.View(); !strings.Contains(view, "Roads Dept") {
		t.Errorf("detail view missing resolved agency name:\n%s", view)
	}
}

func TestApp_EmbeddedAgencySkipsDependentRead(t *testing.T) {
	app, store := newTestApp(t)
	app.view = viewComplaintDetail
	app.detailID = 7

	key := querycache.RecordKey(querycache.KindComplaints, 7)
	res := seed(t, store, key, &api.Complaint{
		ID: 7, Title: "Pothole", Status: "Open", AgencyID: 3,
		Agency: &api.Agency{ID: 3, Name: "Roads Dept"},
	})

	if _, cmd := app.Update(dataMsg{key: key, result: res}); cmd != nil {
		t.Error("embedded agency must not trigger a second read")
	}
}

func TestApp_AgencyDeleteBlockedWhileAssigned(t *testing.T) {
	app, store := newTestApp(t)
	app.view = viewAgencyDetail
	app.detailID = 3

	seed(t, store, querycache.RecordKey(querycache.KindAgencies, 3), &api.Agency{
		ID: 3, Name: "Roads Dept",
		Complaints: []api.Complaint{{ID: 1, Title: "Pothole", Status: "Open"}},
	})

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	app = model.(App)

	if app.confirming {
		t.Error("delete confirmation must not open for an agency with complaints")
	}
	if !strings.Contains(app.View(), "Cannot delete") {
		t.Error("expected an explanation for the blocked delete")
	}
}

func TestApp_AgencyDeleteConfirmFlow(t *testing.T) {
	app, store := newTestApp(t)
	app.view = viewAgencyDetail
	app.detailID = 5

	seed(t, store, querycache.RecordKey(querycache.KindAgencies, 5), &api.Agency{ID: 5, Name: "Parks"})

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	app = model.(App)
	if !app.confirming {
		t.Fatal("delete confirmation should open for an unassigned agency")
	}
	if !strings.Contains(app.View(), "agency #5") {
		t.Errorf("confirmation must name the record:\n%s", app.View())
	}

	// Declining closes the overlay without issuing a delete.
	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	app = model.(App)
	if app.confirming || cmd != nil {
		t.Error("declining must close the overlay and do nothing")
	}
}

func TestApp_ComplaintDeleteConfirmIssuesMutation(t *testing.T) {
	app, _ := newTestApp(t)
	app.view = viewComplaintDetail
	app.detailID = 9
	app.confirming = true

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	if cmd == nil {
		t.Fatal("confirming must issue the delete command")
	}
}

func TestApp_MutationFailureSurfacesError(t *testing.T) {
	app, _ := newTestApp(t)
	app.view = viewComplaintDetail
	app.detailID = 9

	model, _ := app.Update(mutationDoneMsg{err: errFixture("registry rejected the write")})
	app = model.(App)

	if app.view != viewComplaintDetail {
		t.Error("failed delete must stay on the detail view")
	}
	if !strings.Contains(app.View(), "registry rejected the write") {
		t.Error("mutation error missing from the footer")
	}
}

func TestApp_MutationSuccessReturnsToList(t *testing.T) {
	app, _ := newTestApp(t)
	app.view = viewAgencyDetail
	app.detailID = 5

	model, cmd := app.Update(mutationDoneMsg{status: "Agency #5 deleted"})
	app = model.(App)

	if app.view != viewAgencies {
		t.Error("successful delete must return to the agency list")
	}
	if cmd == nil {
		t.Error("successful delete must trigger list refetches")
	}
	if !strings.Contains(app.View(), "Agency #5 deleted") {
		t.Error("status line missing after delete")
	}
}

func TestStatusBadge(t *testing.T) {
	if !strings.Contains(statusBadge("In_Progress"), "In Progress") {
		t.Error("stored status must render with a space")
	}
	if statusBadge("Mystery") != "Mystery" {
		t.Error("unknown status passes through unstyled")
	}
}

// errFixture is a trivial error for message construction in tests.
type errFixture string

func (e errFixture) Error() string { return string(e) }
