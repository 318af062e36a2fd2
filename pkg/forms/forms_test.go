// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package forms

import (
	"strings"
	"testing"

	"github.com/AleutianAI/CivicDesk/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validComplaintForm() *ComplaintForm {
	return &ComplaintForm{
		Title:       "Pothole",
		Description: "Large pothole on Main St",
		Category:    "Infrastructure",
		AgencyID:    "3",
		Status:      "Open",
	}
}

func TestRule_Check(t *testing.T) {
	t.Run("required empty", func(t *testing.T) {
		err := Rule{Label: "Title", Required: true}.Check("")
		require.Error(t, err)
		assert.Equal(t, "Title is required", err.Error())
	})

	t.Run("custom required message", func(t *testing.T) {
		err := Rule{Label: "Category", Required: true, Message: "Please select a category"}.Check("  ")
		require.Error(t, err)
		assert.Equal(t, "Please select a category", err.Error())
	})

	t.Run("min length", func(t *testing.T) {
		err := Rule{Label: "Description", Required: true, MinLen: 10}.Check("short")
		require.Error(t, err)
		assert.Equal(t, "Description must be at least 10 characters", err.Error())
	})

	t.Run("enumerated choice", func(t *testing.T) {
		rule := Rule{Label: "Status", Required: true, OneOf: api.Statuses}
		assert.NoError(t, rule.Check("In_Progress"))
		assert.Error(t, rule.Check("Pending"))
	})

	t.Run("optional empty passes every check", func(t *testing.T) {
		rule := Rule{Label: "Status", MinLen: 4, OneOf: api.Statuses}
		assert.NoError(t, rule.Check(""))
	})
}

func TestComplaintForm_Validation(t *testing.T) {
	t.Run("valid form has no problems", func(t *testing.T) {
		assert.Empty(t, validComplaintForm().Validate())
	})

	t.Run("short description rejected locally", func(t *testing.T) {
		f := validComplaintForm()
		f.Description = "short" // 5 characters, minimum is 10

		problems := f.Validate()
		require.Contains(t, problems, "description")
		assert.Contains(t, problems["description"], "at least 10 characters")

		// Build must fail too: no payload means no network request.
		_, err := f.BuildCreate()
		assert.Error(t, err)
	})

	t.Run("title minimum three characters", func(t *testing.T) {
		f := validComplaintForm()
		f.Title = "ab"
		assert.Contains(t, f.Validate(), "title")
	})

	t.Run("missing agency selection", func(t *testing.T) {
		f := validComplaintForm()
		f.AgencyID = ""
		problems := f.Validate()
		require.Contains(t, problems, "agencyId")
		assert.Equal(t, "Please select an agency", problems["agencyId"])
	})

	t.Run("status unchecked in create mode", func(t *testing.T) {
		f := validComplaintForm()
		f.Status = ""
		assert.Empty(t, f.Validate())
	})

	t.Run("status checked in edit mode", func(t *testing.T) {
		f := validComplaintForm()
		f.editing = true
		f.Status = "Done"
		assert.Contains(t, f.Validate(), "status")
	})
}

func TestComplaintForm_BuildCreate(t *testing.T) {
	f := validComplaintForm()
	req, err := f.BuildCreate()
	require.NoError(t, err)

	// The agency select produces a string; the payload must be numeric.
	assert.Equal(t, 3, req.AgencyID)
	assert.Equal(t, "Pothole", req.Title)
	assert.Equal(t, "Open", req.Status)

	t.Run("empty status defaults to Open", func(t *testing.T) {
		f := validComplaintForm()
		f.Status = ""
		req, err := f.BuildCreate()
		require.NoError(t, err)
		assert.Equal(t, api.StatusDefault, req.Status)
	})
}

func TestComplaintForm_EditFlow(t *testing.T) {
	record := &api.Complaint{
		ID:          7,
		Title:       "Pothole",
		Description: "Large pothole on Main St",
		Category:    "Infrastructure",
		AgencyID:    3,
		Status:      "Open",
	}

	f := NewComplaintEditForm()
	require.True(t, f.ResetFrom(record), "first load must seed the form")
	assert.Equal(t, "3", f.AgencyID)

	// User edits only the status.
	f.Status = "Resolved"

	// A background refetch delivers the record again: the reset must not
	// clobber the in-progress edit.
	refetched := *record
	assert.False(t, f.ResetFrom(&refetched))
	assert.Equal(t, "Resolved", f.Status)

	req, err := f.BuildUpdate()
	require.NoError(t, err)
	require.NotNil(t, req.Status)
	assert.Equal(t, "Resolved", *req.Status)
	require.NotNil(t, req.AgencyID)
	assert.Equal(t, 3, *req.AgencyID)
}

func TestComplaintForm_ResetFromNil(t *testing.T) {
	f := NewComplaintEditForm()
	assert.False(t, f.ResetFrom(nil))
	assert.False(t, f.Loaded())
}

func TestAgencyForm(t *testing.T) {
	t.Run("name minimum two characters", func(t *testing.T) {
		f := NewAgencyForm()
		f.Name = "A"
		problems := f.Validate()
		require.Contains(t, problems, "name")
		assert.Equal(t, "Name must be at least 2 characters", problems["name"])
	})

	t.Run("build create", func(t *testing.T) {
		f := NewAgencyForm()
		f.Name = "Roads Dept"
		req, err := f.BuildCreate()
		require.NoError(t, err)
		assert.Equal(t, "Roads Dept", req.Name)
	})

	t.Run("reset once", func(t *testing.T) {
		f := NewAgencyEditForm()
		require.True(t, f.ResetFrom(&api.Agency{ID: 5, Name: "Roads Dept"}))
		f.Name = "Roads Department"
		assert.False(t, f.ResetFrom(&api.Agency{ID: 5, Name: "Roads Dept"}))
		assert.Equal(t, "Roads Department", f.Name)
	})

	t.Run("build update", func(t *testing.T) {
		f := NewAgencyEditForm()
		f.Name = "Parks"
		req, err := f.BuildUpdate()
		require.NoError(t, err)
		require.NotNil(t, req.Name)
		assert.Equal(t, "Parks", *req.Name)
	})
}

func TestHuhFormsConstruct(t *testing.T) {
	// Smoke checks only: the interesting logic lives in the rule
	// interpreter, huh just renders it.
	agencies := []api.Agency{{ID: 1, Name: "Roads Dept"}, {ID: 2, Name: "Parks"}}
	if form := NewComplaintForm().Huh(agencies); form == nil {
		t.Fatal("complaint form did not construct")
	}
	if form := NewAgencyForm().Huh(); form == nil {
		t.Fatal("agency form did not construct")
	}
}

func TestFirstProblem_StableOrder(t *testing.T) {
	problems := map[string]string{
		"status": "Status must be one of: Open, In_Progress, Resolved, Closed",
		"title":  "Title must be at least 3 characters",
	}
	err := firstProblem(problems)
	require.Error(t, err)
	if !strings.Contains(err.Error(), "Title") {
		t.Errorf("expected title problem first, got %q", err.Error())
	}
}
