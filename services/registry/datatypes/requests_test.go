// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package datatypes

import (
	"strings"
	"testing"
)

func validCreateComplaint() CreateComplaintRequest {
	return CreateComplaintRequest{
		Title:       "Pothole",
		Description: "Large pothole on Main St",
		Category:    "Infrastructure",
		AgencyID:    1,
		Status:      "Open",
	}
}

func TestCreateComplaintRequest_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := validCreateComplaint()
		if err := req.Validate(); err != nil {
			t.Errorf("valid request rejected: %v", err)
		}
	})

	t.Run("status optional on create", func(t *testing.T) {
		req := validCreateComplaint()
		req.Status = ""
		if err := req.Validate(); err != nil {
			t.Errorf("missing status must be allowed: %v", err)
		}
	})

	cases := []struct {
		name    string
		mutate  func(*CreateComplaintRequest)
		wantMsg string
	}{
		{"short title", func(r *CreateComplaintRequest) { r.Title = "ab" }, "title must be at least 3"},
		{"short description", func(r *CreateComplaintRequest) { r.Description = "short" }, "description must be at least 10"},
		{"missing title", func(r *CreateComplaintRequest) { r.Title = "" }, "title is required"},
		{"bad category", func(r *CreateComplaintRequest) { r.Category = "Magic" }, "category must be one of"},
		{"bad status", func(r *CreateComplaintRequest) { r.Status = "Done" }, "status must be one of"},
		{"missing agency", func(r *CreateComplaintRequest) { r.AgencyID = 0 }, "agencyid"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateComplaint()
			tc.mutate(&req)
			err := req.Validate()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(strings.ToLower(err.Error()), tc.wantMsg) {
				t.Errorf("message %q does not mention %q", err.Error(), tc.wantMsg)
			}
		})
	}
}

func TestUpdateComplaintRequest_Validate(t *testing.T) {
	t.Run("empty update is valid", func(t *testing.T) {
		req := UpdateComplaintRequest{}
		if err := req.Validate(); err != nil {
			t.Errorf("all-nil update rejected: %v", err)
		}
	})

	t.Run("set fields are checked", func(t *testing.T) {
		bad := "x"
		req := UpdateComplaintRequest{Title: &bad}
		if err := req.Validate(); err == nil {
			t.Error("one-character title must be rejected")
		}
	})

	t.Run("status checked when present", func(t *testing.T) {
		bad := "Pending"
		req := UpdateComplaintRequest{Status: &bad}
		if err := req.Validate(); err == nil {
			t.Error("unknown status must be rejected")
		}
	})
}

func TestAgencyRequests_Validate(t *testing.T) {
	t.Run("name minimum", func(t *testing.T) {
		req := CreateAgencyRequest{Name: "A"}
		err := req.Validate()
		if err == nil || !strings.Contains(err.Error(), "at least 2") {
			t.Errorf("expected name length error, got %v", err)
		}
	})

	t.Run("valid create", func(t *testing.T) {
		req := CreateAgencyRequest{Name: "Roads Dept"}
		if err := req.Validate(); err != nil {
			t.Errorf("valid agency rejected: %v", err)
		}
	})

	t.Run("update name checked when present", func(t *testing.T) {
		short := "B"
		req := UpdateAgencyRequest{Name: &short}
		if err := req.Validate(); err == nil {
			t.Error("short rename must be rejected")
		}
	})
}
