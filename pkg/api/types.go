// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package api provides the typed HTTP client for the CivicDesk registry
// service, together with the entity types and error taxonomy shared by the
// CLI, TUI, and cache layers.
//
// The registry owns every entity's lifecycle. This package never caches or
// retries; the querycache layer decides when a call happens and how failure
// is surfaced.
package api

// =============================================================================
// Enumerations
// =============================================================================

// Categories is the fixed set of complaint categories accepted by the
// registry. The form layer offers exactly these choices.
var Categories = []string{
	"Infrastructure",
	"Public Safety",
	"Environmental",
	"Transportation",
	"Utilities",
	"Noise",
	"Sanitation",
	"Other",
}

// Statuses is the fixed complaint status set, in lifecycle order.
var Statuses = []string{
	"Open",
	"In_Progress",
	"Resolved",
	"Closed",
}

// StatusDefault is the status assigned to newly created complaints when the
// form does not offer a status field (create mode).
const StatusDefault = "Open"

// ValidCategory reports whether c is one of the accepted categories.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is one of the accepted statuses.
func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// =============================================================================
// Entities
// =============================================================================

// Complaint is a community complaint record as exchanged with the registry.
//
// ID, CreatedAt, and UpdatedAt are server-assigned and immutable from the
// client side. AgencyID must reference an existing agency; the registry
// enforces this, the client only offers valid choices.
type Complaint struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Status      string  `json:"status"`
	AgencyID    int     `json:"agencyId"`
	CreatedAt   string  `json:"createdAt,omitempty"`
	UpdatedAt   string  `json:"updatedAt,omitempty"`
	Agency      *Agency `json:"agency,omitempty"`
}

// Agency is an agency record. Complaints is populated only by the agency
// detail endpoint; list responses leave it nil.
type Agency struct {
	ID         int         `json:"id"`
	Name       string      `json:"name"`
	CreatedAt  string      `json:"createdAt,omitempty"`
	UpdatedAt  string      `json:"updatedAt,omitempty"`
	Complaints []Complaint `json:"complaints,omitempty"`
}

// =============================================================================
// Request Payloads
// =============================================================================

// CreateComplaintRequest is the POST /complaints body.
type CreateComplaintRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	AgencyID    int    `json:"agencyId"`
	Status      string `json:"status"`
}

// UpdateComplaintRequest is the PUT /complaints/{id} body. Nil fields are
// omitted from the JSON, giving partial-update semantics.
type UpdateComplaintRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	AgencyID    *int    `json:"agencyId,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// CreateAgencyRequest is the POST /agencies body.
type CreateAgencyRequest struct {
	Name string `json:"name"`
}

// UpdateAgencyRequest is the PUT /agencies/{id} body.
type UpdateAgencyRequest struct {
	Name *string `json:"name,omitempty"`
}

// ErrorResponse is the registry's error body convention. Some deployments
// populate "error", others "message"; the client surfaces whichever is set.
type ErrorResponse struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Text returns the server-provided message, or "" if neither field is set.
func (e ErrorResponse) Text() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}
