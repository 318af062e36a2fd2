// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package store holds the registry's records in memory.
//
// # Description
//
// The registry is a development backend; records live for the process
// lifetime. Identifiers auto-increment per entity and timestamps are
// RFC 3339 UTC. Referential integrity is enforced here: complaints must
// reference an existing agency, and an agency with assigned complaints
// cannot be deleted.
//
// # Thread Safety
//
// All methods are safe for concurrent use. Returned records are copies;
// callers never share memory with the store.
package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/AleutianAI/CivicDesk/pkg/api"
)

// =============================================================================
// Errors
// =============================================================================

var (
	// ErrComplaintNotFound is returned for unknown complaint ids.
	ErrComplaintNotFound = errors.New("complaint not found")

	// ErrAgencyNotFound is returned for unknown agency ids, including a
	// complaint referencing one.
	ErrAgencyNotFound = errors.New("agency not found")

	// ErrAgencyHasComplaints blocks deleting an agency that still has
	// complaints assigned to it.
	ErrAgencyHasComplaints = errors.New("agency has assigned complaints")
)

// =============================================================================
// Store
// =============================================================================

// Store is the in-memory record set.
type Store struct {
	mu              sync.RWMutex
	complaints      map[int]api.Complaint
	agencies        map[int]api.Agency
	nextComplaintID int
	nextAgencyID    int

	// now is swappable for tests.
	now func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		complaints:      make(map[int]api.Complaint),
		agencies:        make(map[int]api.Agency),
		nextComplaintID: 1,
		nextAgencyID:    1,
		now:             time.Now,
	}
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

// =============================================================================
// Complaints
// =============================================================================

// ListComplaints returns every complaint, newest first, each with its agency
// embedded.
func (s *Store) ListComplaints() []api.Complaint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]api.Complaint, 0, len(s.complaints))
	for _, c := range s.complaints {
		out = append(out, s.withAgencyLocked(c))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// GetComplaint returns one complaint with its agency embedded.
func (s *Store) GetComplaint(id int) (api.Complaint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.complaints[id]
	if !ok {
		return api.Complaint{}, ErrComplaintNotFound
	}
	return s.withAgencyLocked(c), nil
}

// CreateComplaint inserts a new record. The referenced agency must exist;
// an empty status defaults to Open.
func (s *Store) CreateComplaint(req api.CreateComplaintRequest) (api.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.agencies[req.AgencyID]; !ok {
		return api.Complaint{}, ErrAgencyNotFound
	}

	status := req.Status
	if status == "" {
		status = api.StatusDefault
	}

	ts := s.timestamp()
	c := api.Complaint{
		ID:          s.nextComplaintID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Status:      status,
		AgencyID:    req.AgencyID,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	s.nextComplaintID++
	s.complaints[c.ID] = c
	return s.withAgencyLocked(c), nil
}

// UpdateComplaint applies the set fields of req. A changed agency reference
// must exist.
func (s *Store) UpdateComplaint(id int, req api.UpdateComplaintRequest) (api.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.complaints[id]
	if !ok {
		return api.Complaint{}, ErrComplaintNotFound
	}

	if req.AgencyID != nil {
		if _, ok := s.agencies[*req.AgencyID]; !ok {
			return api.Complaint{}, ErrAgencyNotFound
		}
		c.AgencyID = *req.AgencyID
	}
	if req.Title != nil {
		c.Title = *req.Title
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.Category != nil {
		c.Category = *req.Category
	}
	if req.Status != nil {
		c.Status = *req.Status
	}
	c.UpdatedAt = s.timestamp()

	s.complaints[id] = c
	return s.withAgencyLocked(c), nil
}

// DeleteComplaint removes a record.
func (s *Store) DeleteComplaint(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.complaints[id]; !ok {
		return ErrComplaintNotFound
	}
	delete(s.complaints, id)
	return nil
}

// withAgencyLocked embeds a copy of the agency record. Callers hold the lock.
func (s *Store) withAgencyLocked(c api.Complaint) api.Complaint {
	if a, ok := s.agencies[c.AgencyID]; ok {
		a.Complaints = nil
		c.Agency = &a
	}
	return c
}

// =============================================================================
// Agencies
// =============================================================================

// ListAgencies returns every agency, alphabetically, without complaints.
func (s *Store) ListAgencies() []api.Agency {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]api.Agency, 0, len(s.agencies))
	for _, a := range s.agencies {
		a.Complaints = nil
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// GetAgency returns one agency with its assigned complaints embedded,
// newest first.
func (s *Store) GetAgency(id int) (api.Agency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.agencies[id]
	if !ok {
		return api.Agency{}, ErrAgencyNotFound
	}

	a.Complaints = nil
	for _, c := range s.complaints {
		if c.AgencyID == id {
			a.Complaints = append(a.Complaints, c)
		}
	}
	sort.Slice(a.Complaints, func(i, j int) bool {
		if a.Complaints[i].CreatedAt != a.Complaints[j].CreatedAt {
			return a.Complaints[i].CreatedAt > a.Complaints[j].CreatedAt
		}
		return a.Complaints[i].ID > a.Complaints[j].ID
	})
	return a, nil
}

// CreateAgency inserts a new agency.
func (s *Store) CreateAgency(req api.CreateAgencyRequest) api.Agency {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.timestamp()
	a := api.Agency{
		ID:        s.nextAgencyID,
		Name:      req.Name,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	s.nextAgencyID++
	s.agencies[a.ID] = a
	return a
}

// UpdateAgency applies the set fields of req.
func (s *Store) UpdateAgency(id int, req api.UpdateAgencyRequest) (api.Agency, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.agencies[id]
	if !ok {
		return api.Agency{}, ErrAgencyNotFound
	}
	if req.Name != nil {
		a.Name = *req.Name
	}
	a.UpdatedAt = s.timestamp()
	s.agencies[id] = a
	return a, nil
}

// DeleteAgency removes an agency. Refused while complaints reference it.
func (s *Store) DeleteAgency(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.agencies[id]; !ok {
		return ErrAgencyNotFound
	}
	for _, c := range s.complaints {
		if c.AgencyID == id {
			return ErrAgencyHasComplaints
		}
	}
	delete(s.agencies, id)
	return nil
}

// Seed loads demo records for local development. Returns the created agency
// ids in insertion order.
func (s *Store) Seed() []int {
	roads := s.CreateAgency(api.CreateAgencyRequest{Name: "Roads Department"})
	parks := s.CreateAgency(api.CreateAgencyRequest{Name: "Parks and Recreation"})
	water := s.CreateAgency(api.CreateAgencyRequest{Name: "Water Utility"})

	_, _ = s.CreateComplaint(api.CreateComplaintRequest{
		Title:       "Pothole on Main St",
		Description: "Large pothole near the intersection with 5th Ave, growing weekly.",
		Category:    "Infrastructure",
		AgencyID:    roads.ID,
	})
	_, _ = s.CreateComplaint(api.CreateComplaintRequest{
		Title:       "Broken playground swing",
		Description: "The chain on the middle swing at Riverside Park has snapped.",
		Category:    "Public Safety",
		AgencyID:    parks.ID,
		Status:      "In_Progress",
	})

	return []int{roads.ID, parks.ID, water.ID}
}
