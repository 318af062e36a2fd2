// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package handlers implements the registry's HTTP endpoints.
//
// Error bodies are always {"error": "..."}; the client treats that field as
// the user-facing message. Deletes answer 204 with no body.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/AleutianAI/CivicDesk/pkg/api"
	"github.com/AleutianAI/CivicDesk/services/registry/datatypes"
	"github.com/AleutianAI/CivicDesk/services/registry/store"
	"github.com/gin-gonic/gin"
)

// pathID parses the :id parameter. Writes the 400 response itself.
func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// ListComplaints answers GET /api/complaints.
func ListComplaints(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, s.ListComplaints())
	}
}

// GetComplaint answers GET /api/complaints/:id.
func GetComplaint(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		complaint, err := s.GetComplaint(id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "complaint not found"})
			return
		}
		c.JSON(http.StatusOK, complaint)
	}
}

// CreateComplaint answers POST /api/complaints.
func CreateComplaint(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req datatypes.CreateComplaintRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if err := req.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		created, err := s.CreateComplaint(api.CreateComplaintRequest{
			Title:       req.Title,
			Description: req.Description,
			Category:    req.Category,
			AgencyID:    req.AgencyID,
			Status:      req.Status,
		})
		if err != nil {
			if errors.Is(err, store.ErrAgencyNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "agency not found"})
				return
			}
			slog.Error("create complaint failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		slog.Info("complaint created", "id", created.ID, "agency_id", created.AgencyID)
		c.JSON(http.StatusCreated, created)
	}
}

// UpdateComplaint answers PUT /api/complaints/:id.
func UpdateComplaint(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req datatypes.UpdateComplaintRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if err := req.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updated, err := s.UpdateComplaint(id, api.UpdateComplaintRequest{
			Title:       req.Title,
			Description: req.Description,
			Category:    req.Category,
			AgencyID:    req.AgencyID,
			Status:      req.Status,
		})
		if err != nil {
			switch {
			case errors.Is(err, store.ErrComplaintNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "complaint not found"})
			case errors.Is(err, store.ErrAgencyNotFound):
				c.JSON(http.StatusBadRequest, gin.H{"error": "agency not found"})
			default:
				slog.Error("update complaint failed", "id", id, "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

// DeleteComplaint answers DELETE /api/complaints/:id with 204 on success.
func DeleteComplaint(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := s.DeleteComplaint(id); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "complaint not found"})
			return
		}
		slog.Info("complaint deleted", "id", id)
		c.Status(http.StatusNoContent)
	}
}
