// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/AleutianAI/CivicDesk/pkg/api"
	"github.com/AleutianAI/CivicDesk/services/registry/datatypes"
	"github.com/AleutianAI/CivicDesk/services/registry/store"
	"github.com/gin-gonic/gin"
)

// ListAgencies answers GET /api/agencies.
func ListAgencies(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, s.ListAgencies())
	}
}

// GetAgency answers GET /api/agencies/:id, embedding assigned complaints.
func GetAgency(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		agency, err := s.GetAgency(id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "agency not found"})
			return
		}
		c.JSON(http.StatusOK, agency)
	}
}

// CreateAgency answers POST /api/agencies.
func CreateAgency(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req datatypes.CreateAgencyRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if err := req.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		created := s.CreateAgency(api.CreateAgencyRequest{Name: req.Name})
		slog.Info("agency created", "id", created.ID, "name", created.Name)
		c.JSON(http.StatusCreated, created)
	}
}

// UpdateAgency answers PUT /api/agencies/:id.
func UpdateAgency(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req datatypes.UpdateAgencyRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if err := req.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updated, err := s.UpdateAgency(id, api.UpdateAgencyRequest{Name: req.Name})
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "agency not found"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// DeleteAgency answers DELETE /api/agencies/:id. Deleting an agency with
// assigned complaints is a conflict, not an internal error; the message is
// shown to the user verbatim.
func DeleteAgency(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := s.DeleteAgency(id); err != nil {
			switch {
			case errors.Is(err, store.ErrAgencyNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "agency not found"})
			case errors.Is(err, store.ErrAgencyHasComplaints):
				c.JSON(http.StatusConflict,
					gin.H{"error": "cannot delete an agency with assigned complaints"})
			default:
				slog.Error("delete agency failed", "id", id, "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}
		slog.Info("agency deleted", "id", id)
		c.Status(http.StatusNoContent)
	}
}

// HealthCheck answers GET /health for liveness probes.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
