// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// DefaultBaseURL is the registry address used when the config provides none.
const DefaultBaseURL = "http://localhost:3000/api"

// Client is the typed HTTP client for the registry REST contract.
//
// # Description
//
// One method per (entity, operation) pair. Each method performs exactly one
// HTTP request and decodes the response into the shared entity types. There
// are no retries and no per-request timeout; a hung registry leaves the
// caller suspended on its context.
//
// # Thread Safety
//
// Client is safe for concurrent use; it holds no mutable state beyond the
// underlying http.Client.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a registry client for baseURL. An empty baseURL selects
// DefaultBaseURL. A nil logger selects slog.Default().
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		logger:  logger,
	}
}

// BaseURL returns the configured registry base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// =============================================================================
// Complaints
// =============================================================================

// ListComplaints fetches every complaint.
func (c *Client) ListComplaints(ctx context.Context) ([]Complaint, error) {
	var out []Complaint
	if err := c.do(ctx, "complaints.list", http.MethodGet, "/complaints", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetComplaint fetches a single complaint by ID.
func (c *Client) GetComplaint(ctx context.Context, id int) (*Complaint, error) {
	var out Complaint
	path := fmt.Sprintf("/complaints/%d", id)
	if err := c.do(ctx, "complaints.get", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateComplaint creates a complaint and returns the server-assigned record.
func (c *Client) CreateComplaint(ctx context.Context, req CreateComplaintRequest) (*Complaint, error) {
	var out Complaint
	if err := c.do(ctx, "complaints.create", http.MethodPost, "/complaints", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateComplaint applies a partial update and returns the updated record.
func (c *Client) UpdateComplaint(ctx context.Context, id int, req UpdateComplaintRequest) (*Complaint, error) {
	var out Complaint
	path := fmt.Sprintf("/complaints/%d", id)
	if err := c.do(ctx, "complaints.update", http.MethodPut, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteComplaint deletes a complaint. A 204 response resolves to nil.
func (c *Client) DeleteComplaint(ctx context.Context, id int) error {
	path := fmt.Sprintf("/complaints/%d", id)
	return c.do(ctx, "complaints.delete", http.MethodDelete, path, nil, nil)
}

// =============================================================================
// Agencies
// =============================================================================

// ListAgencies fetches every agency.
func (c *Client) ListAgencies(ctx context.Context) ([]Agency, error) {
	var out []Agency
	if err := c.do(ctx, "agencies.list", http.MethodGet, "/agencies", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAgency fetches a single agency, including its nested complaints.
func (c *Client) GetAgency(ctx context.Context, id int) (*Agency, error) {
	var out Agency
	path := fmt.Sprintf("/agencies/%d", id)
	if err := c.do(ctx, "agencies.get", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateAgency creates an agency and returns the server-assigned record.
func (c *Client) CreateAgency(ctx context.Context, req CreateAgencyRequest) (*Agency, error) {
	var out Agency
	if err := c.do(ctx, "agencies.create", http.MethodPost, "/agencies", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateAgency applies a partial update and returns the updated record.
func (c *Client) UpdateAgency(ctx context.Context, id int, req UpdateAgencyRequest) (*Agency, error) {
	var out Agency
	path := fmt.Sprintf("/agencies/%d", id)
	if err := c.do(ctx, "agencies.update", http.MethodPut, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAgency deletes an agency. The registry answers 409 when the agency
// still owns complaints; IsConflict identifies that case.
func (c *Client) DeleteAgency(ctx context.Context, id int) error {
	path := fmt.Sprintf("/agencies/%d", id)
	return c.do(ctx, "agencies.delete", http.MethodDelete, path, nil, nil)
}

// =============================================================================
// Transport
// =============================================================================

// do performs one request against the registry.
//
// payload, when non-nil, is JSON-encoded as the body. out, when non-nil,
// receives the decoded response body. A 204 (or empty body) with a non-nil
// out leaves out untouched rather than failing decode.
func (c *Client) do(ctx context.Context, op, method, path string, payload, out any) error {
	url := c.baseURL + path

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return &RequestError{
				Type:    ErrorEncodeFailed,
				Op:      op,
				Message: "failed to encode request payload",
				Detail:  err.Error(),
				Err:     err,
			}
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return &RequestError{
			Type:    ErrorEncodeFailed,
			Op:      op,
			Message: "failed to build request",
			Detail:  err.Error(),
			Err:     err,
		}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("registry request failed", "op", op, "url", url, "error", err)
		return &RequestError{
			Type:    ErrorConnectionFailed,
			Op:      op,
			Message: "could not reach the registry service",
			Detail:  fmt.Sprintf("%s %s: %v", method, url, err),
			Err:     err,
		}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("failed to close response body", "op", op, "error", err)
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{
			Type:    ErrorDecodeFailed,
			Op:      op,
			Message: "failed to read response body",
			Detail:  err.Error(),
			Err:     err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := "an error occurred"
		var errBody ErrorResponse
		if decodeErr := json.Unmarshal(raw, &errBody); decodeErr == nil && errBody.Text() != "" {
			msg = errBody.Text()
		}
		c.logger.Warn("registry returned error status",
			"op", op, "status", resp.StatusCode, "message", msg)
		return &RequestError{
			Type:       ErrorHTTPStatus,
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    msg,
			Detail:     fmt.Sprintf("%s %s", method, url),
		}
	}

	// 204 and empty bodies resolve to an empty result, never a decode error.
	if out == nil || resp.StatusCode == http.StatusNoContent || len(raw) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &RequestError{
			Type:    ErrorDecodeFailed,
			Op:      op,
			Message: "registry returned an unexpected response shape",
			Detail:  fmt.Sprintf("%s %s: %v", method, url, err),
			Err:     err,
		}
	}
	return nil
}
