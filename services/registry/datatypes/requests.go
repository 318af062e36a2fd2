// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package datatypes defines the request payloads accepted by the registry
// service and their validation rules.
//
// # Description
//
// Validation mirrors what the client enforces locally (minimum lengths,
// enumerated categories and statuses) so scripted callers hitting the API
// directly get the same rejections a form user would. Server-assigned
// fields (id, createdAt, updatedAt) never appear here.
package datatypes

import (
	"fmt"
	"strings"

	"github.com/AleutianAI/CivicDesk/pkg/api"
	"github.com/go-playground/validator/v10"
)

// registryValidate is the validator instance for registry payloads.
// Initialized in init() with the category and status validators.
var registryValidate *validator.Validate

func init() {
	registryValidate = validator.New()

	if err := registryValidate.RegisterValidation("category", validateCategory); err != nil {
		panic(fmt.Sprintf("failed to register category validator: %v", err))
	}
	if err := registryValidate.RegisterValidation("status", validateStatus); err != nil {
		panic(fmt.Sprintf("failed to register status validator: %v", err))
	}
}

func validateCategory(fl validator.FieldLevel) bool {
	return api.ValidCategory(fl.Field().String())
}

func validateStatus(fl validator.FieldLevel) bool {
	return api.ValidStatus(fl.Field().String())
}

// =============================================================================
// Complaint Payloads
// =============================================================================

// CreateComplaintRequest is the POST /api/complaints body.
type CreateComplaintRequest struct {
	Title       string `json:"title" validate:"required,min=3"`
	Description string `json:"description" validate:"required,min=10"`
	Category    string `json:"category" validate:"required,category"`
	AgencyID    int    `json:"agencyId" validate:"required,gt=0"`
	Status      string `json:"status" validate:"omitempty,status"`
}

// Validate checks the payload against the registry rules.
func (r *CreateComplaintRequest) Validate() error {
	if err := registryValidate.Struct(r); err != nil {
		return friendlyError(err)
	}
	return nil
}

// UpdateComplaintRequest is the PUT /api/complaints/:id body. Nil fields are
// left unchanged.
type UpdateComplaintRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=3"`
	Description *string `json:"description" validate:"omitempty,min=10"`
	Category    *string `json:"category" validate:"omitempty,category"`
	AgencyID    *int    `json:"agencyId" validate:"omitempty,gt=0"`
	Status      *string `json:"status" validate:"omitempty,status"`
}

// Validate checks the payload against the registry rules.
func (r *UpdateComplaintRequest) Validate() error {
	if err := registryValidate.Struct(r); err != nil {
		return friendlyError(err)
	}
	return nil
}

// =============================================================================
// Agency Payloads
// =============================================================================

// CreateAgencyRequest is the POST /api/agencies body.
type CreateAgencyRequest struct {
	Name string `json:"name" validate:"required,min=2"`
}

// Validate checks the payload against the registry rules.
func (r *CreateAgencyRequest) Validate() error {
	if err := registryValidate.Struct(r); err != nil {
		return friendlyError(err)
	}
	return nil
}

// UpdateAgencyRequest is the PUT /api/agencies/:id body.
type UpdateAgencyRequest struct {
	Name *string `json:"name" validate:"omitempty,min=2"`
}

// Validate checks the payload against the registry rules.
func (r *UpdateAgencyRequest) Validate() error {
	if err := registryValidate.Struct(r); err != nil {
		return friendlyError(err)
	}
	return nil
}

// =============================================================================
// Error Translation
// =============================================================================

// friendlyError flattens validator errors into one API-facing message.
func friendlyError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, fieldMessage(fe))
	}
	return fmt.Errorf("%s", strings.Join(messages, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be a positive id", field)
	case "category":
		return fmt.Sprintf("category must be one of: %s", strings.Join(api.Categories, ", "))
	case "status":
		return fmt.Sprintf("status must be one of: %s", strings.Join(api.Statuses, ", "))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
