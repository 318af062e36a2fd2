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
	"fmt"
	"strconv"

	"github.com/AleutianAI/CivicDesk/pkg/api"
	"github.com/charmbracelet/huh"
)

// ComplaintForm collects a complaint submission. Field values are held as
// strings (matching what the inputs produce); BuildCreate/BuildUpdate
// coerce the agency selection back to its numeric identifier.
type ComplaintForm struct {
	Title       string
	Description string
	Category    string
	AgencyID    string
	Status      string

	editing bool
	loaded  bool
}

// NewComplaintForm returns a create-mode form with default status.
func NewComplaintForm() *ComplaintForm {
	return &ComplaintForm{Status: api.StatusDefault}
}

// NewComplaintEditForm returns an edit-mode form for an existing record.
// Values stay empty until the record read resolves and ResetFrom runs.
func NewComplaintEditForm() *ComplaintForm {
	return &ComplaintForm{editing: true}
}

// Editing reports whether the form updates an existing record.
func (f *ComplaintForm) Editing() bool {
	return f.editing
}

// Schema returns the validation rules. Status is only constrained in edit
// mode; create mode fixes it to the default.
func (f *ComplaintForm) Schema() Schema {
	s := Schema{
		"title":       {Label: "Title", Required: true, MinLen: 3},
		"description": {Label: "Description", Required: true, MinLen: 10},
		"category":    {Label: "Category", Required: true, Message: "Please select a category", OneOf: api.Categories},
		"agencyId":    {Label: "Agency", Required: true, Message: "Please select an agency"},
	}
	if f.editing {
		s["status"] = Rule{Label: "Status", Required: true, OneOf: api.Statuses}
	}
	return s
}

// Values snapshots the current field values for the schema interpreter.
func (f *ComplaintForm) Values() map[string]string {
	return map[string]string{
		"title":       f.Title,
		"description": f.Description,
		"category":    f.Category,
		"agencyId":    f.AgencyID,
		"status":      f.Status,
	}
}

// Validate runs every rule; the result is empty for valid input.
func (f *ComplaintForm) Validate() map[string]string {
	return f.Schema().Validate(f.Values())
}

// ResetFrom populates the fields from a loaded record, exactly once.
//
// The edit view subscribes to the single-record read; the first successful
// load seeds the form, and later background refetches must not clobber
// whatever the user has typed since. Returns whether the reset was applied.
func (f *ComplaintForm) ResetFrom(c *api.Complaint) bool {
	if f.loaded || c == nil {
		return false
	}
	f.Title = c.Title
	f.Description = c.Description
	f.Category = c.Category
	f.AgencyID = strconv.Itoa(c.AgencyID)
	f.Status = c.Status
	f.loaded = true
	return true
}

// Loaded reports whether the one-time edit reset has run.
func (f *ComplaintForm) Loaded() bool {
	return f.loaded
}

// BuildCreate validates and assembles the creation payload, coercing the
// string agency selection to its numeric form.
func (f *ComplaintForm) BuildCreate() (api.CreateComplaintRequest, error) {
	if problems := f.Validate(); len(problems) > 0 {
		return api.CreateComplaintRequest{}, firstProblem(problems)
	}

	agencyID, err := strconv.Atoi(f.AgencyID)
	if err != nil {
		return api.CreateComplaintRequest{}, fmt.Errorf("invalid agency selection %q", f.AgencyID)
	}

	status := f.Status
	if status == "" {
		status = api.StatusDefault
	}

	return api.CreateComplaintRequest{
		Title:       f.Title,
		Description: f.Description,
		Category:    f.Category,
		AgencyID:    agencyID,
		Status:      status,
	}, nil
}

// BuildUpdate validates and assembles the update payload. Every field the
// form manages is sent; server-assigned fields never appear.
func (f *ComplaintForm) BuildUpdate() (api.UpdateComplaintRequest, error) {
	if problems := f.Validate(); len(problems) > 0 {
		return api.UpdateComplaintRequest{}, firstProblem(problems)
	}

	agencyID, err := strconv.Atoi(f.AgencyID)
	if err != nil {
		return api.UpdateComplaintRequest{}, fmt.Errorf("invalid agency selection %q", f.AgencyID)
	}

	return api.UpdateComplaintRequest{
		Title:       &f.Title,
		Description: &f.Description,
		Category:    &f.Category,
		AgencyID:    &agencyID,
		Status:      &f.Status,
	}, nil
}

// Huh renders the form interactively. The agency choices come from the
// loaded agency list so only valid references can be selected; the status
// group appears in edit mode only.
func (f *ComplaintForm) Huh(agencies []api.Agency) *huh.Form {
	schema := f.Schema()

	agencyOptions := make([]huh.Option[string], 0, len(agencies))
	for _, a := range agencies {
		agencyOptions = append(agencyOptions, huh.NewOption(a.Name, strconv.Itoa(a.ID)))
	}

	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("Enter complaint title").
			Value(&f.Title).
			Validate(schema["title"].Validator()),
		huh.NewSelect[string]().
			Title("Category").
			Options(huh.NewOptions(api.Categories...)...).
			Value(&f.Category).
			Validate(schema["category"].Validator()),
		huh.NewSelect[string]().
			Title("Agency").
			Options(agencyOptions...).
			Value(&f.AgencyID).
			Validate(schema["agencyId"].Validator()),
	}

	if f.editing {
		fields = append(fields, huh.NewSelect[string]().
			Title("Status").
			Options(huh.NewOptions(api.Statuses...)...).
			Value(&f.Status).
			Validate(schema["status"].Validator()))
	}

	fields = append(fields, huh.NewText().
		Title("Description").
		Placeholder("Provide detailed information about the complaint...").
		Value(&f.Description).
		Validate(schema["description"].Validator()))

	return huh.NewForm(huh.NewGroup(fields...))
}

// firstProblem flattens a validation map into one error, preferring a
// stable field order so messages do not jump around between attempts.
func firstProblem(problems map[string]string) error {
	for _, field := range []string{"title", "description", "category", "agencyId", "status", "name"} {
		if msg, ok := problems[field]; ok {
			return fmt.Errorf("%s", msg)
		}
	}
	for _, msg := range problems {
		return fmt.Errorf("%s", msg)
	}
	return nil
}
