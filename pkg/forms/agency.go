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
	"github.com/AleutianAI/CivicDesk/pkg/api"
	"github.com/charmbracelet/huh"
)

// AgencyForm collects an agency submission.
type AgencyForm struct {
	Name string

	editing bool
	loaded  bool
}

// NewAgencyForm returns a create-mode agency form.
func NewAgencyForm() *AgencyForm {
	return &AgencyForm{}
}

// NewAgencyEditForm returns an edit-mode form for an existing record.
func NewAgencyEditForm() *AgencyForm {
	return &AgencyForm{editing: true}
}

// Editing reports whether the form updates an existing record.
func (f *AgencyForm) Editing() bool {
	return f.editing
}

// Schema returns the validation rules.
func (f *AgencyForm) Schema() Schema {
	return Schema{
		"name": {Label: "Name", Required: true, MinLen: 2},
	}
}

// Validate runs every rule; the result is empty for valid input.
func (f *AgencyForm) Validate() map[string]string {
	return f.Schema().Validate(map[string]string{"name": f.Name})
}

// ResetFrom populates the form from a loaded record, exactly once.
func (f *AgencyForm) ResetFrom(a *api.Agency) bool {
	if f.loaded || a == nil {
		return false
	}
	f.Name = a.Name
	f.loaded = true
	return true
}

// Loaded reports whether the one-time edit reset has run.
func (f *AgencyForm) Loaded() bool {
	return f.loaded
}

// BuildCreate validates and assembles the creation payload.
func (f *AgencyForm) BuildCreate() (api.CreateAgencyRequest, error) {
	if problems := f.Validate(); len(problems) > 0 {
		return api.CreateAgencyRequest{}, firstProblem(problems)
	}
	return api.CreateAgencyRequest{Name: f.Name}, nil
}

// BuildUpdate validates and assembles the update payload.
func (f *AgencyForm) BuildUpdate() (api.UpdateAgencyRequest, error) {
	if problems := f.Validate(); len(problems) > 0 {
		return api.UpdateAgencyRequest{}, firstProblem(problems)
	}
	return api.UpdateAgencyRequest{Name: &f.Name}, nil
}

// Huh renders the form interactively.
func (f *AgencyForm) Huh() *huh.Form {
	schema := f.Schema()
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Agency Name").
			Placeholder("Enter agency name").
			Value(&f.Name).
			Validate(schema["name"].Validator()),
	))
}
