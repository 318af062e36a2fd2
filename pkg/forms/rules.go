// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package forms collects and validates user input for complaint and agency
// submissions.
//
// Validation is schema driven: each field carries a tagged rule (required,
// minimum length, enumerated choice) evaluated by a small interpreter that
// has no UI binding of its own. The interactive layer wires the same rules
// into huh field validators; the non-interactive CLI path calls the
// interpreter directly. Either way, invalid input never reaches the
// network.
package forms

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Rule is the tagged validation rule for one field.
type Rule struct {
	// Label names the field in messages ("Title").
	Label string

	// Required rejects empty input. Message, when set, replaces the
	// default required-field message.
	Required bool
	Message  string

	// MinLen is the minimum length in runes; zero disables the check.
	MinLen int

	// OneOf restricts non-empty input to an enumerated choice list.
	OneOf []string
}

// Check evaluates the rule against a single value. Returns nil when valid.
func (r Rule) Check(value string) error {
	v := strings.TrimSpace(value)

	if v == "" {
		if !r.Required {
			return nil
		}
		if r.Message != "" {
			return fmt.Errorf("%s", r.Message)
		}
		return fmt.Errorf("%s is required", r.Label)
	}

	if r.MinLen > 0 && utf8.RuneCountInString(v) < r.MinLen {
		return fmt.Errorf("%s must be at least %d characters", r.Label, r.MinLen)
	}

	if len(r.OneOf) > 0 {
		for _, choice := range r.OneOf {
			if v == choice {
				return nil
			}
		}
		return fmt.Errorf("%s must be one of: %s", r.Label, strings.Join(r.OneOf, ", "))
	}

	return nil
}

// Validator adapts the rule to huh's per-field Validate signature.
func (r Rule) Validator() func(string) error {
	return r.Check
}

// Schema maps field names to rules.
type Schema map[string]Rule

// Validate evaluates every rule against the given values. The returned map
// is keyed by field name and empty when the input is valid.
func (s Schema) Validate(values map[string]string) map[string]string {
	problems := make(map[string]string)
	for field, rule := range s {
		if err := rule.Check(values[field]); err != nil {
			problems[field] = err.Error()
		}
	}
	return problems
}
