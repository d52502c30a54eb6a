// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is built on first use. Field names in errors
// come from json tags, so messages name the fields clients actually send.
//
// Custom tags:
//
//	course_code  letters followed by digits, e.g. CS101 or "math 201"
//	major_code   2 to 8 letters, e.g. CS or PHYS
//
// Example:
//
//	type RecommendationRequest struct {
//	    Major string   `json:"major" validate:"required,major_code"`
//	    Done  []string `json:"completed_courses" validate:"max=200,dive,course_code"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	}
package validation
