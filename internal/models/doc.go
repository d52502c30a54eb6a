// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

// Package models defines the HTTP API wire types: the response envelope and
// the request and response bodies of the recommendation endpoints.
package models
