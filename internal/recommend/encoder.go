// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package recommend

import (
	"context"
	"fmt"
	"math"

	"github.com/tomtom215/studypath/internal/catalog"
)

// OtherMajor is the feature slot used for majors outside the catalog.
const OtherMajor = "other"

// encodeChunk is how many rows EncodeAll encodes between cancellation checks.
const encodeChunk = 256

// Encoder maps a StudentProfile to a fixed-width numeric vector:
//
//	[major one-hot ..., other, semester/8, gpa/4, completed/|courses|, course flags ...]
//
// The vocabulary is fixed when the encoder is created.
type Encoder struct {
	majors      []string
	majorIndex  map[string]int
	courses     []string
	courseIndex map[string]int
}

// NewEncoder fixes the vocabulary from a catalog.
func NewEncoder(cat *catalog.Catalog) *Encoder {
	majors := cat.Majors()
	courses := cat.Codes()

	e := &Encoder{
		majors:      majors,
		majorIndex:  make(map[string]int, len(majors)),
		courses:     courses,
		courseIndex: make(map[string]int, len(courses)),
	}
	for i, m := range majors {
		e.majorIndex[m] = i
	}
	for i, c := range courses {
		e.courseIndex[c] = i
	}
	return e
}

// Width returns the vector width.
func (e *Encoder) Width() int {
	return len(e.majors) + 1 + 3 + len(e.courses)
}

// FeatureNames returns a label per vector slot.
func (e *Encoder) FeatureNames() []string {
	names := make([]string, 0, e.Width())
	for _, m := range e.majors {
		names = append(names, "major:"+m)
	}
	names = append(names, "major:"+OtherMajor, "semester", "gpa", "completed_fraction")
	for _, c := range e.courses {
		names = append(names, "course:"+c)
	}
	return names
}

// Encode returns the feature vector for a profile. A major outside the
// catalog sets the OtherMajor slot instead of a major one-hot. Unknown
// completed codes count toward completed_fraction but have no course flag.
// Non-finite inputs encode as zero.
//
//nolint:gocritic // hugeParam
func (e *Encoder) Encode(p StudentProfile) []float64 {
	v := make([]float64, e.Width())

	if i, ok := e.majorIndex[catalog.NormalizeCode(p.Major)]; ok {
		v[i] = 1
	} else {
		v[len(e.majors)] = 1
	}

	base := len(e.majors) + 1
	v[base] = finite(float64(p.Semester) / MaxSemester)
	v[base+1] = finite(p.GPA / MaxGPA)

	completed := p.completedSet()
	if len(e.courses) > 0 {
		v[base+2] = float64(len(completed)) / float64(len(e.courses))
	}

	offset := base + 3
	for code := range completed {
		if i, ok := e.courseIndex[code]; ok {
			v[offset+i] = 1
		}
	}
	return v
}

// EncodeAll encodes the profiles of examples in order.
func (e *Encoder) EncodeAll(ctx context.Context, examples []TrainingExample) ([][]float64, error) {
	out := make([][]float64, len(examples))
	for i := range examples {
		if i%encodeChunk == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("encode examples: %w", err)
			}
		}
		out[i] = e.Encode(examples[i].Profile)
	}
	return out, nil
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
