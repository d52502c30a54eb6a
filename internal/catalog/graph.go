// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// Graph maps each known course to its set of direct prerequisites.
// A Graph is immutable once built and always acyclic.
type Graph struct {
	prereqs map[string]map[string]struct{}
	order   []string
}

// newGraph validates edges against the known course set and computes a
// deterministic topological order.
func newGraph(known map[string]struct{}, edges []Edge) (*Graph, error) {
	g := &Graph{prereqs: make(map[string]map[string]struct{}, len(known))}
	for code := range known {
		g.prereqs[code] = make(map[string]struct{})
	}

	for _, e := range edges {
		course := normalizeCode(e.Course)
		pre := normalizeCode(e.Prerequisite)

		if course == pre {
			return nil, fmt.Errorf("%w: %w: %s", ErrInvalidCatalog, ErrSelfLoop, course)
		}
		if _, ok := known[course]; !ok {
			return nil, fmt.Errorf("%w: %w: %s (required course)", ErrInvalidCatalog, ErrUnknownPrerequisite, course)
		}
		if _, ok := known[pre]; !ok {
			return nil, fmt.Errorf("%w: %w: %s requires %s", ErrInvalidCatalog, ErrUnknownPrerequisite, course, pre)
		}
		g.prereqs[course][pre] = struct{}{}
	}

	order, err := g.kahn()
	if err != nil {
		return nil, err
	}
	g.order = order
	return g, nil
}

// kahn runs Kahn's algorithm, always releasing the smallest ready code
// first so the order is stable across runs.
func (g *Graph) kahn() ([]string, error) {
	indegree := make(map[string]int, len(g.prereqs))
	dependents := make(map[string][]string, len(g.prereqs))
	for course, pres := range g.prereqs {
		indegree[course] = len(pres)
		for p := range pres {
			dependents[p] = append(dependents[p], course)
		}
	}

	ready := make([]string, 0)
	for course, d := range indegree {
		if d == 0 {
			ready = append(ready, course)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(g.prereqs))
	for len(ready) > 0 {
		next := ready[0]
		ready = ready[1:]
		order = append(order, next)

		released := false
		for _, dep := range dependents[next] {
			indegree[dep]--
			if indegree[dep] == 0 {
				ready = append(ready, dep)
				released = true
			}
		}
		if released {
			sort.Strings(ready)
		}
	}

	if len(order) != len(g.prereqs) {
		stuck := make([]string, 0, len(g.prereqs)-len(order))
		for course, d := range indegree {
			if d > 0 {
				stuck = append(stuck, course)
			}
		}
		sort.Strings(stuck)
		return nil, fmt.Errorf("%w: %w among %s", ErrInvalidCatalog, ErrCycle, strings.Join(stuck, ", "))
	}
	return order, nil
}

// Has reports whether the code is a node of the graph.
func (g *Graph) Has(code string) bool {
	_, ok := g.prereqs[code]
	return ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.prereqs)
}

// PrerequisitesOf returns the direct prerequisites of a course, sorted.
// Unknown courses have none.
func (g *Graph) PrerequisitesOf(code string) []string {
	pres := g.prereqs[code]
	out := make([]string, 0, len(pres))
	for p := range pres {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Satisfied reports whether every direct prerequisite of code is in completed.
func (g *Graph) Satisfied(code string, completed map[string]struct{}) bool {
	for p := range g.prereqs[code] {
		if _, ok := completed[p]; !ok {
			return false
		}
	}
	return true
}

// TopologicalOrder returns a copy of the precomputed topological order.
func (g *Graph) TopologicalOrder() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Nodes returns all course codes, sorted.
func (g *Graph) Nodes() []string {
	out := make([]string, 0, len(g.prereqs))
	for code := range g.prereqs {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Edges returns every (course, prerequisite) pair sorted by course then prerequisite.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.prereqs))
	for _, course := range g.Nodes() {
		for _, p := range g.PrerequisitesOf(course) {
			out = append(out, Edge{Course: course, Prerequisite: p})
		}
	}
	return out
}
