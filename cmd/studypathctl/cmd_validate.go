// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tomtom215/studypath/internal/catalog"
	"github.com/tomtom215/studypath/internal/recommend"
	"github.com/tomtom215/studypath/internal/store"
	"github.com/tomtom215/studypath/internal/validation"
)

var errValidationFailed = errors.New("validation failed")

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the stored catalog, corpus and students",
		Long: `Validate loads the stored catalog, which rejects prerequisite cycles and
unknown prerequisites, then checks that the corpus and students only reference
catalog courses and that the model configuration fits the catalog.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, repo, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer closeRepo(repo)

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			cat, err := repo.LoadCatalog(ctx)
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no catalog stored, run 'studypathctl generate' first: %w", err)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "catalog: %d majors, %d courses, %d prerequisite edges, acyclic\n",
				len(cat.Majors()), cat.Size(), len(cat.Edges()))

			problems := 0
			report := func(format string, args ...interface{}) {
				problems++
				fmt.Fprintf(out, "  "+format+"\n", args...)
			}

			model := cfg.Recommend.Model()
			if err := model.Validate(); err != nil {
				report("model config: %v", err)
			} else if !cat.HasMajor(model.DefaultMajor) {
				report("model config: %v: %s", recommend.ErrUnknownDefault, model.DefaultMajor)
			}

			examples, err := repo.LoadCorpus(ctx)
			if err != nil {
				return err
			}
			checkCorpus(out, cat, examples, report)

			students, err := repo.ListStudents(ctx)
			if err != nil {
				return err
			}
			for i := range students {
				s := &students[i]
				if verr := validation.ValidateStruct(s); verr != nil {
					report("student %s: %v", s.ID, verr)
				}
				for _, e := range s.Enrollments {
					if !cat.Known(e.CourseCode) {
						report("student %s: unknown course %s", s.ID, e.CourseCode)
					}
				}
			}
			fmt.Fprintf(out, "students: %d\n", len(students))

			if problems > 0 {
				return fmt.Errorf("%w: %d problems", errValidationFailed, problems)
			}
			fmt.Fprintln(out, "ok")
			return nil
		},
	}
}

func checkCorpus(out io.Writer, cat *catalog.Catalog, examples []recommend.TrainingExample, report func(string, ...interface{})) {
	unknown := make(map[string]int)
	for _, ex := range examples {
		for _, code := range ex.Profile.CompletedCourses {
			if !cat.Known(code) {
				unknown[code]++
			}
		}
		for _, code := range ex.NextCourses {
			if !cat.Known(code) {
				unknown[code]++
			}
		}
	}
	fmt.Fprintf(out, "corpus: %d examples\n", len(examples))
	for code, n := range unknown {
		report("corpus: unknown course %s referenced %d times", code, n)
	}
}
