// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/studypath/internal/bootstrap"
	"github.com/tomtom215/studypath/internal/logging"
	"github.com/tomtom215/studypath/internal/models"
	"github.com/tomtom215/studypath/internal/recommend"
	"github.com/tomtom215/studypath/internal/validation"
)

type recommendOptions struct {
	student string
	req     models.RecommendationRequest
	asJSON  bool
}

// recommendOutput is the --json form of a recommendation.
type recommendOutput struct {
	recommend.Result
	Details []courseLine `json:"details"`
}

type courseLine struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Stage string `json:"stage"`
}

func newRecommendCmd(opts *rootOptions) *cobra.Command {
	ro := &recommendOptions{}

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend next courses for a profile or a stored student",
		Example: `  studypathctl recommend --major CS --semester 2 --gpa 3.4 --completed CS101,MATH101
  studypathctl recommend --student 1 --limit 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRecommend(cmd, opts, ro)
		},
	}

	f := cmd.Flags()
	f.StringVar(&ro.student, "student", "", "stored student ID; profile flags are ignored")
	f.StringVar(&ro.req.Major, "major", "", "declared major code")
	f.IntVar(&ro.req.Semester, "semester", 1, "current semester")
	f.Float64Var(&ro.req.GPA, "gpa", 3.0, "grade point average (0-4)")
	f.StringSliceVar(&ro.req.CompletedCourses, "completed", nil, "completed course codes")
	f.IntVar(&ro.req.Limit, "limit", 0, "number of courses (default: recommend.default_limit)")
	f.BoolVar(&ro.asJSON, "json", false, "print JSON")
	return cmd
}

func runRecommend(cmd *cobra.Command, opts *rootOptions, ro *recommendOptions) error {
	if ro.student == "" {
		if verr := validation.ValidateStruct(&ro.req); verr != nil {
			return verr
		}
	}

	cfg, repo, err := opts.open(cmd)
	if err != nil {
		return err
	}
	defer closeRepo(repo)

	ctx := cmd.Context()
	profile := ro.req.Profile()
	if ro.student != "" {
		rec, err := repo.LoadStudent(ctx, ro.student)
		if err != nil {
			return err
		}
		profile = rec.Profile()
	}

	cat, err := bootstrap.LoadCatalog(ctx, repo, &cfg.Recommend, logging.Logger())
	if err != nil {
		return err
	}
	model, err := recommend.NewHandle(ctx, cfg.Recommend.Model(), cat, repo, logging.Logger())
	if err != nil {
		return err
	}

	result := model.Explain(profile, ro.req.Limit)
	lines := make([]courseLine, len(result.Recommendations))
	for i, rec := range result.Recommendations {
		lines[i] = courseLine{Code: rec.Code, Stage: string(rec.Stage)}
		if d, err := model.Details(rec.Code); err == nil {
			lines[i].Name = d.Name
		}
	}

	out := cmd.OutOrStdout()
	if ro.asJSON {
		return printJSON(out, recommendOutput{Result: result, Details: lines})
	}

	major := result.LookupMajor
	if result.MajorSubstituted {
		major = fmt.Sprintf("%s (unknown major %q)", result.LookupMajor, result.Major)
	}
	fmt.Fprintf(out, "Recommendations for %s, model v%d:\n", major, result.ModelVersion)
	for i, l := range lines {
		fmt.Fprintf(out, "%2d. %-8s %-10s %s\n", i+1, l.Code, l.Stage, l.Name)
	}
	return nil
}
