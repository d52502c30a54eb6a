// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/studypath/internal/bootstrap"
	"github.com/tomtom215/studypath/internal/logging"
)

func newCourseCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "course CODE",
		Short: "Show course details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, repo, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer closeRepo(repo)

			cat, err := bootstrap.LoadCatalog(cmd.Context(), repo, &cfg.Recommend, logging.Logger())
			if err != nil {
				return err
			}
			d, err := cat.Details(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, d)
			}
			fmt.Fprintf(out, "%s  %s\n", d.Code, d.Name)
			fmt.Fprintf(out, "  major:         %s (%s)\n", d.Major, d.Type)
			fmt.Fprintf(out, "  credits:       %d\n", d.Credits)
			prereqs := "none"
			if len(d.Prerequisites) > 0 {
				prereqs = strings.Join(d.Prerequisites, ", ")
			}
			fmt.Fprintf(out, "  prerequisites: %s\n", prereqs)
			fmt.Fprintf(out, "  %s\n", d.Description)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
