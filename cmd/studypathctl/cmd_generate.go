// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tomtom215/studypath/internal/bootstrap"
	"github.com/tomtom215/studypath/internal/catalog"
	"github.com/tomtom215/studypath/internal/database"
	"github.com/tomtom215/studypath/internal/recommend"
)

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	var (
		size int
		seed int64
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the catalog and training corpus and save them",
		Long: `Generate replaces the stored catalog and training corpus with ones built
from the configured seed and majors. Demonstration students are saved when
the repository has none.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, repo, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer closeRepo(repo)

			if cmd.Flags().Changed("seed") {
				cfg.Recommend.Seed = seed
			}
			if size <= 0 {
				size = cfg.Recommend.PopulationSize
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			cat, err := bootstrap.GenerateCatalog(ctx, repo, &cfg.Recommend)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "catalog: %d courses across %d majors\n", cat.Size(), len(cat.Majors()))

			seeded, err := bootstrap.SeedStudents(ctx, repo)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "students: %d seeded\n", seeded)

			examples, err := recommend.Generate(ctx, cat, size, catalog.NewSource(cfg.Recommend.Seed))
			if err != nil {
				return fmt.Errorf("generate corpus: %w", err)
			}
			if err := repo.SaveCorpus(ctx, examples); err != nil {
				return fmt.Errorf("save corpus: %w", err)
			}
			fmt.Fprintf(out, "corpus: %d examples (seed %d)\n", len(examples), cfg.Recommend.Seed)

			db, ok := repo.Unwrap().(*database.DB)
			if !ok {
				return nil
			}
			summary, err := db.SummarizeCorpus(ctx)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "MAJOR\tSTUDENTS\tAVG GPA\tAVG COMPLETED\tMAX SEMESTER")
			for _, s := range summary {
				fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.1f\t%d\n", s.Major, s.Students, s.AvgGPA, s.AvgCompleted, s.MaxSemester)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&size, "size", 0, "number of synthetic students (default: recommend.population_size)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "generation seed (default: recommend.seed)")
	return cmd
}
