// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/choicekit/choice"
	"github.com/katalvlaran/choicekit/simulate"
)

func newSimulateCmd(a *app) *cobra.Command {
	var (
		respondents int
		tasks       int
		seed        uint64
		output      string
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Write a synthetic streaming-service conjoint dataset as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := simulate.Conjoint(respondents, tasks, simulate.WithSeed(seed))
			if err != nil {
				return err
			}

			if err := writeCSVTo(output, cmd.OutOrStdout(), d, a.cfg.Columns()); err != nil {
				return err
			}
			a.logger.Info("simulated", "tasks", d.NumTasks(), "truth", simulate.ReferenceTruth(), "output", output)

			return nil
		},
	}
	cmd.Flags().IntVar(&respondents, "respondents", 500, "number of respondents")
	cmd.Flags().IntVar(&tasks, "tasks", 10, "choice tasks per respondent")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file ('-' for stdout)")

	return cmd
}

// writeCSVTo writes d to path, or to stdout for "" and "-". The file's
// close error is returned.
func writeCSVTo(path string, stdout io.Writer, d *choice.Dataset, cols choice.Columns) error {
	if path == "" || path == "-" {
		return choice.WriteCSV(stdout, d, cols)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := choice.WriteCSV(f, d, cols); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	return nil
}
