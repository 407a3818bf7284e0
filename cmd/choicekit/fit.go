// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/choicekit/mle"
)

func newFitCmd(a *app) *cobra.Command {
	var allowSingular bool
	cmd := &cobra.Command{
		Use:   "fit <data.csv>",
		Short: "Maximum likelihood estimates with standard errors and Wald intervals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.fit(args[0], allowSingular)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().BoolVar(&allowSingular, "allow-singular", false, "report estimates without standard errors when the Hessian is singular")

	return cmd
}

func (a *app) fit(path string, allowSingular bool) (*mle.Result, error) {
	d, err := a.loadDataset(path)
	if err != nil {
		return nil, err
	}
	opts, err := a.cfg.FitOptions(a.logger)
	if err != nil {
		return nil, err
	}
	if allowSingular {
		opts = append(opts, mle.WithAllowSingular())
	}

	res, err := mle.Fit(d, a.cfg.Initial(), opts...)
	if err != nil {
		return nil, err
	}
	a.logger.Info("mle done", "log_likelihood", res.LogLikelihood, "iterations", res.Iterations)

	return res, nil
}
