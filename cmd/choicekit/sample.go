// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/choicekit/logit"
	"github.com/katalvlaran/choicekit/mcmc"
	"github.com/katalvlaran/choicekit/mle"
	"github.com/katalvlaran/choicekit/posterior"
)

// sampleOutput is the posterior result record plus the chain's start.
type sampleOutput struct {
	Initial []float64   `json:"initial"`
	MLE     *mle.Result `json:"mle,omitempty"`
	*mcmc.Result
}

func newSampleCmd(a *app) *cobra.Command {
	var (
		withChain bool
		seedMLE   bool
	)
	cmd := &cobra.Command{
		Use:   "sample <data.csv>",
		Short: "Random-walk Metropolis-Hastings posterior sampling",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.sample(args[0], seedMLE || a.cfg.SeedAtMLE)
			if err != nil {
				return err
			}
			if !withChain {
				out.Samples = nil
				out.PostBurnIn = nil
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().BoolVar(&withChain, "chain", false, "include the full and post-burn-in chains in the output")
	cmd.Flags().BoolVar(&seedMLE, "seed-at-mle", false, "start the chain at the maximum likelihood estimate")

	return cmd
}

func (a *app) sample(path string, seedMLE bool) (*sampleOutput, error) {
	d, err := a.loadDataset(path)
	if err != nil {
		return nil, err
	}
	model, err := logit.New(d)
	if err != nil {
		return nil, err
	}
	pr, err := a.cfg.Prior()
	if err != nil {
		return nil, err
	}
	post, err := posterior.New(model, pr)
	if err != nil {
		return nil, err
	}

	out := &sampleOutput{Initial: a.cfg.Initial()}
	if out.Initial == nil {
		out.Initial = make([]float64, model.Dim())
	}
	if seedMLE {
		opts, err := a.cfg.FitOptions(a.logger)
		if err != nil {
			return nil, err
		}
		fit, err := mle.Fit(d, a.cfg.Initial(), append(opts, mle.WithAllowSingular())...)
		if err != nil {
			return nil, err
		}
		out.MLE = fit
		out.Initial = append([]float64(nil), fit.Estimates...)
	}

	res, err := mcmc.Sample(post, out.Initial, a.cfg.SampleOptions(a.logger)...)
	if err != nil {
		return nil, err
	}
	a.logger.Info("sampling done", "acceptance_rate", res.AcceptanceRate, "healthy", res.Healthy())
	out.Result = res

	return out, nil
}
