// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/choicekit/choice"
	"github.com/katalvlaran/choicekit/internal/config"
)

// app is the state shared by subcommands, filled in PersistentPreRunE.
type app struct {
	configPath string
	logLevel   string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "choicekit",
		Short:        "Multinomial logit estimation by MLE and Metropolis-Hastings",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML run configuration (defaults when empty)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "debug|info|warn|error (overrides log_level)")

	root.AddCommand(newFitCmd(a), newSampleCmd(a), newSimulateCmd(a))

	return root
}

func (a *app) init(stderr io.Writer) error {
	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	return nil
}

// loadDataset reads a long-format CSV using the configured column mapping.
func (a *app) loadDataset(path string) (*choice.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := choice.ReadCSV(f, a.cfg.Columns())
	if err != nil {
		return nil, err
	}
	a.logger.Info("dataset loaded", "path", path, "tasks", d.NumTasks(),
		"alternatives", d.NumAlternatives(), "covariates", d.CovariateNames())

	return d, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	return nil
}
