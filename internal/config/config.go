// SPDX-License-Identifier: MIT

// Package config loads and validates the YAML run configuration of the
// choicekit command and turns it into package options.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/choicekit/choice"
	"github.com/katalvlaran/choicekit/mcmc"
	"github.com/katalvlaran/choicekit/mle"
	"github.com/katalvlaran/choicekit/prior"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the run configuration.
type Config struct {
	// Estimation.
	InitialParameters       []float64 `yaml:"initial_parameters" json:"initial_parameters,omitempty" validate:"omitempty,dive,finite"`
	OptimizerMethod         string    `yaml:"optimizer_method" json:"optimizer_method" validate:"oneof=bfgs lbfgs cg gradient-descent nelder-mead"`
	MaxIterations           int       `yaml:"max_iterations" json:"max_iterations" validate:"gte=1"`
	FiniteDifferenceEpsilon float64   `yaml:"finite_difference_epsilon" json:"finite_difference_epsilon" validate:"gt=0,lt=1"`
	CentralDifferences      bool      `yaml:"central_differences" json:"central_differences"`
	RelativeStep            bool      `yaml:"relative_step" json:"relative_step"`

	// Bayesian.
	PriorMeans      []float64 `yaml:"prior_means" json:"prior_means,omitempty" validate:"omitempty,dive,finite"`
	PriorStdDevs    []float64 `yaml:"prior_stddevs" json:"prior_stddevs,omitempty" validate:"omitempty,dive,gt=0,finite"`
	ProposalStdDevs []float64 `yaml:"proposal_stddevs" json:"proposal_stddevs,omitempty" validate:"omitempty,dive,gt=0,finite"`
	NSteps          int       `yaml:"n_steps" json:"n_steps" validate:"gte=2"`
	BurnIn          int       `yaml:"burn_in" json:"burn_in" validate:"gte=0,ltfield=NSteps"`
	RandomSeed      uint64    `yaml:"random_seed" json:"random_seed"`
	SeedAtMLE       bool      `yaml:"seed_at_mle" json:"seed_at_mle"`
	ProgressEvery   int       `yaml:"progress_every" json:"progress_every" validate:"gte=0"`

	Data     DataConfig `yaml:"data" json:"data"`
	LogLevel string     `yaml:"log_level" json:"log_level" validate:"oneof=debug info warn error"`
}

// DataConfig maps CSV headers onto the dataset.
type DataConfig struct {
	Task        string   `yaml:"task" json:"task" validate:"required"`
	Alternative string   `yaml:"alternative" json:"alternative" validate:"required"`
	Chosen      string   `yaml:"chosen" json:"chosen" validate:"required"`
	Covariates  []string `yaml:"covariates" json:"covariates" validate:"required,min=1,unique,dive,required"`
}

// Default returns the reference configuration for the simulated conjoint data.
func Default() Config {
	return Config{
		OptimizerMethod:         "bfgs",
		MaxIterations:           mle.DefaultMaxIterations,
		FiniteDifferenceEpsilon: mle.DefaultEpsilon,
		NSteps:                  mcmc.DefaultSteps,
		BurnIn:                  2000,
		RandomSeed:              42,
		Data: DataConfig{
			Task:        "task",
			Alternative: "alternative",
			Chosen:      "chosen",
			Covariates:  []string{"brand_N", "brand_P", "ads", "price"},
		},
		LogLevel: "info",
	}
}

// Load reads path over Default and validates the result. Unknown keys are
// rejected.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	return Parse(raw)
}

// Parse decodes YAML over Default and validates the result.
func Parse(raw []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		x := fl.Field().Float()
		return !math.IsNaN(x) && !math.IsInf(x, 0)
	})

	return v
}

// Validate checks field constraints and that every per-parameter list
// matches data.covariates in length.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, len(ve))
			for i, fe := range ve {
				msgs[i] = fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag())
			}
			return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	k := len(c.Data.Covariates)
	for _, l := range []struct {
		name string
		list []float64
	}{
		{"initial_parameters", c.InitialParameters},
		{"prior_means", c.PriorMeans},
		{"prior_stddevs", c.PriorStdDevs},
		{"proposal_stddevs", c.ProposalStdDevs},
	} {
		if len(l.list) != 0 && len(l.list) != k {
			return fmt.Errorf("%w: %s has %d entries for %d covariates", ErrInvalid, l.name, len(l.list), k)
		}
	}
	if len(c.PriorMeans) != 0 && len(c.PriorStdDevs) == 0 {
		return fmt.Errorf("%w: prior_means given without prior_stddevs", ErrInvalid)
	}

	return nil
}

// SlogLevel maps LogLevel onto slog.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	return slog.LevelInfo
}

// Columns returns the CSV column mapping.
func (c Config) Columns() choice.Columns {
	return choice.Columns{
		Task:        c.Data.Task,
		Alternative: c.Data.Alternative,
		Chosen:      c.Data.Chosen,
		Covariates:  append([]string(nil), c.Data.Covariates...),
	}
}

// Initial returns the optimizer start, nil meaning zeros.
func (c Config) Initial() []float64 {
	if len(c.InitialParameters) == 0 {
		return nil
	}
	return append([]float64(nil), c.InitialParameters...)
}

// FitOptions builds the mle options.
func (c Config) FitOptions(logger *slog.Logger) ([]mle.Option, error) {
	method, err := mle.MethodByName(c.OptimizerMethod)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	opts := []mle.Option{
		mle.WithMethod(method),
		mle.WithMaxIterations(c.MaxIterations),
		mle.WithEpsilon(c.FiniteDifferenceEpsilon),
		mle.WithNames(c.Data.Covariates...),
		mle.WithLogger(logger),
	}
	if c.CentralDifferences {
		opts = append(opts, mle.WithCentralDifferences())
	}
	if c.RelativeStep {
		opts = append(opts, mle.WithRelativeStep())
	}

	return opts, nil
}

// Prior returns the configured prior, or the reference prior when
// prior_stddevs is empty. Missing means default to zero.
func (c Config) Prior() (*prior.Gaussian, error) {
	if len(c.PriorStdDevs) == 0 {
		return prior.Reference(prior.KindsOf(c.Data.Covariates)), nil
	}
	means := c.PriorMeans
	if len(means) == 0 {
		means = make([]float64, len(c.PriorStdDevs))
	}

	return prior.NewGaussian(means, c.PriorStdDevs)
}

// SampleOptions builds the mcmc options. Proposal scales default to the
// reference scales per covariate kind.
func (c Config) SampleOptions(logger *slog.Logger) []mcmc.Option {
	sd := c.ProposalStdDevs
	if len(sd) == 0 {
		sd = mcmc.ReferenceStdDevs(prior.KindsOf(c.Data.Covariates))
	}

	return []mcmc.Option{
		mcmc.WithSteps(c.NSteps),
		mcmc.WithBurnIn(c.BurnIn),
		mcmc.WithSeed(c.RandomSeed),
		mcmc.WithProposalStdDevs(sd...),
		mcmc.WithNames(c.Data.Covariates...),
		mcmc.WithProgressEvery(c.ProgressEvery),
		mcmc.WithLogger(logger),
	}
}
