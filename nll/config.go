// SPDX-License-Identifier: MIT

package nll

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/binnll/integrate"
)

// configValidate is the shared validator instance for Config.
var configValidate = validator.New()

// Config is the decoded NLL configuration.
type Config struct {
	// Range restricts the fit to [Range[0], Range[1]]. Conflicts with RangeName.
	Range []float64 `yaml:"range" validate:"omitempty,len=2"`

	// RangeName selects one or more comma-separated named ranges.
	RangeName string `yaml:"rangeName"`

	// Extended is auto, on or off (empty means auto).
	Extended string `yaml:"extended" validate:"omitempty,oneof=auto on off"`

	NumWorkers int    `yaml:"numWorkers" validate:"gte=1"`
	Split      string `yaml:"split" validate:"omitempty,oneof=contiguous interleaved"`

	// Constrain lists the constrained parameters; empty means every free
	// parameter, with disconnected constraints stripped.
	Constrain []string `yaml:"constrain" validate:"dive,required"`

	// GlobalObservables names the global observables to snapshot.
	GlobalObservables []string `yaml:"globalObservables" validate:"dive,required"`

	// GlobalObservablesTag discovers global observables by attribute when
	// GlobalObservables is empty.
	GlobalObservablesTag string `yaml:"globalObservablesTag"`

	Offset            bool `yaml:"offset"`
	SumW2Error        bool `yaml:"sumW2Error"`
	StrictIntegration bool `yaml:"strictIntegration"`

	// Integrator is auto, adaptive, romberg or analytical.
	Integrator string `yaml:"integrator" validate:"omitempty,oneof=auto adaptive romberg analytical"`
}

// DefaultConfig returns a single-worker, auto-extended configuration.
func DefaultConfig() Config {
	return Config{
		Extended:   "auto",
		NumWorkers: DefaultWorkers,
		Split:      "contiguous",
		Integrator: "auto",
	}
}

// Validate checks field constraints and cross-field conflicts.
//
// Errors: ErrConfiguration wrapping the validator error.
func (c Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if len(c.Range) == 2 && c.RangeName != "" {
		return fmt.Errorf("range and rangeName %q are exclusive: %w", c.RangeName, ErrConfiguration)
	}
	if len(c.Range) == 2 && !(c.Range[0] < c.Range[1]) {
		return fmt.Errorf("range [%g, %g]: %w", c.Range[0], c.Range[1], ErrConfiguration)
	}

	return nil
}

// Options converts c into evaluator options. c must be valid.
func (c Config) Options() []Option {
	opts := []Option{
		WithWorkers(c.NumWorkers),
		WithOffsetting(c.Offset),
		WithSumW2Error(c.SumW2Error),
		WithStrictIntegration(c.StrictIntegration),
	}
	if len(c.Range) == 2 {
		opts = append(opts, WithRange(c.Range[0], c.Range[1]))
	}
	if c.RangeName != "" {
		opts = append(opts, WithRangeName(c.RangeName))
	}
	switch c.Extended {
	case "on":
		opts = append(opts, WithExtended(ExtendedOn))
	case "off":
		opts = append(opts, WithExtended(ExtendedOff))
	}
	if c.Split == "interleaved" {
		opts = append(opts, WithSplit(SplitInterleaved))
	}
	if k, err := integrate.ParseKind(c.Integrator); err == nil {
		opts = append(opts, WithIntegrator(k))
	}

	return opts
}

// LoadConfig reads a YAML configuration over DefaultConfig and validates it.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	return ParseConfig(raw)
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
func ParseConfig(raw []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
