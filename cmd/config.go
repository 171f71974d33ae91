package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/adas-hsim/adas-hsim/hsim/feasibility"
	"github.com/adas-hsim/adas-hsim/hsim/synth"
)

// RunPolicy holds the tunable numerical knobs for analysis and
// simulation, loadable from a YAML file via --config. Nil pointer
// fields mean "not set in YAML" — they do not override the package
// defaults (hsim/feasibility.DefaultOptions, hsim/synth.DefaultOptions).
type RunPolicy struct {
	Synth       SynthPolicy       `yaml:"synth"`
	Feasibility FeasibilityPolicy `yaml:"feasibility"`
}

// SynthPolicy mirrors hsim/synth.Options.
type SynthPolicy struct {
	Epsilon                   *float64 `yaml:"epsilon"`
	AlphaGrowthFactor         *float64 `yaml:"alpha_growth_factor"`
	MaxBinarySearchIterations *int     `yaml:"max_binary_search_iterations"`
}

// FeasibilityPolicy mirrors hsim/feasibility.Options.
type FeasibilityPolicy struct {
	HorizonCap              *float64 `yaml:"horizon_cap"`
	MaxFixedPointIterations *int     `yaml:"max_fixed_point_iterations"`
}

// LoadRunPolicy reads and parses a YAML run-policy configuration file.
func LoadRunPolicy(path string) (*RunPolicy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run policy config: %w", err)
	}
	var policy RunPolicy
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return nil, fmt.Errorf("parsing run policy config: %w", err)
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &policy, nil
}

// Validate checks that all set parameters are within their valid ranges.
func (p *RunPolicy) Validate() error {
	if p.Synth.Epsilon != nil && *p.Synth.Epsilon <= 0 {
		return fmt.Errorf("synth.epsilon must be positive, got %v", *p.Synth.Epsilon)
	}
	if p.Synth.AlphaGrowthFactor != nil && *p.Synth.AlphaGrowthFactor <= 1 {
		return fmt.Errorf("synth.alpha_growth_factor must be > 1, got %v", *p.Synth.AlphaGrowthFactor)
	}
	if p.Synth.MaxBinarySearchIterations != nil && *p.Synth.MaxBinarySearchIterations <= 0 {
		return fmt.Errorf("synth.max_binary_search_iterations must be positive, got %v", *p.Synth.MaxBinarySearchIterations)
	}
	if p.Feasibility.HorizonCap != nil && *p.Feasibility.HorizonCap <= 0 {
		return fmt.Errorf("feasibility.horizon_cap must be positive, got %v", *p.Feasibility.HorizonCap)
	}
	if p.Feasibility.MaxFixedPointIterations != nil && *p.Feasibility.MaxFixedPointIterations <= 0 {
		return fmt.Errorf("feasibility.max_fixed_point_iterations must be positive, got %v", *p.Feasibility.MaxFixedPointIterations)
	}
	return nil
}

// SynthOptions builds hsim/synth.Options from the policy, falling back
// to DefaultOptions for every unset field.
func (p *RunPolicy) SynthOptions() synth.Options {
	opts := synth.DefaultOptions()
	if p == nil {
		return opts
	}
	if p.Synth.Epsilon != nil {
		opts.Epsilon = *p.Synth.Epsilon
	}
	if p.Synth.AlphaGrowthFactor != nil {
		opts.AlphaGrowthFactor = *p.Synth.AlphaGrowthFactor
	}
	if p.Synth.MaxBinarySearchIterations != nil {
		opts.MaxBinarySearchIterations = *p.Synth.MaxBinarySearchIterations
	}
	opts.Feasibility = p.FeasibilityOptions()
	return opts
}

// FeasibilityOptions builds hsim/feasibility.Options from the policy,
// falling back to DefaultOptions for every unset field.
func (p *RunPolicy) FeasibilityOptions() feasibility.Options {
	opts := feasibility.DefaultOptions()
	if p == nil {
		return opts
	}
	if p.Feasibility.HorizonCap != nil {
		opts.HorizonCap = *p.Feasibility.HorizonCap
	}
	if p.Feasibility.MaxFixedPointIterations != nil {
		opts.MaxFixedPointIterations = *p.Feasibility.MaxFixedPointIterations
	}
	return opts
}
