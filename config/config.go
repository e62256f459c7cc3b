package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/projfin/allocate"
	"github.com/rustyeddy/projfin/covenant"
	"github.com/rustyeddy/projfin/engine"
	"github.com/rustyeddy/projfin/tranche"
)

// Config is a complete scenario file. It is the fully-resolved input
// shape: no nested override containers, no environment-driven modes.
type Config struct {
	Name         string  `json:"name" yaml:"name"`
	BaseCurrency string  `json:"base_currency" yaml:"base_currency"`
	HurdleRate   float64 `json:"hurdle_rate" yaml:"hurdle_rate"`

	CFADS    []float64            `json:"cfads" yaml:"cfads"`
	Tranches []TrancheConfig      `json:"tranches" yaml:"tranches"`
	FX       map[string][]float64 `json:"fx,omitempty" yaml:"fx,omitempty"`

	Covenants []covenant.Threshold `json:"covenants,omitempty" yaml:"covenants,omitempty"`

	Allocation      string `json:"allocation,omitempty" yaml:"allocation,omitempty"` // "pro-rata" (default) or "waterfall"
	Validation      string `json:"validation,omitempty" yaml:"validation,omitempty"` // "strict" (default) or "permissive"
	AnnuityFallback bool   `json:"annuity_fallback,omitempty" yaml:"annuity_fallback,omitempty"`
}

// TrancheConfig mirrors tranche.Tranche in file form.
type TrancheConfig struct {
	Name            string  `json:"name" yaml:"name"`
	Currency        string  `json:"currency" yaml:"currency"`
	Principal       float64 `json:"principal" yaml:"principal"`
	Rate            float64 `json:"rate" yaml:"rate"`
	TenorPeriods    int     `json:"tenor_periods" yaml:"tenor_periods"`
	GracePeriods    int     `json:"grace_periods" yaml:"grace_periods"`
	Style           string  `json:"style" yaml:"style"`
	TargetDSCR      float64 `json:"target_dscr,omitempty" yaml:"target_dscr,omitempty"`
	BalloonFraction float64 `json:"balloon_fraction,omitempty" yaml:"balloon_fraction,omitempty"`
	CapitalizeIDC   bool    `json:"capitalize_idc,omitempty" yaml:"capitalize_idc,omitempty"`
}

// LoadFromFile loads a scenario from a YAML (or JSON) file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile writes the scenario back out (YAML by extension, else JSON).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks the file-level shape. Business invariants on each
// tranche (grace < tenor, balloon range) are enforced again by
// tranche.Validate when the engine runs.
func (c *Config) Validate() error {
	if c.BaseCurrency == "" {
		return fmt.Errorf("base_currency is required")
	}
	if len(c.CFADS) == 0 {
		return fmt.Errorf("cfads series is required")
	}
	if len(c.Tranches) == 0 {
		return fmt.Errorf("at least one tranche is required")
	}
	for i, tr := range c.Tranches {
		if tr.Name == "" {
			return fmt.Errorf("tranches[%d].name is required", i)
		}
		if tr.Currency == "" {
			return fmt.Errorf("tranche %q: currency is required", tr.Name)
		}
		if tr.Style != string(tranche.Annuity) && tr.Style != string(tranche.Sculpted) {
			return fmt.Errorf("tranche %q: style must be %q or %q", tr.Name, tranche.Annuity, tranche.Sculpted)
		}
		if tr.Currency != c.BaseCurrency {
			rates, ok := c.FX[tr.Currency]
			if !ok || len(rates) < tr.TenorPeriods {
				return fmt.Errorf("tranche %q: fx series for %s must cover %d periods",
					tr.Name, tr.Currency, tr.TenorPeriods)
			}
			for p, r := range rates {
				if r <= 0 {
					return fmt.Errorf("tranche %q: fx rate for %s period %d must be positive, got %g",
						tr.Name, tr.Currency, p+1, r)
				}
			}
		}
	}
	if c.HurdleRate < 0 {
		return fmt.Errorf("hurdle_rate must be >= 0")
	}
	switch c.Allocation {
	case "", string(allocate.ProRata), string(allocate.Waterfall):
	default:
		return fmt.Errorf("allocation must be %q or %q", allocate.ProRata, allocate.Waterfall)
	}
	switch c.Validation {
	case "", string(tranche.Strict), string(tranche.Permissive):
	default:
		return fmt.Errorf("validation must be %q or %q", tranche.Strict, tranche.Permissive)
	}
	for _, th := range c.Covenants {
		switch th.Metric {
		case covenant.DSCR, covenant.LLCR, covenant.PLCR:
		default:
			return fmt.Errorf("covenant metric must be one of dscr, llcr, plcr; got %q", th.Metric)
		}
	}
	return nil
}

// Scenario converts the file form into an engine input.
func (c *Config) Scenario() engine.Scenario {
	s := engine.Scenario{
		Name:            c.Name,
		BaseCurrency:    c.BaseCurrency,
		CFADS:           c.CFADS,
		FX:              c.FX,
		HurdleRate:      c.HurdleRate,
		Thresholds:      c.Covenants,
		Allocation:      allocate.Policy(c.Allocation),
		Validation:      tranche.ValidationPolicy(c.Validation),
		AnnuityFallback: c.AnnuityFallback,
	}
	for _, tc := range c.Tranches {
		s.Tranches = append(s.Tranches, tranche.Tranche{
			Name:                    tc.Name,
			Currency:                tc.Currency,
			Principal:               tc.Principal,
			Rate:                    tc.Rate,
			TenorPeriods:            tc.TenorPeriods,
			GracePeriods:            tc.GracePeriods,
			Style:                   tranche.Style(tc.Style),
			TargetDSCR:              tc.TargetDSCR,
			BalloonFraction:         tc.BalloonFraction,
			CapitalizeGraceInterest: tc.CapitalizeIDC,
		})
	}
	return s
}

// Default returns a runnable single-tranche example scenario.
func Default() *Config {
	return &Config{
		Name:         "example",
		BaseCurrency: "USD",
		HurdleRate:   0.10,
		CFADS:        []float64{300000, 300000, 300000, 300000, 300000, 300000},
		Tranches: []TrancheConfig{
			{
				Name:         "senior",
				Currency:     "USD",
				Principal:    1000000,
				Rate:         0.08,
				TenorPeriods: 5,
				Style:        string(tranche.Annuity),
			},
		},
		Covenants: []covenant.Threshold{
			{Metric: covenant.DSCR, Minimum: 1.20},
		},
	}
}
