package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/projfin/tranche"
)

const scenarioYAML = `
name: dual-currency wind farm
base_currency: LKR
hurdle_rate: 0.12
cfads: [90000000, 95000000, 100000000, 100000000, 100000000, 100000000]
fx:
  USD: [300, 305, 310, 315, 320, 325]
tranches:
  - name: domestic
    currency: LKR
    principal: 60000000
    rate: 0.12
    tenor_periods: 6
    style: annuity
  - name: usd-commercial
    currency: USD
    principal: 150000
    rate: 0.07
    tenor_periods: 6
    grace_periods: 1
    style: sculpted
    target_dscr: 1.3
covenants:
  - metric: dscr
    minimum: 1.2
  - metric: llcr
    minimum: 1.25
allocation: pro-rata
validation: strict
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFromFileYAML(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFromFile(writeFile(t, "scenario.yaml", scenarioYAML))
	require.NoError(t, err)

	assert.Equal(t, "LKR", cfg.BaseCurrency)
	assert.Len(t, cfg.CFADS, 6)
	assert.Len(t, cfg.Tranches, 2)
	assert.Len(t, cfg.Covenants, 2)

	s := cfg.Scenario()
	assert.Equal(t, tranche.Sculpted, s.Tranches[1].Style)
	assert.Equal(t, 1.3, s.Tranches[1].TargetDSCR)
	assert.Len(t, s.FX["USD"], 6)
}

func TestLoadFromFileJSON(t *testing.T) {
	t.Parallel()

	cfg := Default()
	path := filepath.Join(t.TempDir(), "scenario.json")
	require.NoError(t, cfg.SaveToFile(path))

	got, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.BaseCurrency, got.BaseCurrency)
	assert.Equal(t, cfg.CFADS, got.CFADS)
}

func TestLoadFromFileMissing(t *testing.T) {
	t.Parallel()

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing base currency", func(c *Config) { c.BaseCurrency = "" }},
		{"no cfads", func(c *Config) { c.CFADS = nil }},
		{"no tranches", func(c *Config) { c.Tranches = nil }},
		{"unnamed tranche", func(c *Config) { c.Tranches[0].Name = "" }},
		{"missing currency", func(c *Config) { c.Tranches[0].Currency = "" }},
		{"bad style", func(c *Config) { c.Tranches[0].Style = "bullet" }},
		{"negative hurdle", func(c *Config) { c.HurdleRate = -0.01 }},
		{"bad allocation", func(c *Config) { c.Allocation = "round-robin" }},
		{"bad validation", func(c *Config) { c.Validation = "lenient" }},
		{"bad covenant metric", func(c *Config) { c.Covenants[0].Metric = "icr" }},
		{"fx missing for hard currency", func(c *Config) {
			c.Tranches[0].Currency = "EUR"
		}},
		{"fx rate zero", func(c *Config) {
			c.Tranches[0].Currency = "EUR"
			c.FX = map[string][]float64{"EUR": {1.1, 1.1, 0, 1.1, 1.1}}
		}},
		{"fx rate negative", func(c *Config) {
			c.Tranches[0].Currency = "EUR"
			c.FX = map[string][]float64{"EUR": {1.1, 1.1, -1.1, 1.1, 1.1}}
		}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, cfg.Validate())

	s := cfg.Scenario()
	assert.Equal(t, "USD", s.BaseCurrency)
	assert.Len(t, s.Tranches, 1)
}
