package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// OutputConfig selects which artifacts are produced and where.
type OutputConfig struct {
	Dir  string `yaml:"dir"` // empty: next to the input file
	PNG  bool   `yaml:"png"`
	PDF  bool   `yaml:"pdf"`
	HTML bool   `yaml:"html"`
	CSV  bool   `yaml:"csv"`
}

// PlotConfig controls chart geometry.
type PlotConfig struct {
	WidthPt   float64 `yaml:"width_pt"`
	HeightPt  float64 `yaml:"height_pt"`
	MaxFreqHz float64 `yaml:"max_freq_hz"` // 0: Nyquist
}

type ReportConfig struct {
	TopPeaks int `yaml:"top_peaks"`
}

// Config is the top-level structure of the YAML config file.
type Config struct {
	Output   OutputConfig `yaml:"output"`
	Plot     PlotConfig   `yaml:"plot"`
	Report   ReportConfig `yaml:"report"`
	LogLevel string       `yaml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Output: OutputConfig{PNG: true},
		Plot: PlotConfig{
			WidthPt:  800,
			HeightPt: 400,
		},
		Report:   ReportConfig{TopPeaks: 5},
		LogLevel: "info",
	}
}

// Load reads a YAML file on top of Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the renderers cannot use.
func (c *Config) Validate() error {
	var errs []error
	if c.Plot.WidthPt <= 0 || c.Plot.HeightPt <= 0 {
		errs = append(errs, fmt.Errorf("plot size must be positive, got %gx%g pt", c.Plot.WidthPt, c.Plot.HeightPt))
	}
	if c.Plot.MaxFreqHz < 0 {
		errs = append(errs, fmt.Errorf("plot.max_freq_hz must not be negative, got %g", c.Plot.MaxFreqHz))
	}
	if c.Report.TopPeaks < 0 {
		errs = append(errs, fmt.Errorf("report.top_peaks must not be negative, got %d", c.Report.TopPeaks))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
