// Package config loads the dashboard configuration from YAML and applies
// defaults so a missing file still yields a runnable setup.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the complete dashboard configuration.
type Config struct {
	Dataset   DatasetConfig   `yaml:"dataset"`
	Insight   InsightConfig   `yaml:"insight"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// DatasetConfig describes the input file and presentation bounds.
type DatasetConfig struct {
	Path           string `yaml:"path"`             // CSV file, or a .db/.sqlite read-only database
	TopBases       int    `yaml:"top_bases"`        // Bases kept on the base chart
	GeoSampleLimit int    `yaml:"geo_sample_limit"` // Max points handed to the map layer
}

// InsightConfig holds the inclusive commute-window hours for the hourly
// narrative.
type InsightConfig struct {
	MorningStartHour int `yaml:"morning_start_hour"`
	MorningEndHour   int `yaml:"morning_end_hour"`
	EveningStartHour int `yaml:"evening_start_hour"`
	EveningEndHour   int `yaml:"evening_end_hour"`
}

// DashboardConfig contains terminal UI settings.
type DashboardConfig struct {
	ChartWidth   int  `yaml:"chart_width"` // Bar length of the widest chart row
	ShowGeoStats bool `yaml:"show_geo_stats"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Dir           string `yaml:"dir"` // Empty disables the file sink
	RetentionDays int    `yaml:"retention_days"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a YAML file and fills in defaults for any
// omitted values.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Dataset.Path == "" {
		c.Dataset.Path = "data/uber-raw-data.csv"
	}
	if c.Dataset.TopBases <= 0 {
		c.Dataset.TopBases = 15
	}
	if c.Dataset.GeoSampleLimit <= 0 {
		c.Dataset.GeoSampleLimit = 5000
	}
	if c.Insight.MorningStartHour == 0 && c.Insight.MorningEndHour == 0 {
		c.Insight.MorningStartHour = 7
		c.Insight.MorningEndHour = 9
	}
	if c.Insight.EveningStartHour == 0 && c.Insight.EveningEndHour == 0 {
		c.Insight.EveningStartHour = 16
		c.Insight.EveningEndHour = 19
	}
	if c.Dashboard.ChartWidth <= 0 {
		c.Dashboard.ChartWidth = 40
	}
	if c.Logging.RetentionDays <= 0 {
		c.Logging.RetentionDays = 7
	}
}

// Print displays the effective configuration.
func (c *Config) Print() {
	fmt.Printf("Dataset: %s (top bases=%d, geo sample limit=%d)\n",
		c.Dataset.Path, c.Dataset.TopBases, c.Dataset.GeoSampleLimit)
	fmt.Printf("Commute windows: morning %02d-%02d, evening %02d-%02d\n",
		c.Insight.MorningStartHour, c.Insight.MorningEndHour,
		c.Insight.EveningStartHour, c.Insight.EveningEndHour)
	if c.Logging.Dir != "" {
		fmt.Printf("Logging: %s (retention %dd)\n", c.Logging.Dir, c.Logging.RetentionDays)
	}
}
