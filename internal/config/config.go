package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level budgie.yaml configuration.
type Config struct {
	Household HouseholdConfig `yaml:"household"`
	Ledger    LedgerConfig    `yaml:"ledger"`
	Server    ServerConfig    `yaml:"server"`
	Git       GitConfig       `yaml:"git"`
	LogLevel  string          `yaml:"log_level"`
}

// HouseholdConfig identifies the household and its defaults.
type HouseholdConfig struct {
	Name     string `yaml:"name"`
	Currency string `yaml:"currency"`
	// PrimaryPerson is the person expenses are attributed to when a
	// submission names nobody.
	PrimaryPerson    string `yaml:"primary_person"`
	FallbackPersonID int    `yaml:"fallback_person_id"`
}

// LedgerConfig names the data locations inside the project directory.
type LedgerConfig struct {
	DataDir   string `yaml:"data_dir"`
	ImportDir string `yaml:"import_dir"`
	Table     string `yaml:"table"`
}

// ServerConfig controls the HTTP front end.
type ServerConfig struct {
	Port         int      `yaml:"port"`
	AllowOrigins []string `yaml:"allow_origins,omitempty"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a budgie.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(householdName, primaryPerson string) *Config {
	cfg := &Config{
		Household: HouseholdConfig{
			Name:          householdName,
			PrimaryPerson: primaryPerson,
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Budgie",
			AuthorEmail: "budgie@localhost",
		},
	}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Household.Currency == "" {
		c.Household.Currency = "USD"
	}
	if c.Household.FallbackPersonID == 0 {
		c.Household.FallbackPersonID = 1
	}
	if c.Ledger.DataDir == "" {
		c.Ledger.DataDir = "data"
	}
	if c.Ledger.ImportDir == "" {
		c.Ledger.ImportDir = "import"
	}
	if c.Ledger.Table == "" {
		c.Ledger.Table = "expenses"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
