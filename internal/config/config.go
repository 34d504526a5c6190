// Package config holds payfold's TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"payfold/internal/model"
)

// Config holds all payfold configuration.
type Config struct {
	General General `toml:"general"`
	Budget  Budget  `toml:"budget"`
	Rates   Rates   `toml:"rates"`
}

// General holds taxpayer defaults used when flags are not given.
type General struct {
	Province     string `toml:"province"`
	TaxYear      int    `toml:"tax_year"`
	PayFrequency string `toml:"pay_frequency"`
	TablesDir    string `toml:"tables_dir,omitempty"`
}

// Budget holds allocation policy defaults for new profiles.
type Budget struct {
	CheckingBuffer float64 `toml:"checking_buffer"`
	SavingsRate    float64 `toml:"savings_rate"`
	DebtStrategy   string  `toml:"debt_strategy"`
	RoundToNearest float64 `toml:"round_to_nearest"`
}

// Rates holds the optional tax-table fetch endpoint.
type Rates struct {
	BaseURL string `toml:"base_url,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	settings := model.DefaultSettings()
	return Config{
		General: General{
			Province:     string(model.ON),
			TaxYear:      time.Now().Year() - 1,
			PayFrequency: string(model.Biweekly),
		},
		Budget: Budget{
			CheckingBuffer: settings.CheckingBuffer,
			SavingsRate:    settings.SavingsRate,
			DebtStrategy:   string(settings.DebtStrategy),
			RoundToNearest: settings.RoundToNearest,
		},
	}
}

// Settings converts the budget section into engine settings.
func (c Config) Settings() model.BudgetSettings {
	s := model.DefaultSettings()
	s.CheckingBuffer = c.Budget.CheckingBuffer
	s.SavingsRate = c.Budget.SavingsRate
	s.RoundToNearest = c.Budget.RoundToNearest
	if c.Budget.DebtStrategy != "" {
		s.DebtStrategy = model.DebtStrategy(c.Budget.DebtStrategy)
	}
	return s
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "payfold")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "payfold")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return toml.NewEncoder(f).Encode(cfg)
}
