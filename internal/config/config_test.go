package config

import (
	"os"
	"path/filepath"
	"testing"

	"payfold/internal/model"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.General.Province != "ON" {
		t.Errorf("Province = %q, want ON", cfg.General.Province)
	}
	if cfg.General.PayFrequency != string(model.Biweekly) {
		t.Errorf("PayFrequency = %q, want biweekly", cfg.General.PayFrequency)
	}
	if cfg.Budget.CheckingBuffer != 500 {
		t.Errorf("CheckingBuffer = %.2f, want 500.00", cfg.Budget.CheckingBuffer)
	}
}

func TestSave_Load_RoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.General.Province = "QC"
	cfg.General.TaxYear = 2024
	cfg.Budget.DebtStrategy = string(model.Snowball)
	cfg.Rates.BaseURL = "https://rates.example.com"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.General.Province != "QC" {
		t.Errorf("Province = %q, want QC", loaded.General.Province)
	}
	if loaded.General.TaxYear != 2024 {
		t.Errorf("TaxYear = %d, want 2024", loaded.General.TaxYear)
	}
	if loaded.Budget.DebtStrategy != "snowball" {
		t.Errorf("DebtStrategy = %q, want snowball", loaded.Budget.DebtStrategy)
	}
	if loaded.Rates.BaseURL != "https://rates.example.com" {
		t.Errorf("BaseURL = %q, want the saved endpoint", loaded.Rates.BaseURL)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "payfold", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[general]\nprovince = \"BC\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.Province != "BC" {
		t.Errorf("Province = %q, want BC", cfg.General.Province)
	}
	// Sections not present in the file keep their defaults.
	if cfg.Budget.SavingsRate != 0.2 {
		t.Errorf("SavingsRate = %.2f, want the default 0.20", cfg.Budget.SavingsRate)
	}
}

func TestExists(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if Exists() {
		t.Error("Exists() = true before any save")
	}
	if err := Save(Default()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Error("Exists() = false after save")
	}
}

func TestSettings_Conversion(t *testing.T) {
	cfg := Default()
	cfg.Budget.DebtStrategy = "snowball"
	cfg.Budget.RoundToNearest = 5

	s := cfg.Settings()
	if s.DebtStrategy != model.Snowball {
		t.Errorf("DebtStrategy = %q, want snowball", s.DebtStrategy)
	}
	if s.RoundToNearest != 5 {
		t.Errorf("RoundToNearest = %.2f, want 5.00", s.RoundToNearest)
	}

	cfg.Budget.DebtStrategy = ""
	if got := cfg.Settings().DebtStrategy; got != model.Avalanche {
		t.Errorf("empty strategy = %q, want the avalanche default", got)
	}
}
