package tables

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"payfold/internal/model"
)

// LoadFile reads a tax table set from a JSON file and validates it.
func LoadFile(path string) (model.TaxTableSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.TaxTableSet{}, fmt.Errorf("reading tax tables: %w", err)
	}

	var set model.TaxTableSet
	if err := json.Unmarshal(data, &set); err != nil {
		return model.TaxTableSet{}, fmt.Errorf("parsing tax tables: %w", err)
	}

	Normalize(&set)
	if err := Check(set); err != nil {
		return model.TaxTableSet{}, err
	}
	return set, nil
}

// LoadYear resolves a year's tables: a tax_tables_<year>.json file in dir if
// present, the bundled defaults otherwise.
func LoadYear(dir string, year int) (model.TaxTableSet, error) {
	if dir != "" {
		path := filepath.Join(dir, fmt.Sprintf("tax_tables_%d.json", year))
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	if set, ok := Builtin(year); ok {
		return set, nil
	}
	return model.TaxTableSet{}, fmt.Errorf("no tax tables for year %d", year)
}

// WriteFile exports a table set as indented JSON.
func WriteFile(set model.TaxTableSet, path string) error {
	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding tax tables: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating export dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing tax tables: %w", err)
	}
	return nil
}

// Normalize fills per-jurisdiction year and code fields that table files
// commonly omit.
func Normalize(set *model.TaxTableSet) {
	if set.Federal.Year == 0 {
		set.Federal.Year = set.Year
	}
	if set.Federal.Jurisdiction == "" {
		set.Federal.Jurisdiction = "federal"
	}
	if set.CPPEI.Year == 0 {
		set.CPPEI.Year = set.Year
	}
	for code, data := range set.Provincial {
		if data.Year == 0 {
			data.Year = set.Year
		}
		if data.Jurisdiction == "" {
			data.Jurisdiction = code
		}
		set.Provincial[code] = data
	}
}
