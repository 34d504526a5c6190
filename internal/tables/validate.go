package tables

import (
	"errors"
	"fmt"

	"payfold/internal/model"
)

// ErrInvalidTable indicates a table set failed structural validation.
var ErrInvalidTable = errors.New("tables: invalid tax table set")

// Validate returns every structural problem found in the set: year
// mismatches, missing provinces, unordered brackets, and out-of-range rates.
// An empty slice means the set is usable.
func Validate(set model.TaxTableSet) []string {
	var problems []string

	if set.Federal.Year != set.Year {
		problems = append(problems, fmt.Sprintf("federal year %d does not match set year %d", set.Federal.Year, set.Year))
	}
	if set.CPPEI.Year != set.Year {
		problems = append(problems, fmt.Sprintf("cpp/ei year %d does not match set year %d", set.CPPEI.Year, set.Year))
	}

	for _, code := range model.Jurisdictions {
		data, ok := set.Provincial[string(code)]
		if !ok {
			problems = append(problems, fmt.Sprintf("missing tax data for province %s", code))
			continue
		}
		if data.Year != set.Year {
			problems = append(problems, fmt.Sprintf("province %s year %d does not match set year %d", code, data.Year, set.Year))
		}
	}

	problems = append(problems, checkBrackets("federal", set.Federal)...)
	for _, code := range model.Jurisdictions {
		if data, ok := set.Provincial[string(code)]; ok {
			problems = append(problems, checkBrackets(string(code), data)...)
		}
	}

	if set.CPPEI.CPPRate < 0 || set.CPPEI.CPPRate > 1 {
		problems = append(problems, fmt.Sprintf("invalid cpp rate %g", set.CPPEI.CPPRate))
	}
	if set.CPPEI.EIRate < 0 || set.CPPEI.EIRate > 1 {
		problems = append(problems, fmt.Sprintf("invalid ei rate %g", set.CPPEI.EIRate))
	}
	if set.CPPEI.QPPRate < 0 || set.CPPEI.QPPRate > 1 {
		problems = append(problems, fmt.Sprintf("invalid qpp rate %g", set.CPPEI.QPPRate))
	}
	if set.CPPEI.QPIPRate < 0 || set.CPPEI.QPIPRate > 1 {
		problems = append(problems, fmt.Sprintf("invalid qpip rate %g", set.CPPEI.QPIPRate))
	}

	return problems
}

// Check wraps Validate into a single error for callers that only need a
// pass/fail answer.
func Check(set model.TaxTableSet) error {
	problems := Validate(set)
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s (and %d more)", ErrInvalidTable, problems[0], len(problems)-1)
}

func checkBrackets(jurisdiction string, data model.JurisdictionTaxData) []string {
	var problems []string
	if len(data.Brackets) == 0 {
		problems = append(problems, fmt.Sprintf("%s: no brackets defined", jurisdiction))
		return problems
	}
	for i, b := range data.Brackets {
		if b.Threshold < 0 {
			problems = append(problems, fmt.Sprintf("%s: negative threshold %g", jurisdiction, b.Threshold))
		}
		if b.Rate < 0 || b.Rate > 1 {
			problems = append(problems, fmt.Sprintf("%s: rate %g outside [0, 1]", jurisdiction, b.Rate))
		}
		if i > 0 && b.Threshold < data.Brackets[i-1].Threshold {
			problems = append(problems, fmt.Sprintf("%s: brackets not sorted by threshold at index %d", jurisdiction, i))
		}
	}
	return problems
}
