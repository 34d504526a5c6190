package tables

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"

	"payfold/internal/model"
)

// ImportCSV reads one jurisdiction's brackets from a CSV file with columns
// threshold,rate and an optional basic_personal_amount column (its value is
// taken from whichever row carries it).
func ImportCSV(path string, year int, jurisdiction string) (model.JurisdictionTaxData, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.JurisdictionTaxData{}, fmt.Errorf("opening bracket csv: %w", err)
	}
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return model.JurisdictionTaxData{}, fmt.Errorf("reading bracket csv: %w", err)
	}
	if len(records) < 2 {
		return model.JurisdictionTaxData{}, fmt.Errorf("bracket csv %s: no data rows", path)
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[name] = i
	}
	thresholdCol, hasThreshold := col["threshold"]
	rateCol, hasRate := col["rate"]
	if !hasThreshold || !hasRate {
		return model.JurisdictionTaxData{}, fmt.Errorf("bracket csv %s: missing threshold/rate columns", path)
	}
	bpaCol, hasBPA := col["basic_personal_amount"]

	data := model.JurisdictionTaxData{
		Year:         year,
		Jurisdiction: jurisdiction,
	}

	for line, row := range records[1:] {
		threshold, err := strconv.ParseFloat(row[thresholdCol], 64)
		if err != nil {
			return model.JurisdictionTaxData{}, fmt.Errorf("bracket csv %s line %d: bad threshold: %w", path, line+2, err)
		}
		rate, err := strconv.ParseFloat(row[rateCol], 64)
		if err != nil {
			return model.JurisdictionTaxData{}, fmt.Errorf("bracket csv %s line %d: bad rate: %w", path, line+2, err)
		}
		data.Brackets = append(data.Brackets, model.TaxBracket{Threshold: threshold, Rate: rate})

		if hasBPA && bpaCol < len(row) && row[bpaCol] != "" {
			if bpa, err := strconv.ParseFloat(row[bpaCol], 64); err == nil {
				data.BasicPersonalAmount = bpa
			}
		}
	}

	sort.SliceStable(data.Brackets, func(i, j int) bool {
		return data.Brackets[i].Threshold < data.Brackets[j].Threshold
	})

	return data, nil
}
