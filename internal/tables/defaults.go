// Package tables loads, validates, and exports yearly tax table sets, and
// ships builtin defaults so the CLI works without any data files.
package tables

import "payfold/internal/model"

// builtin maps tax years to their bundled table sets.
var builtin = map[int]model.TaxTableSet{
	2024: defaults2024,
}

// Builtin returns the bundled table set for a year.
func Builtin(year int) (model.TaxTableSet, bool) {
	set, ok := builtin[year]
	return set, ok
}

// BuiltinYears lists the years with bundled tables.
func BuiltinYears() []int {
	years := make([]int, 0, len(builtin))
	for y := range builtin {
		years = append(years, y)
	}
	return years
}

// defaults2024 holds the published 2024 federal and provincial brackets and
// statutory contribution parameters.
var defaults2024 = model.TaxTableSet{
	Year: 2024,
	Federal: model.JurisdictionTaxData{
		Year:         2024,
		Jurisdiction: "federal",
		Brackets: []model.TaxBracket{
			{Threshold: 0, Rate: 0.15},
			{Threshold: 55867, Rate: 0.205},
			{Threshold: 111733, Rate: 0.26},
			{Threshold: 173205, Rate: 0.29},
			{Threshold: 246752, Rate: 0.33},
		},
		BasicPersonalAmount: 15705,
	},
	Provincial: map[string]model.JurisdictionTaxData{
		"AB": {
			Year: 2024, Jurisdiction: "AB",
			Brackets: []model.TaxBracket{
				{Threshold: 0, Rate: 0.10},
				{Threshold: 148269, Rate: 0.12},
				{Threshold: 177922, Rate: 0.13},
				{Threshold: 237230, Rate: 0.14},
				{Threshold: 355845, Rate: 0.15},
			},
			BasicPersonalAmount: 21885,
		},
		"BC": {
			Year: 2024, Jurisdiction: "BC",
			Brackets: []model.TaxBracket{
				{Threshold: 0, Rate: 0.0506},
				{Threshold: 47937, Rate: 0.077},
				{Threshold: 95875, Rate: 0.105},
				{Threshold: 110076, Rate: 0.1229},
				{Threshold: 133664, Rate: 0.147},
				{Threshold: 181232, Rate: 0.168},
				{Threshold: 252752, Rate: 0.205},
			},
			BasicPersonalAmount: 12580,
		},
		"MB": {
			Year: 2024, Jurisdiction: "MB",
			Brackets: []model.TaxBracket{
				{Threshold: 0, Rate: 0.108},
				{Threshold: 47000, Rate: 0.1275},
				{Threshold: 100000, Rate: 0.174},
			},
			BasicPersonalAmount: 15780,
		},
		"NB": {
			Year: 2024, Jurisdiction: "NB",
			Brackets: []model.TaxBracket{
				{Threshold: 0, Rate: 0.094},
				{Threshold: 49958, Rate: 0.14},
				{Threshold: 99916, Rate: 0.16},
				{Threshold: 185064, Rate: 0.195},
			},
			BasicPersonalAmount: 13044,
		},
		"NL": {
			Year: 2024, Jurisdiction: "NL",
			Brackets: []model.TaxBracket{
				{Threshold: 0, Rate: 0.087},
				{Threshold: 43198, Rate: 0.145},
				{Threshold: 86395, Rate: 0.158},
				{Threshold: 154244, Rate: 0.178},
				{Threshold: 215943, Rate: 0.198},
				{Threshold: 275870, Rate: 0.208},
				{Threshold: 551739, Rate: 0.213},
				{Threshold: 1103478, Rate: 0.218},
			},
			BasicPersonalAmount: 10818,
		},
		"NS": {
			Year: 2024, Jurisdiction: "NS",
			Brackets: []model.TaxBracket{
				{Threshold: 0, Rate: 0.0879},
				{Threshold: 29590, Rate: 0.1495},
				{Threshold: 59180, Rate: 0.1667},
				{Threshold: 93000, Rate: 0.175},
				{Threshold: 150000, Rate: 0.21},
			},
			BasicPersonalAmount: 8481,
		},
		"NT": {
			Year: 2024, Jurisdiction: "NT",
			Brackets: []model.TaxBracket{
				{Threshold: 0, Rate: 0.059},
				{Threshold: 50597, Rate: 0.086},
				{Threshold: 101198, Rate: 0.122},
				{Threshold: 164525, Rate: 0.1405},
			},
			BasicPersonalAmount: 17373,
		},
		"NU": {
			Year: 2024, Jurisdiction: "NU",
			Brackets: []model.TaxBracket{
				{Threshold: 0, Rate: 0.04},
				{Threshold: 53268, Rate: 0.07},
				{Threshold: 106537, Rate: 0.09},
				{Threshold: 173205, Rate: 0.115},
			},
			BasicPersonalAmount: 18767,
		},
		"ON": {
			Year: 2024, Jurisdiction: "ON",
			Brackets: []model.TaxBracket{
				{Threshold: 0, Rate: 0.0505},
				{Threshold: 51446, Rate: 0.0915},
				{Threshold: 102894, Rate: 0.1116},
				{Threshold: 150000, Rate: 0.1216},
				{Threshold: 220000, Rate: 0.1316},
			},
			BasicPersonalAmount: 12399,
		},
		"PE": {
			Year: 2024, Jurisdiction: "PE",
			Brackets: []model.TaxBracket{
				{Threshold: 0, Rate: 0.0965},
				{Threshold: 32656, Rate: 0.1363},
				{Threshold: 64313, Rate: 0.1665},
				{Threshold: 105000, Rate: 0.18},
				{Threshold: 140000, Rate: 0.1875},
			},
			BasicPersonalAmount: 13500,
		},
		"QC": {
			Year: 2024, Jurisdiction: "QC",
			Brackets: []model.TaxBracket{
				{Threshold: 0, Rate: 0.14},
				{Threshold: 51780, Rate: 0.19},
				{Threshold: 103545, Rate: 0.24},
				{Threshold: 126000, Rate: 0.2575},
			},
			BasicPersonalAmount: 18056,
		},
		"SK": {
			Year: 2024, Jurisdiction: "SK",
			Brackets: []model.TaxBracket{
				{Threshold: 0, Rate: 0.105},
				{Threshold: 52057, Rate: 0.125},
				{Threshold: 148734, Rate: 0.145},
			},
			BasicPersonalAmount: 18491,
		},
		"YT": {
			Year: 2024, Jurisdiction: "YT",
			Brackets: []model.TaxBracket{
				{Threshold: 0, Rate: 0.064},
				{Threshold: 55867, Rate: 0.09},
				{Threshold: 111733, Rate: 0.109},
				{Threshold: 173205, Rate: 0.128},
				{Threshold: 500000, Rate: 0.15},
			},
			BasicPersonalAmount: 15705,
		},
	},
	CPPEI: model.CPPEIData{
		Year:              2024,
		CPPRate:           0.0595,
		CPPYMPE:           68500,
		CPPBasicExemption: 3500,
		CPPMaxContrib:     3867.50,

		EIRate:       0.0166,
		EIMIE:        63200,
		EIMaxContrib: 1049.12,

		QPPRate:       0.0640,
		QPPYMPE:       68500,
		QPPMaxContrib: 4160.00,

		QPIPRate:       0.00494,
		QPIPMaxContrib: 464.36,
	},
}
