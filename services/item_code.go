package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase"
)

// GetFiscalYear returns the Indian fiscal year string for a given date.
// Indian fiscal year runs April to March.
// Jan 2026 → "25-26", May 2026 → "26-27"
func GetFiscalYear(t time.Time) string {
	year := t.Year()
	month := t.Month()

	var startYear int
	if month >= time.April {
		startYear = year
	} else {
		startYear = year - 1
	}
	endYear := startYear + 1

	return fmt.Sprintf("%02d-%02d", startYear%100, endYear%100)
}

// sectionCode is the short billing code for each BOQ section, used inside
// generated item codes.
var sectionCodes = map[BOQSection]string{
	SectionCablesWiring: "CBL",
	SectionContainment:  "CNT",
	SectionTerminations: "TRM",
	SectionFixtures:     "FIX",
	SectionAccessories:  "ACC",
	SectionGeneral:      "GEN",
}

// formatItemCode constructs the billing item code string from components.
func formatItemCode(sectionCode, fiscalYear string, sequence int) string {
	return fmt.Sprintf("BT-%s-%s-%03d", sectionCode, fiscalYear, sequence)
}

// GenerateItemCode creates the next billing item code for a material in a
// circuit. Format: BT-{section_code}-{fiscal_year}-{sequence}, with the
// sequence counted per circuit, section and fiscal year.
func GenerateItemCode(app *pocketbase.PocketBase, circuitID string, section BOQSection, now time.Time) (string, error) {
	code, ok := sectionCodes[section]
	if !ok {
		code = sectionCodes[SectionGeneral]
	}

	fiscalYear := GetFiscalYear(now)
	prefix := fmt.Sprintf("BT-%s-%s-", code, fiscalYear)

	existing, err := app.FindRecordsByFilter(
		"circuit_materials",
		"circuit = {:circuitId} && item_code ~ {:prefix}",
		"",
		0,
		0,
		map[string]any{
			"circuitId": circuitID,
			"prefix":    prefix + "%",
		},
	)
	if err != nil {
		existing = nil
	}

	return formatItemCode(code, fiscalYear, len(existing)+1), nil
}
