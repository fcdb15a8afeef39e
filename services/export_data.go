package services

// ScheduleRow is a single material line in a circuit schedule export.
type ScheduleRow struct {
	Index       string // "1", "2", ... within the section
	ItemCode    string
	Description string
	Unit        string
	Qty         float64
	GrossQty    float64
	SupplyRate  float64
	InstallRate float64
	Amount      float64
	Derived     bool // auto-generated supporting material
}

// ScheduleSection groups a schedule's rows under one BOQ section.
type ScheduleSection struct {
	Section  BOQSection
	Title    string
	Rows     []ScheduleRow
	Subtotal float64
}

// ScheduleData holds everything the Excel and PDF schedule exports render.
type ScheduleData struct {
	BoardName   string
	CircuitName string
	CreatedDate string
	Sections    []ScheduleSection
	Totals      ScheduleTotals
}

// SectionTitles maps BOQ sections to their report headings.
var SectionTitles = map[BOQSection]string{
	SectionCablesWiring: "Cables & Wiring",
	SectionContainment:  "Containment",
	SectionTerminations: "Terminations",
	SectionFixtures:     "Fixtures & Accessories Points",
	SectionAccessories:  "Fixings & Sundries",
	SectionGeneral:      "General",
}

// SectionOrder is the fixed order sections appear in exports.
var SectionOrder = []BOQSection{
	SectionCablesWiring,
	SectionContainment,
	SectionTerminations,
	SectionFixtures,
	SectionAccessories,
	SectionGeneral,
}
