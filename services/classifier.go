// Package services provides the material classification, quantity and
// derivation engine behind the circuit material editors, plus report
// generation helpers.
package services

import "strings"

// MaterialCategory is the closed set of material classification tags.
type MaterialCategory string

const (
	CategoryCable       MaterialCategory = "cable"
	CategoryContainment MaterialCategory = "containment"
	CategoryTermination MaterialCategory = "termination"
	CategoryFixture     MaterialCategory = "fixture"
	CategoryAccessory   MaterialCategory = "accessory"
	CategoryOther       MaterialCategory = "other"
)

// BOQSection is the bill-of-quantities grouping a material is billed under.
type BOQSection string

const (
	SectionCablesWiring BOQSection = "cables_wiring"
	SectionContainment  BOQSection = "containment"
	SectionTerminations BOQSection = "terminations"
	SectionFixtures     BOQSection = "fixtures"
	SectionAccessories  BOQSection = "accessories"
	SectionGeneral      BOQSection = "general"
)

// InstallationStatus values for circuit materials.
const (
	StatusPlanned   = "planned"
	StatusInstalled = "installed"
	StatusVerified  = "verified"
	StatusRemoved   = "removed"
)

// Classification is the result of classifying a material description.
type Classification struct {
	Category       MaterialCategory
	Section        BOQSection
	WastagePercent float64
}

// classificationRule maps description keywords to a classification.
// Any keyword hit classifies the material. Keywords match whole words
// only, so "lug" never fires inside "plug".
type classificationRule struct {
	keywords       []string
	category       MaterialCategory
	section        BOQSection
	wastagePercent float64
}

// classificationRules is scanned in order and the first matching rule wins,
// so specific patterns must come before the general ones they overlap with:
// "cable tray" is containment and has to be checked before "cable", and
// "cable gland" is a termination for the same reason.
var classificationRules = []classificationRule{
	{[]string{"cable tray", "cable basket", "cable ladder"}, CategoryContainment, SectionContainment, 10},
	{[]string{"gland", "lug", "crimp", "ferrule", "termination", "bootlace"}, CategoryTermination, SectionTerminations, 5},
	{[]string{"trunking", "conduit", "ducting", "catenary"}, CategoryContainment, SectionContainment, 10},
	{[]string{"swa", "armoured", "armored"}, CategoryCable, SectionCablesWiring, 5},
	{[]string{"cable", "wire", "flex", "cord", "singles"}, CategoryCable, SectionCablesWiring, 5},
	{[]string{"luminaire", "downlight", "floodlight", "light fitting", "batten", "emergency light"}, CategoryFixture, SectionFixtures, 0},
	{[]string{"socket", "switch", "isolator", "spur", "outlet"}, CategoryFixture, SectionFixtures, 0},
	{[]string{"clip", "cleat", "saddle", "fixing", "bracket", "tie", "grommet"}, CategoryAccessory, SectionAccessories, 5},
}

// defaultClassification is applied when no rule matches.
var defaultClassification = Classification{
	Category:       CategoryOther,
	Section:        SectionGeneral,
	WastagePercent: 0,
}

// Classify maps a free-text material description to a category, BOQ section
// and wastage percentage. It is total: any string, including empty or
// unmatched text, yields the default classification rather than an error.
func Classify(description string) Classification {
	normalized := strings.ToLower(strings.TrimSpace(description))
	if normalized == "" {
		return defaultClassification
	}

	for _, rule := range classificationRules {
		for _, kw := range rule.keywords {
			if containsKeyword(normalized, kw) {
				return Classification{
					Category:       rule.category,
					Section:        rule.section,
					WastagePercent: rule.wastagePercent,
				}
			}
		}
	}

	return defaultClassification
}

// containsKeyword reports whether kw occurs in s bounded by non-word
// characters on both sides. Plain substring search would let short
// keywords fire inside longer words ("lug" in "plug", "cord" in
// "cordless") and misclassify.
func containsKeyword(s, kw string) bool {
	for from := 0; ; {
		i := strings.Index(s[from:], kw)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(kw)
		if (start == 0 || !isWordByte(s[start-1])) && (end == len(s) || !isWordByte(s[end])) {
			return true
		}
		from = start + 1
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// SectionForCategory returns the BOQ section a category is billed under by
// default. Used when a caller overrides the category without naming a section.
func SectionForCategory(category MaterialCategory) BOQSection {
	switch category {
	case CategoryCable:
		return SectionCablesWiring
	case CategoryContainment:
		return SectionContainment
	case CategoryTermination:
		return SectionTerminations
	case CategoryFixture:
		return SectionFixtures
	case CategoryAccessory:
		return SectionAccessories
	default:
		return SectionGeneral
	}
}

// CategoryOptions lists the selectable material categories.
var CategoryOptions = []string{
	string(CategoryCable),
	string(CategoryContainment),
	string(CategoryTermination),
	string(CategoryFixture),
	string(CategoryAccessory),
	string(CategoryOther),
}

// SectionOptions lists the selectable BOQ sections.
var SectionOptions = []string{
	string(SectionCablesWiring),
	string(SectionContainment),
	string(SectionTerminations),
	string(SectionFixtures),
	string(SectionAccessories),
	string(SectionGeneral),
}

// StatusOptions lists the selectable installation statuses.
var StatusOptions = []string{
	StatusPlanned,
	StatusInstalled,
	StatusVerified,
	StatusRemoved,
}

// UnitOptions lists the Unit of Measurement options offered by the editors.
var UnitOptions = []string{
	"m",
	"Nos",
	"Set",
	"Roll",
	"Box",
	"Pack",
	"Kg",
	"Lot",
	"Lumpsum",
	"Pair",
	"Length",
}
