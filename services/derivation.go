package services

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DefaultCableSizeMM is the conductor size assumed when a cable description
// carries no recognisable size token. Kept as a named constant so derivation
// behaviour for malformed descriptions stays auditable.
const DefaultCableSizeMM = 2.5

// CableEndsPerRun is the number of terminated ends a single cable run has.
// Glands and lugs are counted per end, independent of run length.
const CableEndsPerRun = 2

// SupportingMaterial describes one auto-generated dependent material for a
// cable run: containment, fixings or terminations sized to the cable.
type SupportingMaterial struct {
	Description string
	Unit        string
	Quantity    float64
	Category    MaterialCategory
	Section     BOQSection
}

// cableSizePattern matches a conductor size in a description: a number
// followed by a size token, e.g. "4mm", "2.5 mm2", "25 sq.mm", "16mm²".
var cableSizePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:sq\.?\s*mm|mm2|mm²|mm)`)

// ExtractCableSize pulls the conductor size in mm² out of a free-text cable
// description. The second return value reports whether a size was found;
// callers fall back to DefaultCableSizeMM when it is false.
func ExtractCableSize(description string) (float64, bool) {
	match := cableSizePattern.FindStringSubmatch(strings.ToLower(description))
	if match == nil {
		return 0, false
	}
	size, err := strconv.ParseFloat(match[1], 64)
	if err != nil || size <= 0 {
		return 0, false
	}
	return size, true
}

// cableBracket holds the supporting-material rules for a band of conductor
// sizes. Brackets are ordered by ascending maxSizeMM and selected by the
// first bracket whose ceiling covers the size; oversized cables use the
// last bracket rather than losing their supporting materials.
type cableBracket struct {
	maxSizeMM       float64
	containmentDesc string
	clipDesc        string
	clipSpacingM    float64
	glandDesc       string
	lugDesc         string
}

var cableBrackets = []cableBracket{
	{
		maxSizeMM:       2.5,
		containmentDesc: "20mm galvanised steel conduit",
		clipDesc:        "Cable clip with masonry plug, 8mm",
		clipSpacingM:    0.3,
		glandDesc:       "20mm brass cable gland with shroud",
		lugDesc:         "2.5mm crimp lug",
	},
	{
		maxSizeMM:       6,
		containmentDesc: "25mm galvanised steel conduit",
		clipDesc:        "Cable clip with masonry plug, 10mm",
		clipSpacingM:    0.3,
		glandDesc:       "20mm brass cable gland with shroud",
		lugDesc:         "6mm crimp lug",
	},
	{
		maxSizeMM:       16,
		containmentDesc: "100mm galvanised cable tray",
		clipDesc:        "Single cleat, 14-17mm",
		clipSpacingM:    0.4,
		glandDesc:       "25mm brass cable gland with shroud",
		lugDesc:         "16mm crimp lug",
	},
	{
		maxSizeMM:       35,
		containmentDesc: "150mm galvanised cable tray",
		clipDesc:        "Single cleat, 20-24mm",
		clipSpacingM:    0.45,
		glandDesc:       "32mm brass cable gland with shroud",
		lugDesc:         "35mm crimp lug",
	},
	{
		maxSizeMM:       math.Inf(1),
		containmentDesc: "300mm cable ladder",
		clipDesc:        "Trefoil cleat, 25-32mm",
		clipSpacingM:    0.5,
		glandDesc:       "40mm brass cable gland with shroud",
		lugDesc:         "70mm crimp lug",
	},
}

// bracketFor returns the rules bracket covering a conductor size.
func bracketFor(sizeMM float64) cableBracket {
	for _, b := range cableBrackets {
		if sizeMM <= b.maxSizeMM {
			return b
		}
	}
	return cableBrackets[len(cableBrackets)-1]
}

// DeriveSupportingMaterials synthesises the dependent materials for a cable
// run of the given conductor size and net run length in metres. The output
// order is fixed (containment, fixings, glands, lugs) so generated children
// list predictably. Every quantity is non-decreasing in runLength and zero
// only when runLength is zero: containment scales 1:1 with the run, clips
// are spaced per bracket, glands and lugs count the cable ends.
func DeriveSupportingMaterials(description string, sizeMM, runLength float64) []SupportingMaterial {
	if runLength < 0 {
		runLength = 0
	}
	b := bracketFor(sizeMM)

	var endCount float64
	if runLength > 0 {
		endCount = CableEndsPerRun
	}

	return []SupportingMaterial{
		{
			Description: b.containmentDesc,
			Unit:        "m",
			Quantity:    round2(runLength),
			Category:    CategoryContainment,
			Section:     SectionContainment,
		},
		{
			Description: b.clipDesc,
			Unit:        "Nos",
			Quantity:    math.Ceil(runLength / b.clipSpacingM),
			Category:    CategoryAccessory,
			Section:     SectionAccessories,
		},
		{
			Description: b.glandDesc,
			Unit:        "Nos",
			Quantity:    endCount,
			Category:    CategoryTermination,
			Section:     SectionTerminations,
		},
		{
			Description: b.lugDesc,
			Unit:        "Nos",
			Quantity:    endCount,
			Category:    CategoryTermination,
			Section:     SectionTerminations,
		},
	}
}

// FormatCableSize renders a conductor size the way descriptions carry it,
// trimming a trailing ".0" from whole sizes.
func FormatCableSize(sizeMM float64) string {
	if sizeMM == math.Trunc(sizeMM) {
		return fmt.Sprintf("%.0fmm", sizeMM)
	}
	return fmt.Sprintf("%gmm", sizeMM)
}
