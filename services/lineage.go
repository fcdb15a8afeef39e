package services

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// MaterialInput is the raw creation payload for a circuit material, as
// submitted by the editor UI.
type MaterialInput struct {
	CircuitID   string
	Description string
	Unit        string
	ItemCode    string
	Quantity    float64
	SupplyRate  float64
	InstallRate float64

	// Category, when set, bypasses classification entirely. Section and
	// WastagePercent are then taken as given (Section falls back to the
	// category's default section when empty).
	Category       MaterialCategory
	Section        BOQSection
	WastagePercent float64

	SkipDerivation bool
	DrawingRef     string
}

// FailedDerivation records a supporting material whose persistence failed
// during a create, so partial derivation is visible to the caller instead
// of silently swallowed.
type FailedDerivation struct {
	Description string
	Err         error
}

// CreateResult is what CreateMaterial hands back: the primary record, the
// derived children that were persisted, and any derivations that failed.
type CreateResult struct {
	Material      *core.Record
	Derived       []*core.Record
	FailedDerived []FailedDerivation
}

// resolveClassification applies the caller's overrides when present,
// otherwise classifies the description. A section override without a
// category keeps the classified category and wastage but re-bills the
// material under the given section.
func resolveClassification(input MaterialInput) Classification {
	if input.Category != "" {
		section := input.Section
		if section == "" {
			section = SectionForCategory(input.Category)
		}
		return Classification{
			Category:       input.Category,
			Section:        section,
			WastagePercent: input.WastagePercent,
		}
	}

	cls := Classify(input.Description)
	if input.Section != "" {
		cls.Section = input.Section
	}
	return cls
}

// CreateMaterial classifies, prices out and persists a circuit material.
// For cable-category materials it additionally derives and persists the
// supporting materials (containment, fixings, terminations) as children of
// the primary record, unless derivation is skipped or the net quantity is
// zero.
//
// A primary persistence failure aborts the whole operation. A child
// persistence failure does not: remaining children are still attempted and
// every failure is reported in CreateResult.FailedDerived, leaving the
// already-written records in place.
func CreateMaterial(app *pocketbase.PocketBase, input MaterialInput) (*CreateResult, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, fmt.Errorf("description is required")
	}
	if input.CircuitID == "" {
		return nil, fmt.Errorf("circuit is required")
	}

	qty := input.Quantity
	if qty < 0 || math.IsNaN(qty) {
		qty = 0
	}

	cls := resolveClassification(input)
	wastageQty, grossQty := ComputeGross(qty, cls.WastagePercent)

	col, err := app.FindCollectionByNameOrId("circuit_materials")
	if err != nil {
		return nil, fmt.Errorf("circuit_materials collection not found: %w", err)
	}

	itemCode := strings.TrimSpace(input.ItemCode)
	if itemCode == "" {
		itemCode, err = GenerateItemCode(app, input.CircuitID, cls.Section, time.Now())
		if err != nil {
			log.Printf("lineage: could not generate item code: %v", err)
			itemCode = ""
		}
	}

	record := core.NewRecord(col)
	record.Set("circuit", input.CircuitID)
	record.Set("description", description)
	record.Set("unit", input.Unit)
	record.Set("item_code", itemCode)
	record.Set("supply_rate", input.SupplyRate)
	record.Set("install_rate", input.InstallRate)
	record.Set("qty", qty)
	record.Set("category", string(cls.Category))
	record.Set("boq_section", string(cls.Section))
	record.Set("status", StatusPlanned)
	record.Set("wastage_percent", cls.WastagePercent)
	record.Set("wastage_qty", wastageQty)
	record.Set("gross_qty", grossQty)
	record.Set("is_auto_generated", false)
	record.Set("drawing_ref", input.DrawingRef)

	if err := app.Save(record); err != nil {
		return nil, fmt.Errorf("save material: %w", err)
	}

	result := &CreateResult{Material: record}

	if cls.Category != CategoryCable || input.SkipDerivation || qty <= 0 {
		return result, nil
	}

	sizeMM, ok := ExtractCableSize(description)
	if !ok {
		sizeMM = DefaultCableSizeMM
	}

	for _, sm := range DeriveSupportingMaterials(description, sizeMM, qty) {
		child := core.NewRecord(col)
		child.Set("circuit", input.CircuitID)
		child.Set("description", sm.Description)
		child.Set("unit", sm.Unit)
		child.Set("qty", sm.Quantity)
		child.Set("category", string(sm.Category))
		child.Set("boq_section", string(sm.Section))
		child.Set("status", StatusPlanned)
		// Derived materials carry no additional wastage margin.
		child.Set("wastage_percent", 0)
		child.Set("wastage_qty", 0)
		child.Set("gross_qty", sm.Quantity)
		child.Set("is_auto_generated", true)
		child.Set("parent_material", record.Id)

		if err := app.Save(child); err != nil {
			log.Printf("lineage: could not save derived material %q for %s: %v", sm.Description, record.Id, err)
			result.FailedDerived = append(result.FailedDerived, FailedDerivation{
				Description: sm.Description,
				Err:         err,
			})
			continue
		}
		result.Derived = append(result.Derived, child)
	}

	log.Printf("lineage: derived %d supporting materials for %s cable %s",
		len(result.Derived), FormatCableSize(sizeMM), record.Id)

	return result, nil
}

// FindDerivedMaterials returns the auto-generated children of a material,
// oldest first.
func FindDerivedMaterials(app *pocketbase.PocketBase, materialID string) ([]*core.Record, error) {
	return app.FindRecordsByFilter(
		"circuit_materials",
		"parent_material = {:parentId}",
		"created",
		0,
		0,
		map[string]any{"parentId": materialID},
	)
}

// DeleteMaterial removes a material and every child derived from it. The
// cascade is application-level and deletes children strictly before the
// parent: a failure deleting a child aborts the cascade so a parent is
// never removed while records still reference it.
func DeleteMaterial(app *pocketbase.PocketBase, materialID string) error {
	record, err := app.FindRecordById("circuit_materials", materialID)
	if err != nil {
		return fmt.Errorf("material %s not found: %w", materialID, err)
	}

	children, err := FindDerivedMaterials(app, materialID)
	if err != nil {
		return fmt.Errorf("query derived materials of %s: %w", materialID, err)
	}

	for _, child := range children {
		if err := app.Delete(child); err != nil {
			return fmt.Errorf("delete derived material %s: %w", child.Id, err)
		}
	}

	if err := app.Delete(record); err != nil {
		return fmt.Errorf("delete material %s: %w", materialID, err)
	}

	return nil
}

// UnlinkDrawingRef clears only the external drawing reference on a material.
// The record and its derived children are left untouched.
func UnlinkDrawingRef(app *pocketbase.PocketBase, materialID string) (*core.Record, error) {
	record, err := app.FindRecordById("circuit_materials", materialID)
	if err != nil {
		return nil, fmt.Errorf("material %s not found: %w", materialID, err)
	}

	record.Set("drawing_ref", "")
	if err := app.Save(record); err != nil {
		return nil, fmt.Errorf("unlink material %s: %w", materialID, err)
	}

	return record, nil
}
