package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"boardtracker/services"
)

// HandleMaterialUpdate returns a handler that patches individual material
// fields: quantity, rates, status, unit, item code, and manual category
// override. Quantity or wastage changes recompute the wastage and gross
// quantities so the gross = net + wastage invariant holds after every edit.
// Lineage fields (circuit, parent_material, is_auto_generated) are not
// editable.
// PATCH /materials/{id}
func HandleMaterialUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		materialID := e.Request.PathValue("id")
		if materialID == "" {
			return e.String(http.StatusBadRequest, "Missing material ID")
		}

		record, err := app.FindRecordById("circuit_materials", materialID)
		if err != nil {
			log.Printf("material_update: not found %s: %v", materialID, err)
			return e.String(http.StatusNotFound, "Material not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			log.Printf("material_update: could not parse form: %v", err)
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		errors := make(map[string]string)
		recompute := false

		if e.Request.Form.Has("description") {
			description := strings.TrimSpace(e.Request.FormValue("description"))
			if description == "" {
				errors["description"] = "Description is required"
			} else {
				record.Set("description", description)
			}
		}

		if e.Request.Form.Has("qty") {
			qty, err := strconv.ParseFloat(e.Request.FormValue("qty"), 64)
			if err != nil {
				errors["qty"] = "Quantity must be a number"
			} else if qty < 0 {
				errors["qty"] = "Quantity cannot be negative"
			} else {
				record.Set("qty", qty)
				recompute = true
			}
		}

		if e.Request.Form.Has("supply_rate") {
			rate, err := strconv.ParseFloat(e.Request.FormValue("supply_rate"), 64)
			if err != nil {
				errors["supply_rate"] = "Supply rate must be a number"
			} else {
				record.Set("supply_rate", rate)
			}
		}

		if e.Request.Form.Has("install_rate") {
			rate, err := strconv.ParseFloat(e.Request.FormValue("install_rate"), 64)
			if err != nil {
				errors["install_rate"] = "Install rate must be a number"
			} else {
				record.Set("install_rate", rate)
			}
		}

		if e.Request.Form.Has("status") {
			status := e.Request.FormValue("status")
			if !validOption(status, services.StatusOptions) {
				errors["status"] = "Unknown status"
			} else {
				record.Set("status", status)
			}
		}

		if e.Request.Form.Has("unit") {
			record.Set("unit", strings.TrimSpace(e.Request.FormValue("unit")))
		}

		if e.Request.Form.Has("item_code") {
			record.Set("item_code", strings.TrimSpace(e.Request.FormValue("item_code")))
		}

		// Manual category override: the section follows the category unless
		// supplied alongside it.
		if e.Request.Form.Has("category") {
			category := e.Request.FormValue("category")
			if !validOption(category, services.CategoryOptions) {
				errors["category"] = "Unknown category"
			} else {
				record.Set("category", category)
				section := e.Request.FormValue("boq_section")
				if section == "" {
					section = string(services.SectionForCategory(services.MaterialCategory(category)))
				} else if !validOption(section, services.SectionOptions) {
					errors["boq_section"] = "Unknown BOQ section"
					section = record.GetString("boq_section")
				}
				record.Set("boq_section", section)
			}
		}

		if e.Request.Form.Has("wastage_percent") {
			// Derived materials carry no wastage margin; their percentage is
			// pinned to zero.
			if record.GetBool("is_auto_generated") {
				errors["wastage_percent"] = "Auto-generated materials have no wastage"
			} else {
				wastage, err := strconv.ParseFloat(e.Request.FormValue("wastage_percent"), 64)
				if err != nil || wastage < 0 {
					errors["wastage_percent"] = "Wastage must be a non-negative number"
				} else {
					record.Set("wastage_percent", wastage)
					recompute = true
				}
			}
		}

		if len(errors) > 0 {
			return e.JSON(http.StatusBadRequest, map[string]any{"errors": errors})
		}

		if recompute {
			wastageQty, grossQty := services.ComputeGross(
				record.GetFloat("qty"),
				record.GetFloat("wastage_percent"),
			)
			record.Set("wastage_qty", wastageQty)
			record.Set("gross_qty", grossQty)
		}

		if err := app.Save(record); err != nil {
			log.Printf("material_update: could not save %s: %v", materialID, err)
			return e.String(http.StatusInternalServerError, "Failed to update material")
		}

		return e.JSON(http.StatusOK, map[string]any{"material": materialJSON(record)})
	}
}

// HandleMaterialUnlink returns a handler that clears a material's external
// drawing reference without touching the record or its derived children.
// POST /materials/{id}/unlink
func HandleMaterialUnlink(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		materialID := e.Request.PathValue("id")
		if materialID == "" {
			return e.String(http.StatusBadRequest, "Missing material ID")
		}

		record, err := services.UnlinkDrawingRef(app, materialID)
		if err != nil {
			log.Printf("material_unlink: %v", err)
			return e.String(http.StatusNotFound, "Material not found")
		}

		return e.JSON(http.StatusOK, map[string]any{"material": materialJSON(record)})
	}
}
