package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"boardtracker/services"
)

// HandleMaterialList returns a handler that lists a circuit's materials,
// oldest first, derived children included.
// GET /circuits/{circuitId}/materials
func HandleMaterialList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		circuitID := e.Request.PathValue("circuitId")
		if circuitID == "" {
			return e.String(http.StatusBadRequest, "Missing circuit ID")
		}

		if _, err := app.FindRecordById("circuits", circuitID); err != nil {
			return e.String(http.StatusNotFound, "Circuit not found")
		}

		records, err := app.FindRecordsByFilter(
			"circuit_materials",
			"circuit = {:circuitId}",
			"created",
			0,
			0,
			map[string]any{"circuitId": circuitID},
		)
		if err != nil {
			log.Printf("material_list: could not query materials for %s: %v", circuitID, err)
			return e.String(http.StatusInternalServerError, "Failed to list materials")
		}

		return e.JSON(http.StatusOK, map[string]any{"materials": materialsJSON(records)})
	}
}

// HandleMaterialView returns a handler for a single material with its
// derived children.
// GET /materials/{id}
func HandleMaterialView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		materialID := e.Request.PathValue("id")
		if materialID == "" {
			return e.String(http.StatusBadRequest, "Missing material ID")
		}

		record, err := app.FindRecordById("circuit_materials", materialID)
		if err != nil {
			return e.String(http.StatusNotFound, "Material not found")
		}

		children, err := app.FindRecordsByFilter(
			"circuit_materials",
			"parent_material = {:parentId}",
			"created",
			0,
			0,
			map[string]any{"parentId": materialID},
		)
		if err != nil {
			log.Printf("material_view: could not query children of %s: %v", materialID, err)
			children = nil
		}

		return e.JSON(http.StatusOK, map[string]any{
			"material": materialJSON(record),
			"derived":  materialsJSON(children),
		})
	}
}

// HandleMaterialOptions returns a handler serving the select options the
// material editors render: categories, BOQ sections, statuses and units.
// GET /materials/options
func HandleMaterialOptions(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, map[string]any{
			"categories": services.CategoryOptions,
			"sections":   services.SectionOptions,
			"statuses":   services.StatusOptions,
			"units":      services.UnitOptions,
		})
	}
}
