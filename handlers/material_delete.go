package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"boardtracker/services"
)

// HandleMaterialDeleteInfo returns metadata needed for delete confirmation.
// GET /materials/{id}/delete-info
// Returns JSON: {"derived_count": N, "description": "..."}
func HandleMaterialDeleteInfo(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		materialID := e.Request.PathValue("id")
		if materialID == "" {
			return e.String(http.StatusBadRequest, "Missing material ID")
		}

		record, err := app.FindRecordById("circuit_materials", materialID)
		if err != nil {
			return e.String(http.StatusNotFound, "Material not found")
		}

		children, err := services.FindDerivedMaterials(app, materialID)
		if err != nil {
			log.Printf("material_delete_info: %v", err)
			children = nil
		}

		return e.JSON(http.StatusOK, map[string]any{
			"derived_count": len(children),
			"description":   record.GetString("description"),
		})
	}
}

// HandleMaterialDelete returns a handler that deletes a material and every
// supporting material derived from it.
// DELETE /materials/{id}
func HandleMaterialDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		materialID := e.Request.PathValue("id")
		if materialID == "" {
			return e.String(http.StatusBadRequest, "Missing material ID")
		}

		if _, err := app.FindRecordById("circuit_materials", materialID); err != nil {
			log.Printf("material_delete: not found %s: %v", materialID, err)
			return e.String(http.StatusNotFound, "Material not found")
		}

		if err := services.DeleteMaterial(app, materialID); err != nil {
			log.Printf("material_delete: failed to delete %s: %v", materialID, err)
			return e.String(http.StatusInternalServerError, "Failed to delete material")
		}

		return e.JSON(http.StatusOK, map[string]any{"deleted": materialID})
	}
}
