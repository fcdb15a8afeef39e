package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"boardtracker/services"
)

// HandleDrawingElementRemoved returns the webhook handler the drawing tool
// calls when a drawn element is removed. If the element's reference is
// linked to a material, the material and its derived children are deleted;
// unknown references are a normal no-op, since the tool fires this for
// every removed element whether or not it was ever linked.
// DELETE /sync/drawing-elements/{ref}
func HandleDrawingElementRemoved(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ref := e.Request.PathValue("ref")
		if ref == "" {
			return e.String(http.StatusBadRequest, "Missing drawing reference")
		}

		deletedID, err := services.DeleteByDrawingRef(app, ref)
		if err != nil {
			log.Printf("sync: failed to delete material for drawing ref %q: %v", ref, err)
			return e.String(http.StatusInternalServerError, "Failed to delete linked material")
		}

		if deletedID == "" {
			return e.JSON(http.StatusOK, map[string]any{"deleted": nil})
		}
		return e.JSON(http.StatusOK, map[string]any{"deleted": deletedID})
	}
}
