package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleCircuitList returns a handler that lists a board's circuits by way
// number.
// GET /boards/{boardId}/circuits
func HandleCircuitList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		boardID := e.Request.PathValue("boardId")
		if _, err := app.FindRecordById("boards", boardID); err != nil {
			return e.String(http.StatusNotFound, "Board not found")
		}

		records, err := app.FindRecordsByFilter(
			"circuits",
			"board = {:boardId}",
			"way_number",
			0,
			0,
			map[string]any{"boardId": boardID},
		)
		if err != nil {
			log.Printf("circuit_list: could not query circuits for %s: %v", boardID, err)
			return e.String(http.StatusInternalServerError, "Failed to list circuits")
		}

		circuits := make([]map[string]any, 0, len(records))
		for _, r := range records {
			circuits = append(circuits, circuitJSON(r))
		}
		return e.JSON(http.StatusOK, map[string]any{"circuits": circuits})
	}
}

// HandleCircuitCreate returns a handler that adds a circuit to a board.
// POST /boards/{boardId}/circuits
func HandleCircuitCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		boardID := e.Request.PathValue("boardId")
		if _, err := app.FindRecordById("boards", boardID); err != nil {
			return e.String(http.StatusNotFound, "Board not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		errors := make(map[string]string)
		description := strings.TrimSpace(e.Request.FormValue("description"))
		if description == "" {
			errors["description"] = "Circuit description is required"
		}
		wayNumber, err := strconv.Atoi(e.Request.FormValue("way_number"))
		if err != nil || wayNumber < 1 {
			errors["way_number"] = "Way number must be a positive integer"
		}
		if len(errors) > 0 {
			return e.JSON(http.StatusBadRequest, map[string]any{"errors": errors})
		}

		col, err := app.FindCollectionByNameOrId("circuits")
		if err != nil {
			log.Printf("circuit_create: could not find circuits collection: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		breakerRating, _ := strconv.ParseFloat(e.Request.FormValue("breaker_rating"), 64)

		record := core.NewRecord(col)
		record.Set("board", boardID)
		record.Set("way_number", wayNumber)
		record.Set("description", description)
		record.Set("phase", strings.TrimSpace(e.Request.FormValue("phase")))
		record.Set("breaker_rating", breakerRating)
		record.Set("cable_ref", strings.TrimSpace(e.Request.FormValue("cable_ref")))

		if err := app.Save(record); err != nil {
			log.Printf("circuit_create: could not save circuit: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to create circuit")
		}

		return e.JSON(http.StatusCreated, map[string]any{"circuit": circuitJSON(record)})
	}
}

// HandleCircuitUpdate returns a handler that patches circuit fields.
// PATCH /circuits/{id}
func HandleCircuitUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		circuitID := e.Request.PathValue("id")
		record, err := app.FindRecordById("circuits", circuitID)
		if err != nil {
			return e.String(http.StatusNotFound, "Circuit not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		if e.Request.Form.Has("description") {
			description := strings.TrimSpace(e.Request.FormValue("description"))
			if description == "" {
				return e.JSON(http.StatusBadRequest, map[string]any{
					"errors": map[string]string{"description": "Circuit description is required"},
				})
			}
			record.Set("description", description)
		}
		if e.Request.Form.Has("way_number") {
			wayNumber, err := strconv.Atoi(e.Request.FormValue("way_number"))
			if err != nil || wayNumber < 1 {
				return e.JSON(http.StatusBadRequest, map[string]any{
					"errors": map[string]string{"way_number": "Way number must be a positive integer"},
				})
			}
			record.Set("way_number", wayNumber)
		}
		if e.Request.Form.Has("phase") {
			record.Set("phase", strings.TrimSpace(e.Request.FormValue("phase")))
		}
		if e.Request.Form.Has("breaker_rating") {
			rating, err := strconv.ParseFloat(e.Request.FormValue("breaker_rating"), 64)
			if err != nil {
				return e.JSON(http.StatusBadRequest, map[string]any{
					"errors": map[string]string{"breaker_rating": "Breaker rating must be a number"},
				})
			}
			record.Set("breaker_rating", rating)
		}
		if e.Request.Form.Has("cable_ref") {
			record.Set("cable_ref", strings.TrimSpace(e.Request.FormValue("cable_ref")))
		}

		if err := app.Save(record); err != nil {
			log.Printf("circuit_update: could not save %s: %v", circuitID, err)
			return e.String(http.StatusInternalServerError, "Failed to update circuit")
		}

		return e.JSON(http.StatusOK, map[string]any{"circuit": circuitJSON(record)})
	}
}

// HandleCircuitDelete returns a handler that deletes a circuit; its
// materials go with it through the relation cascade.
// DELETE /circuits/{id}
func HandleCircuitDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		circuitID := e.Request.PathValue("id")
		record, err := app.FindRecordById("circuits", circuitID)
		if err != nil {
			log.Printf("circuit_delete: not found %s: %v", circuitID, err)
			return e.String(http.StatusNotFound, "Circuit not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("circuit_delete: failed to delete %s: %v", circuitID, err)
			return e.String(http.StatusInternalServerError, "Failed to delete circuit")
		}

		return e.JSON(http.StatusOK, map[string]any{"deleted": circuitID})
	}
}
