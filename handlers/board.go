package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleBoardList returns a handler that lists all distribution boards.
// GET /boards
func HandleBoardList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("boards", "id != ''", "name", 0, 0, nil)
		if err != nil {
			log.Printf("board_list: could not query boards: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to list boards")
		}

		boards := make([]map[string]any, 0, len(records))
		for _, r := range records {
			boards = append(boards, boardJSON(r))
		}
		return e.JSON(http.StatusOK, map[string]any{"boards": boards})
	}
}

// HandleBoardView returns a handler that fetches a single board together
// with its circuits.
// GET /boards/{id}
func HandleBoardView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		boardID := e.Request.PathValue("id")
		record, err := app.FindRecordById("boards", boardID)
		if err != nil {
			return e.String(http.StatusNotFound, "Board not found")
		}

		circuits, err := app.FindRecordsByFilter(
			"circuits", "board = {:boardId}", "way_number", 0, 0,
			map[string]any{"boardId": boardID},
		)
		if err != nil {
			log.Printf("board_view: could not query circuits of %s: %v", boardID, err)
			circuits = nil
		}

		circuitList := make([]map[string]any, 0, len(circuits))
		for _, c := range circuits {
			circuitList = append(circuitList, circuitJSON(c))
		}

		return e.JSON(http.StatusOK, map[string]any{
			"board":    boardJSON(record),
			"circuits": circuitList,
		})
	}
}

// HandleBoardCreate returns a handler that creates a distribution board.
// POST /boards
func HandleBoardCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			log.Printf("board_create: could not parse form: %v", err)
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		name := strings.TrimSpace(e.Request.FormValue("name"))
		if name == "" {
			return e.JSON(http.StatusBadRequest, map[string]any{
				"errors": map[string]string{"name": "Board name is required"},
			})
		}

		col, err := app.FindCollectionByNameOrId("boards")
		if err != nil {
			log.Printf("board_create: could not find boards collection: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		record := core.NewRecord(col)
		record.Set("name", name)
		record.Set("location", strings.TrimSpace(e.Request.FormValue("location")))
		record.Set("board_ref", strings.TrimSpace(e.Request.FormValue("board_ref")))
		record.Set("supply_type", e.Request.FormValue("supply_type"))

		if err := app.Save(record); err != nil {
			log.Printf("board_create: could not save board: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to create board")
		}

		return e.JSON(http.StatusCreated, map[string]any{"board": boardJSON(record)})
	}
}

// HandleBoardUpdate returns a handler that patches board fields.
// PATCH /boards/{id}
func HandleBoardUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		boardID := e.Request.PathValue("id")
		record, err := app.FindRecordById("boards", boardID)
		if err != nil {
			return e.String(http.StatusNotFound, "Board not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		if e.Request.Form.Has("name") {
			name := strings.TrimSpace(e.Request.FormValue("name"))
			if name == "" {
				return e.JSON(http.StatusBadRequest, map[string]any{
					"errors": map[string]string{"name": "Board name is required"},
				})
			}
			record.Set("name", name)
		}
		if e.Request.Form.Has("location") {
			record.Set("location", strings.TrimSpace(e.Request.FormValue("location")))
		}
		if e.Request.Form.Has("board_ref") {
			record.Set("board_ref", strings.TrimSpace(e.Request.FormValue("board_ref")))
		}
		if e.Request.Form.Has("supply_type") {
			record.Set("supply_type", e.Request.FormValue("supply_type"))
		}

		if err := app.Save(record); err != nil {
			log.Printf("board_update: could not save %s: %v", boardID, err)
			return e.String(http.StatusInternalServerError, "Failed to update board")
		}

		return e.JSON(http.StatusOK, map[string]any{"board": boardJSON(record)})
	}
}

// HandleBoardDelete returns a handler that deletes a board. Circuits and
// their materials are removed through the relation cascade.
// DELETE /boards/{id}
func HandleBoardDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		boardID := e.Request.PathValue("id")
		record, err := app.FindRecordById("boards", boardID)
		if err != nil {
			log.Printf("board_delete: not found %s: %v", boardID, err)
			return e.String(http.StatusNotFound, "Board not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("board_delete: failed to delete %s: %v", boardID, err)
			return e.String(http.StatusInternalServerError, "Failed to delete board")
		}

		return e.JSON(http.StatusOK, map[string]any{"deleted": boardID})
	}
}
