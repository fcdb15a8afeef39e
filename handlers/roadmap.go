package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

var roadmapStatuses = []string{"open", "in_progress", "done"}

// HandleRoadmapList returns a handler that lists roadmap items. An optional
// ?board= query narrows the list to one board's items.
// GET /roadmap
func HandleRoadmapList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		board := e.Request.URL.Query().Get("board")

		filter := "id != ''"
		params := map[string]any{}
		if board != "" {
			filter = "board = {:board}"
			params["board"] = board
		}

		records, err := app.FindRecordsByFilter("roadmap_items", filter, "sort_order,due_date", 0, 0, params)
		if err != nil {
			log.Printf("roadmap_list: could not query items: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to list roadmap items")
		}

		items := make([]map[string]any, 0, len(records))
		for _, r := range records {
			items = append(items, roadmapItemJSON(r))
		}
		return e.JSON(http.StatusOK, map[string]any{"items": items})
	}
}

// HandleRoadmapCreate returns a handler that creates a roadmap item.
// POST /roadmap
func HandleRoadmapCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			log.Printf("roadmap_create: could not parse form: %v", err)
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		title := strings.TrimSpace(e.Request.FormValue("title"))
		if title == "" {
			return e.JSON(http.StatusBadRequest, map[string]any{
				"errors": map[string]string{"title": "Title is required"},
			})
		}

		status := e.Request.FormValue("status")
		if status == "" {
			status = "open"
		}
		if !validOption(status, roadmapStatuses) {
			return e.JSON(http.StatusBadRequest, map[string]any{
				"errors": map[string]string{"status": "Invalid status"},
			})
		}

		boardID := strings.TrimSpace(e.Request.FormValue("board"))
		if boardID != "" {
			if _, err := app.FindRecordById("boards", boardID); err != nil {
				return e.JSON(http.StatusBadRequest, map[string]any{
					"errors": map[string]string{"board": "Board does not exist"},
				})
			}
		}

		col, err := app.FindCollectionByNameOrId("roadmap_items")
		if err != nil {
			log.Printf("roadmap_create: could not find roadmap_items collection: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		record := core.NewRecord(col)
		record.Set("board", boardID)
		record.Set("title", title)
		record.Set("status", status)
		record.Set("notes", strings.TrimSpace(e.Request.FormValue("notes")))
		if v := e.Request.FormValue("due_date"); v != "" {
			record.Set("due_date", v)
		}
		if v := e.Request.FormValue("sort_order"); v != "" {
			if n, err := strconv.ParseFloat(v, 64); err == nil {
				record.Set("sort_order", n)
			}
		}

		if err := app.Save(record); err != nil {
			log.Printf("roadmap_create: could not save item: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to create roadmap item")
		}

		return e.JSON(http.StatusCreated, map[string]any{"item": roadmapItemJSON(record)})
	}
}

// HandleRoadmapUpdate returns a handler that patches roadmap item fields,
// including status transitions.
// PATCH /roadmap/{id}
func HandleRoadmapUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		itemID := e.Request.PathValue("id")
		record, err := app.FindRecordById("roadmap_items", itemID)
		if err != nil {
			return e.String(http.StatusNotFound, "Roadmap item not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		if e.Request.Form.Has("title") {
			title := strings.TrimSpace(e.Request.FormValue("title"))
			if title == "" {
				return e.JSON(http.StatusBadRequest, map[string]any{
					"errors": map[string]string{"title": "Title is required"},
				})
			}
			record.Set("title", title)
		}

		if e.Request.Form.Has("status") {
			status := e.Request.FormValue("status")
			if !validOption(status, roadmapStatuses) {
				return e.JSON(http.StatusBadRequest, map[string]any{
					"errors": map[string]string{"status": "Invalid status"},
				})
			}
			record.Set("status", status)
		}

		if e.Request.Form.Has("notes") {
			record.Set("notes", strings.TrimSpace(e.Request.FormValue("notes")))
		}
		if e.Request.Form.Has("due_date") {
			record.Set("due_date", e.Request.FormValue("due_date"))
		}
		if e.Request.Form.Has("sort_order") {
			if n, err := strconv.ParseFloat(e.Request.FormValue("sort_order"), 64); err == nil {
				record.Set("sort_order", n)
			}
		}

		if err := app.Save(record); err != nil {
			log.Printf("roadmap_update: could not save %s: %v", itemID, err)
			return e.String(http.StatusInternalServerError, "Failed to update roadmap item")
		}

		return e.JSON(http.StatusOK, map[string]any{"item": roadmapItemJSON(record)})
	}
}

// HandleRoadmapDelete returns a handler that removes a roadmap item.
// DELETE /roadmap/{id}
func HandleRoadmapDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		itemID := e.Request.PathValue("id")
		record, err := app.FindRecordById("roadmap_items", itemID)
		if err != nil {
			log.Printf("roadmap_delete: not found %s: %v", itemID, err)
			return e.String(http.StatusNotFound, "Roadmap item not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("roadmap_delete: failed to delete %s: %v", itemID, err)
			return e.String(http.StatusInternalServerError, "Failed to delete roadmap item")
		}

		return e.JSON(http.StatusOK, map[string]any{"deleted": itemID})
	}
}
