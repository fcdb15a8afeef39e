package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleFolderList returns a handler that lists document folders. An optional
// ?parent= query filters to the children of one folder; without it the
// top-level folders are returned.
// GET /folders
func HandleFolderList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		parent := e.Request.URL.Query().Get("parent")

		filter := "parent_folder = ''"
		params := map[string]any{}
		if parent != "" {
			filter = "parent_folder = {:parent}"
			params["parent"] = parent
		}

		records, err := app.FindRecordsByFilter("document_folders", filter, "sort_order,name", 0, 0, params)
		if err != nil {
			log.Printf("folder_list: could not query folders: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to list folders")
		}

		folders := make([]map[string]any, 0, len(records))
		for _, r := range records {
			folders = append(folders, folderJSON(r))
		}
		return e.JSON(http.StatusOK, map[string]any{"folders": folders})
	}
}

// HandleFolderCreate returns a handler that creates a document folder,
// optionally nested under a parent folder.
// POST /folders
func HandleFolderCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			log.Printf("folder_create: could not parse form: %v", err)
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		name := strings.TrimSpace(e.Request.FormValue("name"))
		if name == "" {
			return e.JSON(http.StatusBadRequest, map[string]any{
				"errors": map[string]string{"name": "Folder name is required"},
			})
		}

		parent := strings.TrimSpace(e.Request.FormValue("parent_folder"))
		if parent != "" {
			if _, err := app.FindRecordById("document_folders", parent); err != nil {
				return e.JSON(http.StatusBadRequest, map[string]any{
					"errors": map[string]string{"parent_folder": "Parent folder does not exist"},
				})
			}
		}

		col, err := app.FindCollectionByNameOrId("document_folders")
		if err != nil {
			log.Printf("folder_create: could not find document_folders collection: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		record := core.NewRecord(col)
		record.Set("name", name)
		record.Set("parent_folder", parent)
		if v := e.Request.FormValue("sort_order"); v != "" {
			if n, err := strconv.ParseFloat(v, 64); err == nil {
				record.Set("sort_order", n)
			}
		}

		if err := app.Save(record); err != nil {
			log.Printf("folder_create: could not save folder: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to create folder")
		}

		return e.JSON(http.StatusCreated, map[string]any{"folder": folderJSON(record)})
	}
}

// HandleFolderUpdate returns a handler that renames or re-parents a folder.
// Moving a folder under itself or one of its descendants is rejected.
// PATCH /folders/{id}
func HandleFolderUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		folderID := e.Request.PathValue("id")
		record, err := app.FindRecordById("document_folders", folderID)
		if err != nil {
			return e.String(http.StatusNotFound, "Folder not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		if e.Request.Form.Has("name") {
			name := strings.TrimSpace(e.Request.FormValue("name"))
			if name == "" {
				return e.JSON(http.StatusBadRequest, map[string]any{
					"errors": map[string]string{"name": "Folder name is required"},
				})
			}
			record.Set("name", name)
		}

		if e.Request.Form.Has("parent_folder") {
			parent := strings.TrimSpace(e.Request.FormValue("parent_folder"))
			if parent != "" {
				if parent == folderID {
					return e.JSON(http.StatusBadRequest, map[string]any{
						"errors": map[string]string{"parent_folder": "Folder cannot be its own parent"},
					})
				}
				if isDescendantFolder(app, folderID, parent) {
					return e.JSON(http.StatusBadRequest, map[string]any{
						"errors": map[string]string{"parent_folder": "Cannot move a folder into its own subtree"},
					})
				}
				if _, err := app.FindRecordById("document_folders", parent); err != nil {
					return e.JSON(http.StatusBadRequest, map[string]any{
						"errors": map[string]string{"parent_folder": "Parent folder does not exist"},
					})
				}
			}
			record.Set("parent_folder", parent)
		}

		if e.Request.Form.Has("sort_order") {
			if n, err := strconv.ParseFloat(e.Request.FormValue("sort_order"), 64); err == nil {
				record.Set("sort_order", n)
			}
		}

		if err := app.Save(record); err != nil {
			log.Printf("folder_update: could not save %s: %v", folderID, err)
			return e.String(http.StatusInternalServerError, "Failed to update folder")
		}

		return e.JSON(http.StatusOK, map[string]any{"folder": folderJSON(record)})
	}
}

// HandleFolderDelete returns a handler that deletes an empty folder. Folders
// that still contain subfolders or documents are refused so nothing is
// removed by accident.
// DELETE /folders/{id}
func HandleFolderDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		folderID := e.Request.PathValue("id")
		record, err := app.FindRecordById("document_folders", folderID)
		if err != nil {
			log.Printf("folder_delete: not found %s: %v", folderID, err)
			return e.String(http.StatusNotFound, "Folder not found")
		}

		children, err := app.FindRecordsByFilter(
			"document_folders", "parent_folder = {:id}", "", 1, 0,
			map[string]any{"id": folderID},
		)
		if err == nil && len(children) > 0 {
			return e.JSON(http.StatusConflict, map[string]any{
				"errors": map[string]string{"folder": "Folder still contains subfolders"},
			})
		}

		docs, err := app.FindRecordsByFilter(
			"documents", "folder = {:id}", "", 1, 0,
			map[string]any{"id": folderID},
		)
		if err == nil && len(docs) > 0 {
			return e.JSON(http.StatusConflict, map[string]any{
				"errors": map[string]string{"folder": "Folder still contains documents"},
			})
		}

		if err := app.Delete(record); err != nil {
			log.Printf("folder_delete: failed to delete %s: %v", folderID, err)
			return e.String(http.StatusInternalServerError, "Failed to delete folder")
		}

		return e.JSON(http.StatusOK, map[string]any{"deleted": folderID})
	}
}

// isDescendantFolder reports whether candidate sits anywhere below folderID
// in the folder tree. Walks parent links upward from the candidate.
func isDescendantFolder(app *pocketbase.PocketBase, folderID, candidate string) bool {
	current := candidate
	for i := 0; i < 50; i++ {
		record, err := app.FindRecordById("document_folders", current)
		if err != nil {
			return false
		}
		parent := record.GetString("parent_folder")
		if parent == "" {
			return false
		}
		if parent == folderID {
			return true
		}
		current = parent
	}
	return false
}
