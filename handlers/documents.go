package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleDocumentList returns a handler that lists the documents in a folder.
// GET /folders/{id}/documents
func HandleDocumentList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		folderID := e.Request.PathValue("id")
		if _, err := app.FindRecordById("document_folders", folderID); err != nil {
			return e.String(http.StatusNotFound, "Folder not found")
		}

		records, err := app.FindRecordsByFilter(
			"documents", "folder = {:folderId}", "name", 0, 0,
			map[string]any{"folderId": folderID},
		)
		if err != nil {
			log.Printf("document_list: could not query documents: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to list documents")
		}

		docs := make([]map[string]any, 0, len(records))
		for _, r := range records {
			docs = append(docs, documentJSON(r))
		}
		return e.JSON(http.StatusOK, map[string]any{"documents": docs})
	}
}

// HandleDocumentCreate returns a handler that registers a document in a folder.
// POST /folders/{id}/documents
func HandleDocumentCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		folderID := e.Request.PathValue("id")
		if _, err := app.FindRecordById("document_folders", folderID); err != nil {
			return e.String(http.StatusNotFound, "Folder not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			log.Printf("document_create: could not parse form: %v", err)
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		name := strings.TrimSpace(e.Request.FormValue("name"))
		if name == "" {
			return e.JSON(http.StatusBadRequest, map[string]any{
				"errors": map[string]string{"name": "Document name is required"},
			})
		}

		col, err := app.FindCollectionByNameOrId("documents")
		if err != nil {
			log.Printf("document_create: could not find documents collection: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		record := core.NewRecord(col)
		record.Set("folder", folderID)
		record.Set("name", name)
		record.Set("file_ref", strings.TrimSpace(e.Request.FormValue("file_ref")))
		record.Set("content_type", strings.TrimSpace(e.Request.FormValue("content_type")))
		if v := e.Request.FormValue("size_bytes"); v != "" {
			if n, err := strconv.ParseFloat(v, 64); err == nil && n >= 0 {
				record.Set("size_bytes", n)
			}
		}

		if err := app.Save(record); err != nil {
			log.Printf("document_create: could not save document: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to create document")
		}

		return e.JSON(http.StatusCreated, map[string]any{"document": documentJSON(record)})
	}
}

// HandleDocumentUpdate returns a handler that renames a document or moves it
// to another folder.
// PATCH /documents/{id}
func HandleDocumentUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		docID := e.Request.PathValue("id")
		record, err := app.FindRecordById("documents", docID)
		if err != nil {
			return e.String(http.StatusNotFound, "Document not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		if e.Request.Form.Has("name") {
			name := strings.TrimSpace(e.Request.FormValue("name"))
			if name == "" {
				return e.JSON(http.StatusBadRequest, map[string]any{
					"errors": map[string]string{"name": "Document name is required"},
				})
			}
			record.Set("name", name)
		}

		if e.Request.Form.Has("folder") {
			folderID := strings.TrimSpace(e.Request.FormValue("folder"))
			if _, err := app.FindRecordById("document_folders", folderID); err != nil {
				return e.JSON(http.StatusBadRequest, map[string]any{
					"errors": map[string]string{"folder": "Target folder does not exist"},
				})
			}
			record.Set("folder", folderID)
		}

		if e.Request.Form.Has("file_ref") {
			record.Set("file_ref", strings.TrimSpace(e.Request.FormValue("file_ref")))
		}

		if err := app.Save(record); err != nil {
			log.Printf("document_update: could not save %s: %v", docID, err)
			return e.String(http.StatusInternalServerError, "Failed to update document")
		}

		return e.JSON(http.StatusOK, map[string]any{"document": documentJSON(record)})
	}
}

// HandleDocumentDelete returns a handler that removes a document record.
// DELETE /documents/{id}
func HandleDocumentDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		docID := e.Request.PathValue("id")
		record, err := app.FindRecordById("documents", docID)
		if err != nil {
			log.Printf("document_delete: not found %s: %v", docID, err)
			return e.String(http.StatusNotFound, "Document not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("document_delete: failed to delete %s: %v", docID, err)
			return e.String(http.StatusInternalServerError, "Failed to delete document")
		}

		return e.JSON(http.StatusOK, map[string]any{"deleted": docID})
	}
}
