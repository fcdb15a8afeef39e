// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"boardtracker/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestBoard creates a distribution board record and returns it.
func CreateTestBoard(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("boards")
	if err != nil {
		t.Fatalf("failed to find boards collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("location", "Test riser")
	record.Set("board_ref", "DB-T-01")
	record.Set("supply_type", "three_phase")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test board: %v", err)
	}

	return record
}

// CreateTestCircuit creates a circuit record linked to a board and returns it.
func CreateTestCircuit(t *testing.T, app *pocketbase.PocketBase, boardID, description string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("circuits")
	if err != nil {
		t.Fatalf("failed to find circuits collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("board", boardID)
	record.Set("way_number", 1)
	record.Set("description", description)
	record.Set("phase", "L1")
	record.Set("breaker_rating", 32)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test circuit: %v", err)
	}

	return record
}

// CreateTestMaterial creates a circuit material record directly, bypassing
// the lineage service, for tests that need full control over the fields.
func CreateTestMaterial(t *testing.T, app *pocketbase.PocketBase, circuitID, description string, qty float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("circuit_materials")
	if err != nil {
		t.Fatalf("failed to find circuit_materials collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("circuit", circuitID)
	record.Set("description", description)
	record.Set("unit", "Nos")
	record.Set("qty", qty)
	record.Set("category", "other")
	record.Set("boq_section", "general")
	record.Set("status", "planned")
	record.Set("wastage_percent", 0)
	record.Set("wastage_qty", 0)
	record.Set("gross_qty", qty)
	record.Set("is_auto_generated", false)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test material: %v", err)
	}

	return record
}

// CreateTestFolder creates a document folder record and returns it.
func CreateTestFolder(t *testing.T, app *pocketbase.PocketBase, name, parentID string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("document_folders")
	if err != nil {
		t.Fatalf("failed to find document_folders collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("parent_folder", parentID)
	record.Set("sort_order", 1)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test folder: %v", err)
	}

	return record
}

// CreateTestDocument creates a document record inside a folder.
func CreateTestDocument(t *testing.T, app *pocketbase.PocketBase, folderID, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("documents")
	if err != nil {
		t.Fatalf("failed to find documents collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("folder", folderID)
	record.Set("name", name)
	record.Set("file_ref", "files/"+name)
	record.Set("size_bytes", 1024)
	record.Set("content_type", "application/pdf")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test document: %v", err)
	}

	return record
}

// CreateTestRoadmapItem creates a roadmap item record and returns it.
func CreateTestRoadmapItem(t *testing.T, app *pocketbase.PocketBase, title string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("roadmap_items")
	if err != nil {
		t.Fatalf("failed to find roadmap_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("title", title)
	record.Set("status", "open")
	record.Set("sort_order", 1)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test roadmap item: %v", err)
	}

	return record
}
