package services_test

import (
	"testing"

	"github.com/pocketbase/pocketbase"

	"boardtracker/services"
	"boardtracker/testhelpers"
)

func TestDeleteByDrawingRef_CascadesLinkedMaterial(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	board := testhelpers.CreateTestBoard(t, app, "DB-T-01")
	circuit := testhelpers.CreateTestCircuit(t, app, board.Id, "Ring main")

	result, err := services.CreateMaterial(app, services.MaterialInput{
		CircuitID:   circuit.Id,
		Description: "2.5mm twin and earth cable",
		Unit:        "m",
		Quantity:    85,
		DrawingRef:  "DWG-GF-PWR-001",
	})
	if err != nil {
		t.Fatalf("CreateMaterial failed: %v", err)
	}

	deletedID, err := services.DeleteByDrawingRef(app, "DWG-GF-PWR-001")
	if err != nil {
		t.Fatalf("DeleteByDrawingRef failed: %v", err)
	}
	if deletedID != result.Material.Id {
		t.Errorf("deleted id = %q, want %q", deletedID, result.Material.Id)
	}

	if _, err := app.FindRecordById("circuit_materials", result.Material.Id); err == nil {
		t.Error("linked material still exists")
	}
	for _, child := range result.Derived {
		if _, err := app.FindRecordById("circuit_materials", child.Id); err == nil {
			t.Errorf("derived child %q survived the cascade", child.GetString("description"))
		}
	}
}

func TestDeleteByDrawingRef_UnknownRefIsNoop(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	board := testhelpers.CreateTestBoard(t, app, "DB-T-01")
	circuit := testhelpers.CreateTestCircuit(t, app, board.Id, "Ring main")
	material := testhelpers.CreateTestMaterial(t, app, circuit.Id, "Blank plate", 1)

	deletedID, err := services.DeleteByDrawingRef(app, "DWG-NO-SUCH-REF")
	if err != nil {
		t.Fatalf("DeleteByDrawingRef failed: %v", err)
	}
	if deletedID != "" {
		t.Errorf("deleted id = %q, want empty for unknown ref", deletedID)
	}

	if _, err := app.FindRecordById("circuit_materials", material.Id); err != nil {
		t.Error("unrelated material was deleted")
	}
}

func TestDeleteByDrawingRef_BrokenStoreSurfacesError(t *testing.T) {
	// Bootstrapped app without the circuit_materials collection: the
	// lookup failure must come back as an error, not a silent no-op.
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: t.TempDir(),
	})
	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	deletedID, err := services.DeleteByDrawingRef(app, "DWG-GF-PWR-001")
	if err == nil {
		t.Fatal("expected an error from a store without the collection, got nil")
	}
	if deletedID != "" {
		t.Errorf("deleted id = %q, want empty on error", deletedID)
	}
}

func TestDeleteByDrawingRef_EmptyRefIsNoop(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	for _, ref := range []string{"", "   "} {
		deletedID, err := services.DeleteByDrawingRef(app, ref)
		if err != nil {
			t.Fatalf("DeleteByDrawingRef(%q) failed: %v", ref, err)
		}
		if deletedID != "" {
			t.Errorf("DeleteByDrawingRef(%q) = %q, want empty", ref, deletedID)
		}
	}
}
