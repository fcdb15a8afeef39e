package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"boardtracker/services"
	"boardtracker/testhelpers"
)

func TestHandleDrawingElementRemoved_DeletesLinkedMaterial(t *testing.T) {
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

	handler := HandleDrawingElementRemoved(app)
	req := httptest.NewRequest(http.MethodDelete, "/sync/drawing-elements/DWG-GF-PWR-001", nil)
	req.SetPathValue("ref", "DWG-GF-PWR-001")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	resp := decodeJSON(t, rec.Body.String())
	if resp["deleted"] != result.Material.Id {
		t.Errorf("deleted = %v, want %q", resp["deleted"], result.Material.Id)
	}

	if _, err := app.FindRecordById("circuit_materials", result.Material.Id); err == nil {
		t.Error("linked material still exists")
	}
	for _, child := range result.Derived {
		if _, err := app.FindRecordById("circuit_materials", child.Id); err == nil {
			t.Errorf("derived child %q survived", child.GetString("description"))
		}
	}
}

func TestHandleDrawingElementRemoved_UnknownRef(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleDrawingElementRemoved(app)

	req := httptest.NewRequest(http.MethodDelete, "/sync/drawing-elements/DWG-NO-SUCH", nil)
	req.SetPathValue("ref", "DWG-NO-SUCH")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for unknown ref, got %d", rec.Code)
	}

	resp := decodeJSON(t, rec.Body.String())
	if resp["deleted"] != nil {
		t.Errorf("deleted = %v, want null", resp["deleted"])
	}
}
