package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"boardtracker/testhelpers"
)

func TestHandleCircuitList(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	board := testhelpers.CreateTestBoard(t, app, "DB-01")
	testhelpers.CreateTestCircuit(t, app, board.Id, "Ring main")
	testhelpers.CreateTestCircuit(t, app, board.Id, "Lighting")

	handler := HandleCircuitList(app)
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/boards/%s/circuits", board.Id), nil)
	req.SetPathValue("boardId", board.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	resp := decodeJSON(t, rec.Body.String())
	circuits, ok := resp["circuits"].([]any)
	if !ok || len(circuits) != 2 {
		t.Errorf("expected 2 circuits, got %v", resp["circuits"])
	}
}

func TestHandleCircuitCreate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	board := testhelpers.CreateTestBoard(t, app, "DB-01")
	handler := HandleCircuitCreate(app)

	form := url.Values{}
	form.Set("way_number", "3")
	form.Set("description", "Water heater")
	form.Set("phase", "L3")
	form.Set("breaker_rating", "16")
	form.Set("cable_ref", "C-GF-003")

	req := postForm(t, fmt.Sprintf("/boards/%s/circuits", board.Id), form)
	req.SetPathValue("boardId", board.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	records, err := app.FindRecordsByFilter("circuits", "description = {:d}", "", 1, 0,
		map[string]any{"d": "Water heater"})
	if err != nil || len(records) != 1 {
		t.Fatalf("circuit not persisted: %v", err)
	}
	if records[0].GetFloat("way_number") != 3 {
		t.Errorf("way_number = %v, want 3", records[0].GetFloat("way_number"))
	}
}

func TestHandleCircuitCreate_InvalidWayNumber(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	board := testhelpers.CreateTestBoard(t, app, "DB-01")
	handler := HandleCircuitCreate(app)

	for _, way := range []string{"", "0", "-2", "abc"} {
		form := url.Values{}
		form.Set("way_number", way)
		form.Set("description", "Bad way")

		req := postForm(t, fmt.Sprintf("/boards/%s/circuits", board.Id), form)
		req.SetPathValue("boardId", board.Id)
		rec := httptest.NewRecorder()
		e := newTestRequestEvent(app, req, rec)

		if err := handler(e); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("way_number %q: expected 400, got %d", way, rec.Code)
		}
	}
}

func TestHandleCircuitDelete_CascadesMaterials(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	board := testhelpers.CreateTestBoard(t, app, "DB-01")
	circuit := testhelpers.CreateTestCircuit(t, app, board.Id, "Ring main")
	material := testhelpers.CreateTestMaterial(t, app, circuit.Id, "Blank plate", 1)

	handler := HandleCircuitDelete(app)
	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/circuits/%s", circuit.Id), nil)
	req.SetPathValue("id", circuit.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if _, err := app.FindRecordById("circuits", circuit.Id); err == nil {
		t.Error("circuit still exists")
	}
	if _, err := app.FindRecordById("circuit_materials", material.Id); err == nil {
		t.Error("material should have been cascade-deleted")
	}
}
