package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"boardtracker/services"
	"boardtracker/testhelpers"
)

func TestHandleScheduleExportExcel(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	board := testhelpers.CreateTestBoard(t, app, "DB-T-01")
	circuit := testhelpers.CreateTestCircuit(t, app, board.Id, "Ring main")

	if _, err := services.CreateMaterial(app, services.MaterialInput{
		CircuitID:   circuit.Id,
		Description: "2.5mm twin and earth cable",
		Unit:        "m",
		Quantity:    85,
		SupplyRate:  42,
		InstallRate: 30,
	}); err != nil {
		t.Fatalf("CreateMaterial failed: %v", err)
	}

	handler := HandleScheduleExportExcel(app)
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/circuits/%s/schedule/export/excel", circuit.Id), nil)
	req.SetPathValue("id", circuit.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	ct := rec.Header().Get("Content-Type")
	if ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected Content-Type %q", ct)
	}
	cd := rec.Header().Get("Content-Disposition")
	if !strings.HasPrefix(cd, `attachment; filename="Schedule_`) || !strings.Contains(cd, ".xlsx") {
		t.Errorf("unexpected Content-Disposition %q", cd)
	}
	if rec.Body.Len() == 0 {
		t.Error("response body is empty")
	}
}

func TestHandleScheduleExportPDF(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	board := testhelpers.CreateTestBoard(t, app, "DB-T-01")
	circuit := testhelpers.CreateTestCircuit(t, app, board.Id, "AHU supply")

	if _, err := services.CreateMaterial(app, services.MaterialInput{
		CircuitID:   circuit.Id,
		Description: "16mm 4 core SWA cable",
		Unit:        "m",
		Quantity:    40,
		SupplyRate:  380,
		InstallRate: 120,
	}); err != nil {
		t.Fatalf("CreateMaterial failed: %v", err)
	}

	handler := HandleScheduleExportPDF(app)
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/circuits/%s/schedule/export/pdf", circuit.Id), nil)
	req.SetPathValue("id", circuit.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("unexpected Content-Type %q", ct)
	}
	body := rec.Body.Bytes()
	if len(body) < 5 || string(body[:5]) != "%PDF-" {
		t.Error("response is not a PDF")
	}
}

func TestHandleScheduleExport_CircuitNotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	excel := HandleScheduleExportExcel(app)
	req := httptest.NewRequest(http.MethodGet, "/circuits/nonexistent/schedule/export/excel", nil)
	req.SetPathValue("id", "nonexistent")
	rec := httptest.NewRecorder()
	if err := excel(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("excel: expected 404, got %d", rec.Code)
	}

	pdf := HandleScheduleExportPDF(app)
	req = httptest.NewRequest(http.MethodGet, "/circuits/nonexistent/schedule/export/pdf", nil)
	req.SetPathValue("id", "nonexistent")
	rec = httptest.NewRecorder()
	if err := pdf(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("pdf: expected 404, got %d", rec.Code)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input  string
		expect string
	}{
		{"Ring main", "Ring-main"},
		{"a/b\\c:d", "a-b-c-d"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.input); got != tt.expect {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.input, got, tt.expect)
		}
	}
}
