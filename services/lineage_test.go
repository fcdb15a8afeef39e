package services_test

import (
	"strings"
	"testing"
	"time"

	"boardtracker/services"
	"boardtracker/testhelpers"
)

func TestCreateMaterial_CableDerivesChildren(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	board := testhelpers.CreateTestBoard(t, app, "DB-T-01")
	circuit := testhelpers.CreateTestCircuit(t, app, board.Id, "Ring main")

	result, err := services.CreateMaterial(app, services.MaterialInput{
		CircuitID:   circuit.Id,
		Description: "2.5mm twin and earth cable",
		Unit:        "m",
		Quantity:    85,
		SupplyRate:  42,
		InstallRate: 30,
	})
	if err != nil {
		t.Fatalf("CreateMaterial failed: %v", err)
	}

	m := result.Material
	if m.GetString("category") != "cable" {
		t.Errorf("category = %q, want cable", m.GetString("category"))
	}
	if m.GetString("boq_section") != "cables_wiring" {
		t.Errorf("boq_section = %q, want cables_wiring", m.GetString("boq_section"))
	}
	if m.GetFloat("wastage_percent") != 5 {
		t.Errorf("wastage_percent = %v, want 5", m.GetFloat("wastage_percent"))
	}
	if m.GetFloat("wastage_qty") != 4.25 {
		t.Errorf("wastage_qty = %v, want 4.25", m.GetFloat("wastage_qty"))
	}
	if m.GetFloat("gross_qty") != 89.25 {
		t.Errorf("gross_qty = %v, want 89.25", m.GetFloat("gross_qty"))
	}
	if m.GetBool("is_auto_generated") {
		t.Error("primary material must not be flagged auto-generated")
	}
	if m.GetString("status") != "planned" {
		t.Errorf("status = %q, want planned", m.GetString("status"))
	}

	if len(result.FailedDerived) != 0 {
		t.Fatalf("unexpected failed derivations: %v", result.FailedDerived)
	}
	if len(result.Derived) != 4 {
		t.Fatalf("expected 4 derived children, got %d", len(result.Derived))
	}

	for _, child := range result.Derived {
		if !child.GetBool("is_auto_generated") {
			t.Errorf("child %q not flagged auto-generated", child.GetString("description"))
		}
		if child.GetString("parent_material") != m.Id {
			t.Errorf("child %q parent = %q, want %q",
				child.GetString("description"), child.GetString("parent_material"), m.Id)
		}
		if child.GetFloat("wastage_percent") != 0 || child.GetFloat("wastage_qty") != 0 {
			t.Errorf("child %q carries wastage", child.GetString("description"))
		}
		if child.GetFloat("gross_qty") != child.GetFloat("qty") {
			t.Errorf("child %q gross %v != qty %v",
				child.GetString("description"), child.GetFloat("gross_qty"), child.GetFloat("qty"))
		}
		if child.GetString("circuit") != circuit.Id {
			t.Errorf("child %q on wrong circuit", child.GetString("description"))
		}
	}
}

func TestCreateMaterial_SkipDerivation(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	board := testhelpers.CreateTestBoard(t, app, "DB-T-01")
	circuit := testhelpers.CreateTestCircuit(t, app, board.Id, "Sub-main")

	result, err := services.CreateMaterial(app, services.MaterialInput{
		CircuitID:      circuit.Id,
		Description:    "16mm 4 core SWA cable",
		Unit:           "m",
		Quantity:       40,
		SkipDerivation: true,
	})
	if err != nil {
		t.Fatalf("CreateMaterial failed: %v", err)
	}
	if len(result.Derived) != 0 {
		t.Errorf("expected no derived children, got %d", len(result.Derived))
	}
}

func TestCreateMaterial_NonCableNoDerivation(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	board := testhelpers.CreateTestBoard(t, app, "DB-T-01")
	circuit := testhelpers.CreateTestCircuit(t, app, board.Id, "Lighting")

	result, err := services.CreateMaterial(app, services.MaterialInput{
		CircuitID:   circuit.Id,
		Description: "600x600 LED panel luminaire",
		Unit:        "Nos",
		Quantity:    18,
	})
	if err != nil {
		t.Fatalf("CreateMaterial failed: %v", err)
	}
	if result.Material.GetString("category") != "fixture" {
		t.Errorf("category = %q, want fixture", result.Material.GetString("category"))
	}
	if result.Material.GetFloat("gross_qty") != 18 {
		t.Errorf("gross_qty = %v, want 18 (zero wastage)", result.Material.GetFloat("gross_qty"))
	}
	if len(result.Derived) != 0 {
		t.Errorf("fixtures must not derive children, got %d", len(result.Derived))
	}
}

func TestCreateMaterial_CategoryOverrideBypassesClassifier(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	board := testhelpers.CreateTestBoard(t, app, "DB-T-01")
	circuit := testhelpers.CreateTestCircuit(t, app, board.Id, "Ring main")

	// Description says cable, the override says accessory. No derivation
	// should run and the override wastage stands.
	result, err := services.CreateMaterial(app, services.MaterialInput{
		CircuitID:      circuit.Id,
		Description:    "2.5mm cable tie pack",
		Unit:           "Pack",
		Quantity:       10,
		Category:       services.CategoryAccessory,
		WastagePercent: 2,
	})
	if err != nil {
		t.Fatalf("CreateMaterial failed: %v", err)
	}
	m := result.Material
	if m.GetString("category") != "accessory" {
		t.Errorf("category = %q, want accessory", m.GetString("category"))
	}
	if m.GetString("boq_section") != "accessories" {
		t.Errorf("boq_section = %q, want accessories (category default)", m.GetString("boq_section"))
	}
	if m.GetFloat("wastage_percent") != 2 {
		t.Errorf("wastage_percent = %v, want override 2", m.GetFloat("wastage_percent"))
	}
	if len(result.Derived) != 0 {
		t.Errorf("override to accessory must suppress derivation, got %d children", len(result.Derived))
	}
}

func TestCreateMaterial_ZeroQuantityNoDerivation(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	board := testhelpers.CreateTestBoard(t, app, "DB-T-01")
	circuit := testhelpers.CreateTestCircuit(t, app, board.Id, "Spare way")

	for _, qty := range []float64{0, -10} {
		result, err := services.CreateMaterial(app, services.MaterialInput{
			CircuitID:   circuit.Id,
			Description: "4mm PVC insulated cable",
			Unit:        "m",
			Quantity:    qty,
		})
		if err != nil {
			t.Fatalf("CreateMaterial(qty=%v) failed: %v", qty, err)
		}
		if result.Material.GetFloat("qty") != 0 {
			t.Errorf("qty %v clamped to %v, want 0", qty, result.Material.GetFloat("qty"))
		}
		if len(result.Derived) != 0 {
			t.Errorf("qty %v: expected no derived children, got %d", qty, len(result.Derived))
		}
	}
}

func TestCreateMaterial_RequiresDescriptionAndCircuit(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	board := testhelpers.CreateTestBoard(t, app, "DB-T-01")
	circuit := testhelpers.CreateTestCircuit(t, app, board.Id, "Ring main")

	if _, err := services.CreateMaterial(app, services.MaterialInput{
		CircuitID:   circuit.Id,
		Description: "   ",
	}); err == nil {
		t.Error("expected error for blank description")
	}

	if _, err := services.CreateMaterial(app, services.MaterialInput{
		Description: "4mm cable",
	}); err == nil {
		t.Error("expected error for missing circuit")
	}
}

func TestCreateMaterial_GeneratesItemCode(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	board := testhelpers.CreateTestBoard(t, app, "DB-T-01")
	circuit := testhelpers.CreateTestCircuit(t, app, board.Id, "Ring main")

	first, err := services.CreateMaterial(app, services.MaterialInput{
		CircuitID:      circuit.Id,
		Description:    "13A twin switched socket",
		Unit:           "Nos",
		Quantity:       12,
		SkipDerivation: true,
	})
	if err != nil {
		t.Fatalf("CreateMaterial failed: %v", err)
	}

	fy := services.GetFiscalYear(time.Now())
	wantPrefix := "BT-FIX-" + fy + "-"
	code := first.Material.GetString("item_code")
	if !strings.HasPrefix(code, wantPrefix) {
		t.Fatalf("item_code = %q, want prefix %q", code, wantPrefix)
	}
	if !strings.HasSuffix(code, "-001") {
		t.Errorf("first item_code = %q, want sequence 001", code)
	}

	second, err := services.CreateMaterial(app, services.MaterialInput{
		CircuitID:   circuit.Id,
		Description: "20A DP isolator",
		Unit:        "Nos",
		Quantity:    2,
	})
	if err != nil {
		t.Fatalf("CreateMaterial failed: %v", err)
	}
	if got := second.Material.GetString("item_code"); !strings.HasSuffix(got, "-002") {
		t.Errorf("second item_code = %q, want sequence 002", got)
	}

	// An explicit code is kept verbatim.
	explicit, err := services.CreateMaterial(app, services.MaterialInput{
		CircuitID:   circuit.Id,
		Description: "Blank plate",
		Unit:        "Nos",
		Quantity:    1,
		ItemCode:    "CUSTOM-001",
	})
	if err != nil {
		t.Fatalf("CreateMaterial failed: %v", err)
	}
	if got := explicit.Material.GetString("item_code"); got != "CUSTOM-001" {
		t.Errorf("item_code = %q, want CUSTOM-001", got)
	}
}

func TestFindDerivedMaterials(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	board := testhelpers.CreateTestBoard(t, app, "DB-T-01")
	circuit := testhelpers.CreateTestCircuit(t, app, board.Id, "Ring main")

	result, err := services.CreateMaterial(app, services.MaterialInput{
		CircuitID:   circuit.Id,
		Description: "4mm PVC insulated cable",
		Unit:        "m",
		Quantity:    50,
	})
	if err != nil {
		t.Fatalf("CreateMaterial failed: %v", err)
	}

	children, err := services.FindDerivedMaterials(app, result.Material.Id)
	if err != nil {
		t.Fatalf("FindDerivedMaterials failed: %v", err)
	}
	if len(children) != len(result.Derived) {
		t.Errorf("found %d children, create reported %d", len(children), len(result.Derived))
	}
}

func TestDeleteMaterial_CascadesToChildren(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	board := testhelpers.CreateTestBoard(t, app, "DB-T-01")
	circuit := testhelpers.CreateTestCircuit(t, app, board.Id, "Ring main")

	result, err := services.CreateMaterial(app, services.MaterialInput{
		CircuitID:   circuit.Id,
		Description: "2.5mm twin and earth cable",
		Unit:        "m",
		Quantity:    85,
	})
	if err != nil {
		t.Fatalf("CreateMaterial failed: %v", err)
	}
	if len(result.Derived) == 0 {
		t.Fatal("expected derived children to cascade over")
	}

	if err := services.DeleteMaterial(app, result.Material.Id); err != nil {
		t.Fatalf("DeleteMaterial failed: %v", err)
	}

	if _, err := app.FindRecordById("circuit_materials", result.Material.Id); err == nil {
		t.Error("primary material still exists after delete")
	}
	for _, child := range result.Derived {
		if _, err := app.FindRecordById("circuit_materials", child.Id); err == nil {
			t.Errorf("derived child %q still exists after cascade", child.GetString("description"))
		}
	}
}

func TestDeleteMaterial_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := services.DeleteMaterial(app, "missing123"); err == nil {
		t.Error("expected error deleting unknown material")
	}
}

func TestUnlinkDrawingRef(t *testing.T) {
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

	unlinked, err := services.UnlinkDrawingRef(app, result.Material.Id)
	if err != nil {
		t.Fatalf("UnlinkDrawingRef failed: %v", err)
	}
	if unlinked.GetString("drawing_ref") != "" {
		t.Errorf("drawing_ref = %q, want empty", unlinked.GetString("drawing_ref"))
	}

	// The material and its children survive the unlink.
	if _, err := app.FindRecordById("circuit_materials", result.Material.Id); err != nil {
		t.Error("material deleted by unlink")
	}
	children, err := services.FindDerivedMaterials(app, result.Material.Id)
	if err != nil {
		t.Fatalf("FindDerivedMaterials failed: %v", err)
	}
	if len(children) != len(result.Derived) {
		t.Errorf("children count changed from %d to %d after unlink", len(result.Derived), len(children))
	}
}

func TestCreateMaterial_SectionOverrideKeepsClassifiedCategory(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	board := testhelpers.CreateTestBoard(t, app, "DB-T-01")
	circuit := testhelpers.CreateTestCircuit(t, app, board.Id, "Ring main")

	// Section override without a category: the classifier still decides
	// category and wastage, only the billing section moves.
	result, err := services.CreateMaterial(app, services.MaterialInput{
		CircuitID:      circuit.Id,
		Description:    "4mm PVC insulated cable",
		Unit:           "m",
		Quantity:       50,
		Section:        services.SectionGeneral,
		SkipDerivation: true,
	})
	if err != nil {
		t.Fatalf("CreateMaterial failed: %v", err)
	}
	m := result.Material
	if m.GetString("category") != "cable" {
		t.Errorf("category = %q, want cable", m.GetString("category"))
	}
	if m.GetString("boq_section") != "general" {
		t.Errorf("boq_section = %q, want general (override)", m.GetString("boq_section"))
	}
	if m.GetFloat("wastage_percent") != 5 {
		t.Errorf("wastage_percent = %v, want classified 5", m.GetFloat("wastage_percent"))
	}
}
