package collections_test

import (
	"testing"

	"boardtracker/collections"
	"boardtracker/testhelpers"
)

func TestSeed_CreatesData(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	// Verify boards were created
	boardsCol, _ := app.FindCollectionByNameOrId("boards")
	boards, err := app.FindAllRecords(boardsCol)
	if err != nil {
		t.Fatalf("query boards error: %v", err)
	}
	if len(boards) != 2 {
		t.Fatalf("expected 2 boards, got %d", len(boards))
	}

	// Circuits linked to their boards
	circuitsCol, _ := app.FindCollectionByNameOrId("circuits")
	circuits, _ := app.FindAllRecords(circuitsCol)
	if len(circuits) != 3 {
		t.Fatalf("expected 3 circuits, got %d", len(circuits))
	}
	boardIDs := map[string]bool{}
	for _, b := range boards {
		boardIDs[b.Id] = true
	}
	for _, c := range circuits {
		if !boardIDs[c.GetString("board")] {
			t.Errorf("circuit %q not linked to a seeded board", c.GetString("description"))
		}
	}

	// Materials exist, and seeded cable runs brought derived children along
	materialsCol, _ := app.FindCollectionByNameOrId("circuit_materials")
	materials, _ := app.FindAllRecords(materialsCol)
	if len(materials) == 0 {
		t.Fatal("expected seeded materials")
	}

	var primaries, derived int
	for _, m := range materials {
		if m.GetBool("is_auto_generated") {
			derived++
			if m.GetString("parent_material") == "" {
				t.Errorf("derived material %q has no parent", m.GetString("description"))
			}
		} else {
			primaries++
		}
	}
	if primaries != 5 {
		t.Errorf("expected 5 primary materials, got %d", primaries)
	}
	// Three seeded cable runs, four supporting materials each.
	if derived != 12 {
		t.Errorf("expected 12 derived materials, got %d", derived)
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	if err := collections.Seed(app); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}

	boardsCol, _ := app.FindCollectionByNameOrId("boards")
	boards, _ := app.FindAllRecords(boardsCol)
	if len(boards) != 2 {
		t.Errorf("expected 2 boards after double seed, got %d", len(boards))
	}
}

func TestSeed_DrawingRefsLinked(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	for _, ref := range []string{"DWG-GF-PWR-001", "DWG-PL-MEC-014"} {
		record, err := app.FindFirstRecordByFilter(
			"circuit_materials",
			"drawing_ref = {:ref}",
			map[string]any{"ref": ref},
		)
		if err != nil || record == nil {
			t.Errorf("no seeded material linked to drawing ref %q", ref)
		}
	}
}
