package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"boardtracker/services"
)

// ── Definition structs ───────────────────────────────────────────────────

type materialDef struct {
	description    string
	unit           string
	qty            float64
	supplyRate     float64
	installRate    float64
	skipDerivation bool
	drawingRef     string
}

type circuitDef struct {
	wayNumber     int
	description   string
	phase         string
	breakerRating float64
	cableRef      string
	materials     []materialDef
}

type boardDef struct {
	name       string
	location   string
	boardRef   string
	supplyType string
	circuits   []circuitDef
}

var seedBoards = []boardDef{
	{
		name:       "DB-01 Ground Floor",
		location:   "Ground floor riser cupboard",
		boardRef:   "DB-GF-01",
		supplyType: "three_phase",
		circuits: []circuitDef{
			{
				wayNumber:     1,
				description:   "Ground floor small power ring",
				phase:         "L1",
				breakerRating: 32,
				cableRef:      "C-GF-001",
				materials: []materialDef{
					{
						description: "2.5mm twin and earth cable",
						unit:        "m",
						qty:         85,
						supplyRate:  42,
						installRate: 30,
						drawingRef:  "DWG-GF-PWR-001",
					},
					{
						description: "13A twin switched socket outlet, white",
						unit:        "Nos",
						qty:         12,
						supplyRate:  310,
						installRate: 150,
					},
				},
			},
			{
				wayNumber:     2,
				description:   "Ground floor lighting",
				phase:         "L2",
				breakerRating: 10,
				cableRef:      "C-GF-002",
				materials: []materialDef{
					{
						description: "1.5mm LSF singles",
						unit:        "m",
						qty:         120,
						supplyRate:  18,
						installRate: 22,
					},
					{
						description: "600x600 LED panel luminaire",
						unit:        "Nos",
						qty:         18,
						supplyRate:  2400,
						installRate: 350,
					},
				},
			},
		},
	},
	{
		name:       "DB-02 Plant Room",
		location:   "Basement plant room",
		boardRef:   "DB-PL-01",
		supplyType: "three_phase",
		circuits: []circuitDef{
			{
				wayNumber:     1,
				description:   "AHU supply",
				phase:         "TP",
				breakerRating: 63,
				cableRef:      "C-PL-001",
				materials: []materialDef{
					{
						description: "16mm 4 core SWA cable",
						unit:        "m",
						qty:         40,
						supplyRate:  380,
						installRate: 120,
						drawingRef:  "DWG-PL-MEC-014",
					},
				},
			},
		},
	},
}

// Seed populates the boards, circuits and circuit_materials collections with
// a small demonstration installation. Materials are created through
// services.CreateMaterial so seeded cable runs get their derived supporting
// materials, exactly as editor-created ones do. Safe to call on every
// startup because it returns early if any board records exist.
func Seed(app *pocketbase.PocketBase) error {
	boardsCol, err := app.FindCollectionByNameOrId("boards")
	if err != nil {
		return fmt.Errorf("seed: could not find boards collection: %w", err)
	}
	existing, err := app.FindAllRecords(boardsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query boards: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: boards collection is empty – inserting seed data …")

	circuitsCol, err := app.FindCollectionByNameOrId("circuits")
	if err != nil {
		return fmt.Errorf("seed: could not find circuits collection: %w", err)
	}

	for _, bd := range seedBoards {
		boardRecord := core.NewRecord(boardsCol)
		boardRecord.Set("name", bd.name)
		boardRecord.Set("location", bd.location)
		boardRecord.Set("board_ref", bd.boardRef)
		boardRecord.Set("supply_type", bd.supplyType)

		if err := app.Save(boardRecord); err != nil {
			return fmt.Errorf("seed: could not save board %q: %w", bd.name, err)
		}

		for _, cd := range bd.circuits {
			circuitRecord := core.NewRecord(circuitsCol)
			circuitRecord.Set("board", boardRecord.Id)
			circuitRecord.Set("way_number", cd.wayNumber)
			circuitRecord.Set("description", cd.description)
			circuitRecord.Set("phase", cd.phase)
			circuitRecord.Set("breaker_rating", cd.breakerRating)
			circuitRecord.Set("cable_ref", cd.cableRef)

			if err := app.Save(circuitRecord); err != nil {
				return fmt.Errorf("seed: could not save circuit %q: %w", cd.description, err)
			}

			for _, md := range cd.materials {
				result, err := services.CreateMaterial(app, services.MaterialInput{
					CircuitID:      circuitRecord.Id,
					Description:    md.description,
					Unit:           md.unit,
					Quantity:       md.qty,
					SupplyRate:     md.supplyRate,
					InstallRate:    md.installRate,
					SkipDerivation: md.skipDerivation,
					DrawingRef:     md.drawingRef,
				})
				if err != nil {
					return fmt.Errorf("seed: could not create material %q: %w", md.description, err)
				}
				for _, failed := range result.FailedDerived {
					log.Printf("seed: derived material %q failed: %v", failed.Description, failed.Err)
				}
			}
		}
	}

	log.Println("seed: demo boards inserted.")
	return nil
}
