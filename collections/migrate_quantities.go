package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"

	"boardtracker/services"
)

// MigrateMissingGrossQuantities backfills wastage_qty and gross_qty on
// material records created before those fields existed: any record with a
// positive net quantity and a zero gross quantity gets its quantities
// recomputed from the stored wastage percentage. Safe to call on every
// startup -- returns early if nothing to migrate.
func MigrateMissingGrossQuantities(app *pocketbase.PocketBase) error {
	materialsCol, err := app.FindCollectionByNameOrId("circuit_materials")
	if err != nil {
		return fmt.Errorf("migrate: could not find circuit_materials collection: %w", err)
	}

	stale, err := app.FindRecordsByFilter(
		materialsCol,
		"qty > 0 && gross_qty = 0",
		"",
		0,
		0,
		nil,
	)
	if err != nil {
		return fmt.Errorf("migrate: could not query stale materials: %w", err)
	}

	if len(stale) == 0 {
		return nil
	}

	log.Printf("migrate: found %d material(s) without gross quantities -- recomputing...\n", len(stale))

	for _, record := range stale {
		wastageQty, grossQty := services.ComputeGross(
			record.GetFloat("qty"),
			record.GetFloat("wastage_percent"),
		)

		record.Set("wastage_qty", wastageQty)
		record.Set("gross_qty", grossQty)

		if err := app.Save(record); err != nil {
			log.Printf("migrate: failed to update material %s: %v\n", record.Id, err)
			continue
		}
	}

	log.Println("migrate: gross quantity backfill complete.")
	return nil
}
