package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/pocketbase/pocketbase"
)

// DeleteByDrawingRef resolves an external drawing-element reference to a
// circuit material and cascade-deletes it together with its derived
// children. The drawing tool fires this for every removed element, linked
// or not, so an unknown reference is a no-op rather than an error: the
// returned id is empty when nothing matched.
func DeleteByDrawingRef(app *pocketbase.PocketBase, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", nil
	}

	record, err := app.FindFirstRecordByFilter(
		"circuit_materials",
		"drawing_ref = {:ref}",
		map[string]any{"ref": ref},
	)
	if err != nil {
		// Only a missing match is a no-op; a broken store must surface.
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("look up drawing ref %q: %w", ref, err)
	}
	if record == nil {
		return "", nil
	}

	if err := DeleteMaterial(app, record.Id); err != nil {
		return "", err
	}

	return record.Id, nil
}
