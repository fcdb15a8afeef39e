// Package handlers implements the JSON HTTP surface the board, circuit,
// material, document and roadmap editors talk to.
package handlers

import "github.com/pocketbase/pocketbase/core"

// materialJSON converts a circuit material record to its response shape.
func materialJSON(r *core.Record) map[string]any {
	return map[string]any{
		"id":                r.Id,
		"circuit":           r.GetString("circuit"),
		"description":       r.GetString("description"),
		"unit":              r.GetString("unit"),
		"item_code":         r.GetString("item_code"),
		"supply_rate":       r.GetFloat("supply_rate"),
		"install_rate":      r.GetFloat("install_rate"),
		"qty":               r.GetFloat("qty"),
		"category":          r.GetString("category"),
		"boq_section":       r.GetString("boq_section"),
		"status":            r.GetString("status"),
		"wastage_percent":   r.GetFloat("wastage_percent"),
		"wastage_qty":       r.GetFloat("wastage_qty"),
		"gross_qty":         r.GetFloat("gross_qty"),
		"is_auto_generated": r.GetBool("is_auto_generated"),
		"parent_material":   r.GetString("parent_material"),
		"drawing_ref":       r.GetString("drawing_ref"),
		"created":           r.GetDateTime("created").String(),
		"updated":           r.GetDateTime("updated").String(),
	}
}

func materialsJSON(records []*core.Record) []map[string]any {
	out := make([]map[string]any, 0, len(records))
	for _, r := range records {
		out = append(out, materialJSON(r))
	}
	return out
}

// boardJSON converts a board record to its response shape.
func boardJSON(r *core.Record) map[string]any {
	return map[string]any{
		"id":          r.Id,
		"name":        r.GetString("name"),
		"location":    r.GetString("location"),
		"board_ref":   r.GetString("board_ref"),
		"supply_type": r.GetString("supply_type"),
		"created":     r.GetDateTime("created").String(),
		"updated":     r.GetDateTime("updated").String(),
	}
}

// circuitJSON converts a circuit record to its response shape.
func circuitJSON(r *core.Record) map[string]any {
	return map[string]any{
		"id":             r.Id,
		"board":          r.GetString("board"),
		"way_number":     r.GetFloat("way_number"),
		"description":    r.GetString("description"),
		"phase":          r.GetString("phase"),
		"breaker_rating": r.GetFloat("breaker_rating"),
		"cable_ref":      r.GetString("cable_ref"),
		"created":        r.GetDateTime("created").String(),
		"updated":        r.GetDateTime("updated").String(),
	}
}

// folderJSON converts a document folder record to its response shape.
func folderJSON(r *core.Record) map[string]any {
	return map[string]any{
		"id":            r.Id,
		"name":          r.GetString("name"),
		"parent_folder": r.GetString("parent_folder"),
		"sort_order":    r.GetFloat("sort_order"),
		"created":       r.GetDateTime("created").String(),
		"updated":       r.GetDateTime("updated").String(),
	}
}

// documentJSON converts a document record to its response shape.
func documentJSON(r *core.Record) map[string]any {
	return map[string]any{
		"id":           r.Id,
		"folder":       r.GetString("folder"),
		"name":         r.GetString("name"),
		"file_ref":     r.GetString("file_ref"),
		"size_bytes":   r.GetFloat("size_bytes"),
		"content_type": r.GetString("content_type"),
		"created":      r.GetDateTime("created").String(),
		"updated":      r.GetDateTime("updated").String(),
	}
}

// roadmapItemJSON converts a roadmap item record to its response shape.
func roadmapItemJSON(r *core.Record) map[string]any {
	return map[string]any{
		"id":         r.Id,
		"board":      r.GetString("board"),
		"title":      r.GetString("title"),
		"status":     r.GetString("status"),
		"due_date":   r.GetDateTime("due_date").String(),
		"sort_order": r.GetFloat("sort_order"),
		"notes":      r.GetString("notes"),
		"created":    r.GetDateTime("created").String(),
		"updated":    r.GetDateTime("updated").String(),
	}
}
