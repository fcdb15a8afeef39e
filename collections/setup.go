package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"boardtracker/services"
)

// Setup programmatically creates/ensures the boards, circuits,
// circuit_materials, document_folders, documents and roadmap_items
// collections exist.
func Setup(app *pocketbase.PocketBase) {
	boards := ensureCollection(app, "boards", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "location", Required: false})
		c.Fields.Add(&core.TextField{Name: "board_ref", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "supply_type",
			Required:  false,
			Values:    []string{"single_phase", "three_phase"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	circuits := ensureCollection(app, "circuits", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "board",
			Required:      true,
			CollectionId:  boards.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "way_number", Required: true})
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.TextField{Name: "phase", Required: false})
		c.Fields.Add(&core.NumberField{Name: "breaker_rating", Required: false})
		c.Fields.Add(&core.TextField{Name: "cable_ref", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	materials := ensureCollection(app, "circuit_materials", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "circuit",
			Required:      true,
			CollectionId:  circuits.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.TextField{Name: "unit", Required: false})
		c.Fields.Add(&core.TextField{Name: "item_code", Required: false})
		c.Fields.Add(&core.NumberField{Name: "supply_rate", Required: false})
		c.Fields.Add(&core.NumberField{Name: "install_rate", Required: false})
		c.Fields.Add(&core.NumberField{Name: "qty", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "category",
			Required:  true,
			Values:    services.CategoryOptions,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "boq_section",
			Required:  true,
			Values:    services.SectionOptions,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    services.StatusOptions,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "wastage_percent", Required: false})
		c.Fields.Add(&core.NumberField{Name: "wastage_qty", Required: false})
		c.Fields.Add(&core.NumberField{Name: "gross_qty", Required: false})
		c.Fields.Add(&core.BoolField{Name: "is_auto_generated", Required: false})
		c.Fields.Add(&core.TextField{Name: "drawing_ref", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	// parent_material self-relation needs the collection id, so it is added
	// after the collection exists. Deliberately NOT cascading: the cascade
	// is application-level (children deleted before their parent).
	ensureSelfRelation(app, materials, "parent_material")

	folders := ensureCollection(app, "document_folders", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})
	ensureSelfRelation(app, folders, "parent_folder")

	ensureCollection(app, "documents", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "folder",
			Required:      true,
			CollectionId:  folders.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "file_ref", Required: false})
		c.Fields.Add(&core.NumberField{Name: "size_bytes", Required: false})
		c.Fields.Add(&core.TextField{Name: "content_type", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "roadmap_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "board",
			Required:      false,
			CollectionId:  boards.Id,
			CascadeDelete: false,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "title", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"open", "in_progress", "done"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.DateField{Name: "due_date", Required: false})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: false})
		c.Fields.Add(&core.TextField{Name: "notes", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}

// ensureSelfRelation adds an optional single self-relation field to an
// already-saved collection if it is not present yet.
func ensureSelfRelation(app *pocketbase.PocketBase, collection *core.Collection, fieldName string) {
	if collection.Fields.GetByName(fieldName) != nil {
		return
	}

	collection.Fields.Add(&core.RelationField{
		Name:          fieldName,
		Required:      false,
		CollectionId:  collection.Id,
		CascadeDelete: false,
		MaxSelect:     1,
	})

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to add %q relation to %q: %v", fieldName, collection.Name, err)
	}
}
