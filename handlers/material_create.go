package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"boardtracker/services"
)

// parseBoolField interprets the common truthy form values.
func parseBoolField(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "on", "1", "yes":
		return true
	}
	return false
}

// HandleMaterialCreate returns a handler that records a circuit material.
// POST /circuits/{circuitId}/materials
//
// The description is classified unless the form carries an explicit
// category; cable materials get their supporting materials derived and
// persisted as children of the new record.
func HandleMaterialCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		circuitID := e.Request.PathValue("circuitId")
		if circuitID == "" {
			return e.String(http.StatusBadRequest, "Missing circuit ID")
		}

		if _, err := app.FindRecordById("circuits", circuitID); err != nil {
			log.Printf("material_create: circuit %s not found: %v", circuitID, err)
			return e.String(http.StatusNotFound, "Circuit not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			log.Printf("material_create: could not parse form: %v", err)
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		description := strings.TrimSpace(e.Request.FormValue("description"))

		// Validate required fields before anything is persisted.
		errors := make(map[string]string)
		if description == "" {
			errors["description"] = "Description is required"
		}

		qty := 0.0
		if rawQty := strings.TrimSpace(e.Request.FormValue("qty")); rawQty != "" {
			parsed, err := strconv.ParseFloat(rawQty, 64)
			if err != nil {
				errors["qty"] = "Quantity must be a number"
			} else if parsed < 0 {
				errors["qty"] = "Quantity cannot be negative"
			} else {
				qty = parsed
			}
		}

		category := services.MaterialCategory(strings.TrimSpace(e.Request.FormValue("category")))
		if category != "" && !validOption(string(category), services.CategoryOptions) {
			errors["category"] = "Unknown category"
		}
		section := services.BOQSection(strings.TrimSpace(e.Request.FormValue("boq_section")))
		if section != "" && !validOption(string(section), services.SectionOptions) {
			errors["boq_section"] = "Unknown BOQ section"
		}

		wastagePercent := 0.0
		if rawWastage := strings.TrimSpace(e.Request.FormValue("wastage_percent")); rawWastage != "" {
			parsed, err := strconv.ParseFloat(rawWastage, 64)
			if err != nil || parsed < 0 {
				errors["wastage_percent"] = "Wastage must be a non-negative number"
			} else {
				wastagePercent = parsed
			}
		}

		if len(errors) > 0 {
			return e.JSON(http.StatusBadRequest, map[string]any{"errors": errors})
		}

		supplyRate, _ := strconv.ParseFloat(e.Request.FormValue("supply_rate"), 64)
		installRate, _ := strconv.ParseFloat(e.Request.FormValue("install_rate"), 64)

		result, err := services.CreateMaterial(app, services.MaterialInput{
			CircuitID:      circuitID,
			Description:    description,
			Unit:           strings.TrimSpace(e.Request.FormValue("unit")),
			ItemCode:       strings.TrimSpace(e.Request.FormValue("item_code")),
			Quantity:       qty,
			SupplyRate:     supplyRate,
			InstallRate:    installRate,
			Category:       category,
			Section:        section,
			WastagePercent: wastagePercent,
			SkipDerivation: parseBoolField(e.Request.FormValue("skip_derivation")),
			DrawingRef:     strings.TrimSpace(e.Request.FormValue("drawing_ref")),
		})
		if err != nil {
			log.Printf("material_create: could not create material: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to create material")
		}

		failed := make([]map[string]string, 0, len(result.FailedDerived))
		for _, fd := range result.FailedDerived {
			failed = append(failed, map[string]string{
				"description": fd.Description,
				"error":       fd.Err.Error(),
			})
		}

		return e.JSON(http.StatusCreated, map[string]any{
			"material":       materialJSON(result.Material),
			"derived":        materialsJSON(result.Derived),
			"failed_derived": failed,
		})
	}
}

// validOption reports whether v is one of the allowed select values.
func validOption(v string, options []string) bool {
	for _, opt := range options {
		if v == opt {
			return true
		}
	}
	return false
}
