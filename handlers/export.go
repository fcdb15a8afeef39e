package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"boardtracker/services"
)

// buildScheduleData fetches a circuit and its materials, grouping them into
// BOQ sections in the fixed export order.
func buildScheduleData(app *pocketbase.PocketBase, circuitID string) (services.ScheduleData, error) {
	circuit, err := app.FindRecordById("circuits", circuitID)
	if err != nil {
		return services.ScheduleData{}, fmt.Errorf("circuit not found: %w", err)
	}

	boardName := ""
	if board, err := app.FindRecordById("boards", circuit.GetString("board")); err == nil {
		boardName = board.GetString("name")
	}

	materials, err := app.FindRecordsByFilter(
		"circuit_materials",
		"circuit = {:circuitId}",
		"created",
		0,
		0,
		map[string]any{"circuitId": circuitID},
	)
	if err != nil {
		materials = nil
	}

	bySection := make(map[services.BOQSection][]*core.Record)
	for _, m := range materials {
		section := services.BOQSection(m.GetString("boq_section"))
		bySection[section] = append(bySection[section], m)
	}

	var sections []services.ScheduleSection
	var forTotals []services.MaterialForTotals

	for _, section := range services.SectionOrder {
		records := bySection[section]
		if len(records) == 0 {
			continue
		}

		var rows []services.ScheduleRow
		var subtotal float64

		for i, m := range records {
			grossQty := m.GetFloat("gross_qty")
			supplyRate := m.GetFloat("supply_rate")
			installRate := m.GetFloat("install_rate")
			amount := services.CalcMaterialAmount(grossQty, supplyRate, installRate)
			subtotal += amount

			rows = append(rows, services.ScheduleRow{
				Index:       fmt.Sprintf("%d", i+1),
				ItemCode:    m.GetString("item_code"),
				Description: m.GetString("description"),
				Unit:        m.GetString("unit"),
				Qty:         m.GetFloat("qty"),
				GrossQty:    grossQty,
				SupplyRate:  supplyRate,
				InstallRate: installRate,
				Amount:      amount,
				Derived:     m.GetBool("is_auto_generated"),
			})

			forTotals = append(forTotals, services.MaterialForTotals{
				GrossQty:    grossQty,
				SupplyRate:  supplyRate,
				InstallRate: installRate,
			})
		}

		sections = append(sections, services.ScheduleSection{
			Section:  section,
			Title:    services.SectionTitles[section],
			Rows:     rows,
			Subtotal: subtotal,
		})
	}

	createdDate := "—"
	if dt := circuit.GetDateTime("created"); !dt.IsZero() {
		createdDate = dt.Time().Format("02 Jan 2006")
	}

	return services.ScheduleData{
		BoardName:   boardName,
		CircuitName: circuit.GetString("description"),
		CreatedDate: createdDate,
		Sections:    sections,
		Totals:      services.CalcScheduleTotals(forTotals),
	}, nil
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// HandleScheduleExportExcel returns a handler that generates and downloads
// an Excel material schedule for a circuit.
// GET /circuits/{id}/schedule/export/excel
func HandleScheduleExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		circuitID := e.Request.PathValue("id")
		if circuitID == "" {
			return e.String(http.StatusBadRequest, "Missing circuit ID")
		}

		data, err := buildScheduleData(app, circuitID)
		if err != nil {
			log.Printf("export_excel: %v", err)
			return e.String(http.StatusNotFound, "Circuit not found")
		}

		xlsxBytes, err := services.GenerateScheduleExcel(data)
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("Schedule_%s_%d.xlsx", sanitizeFilename(data.CircuitName), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleScheduleExportPDF returns a handler that generates and downloads a
// PDF material schedule for a circuit.
// GET /circuits/{id}/schedule/export/pdf
func HandleScheduleExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		circuitID := e.Request.PathValue("id")
		if circuitID == "" {
			return e.String(http.StatusBadRequest, "Missing circuit ID")
		}

		data, err := buildScheduleData(app, circuitID)
		if err != nil {
			log.Printf("export_pdf: %v", err)
			return e.String(http.StatusNotFound, "Circuit not found")
		}

		pdfBytes, err := services.GenerateSchedulePDF(data)
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("Schedule_%s_%d.pdf", sanitizeFilename(data.CircuitName), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}
