package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateScheduleExcel creates an Excel workbook for a circuit material
// schedule, one section block per BOQ section, and returns the file bytes.
func GenerateScheduleExcel(data ScheduleData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Sheet name (max 31 chars).
	sheetName := data.CircuitName
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Schedule"
	}

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	// Column references (A through I).
	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I"}
	lastCol := columns[len(columns)-1] // "I"

	widths := []float64{6, 16, 44, 8, 10, 10, 14, 14, 16}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	sectionStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E8E8E8"}, Pattern: 1},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create section style: %w", err)
	}

	primaryStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create primary style: %w", err)
	}

	derivedStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10, Italic: true, Color: "#555555"},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create derived style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// ── Header rows (1-3) ───────────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell("Material Schedule - "+data.CircuitName))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	if data.BoardName != "" {
		if err := f.MergeCell(sheetName, "A2", lastCol+"2"); err != nil {
			return nil, fmt.Errorf("merge board: %w", err)
		}
		f.SetCellValue(sheetName, "A2", "Board: "+data.BoardName)
		f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)
	}

	if err := f.MergeCell(sheetName, "A3", lastCol+"3"); err != nil {
		return nil, fmt.Errorf("merge date: %w", err)
	}
	f.SetCellValue(sheetName, "A3", "Date: "+data.CreatedDate)
	f.SetCellStyle(sheetName, "A3", lastCol+"3", subtitleStyle)

	// ── Row 5: column headers ───────────────────────────────────────────

	headers := []string{"#", "Item Code", "Description", "Unit", "Qty", "Gross Qty", "Supply Rate", "Install Rate", "Amount"}
	for i, h := range headers {
		cell := fmt.Sprintf("%s5", columns[i])
		f.SetCellValue(sheetName, cell, h)
	}
	f.SetCellStyle(sheetName, "A5", lastCol+"5", headerStyle)

	// ── Section blocks (starting row 6) ─────────────────────────────────

	row := 6
	for _, section := range data.Sections {
		rowStr := fmt.Sprintf("%d", row)
		if err := f.MergeCell(sheetName, "A"+rowStr, lastCol+rowStr); err != nil {
			return nil, fmt.Errorf("merge section row: %w", err)
		}
		f.SetCellValue(sheetName, "A"+rowStr, sanitizeExcelCell(section.Title))
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, sectionStyle)
		row++

		for _, r := range section.Rows {
			rowStr = fmt.Sprintf("%d", row)

			desc := r.Description
			if r.Derived {
				desc = "  " + desc
			}

			f.SetCellValue(sheetName, "A"+rowStr, r.Index)
			f.SetCellValue(sheetName, "B"+rowStr, sanitizeExcelCell(r.ItemCode))
			f.SetCellValue(sheetName, "C"+rowStr, sanitizeExcelCell(desc))
			f.SetCellValue(sheetName, "D"+rowStr, sanitizeExcelCell(r.Unit))
			f.SetCellValue(sheetName, "E"+rowStr, r.Qty)
			f.SetCellValue(sheetName, "F"+rowStr, r.GrossQty)
			f.SetCellValue(sheetName, "G"+rowStr, FormatINR(r.SupplyRate))
			f.SetCellValue(sheetName, "H"+rowStr, FormatINR(r.InstallRate))
			f.SetCellValue(sheetName, "I"+rowStr, FormatINR(r.Amount))

			style := primaryStyle
			if r.Derived {
				style = derivedStyle
			}
			f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, style)
			row++
		}

		// Section subtotal.
		rowStr = fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "H"+rowStr, "Subtotal:")
		f.SetCellStyle(sheetName, "H"+rowStr, "H"+rowStr, summaryLabelStyle)
		f.SetCellValue(sheetName, "I"+rowStr, FormatINR(section.Subtotal))
		f.SetCellStyle(sheetName, "I"+rowStr, "I"+rowStr, summaryValueStyle)
		row += 2
	}

	// ── Summary rows ────────────────────────────────────────────────────

	summaryRow := fmt.Sprintf("%d", row)
	f.SetCellValue(sheetName, "H"+summaryRow, "Total Supply:")
	f.SetCellStyle(sheetName, "H"+summaryRow, "H"+summaryRow, summaryLabelStyle)
	f.SetCellValue(sheetName, "I"+summaryRow, FormatINR(data.Totals.TotalSupply))
	f.SetCellStyle(sheetName, "I"+summaryRow, "I"+summaryRow, summaryValueStyle)
	row++

	summaryRow = fmt.Sprintf("%d", row)
	f.SetCellValue(sheetName, "H"+summaryRow, "Total Install:")
	f.SetCellStyle(sheetName, "H"+summaryRow, "H"+summaryRow, summaryLabelStyle)
	f.SetCellValue(sheetName, "I"+summaryRow, FormatINR(data.Totals.TotalInstall))
	f.SetCellStyle(sheetName, "I"+summaryRow, "I"+summaryRow, summaryValueStyle)
	row++

	summaryRow = fmt.Sprintf("%d", row)
	f.SetCellValue(sheetName, "H"+summaryRow, "Grand Total:")
	f.SetCellStyle(sheetName, "H"+summaryRow, "H"+summaryRow, summaryLabelStyle)
	f.SetCellValue(sheetName, "I"+summaryRow, FormatINR(data.Totals.Total))
	f.SetCellStyle(sheetName, "I"+summaryRow, "I"+summaryRow, summaryValueStyle)

	// ── Write to buffer ─────────────────────────────────────────────────

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
