package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateSchedulePDF creates a PDF document for a circuit material schedule
// using maroto/v2. It returns the raw PDF bytes or an error.
func GenerateSchedulePDF(data ScheduleData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addScheduleHeader(m, data)
	addScheduleTableHeader(m)

	for _, section := range data.Sections {
		addSectionRow(m, section)
		for _, r := range section.Rows {
			addScheduleRow(m, r)
		}
		addSubtotalRow(m, section)
	}

	addScheduleSummary(m, data)
	addScheduleFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addScheduleHeader adds the circuit title and board/date line.
func addScheduleHeader(m core.Maroto, data ScheduleData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New("Material Schedule - "+data.CircuitName, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Board: %s", data.BoardName), props.Text{
					Size:  9,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Date: %s", data.CreatedDate), props.Text{
					Size:  9,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)

	// Spacer
	m.AddRows(row.New(4))
}

// addScheduleTableHeader adds the column header row for the schedule table.
func addScheduleTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("#", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Code", headerText)).WithStyle(&headerCell),
			col.New(3).Add(text.New("Description", headerTextLeft)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Unit", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Qty", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Gross", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Supply", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Install", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Amount", headerText)).WithStyle(&headerCell),
		),
	)
}

// addSectionRow adds a BOQ section heading band.
func addSectionRow(m core.Maroto, section ScheduleSection) {
	bg := &props.Color{Red: 232, Green: 232, Blue: 232}
	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(
				text.New(section.Title, props.Text{
					Size:  8,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			).WithStyle(&props.Cell{BackgroundColor: bg}),
		),
	)
}

// addScheduleRow adds a single material row, indenting derived materials.
func addScheduleRow(m core.Maroto, r ScheduleRow) {
	var cellStyle *props.Cell
	textStyle := fontstyle.Normal
	descPrefix := ""

	if r.Derived {
		descPrefix = "  "
		bg := &props.Color{Red: 245, Green: 245, Blue: 245}
		cellStyle = &props.Cell{BackgroundColor: bg}
		textStyle = fontstyle.Italic
	}

	baseText := props.Text{
		Size:  7,
		Style: textStyle,
		Align: align.Center,
	}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	colIndex := col.New(1).Add(text.New(r.Index, baseText))
	colCode := col.New(1).Add(text.New(r.ItemCode, baseText))
	colDesc := col.New(3).Add(text.New(descPrefix+r.Description, leftText))
	colUnit := col.New(1).Add(text.New(r.Unit, baseText))
	colQty := col.New(1).Add(text.New(FormatQty(r.Qty), rightText))
	colGross := col.New(1).Add(text.New(FormatQty(r.GrossQty), rightText))
	colSupply := col.New(1).Add(text.New(FormatINR(r.SupplyRate), rightText))
	colInstall := col.New(1).Add(text.New(FormatINR(r.InstallRate), rightText))
	colAmount := col.New(2).Add(text.New(FormatINR(r.Amount), rightText))

	if cellStyle != nil {
		colIndex = colIndex.WithStyle(cellStyle)
		colCode = colCode.WithStyle(cellStyle)
		colDesc = colDesc.WithStyle(cellStyle)
		colUnit = colUnit.WithStyle(cellStyle)
		colQty = colQty.WithStyle(cellStyle)
		colGross = colGross.WithStyle(cellStyle)
		colSupply = colSupply.WithStyle(cellStyle)
		colInstall = colInstall.WithStyle(cellStyle)
		colAmount = colAmount.WithStyle(cellStyle)
	}

	m.AddRows(
		row.New(7).Add(
			colIndex,
			colCode,
			colDesc,
			colUnit,
			colQty,
			colGross,
			colSupply,
			colInstall,
			colAmount,
		),
	)
}

// addSubtotalRow adds the section subtotal line.
func addSubtotalRow(m core.Maroto, section ScheduleSection) {
	m.AddRows(
		row.New(7).Add(
			col.New(10).Add(
				text.New("Subtotal", props.Text{
					Size:  8,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			),
			col.New(2).Add(
				text.New(FormatINR(section.Subtotal), props.Text{
					Size:  8,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			),
		),
	)
}

// addScheduleSummary adds the supply/install/grand totals at the bottom.
func addScheduleSummary(m core.Maroto, data ScheduleData) {
	// Spacer before summary
	m.AddRows(row.New(6))

	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	valueStyle := labelStyle

	summaries := []struct {
		label string
		value float64
	}{
		{"Total Supply Amount", data.Totals.TotalSupply},
		{"Total Install Amount", data.Totals.TotalInstall},
		{"Grand Total", data.Totals.Total},
	}

	for _, s := range summaries {
		m.AddRows(
			row.New(8).Add(
				col.New(8).Add(
					text.New(s.label, labelStyle),
				).WithStyle(summaryCell),
				col.New(4).Add(
					text.New(FormatINR(s.value), valueStyle),
				).WithStyle(summaryCell),
			),
		)
	}
}

// addScheduleFooter adds the generated-date line at the bottom.
func addScheduleFooter(m core.Maroto, data ScheduleData) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Generated on %s", data.CreatedDate),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}
