package services

import (
	"testing"
)

func TestGenerateSchedulePDF_Basic(t *testing.T) {
	result, err := GenerateSchedulePDF(sampleScheduleData())
	if err != nil {
		t.Fatalf("GenerateSchedulePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateSchedulePDF() returned empty bytes")
	}
	// PDF files start with %PDF
	if len(result) > 4 && string(result[:5]) != "%PDF-" {
		t.Errorf("result does not start with PDF header, got %q", string(result[:5]))
	}
}

func TestGenerateSchedulePDF_EmptySchedule(t *testing.T) {
	data := ScheduleData{
		CircuitName: "Spare way",
		CreatedDate: "15 Jan 2026",
	}

	result, err := GenerateSchedulePDF(data)
	if err != nil {
		t.Fatalf("GenerateSchedulePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateSchedulePDF() returned empty bytes")
	}
}

func TestGenerateSchedulePDF_ManyRows(t *testing.T) {
	data := sampleScheduleData()
	rows := make([]ScheduleRow, 0, 120)
	for i := 0; i < 120; i++ {
		rows = append(rows, ScheduleRow{
			Index:       "1",
			Description: "4mm PVC insulated cable",
			Unit:        "m",
			Qty:         50,
			GrossQty:    52.5,
		})
	}
	data.Sections = []ScheduleSection{
		{Section: SectionCablesWiring, Title: SectionTitles[SectionCablesWiring], Rows: rows},
	}

	result, err := GenerateSchedulePDF(data)
	if err != nil {
		t.Fatalf("GenerateSchedulePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateSchedulePDF() returned empty bytes")
	}
}
