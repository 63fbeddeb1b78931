package export

import (
	"bytes"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/homecost/internal/estimate"
	"github.com/Simplici0/homecost/internal/finance"
	"github.com/Simplici0/homecost/internal/pricing"
	"github.com/Simplici0/homecost/internal/schedule"
)

func sampleReport(t *testing.T) Report {
	t.Helper()

	table := pricing.Default()
	in := estimate.WholeHouseInput{
		SquareFeet:  2400,
		Stories:     2,
		Bedrooms:    4,
		Bathrooms:   2.5,
		FinishLevel: pricing.FinishPremium,
		Pool:        estimate.PoolStandard,
		Location:    "miami",
	}
	res, err := estimate.EstimateHouse(table, in)
	if err != nil {
		t.Fatalf("EstimateHouse() error = %v", err)
	}
	sched, err := schedule.Estimate(table, in)
	if err != nil {
		t.Fatalf("schedule.Estimate() error = %v", err)
	}
	fin, err := finance.Calculate(500000, 20, 6.5, 30)
	if err != nil {
		t.Fatalf("finance.Calculate() error = %v", err)
	}
	return Report{
		Title:       "Lakeside Residence",
		Input:       &in,
		Estimate:    res,
		Schedule:    &sched,
		Financing:   &fin,
		GeneratedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func findRow(t *testing.T, f *excelize.File, sheet, label string) int {
	t.Helper()

	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("GetRows(%s) error = %v", sheet, err)
	}
	for i, r := range rows {
		if len(r) > 0 && r[0] == label {
			return i + 1
		}
	}
	t.Fatalf("row %q not found in %s", label, sheet)
	return 0
}

func TestExcel_TotalsMatchEstimate(t *testing.T) {
	r := sampleReport(t)

	data, err := Excel(r)
	if err != nil {
		t.Fatalf("Excel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != estimateSheet || sheets[1] != scheduleSheet {
		t.Fatalf("sheets = %v", sheets)
	}

	if title, _ := f.GetCellValue(estimateSheet, "A1"); title != "Lakeside Residence" {
		t.Fatalf("title = %q", title)
	}

	raw := excelize.Options{RawCellValue: true}
	checks := []struct {
		label string
		want  float64
	}{
		{TotalLabel, cents(r.Estimate.TotalHigh)},
		{OutTheDoorLabel, cents(r.Estimate.OutTheDoor.Total.High)},
	}
	for _, c := range checks {
		ref := cell(8, findRow(t, f, estimateSheet, c.label))
		got, err := f.GetCellValue(estimateSheet, ref, raw)
		if err != nil {
			t.Fatalf("GetCellValue(%s) error = %v", ref, err)
		}
		if got != formatFloat(c.want) {
			t.Fatalf("%s high = %s, want %s", c.label, got, formatFloat(c.want))
		}
	}

	for _, dt := range r.Estimate.DivisionTotals {
		if dt.TotalHigh.IsZero() {
			continue
		}
		findRow(t, f, estimateSheet, dt.Label)
	}

	ref := cell(2, findRow(t, f, scheduleSheet, "Total weeks"))
	if got, _ := f.GetCellValue(scheduleSheet, ref, raw); got != formatFloat(float64(r.Schedule.TotalWeeks)) {
		t.Fatalf("total weeks = %s, want %d", got, r.Schedule.TotalWeeks)
	}
}

func TestExcel_WithoutOptionalSections(t *testing.T) {
	r := sampleReport(t)
	r.Schedule = nil
	r.Financing = nil
	r.Input = nil
	r.Title = ""

	data, err := Excel(r)
	if err != nil {
		t.Fatalf("Excel() error = %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 1 {
		t.Fatalf("sheets = %v, want only the estimate", sheets)
	}
	if title, _ := f.GetCellValue(estimateSheet, "A1"); title != defaultTitle {
		t.Fatalf("title = %q, want %q", title, defaultTitle)
	}
}

func TestExcel_RequiresEstimate(t *testing.T) {
	if _, err := Excel(Report{}); !errors.Is(err, ErrNoEstimate) {
		t.Fatalf("Excel() error = %v, want ErrNoEstimate", err)
	}
	if _, err := PDF(Report{}); !errors.Is(err, ErrNoEstimate) {
		t.Fatalf("PDF() error = %v, want ErrNoEstimate", err)
	}
}

func TestPDF_ProducesDocument(t *testing.T) {
	data, err := PDF(sampleReport(t))
	if err != nil {
		t.Fatalf("PDF() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF: %q", data[:min(len(data), 8)])
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"Kitchen", "Kitchen"},
		{"=SUM(A1:A2)", "'=SUM(A1:A2)"},
		{"+1", "'+1"},
		{"-cmd", "'-cmd"},
		{"@import", "'@import"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := sanitizeExcelCell(tt.in); got != tt.want {
				t.Fatalf("sanitizeExcelCell(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSections_FollowDivisionOrderAndSkipEmpty(t *testing.T) {
	r := sampleReport(t)

	secs := sections(r.Estimate)
	if len(secs) == 0 {
		t.Fatal("no sections")
	}
	items := 0
	last := -1
	for _, s := range secs {
		idx := -1
		for i, d := range estimate.Divisions {
			if d == s.Total.Division {
				idx = i
			}
		}
		if idx <= last {
			t.Fatalf("division %s out of order", s.Total.Division)
		}
		last = idx
		items += len(s.Items)
	}
	if items != len(r.Estimate.LineItems) {
		t.Fatalf("sections hold %d items, estimate has %d", items, len(r.Estimate.LineItems))
	}
}
