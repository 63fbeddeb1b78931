package export

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	estimateSheet = "Estimate"
	scheduleSheet = "Schedule"

	// Label of the row holding the base estimate total.
	TotalLabel = "Estimate total"
	// Label of the row holding the out-the-door total.
	OutTheDoorLabel = "Out-the-door total"
)

// ErrNoEstimate is returned when a Report carries no estimate.
var ErrNoEstimate = errors.New("export: report has no estimate")

type styles struct {
	title, subtitle, header, division, item, money, subtotal, total int
}

// Excel renders the report as an XLSX workbook: line items grouped by
// division with subtotals, the out-the-door breakdown, and a schedule sheet
// when one is present.
func Excel(r Report) ([]byte, error) {
	if r.Estimate == nil {
		return nil, ErrNoEstimate
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), estimateSheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I"}
	widths := []float64{44, 12, 10, 8, 14, 14, 16, 16, 12}
	for i, col := range columns {
		if err := f.SetColWidth(estimateSheet, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}
	lastCol := columns[len(columns)-1]

	w := sheetWriter{f: f, sheet: estimateSheet}

	// ── Title block ─────────────────────────────────────────────────────

	w.set("A1", sanitizeExcelCell(r.title()), st.title)
	_ = f.MergeCell(estimateSheet, "A1", lastCol+"1")
	w.set("A2", "Generated "+r.generated(), st.subtitle)
	if r.Input != nil {
		w.set("A3", sanitizeExcelCell(r.summary()), st.subtitle)
	}

	row := 5
	headers := []string{"Item", "Tier", "Qty", "Unit", "Unit Low", "Unit High", "Total Low", "Total High", "Note"}
	for i, h := range headers {
		w.set(cell(i+1, row), h, st.header)
	}
	row++

	// ── Line items by division ──────────────────────────────────────────

	for _, sec := range sections(r.Estimate) {
		w.set(cell(1, row), sanitizeExcelCell(sec.Total.Label), st.division)
		_ = f.MergeCell(estimateSheet, cell(1, row), cell(len(columns), row))
		row++

		for _, item := range sec.Items {
			w.set(cell(1, row), sanitizeExcelCell(itemName(item)), st.item)
			w.set(cell(2, row), sanitizeExcelCell(item.Tier), st.item)
			w.set(cell(3, row), item.Quantity.InexactFloat64(), st.item)
			w.set(cell(4, row), string(item.Unit), st.item)
			w.set(cell(5, row), cents(item.UnitLow), st.money)
			w.set(cell(6, row), cents(item.UnitHigh), st.money)
			w.set(cell(7, row), cents(item.TotalLow), st.money)
			w.set(cell(8, row), cents(item.TotalHigh), st.money)
			if item.Fallback {
				w.set(cell(9, row), "fallback", st.item)
			}
			row++
		}

		w.set(cell(6, row), "Subtotal", st.subtotal)
		w.set(cell(7, row), cents(sec.Total.TotalLow), st.subtotal)
		w.set(cell(8, row), cents(sec.Total.TotalHigh), st.subtotal)
		row += 2
	}

	// ── Totals ──────────────────────────────────────────────────────────

	w.set(cell(1, row), TotalLabel, st.total)
	w.set(cell(7, row), cents(r.Estimate.TotalLow), st.total)
	w.set(cell(8, row), cents(r.Estimate.TotalHigh), st.total)
	row++

	if otd := r.Estimate.OutTheDoor; otd != nil {
		for _, line := range otd.Lines() {
			w.set(cell(1, row), line.Label, st.item)
			w.set(cell(2, row), percent(line.Rate), st.item)
			w.set(cell(7, row), cents(line.Cost.Low), st.money)
			w.set(cell(8, row), cents(line.Cost.High), st.money)
			row++
		}
		w.set(cell(1, row), OutTheDoorLabel, st.total)
		w.set(cell(7, row), cents(otd.Total.Low), st.total)
		w.set(cell(8, row), cents(otd.Total.High), st.total)
		row++
	}

	if fin := r.Financing; fin != nil {
		row++
		w.set(cell(1, row), "Financing", st.division)
		row++
		for _, kv := range [][2]any{
			{"Loan amount", fin.LoanAmount},
			{"Monthly payment", fin.MonthlyPayment},
			{"Total interest", fin.TotalInterest},
		} {
			w.set(cell(1, row), kv[0], st.item)
			w.set(cell(7, row), kv[1], st.money)
			row++
		}
	}

	if len(r.Estimate.Warnings) > 0 {
		row++
		w.set(cell(1, row), "Warnings", st.division)
		row++
		for _, warn := range r.Estimate.Warnings {
			w.set(cell(1, row), sanitizeExcelCell(warn.Message), st.item)
			row++
		}
	}

	if r.Schedule != nil {
		if err := writeSchedule(f, r, st); err != nil {
			return nil, err
		}
	}

	if w.err != nil {
		return nil, w.err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSchedule(f *excelize.File, r Report, st styles) error {
	if _, err := f.NewSheet(scheduleSheet); err != nil {
		return fmt.Errorf("add schedule sheet: %w", err)
	}
	if err := f.SetColWidth(scheduleSheet, "A", "A", 34); err != nil {
		return fmt.Errorf("set col width: %w", err)
	}

	w := sheetWriter{f: f, sheet: scheduleSheet}
	w.set("A1", "Phase", st.header)
	w.set("B1", "Weeks", st.header)
	row := 2
	for _, p := range r.Schedule.Phases {
		w.set(cell(1, row), p.Name, st.item)
		w.set(cell(2, row), p.DurationWeeks, st.item)
		row++
	}
	w.set(cell(1, row), "Total weeks", st.total)
	w.set(cell(2, row), r.Schedule.TotalWeeks, st.item)
	row++
	w.set(cell(1, row), "Total months", st.total)
	w.set(cell(2, row), r.Schedule.TotalMonths, st.item)
	return w.err
}

// sheetWriter keeps the first failure so the layout code stays linear.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) set(ref string, value any, style int) {
	if w.err != nil {
		return
	}
	if err := w.f.SetCellValue(w.sheet, ref, value); err != nil {
		w.err = fmt.Errorf("set %s!%s: %w", w.sheet, ref, err)
		return
	}
	if err := w.f.SetCellStyle(w.sheet, ref, ref, style); err != nil {
		w.err = fmt.Errorf("style %s!%s: %w", w.sheet, ref, err)
	}
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func newStyles(f *excelize.File) (styles, error) {
	moneyFmt := "$#,##0.00"
	var st styles
	defs := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&st.title, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}}},
		{&st.subtitle, &excelize.Style{Font: &excelize.Font{Size: 11, Color: "#555555"}}},
		{&st.header, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border:    thinBorders(),
		}},
		{&st.division, &excelize.Style{
			Font: &excelize.Font{Bold: true, Size: 11},
			Fill: excelize.Fill{Type: "pattern", Color: []string{"#E8E8E8"}, Pattern: 1},
		}},
		{&st.item, &excelize.Style{Border: thinBorders()}},
		{&st.money, &excelize.Style{Border: thinBorders(), CustomNumFmt: &moneyFmt}},
		{&st.subtotal, &excelize.Style{Font: &excelize.Font{Bold: true}, CustomNumFmt: &moneyFmt}},
		{&st.total, &excelize.Style{
			Font:         &excelize.Font{Bold: true, Size: 12},
			Fill:         excelize.Fill{Type: "pattern", Color: []string{"#FFF2CC"}, Pattern: 1},
			CustomNumFmt: &moneyFmt,
		}},
	}

	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return styles{}, fmt.Errorf("create style: %w", err)
		}
		*d.dst = id
	}
	return st, nil
}

// sanitizeExcelCell prefixes text that Excel would otherwise evaluate as a
// formula.
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

func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}

