package export

import (
	"fmt"
	"strconv"

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
	"github.com/shopspring/decimal"

	"github.com/Simplici0/homecost/internal/money"
)

var (
	grey     = &props.Color{Red: 100, Green: 100, Blue: 100}
	headerBg = &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 243, Blue: 239}}

	labelStyle = props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Left, Color: grey}
	cellLeft   = props.Text{Size: 8, Align: align.Left}
	cellRight  = props.Text{Size: 8, Align: align.Right}
	boldLeft   = props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left}
	boldRight  = props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}
)

// PDF renders the report as an A4 document with the same sections as the
// spreadsheet.
func PDF(r Report) ([]byte, error) {
	if r.Estimate == nil {
		return nil, ErrNoEstimate
	}

	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
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

	addHeader(m, r)
	addLineItems(m, r)
	addTotals(m, r)
	if r.Schedule != nil {
		addSchedule(m, r)
	}
	if r.Financing != nil {
		addFinancing(m, r)
	}
	addWarnings(m, r)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate estimate pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func addHeader(m core.Maroto, r Report) {
	m.AddRows(
		row.New(10).Add(
			col.New(8).Add(text.New(r.title(), props.Text{Size: 14, Style: fontstyle.Bold, Align: align.Left})),
			col.New(4).Add(text.New(r.generated(), props.Text{Size: 9, Align: align.Right, Color: grey})),
		),
	)
	if s := r.summary(); s != "" {
		m.AddRows(row.New(7).Add(col.New(12).Add(text.New(s, props.Text{Size: 9, Align: align.Left, Color: grey}))))
	}
	m.AddRows(row.New(4))
}

func addLineItems(m core.Maroto, r Report) {
	m.AddRows(
		row.New(7).Add(
			col.New(5).Add(text.New("ITEM", labelStyle)).WithStyle(headerBg),
			col.New(2).Add(text.New("QTY", labelStyle)).WithStyle(headerBg),
			col.New(1).Add(text.New("TIER", labelStyle)).WithStyle(headerBg),
			col.New(2).Add(text.New("LOW", labelStyle)).WithStyle(headerBg),
			col.New(2).Add(text.New("HIGH", labelStyle)).WithStyle(headerBg),
		),
	)

	for _, sec := range sections(r.Estimate) {
		m.AddRows(row.New(7).Add(col.New(12).Add(text.New(sec.Total.Label, boldLeft))))
		for _, item := range sec.Items {
			name := itemName(item)
			if item.Fallback {
				name += " *"
			}
			m.AddRows(
				row.New(6).Add(
					col.New(5).Add(text.New(name, cellLeft)),
					col.New(2).Add(text.New(item.Quantity.String()+" "+string(item.Unit), cellLeft)),
					col.New(1).Add(text.New(item.Tier, cellLeft)),
					col.New(2).Add(text.New(money.FormatUSD(item.TotalLow), cellRight)),
					col.New(2).Add(text.New(money.FormatUSD(item.TotalHigh), cellRight)),
				),
			)
		}
		m.AddRows(
			row.New(6).Add(
				col.New(8).Add(text.New("Subtotal", boldRight)),
				col.New(2).Add(text.New(money.FormatUSD(sec.Total.TotalLow), boldRight)),
				col.New(2).Add(text.New(money.FormatUSD(sec.Total.TotalHigh), boldRight)),
			),
		)
		m.AddRows(row.New(2))
	}
}

func addTotals(m core.Maroto, r Report) {
	totalRow := func(label string, rng money.Range, style props.Text) core.Row {
		right := style
		right.Align = align.Right
		return row.New(7).Add(
			col.New(8).Add(text.New(label, style)),
			col.New(2).Add(text.New(money.FormatUSD(rng.Low), right)),
			col.New(2).Add(text.New(money.FormatUSD(rng.High), right)),
		)
	}

	m.AddRows(totalRow(TotalLabel, r.Estimate.Total(), props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Left}))

	otd := r.Estimate.OutTheDoor
	if otd == nil {
		return
	}
	for _, line := range otd.Lines() {
		m.AddRows(totalRow(line.Label+" ("+percent(line.Rate)+")", line.Cost, cellLeft))
	}
	m.AddRows(totalRow(OutTheDoorLabel, otd.Total, props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Left}))
	m.AddRows(row.New(4))
}

func addSchedule(m core.Maroto, r Report) {
	m.AddRows(
		row.New(7).Add(
			col.New(10).Add(text.New("SCHEDULE", labelStyle)).WithStyle(headerBg),
			col.New(2).Add(text.New("WEEKS", labelStyle)).WithStyle(headerBg),
		),
	)
	for _, p := range r.Schedule.Phases {
		m.AddRows(
			row.New(6).Add(
				col.New(10).Add(text.New(p.Name, cellLeft)),
				col.New(2).Add(text.New(strconv.Itoa(p.DurationWeeks), cellRight)),
			),
		)
	}
	m.AddRows(
		row.New(7).Add(
			col.New(10).Add(text.New(fmt.Sprintf("Total (about %.1f months)", r.Schedule.TotalMonths), boldLeft)),
			col.New(2).Add(text.New(strconv.Itoa(r.Schedule.TotalWeeks), boldRight)),
		),
	)
	m.AddRows(row.New(4))
}

func addFinancing(m core.Maroto, r Report) {
	fin := r.Financing
	m.AddRows(row.New(7).Add(col.New(12).Add(text.New("FINANCING", labelStyle)).WithStyle(headerBg)))
	for _, kv := range []struct {
		label string
		value float64
	}{
		{"Loan amount", fin.LoanAmount},
		{"Monthly payment", fin.MonthlyPayment},
		{"Total interest", fin.TotalInterest},
	} {
		m.AddRows(
			row.New(6).Add(
				col.New(8).Add(text.New(kv.label, cellLeft)),
				col.New(4).Add(text.New(money.FormatCents(decimal.NewFromFloat(kv.value)), cellRight)),
			),
		)
	}
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(text.New(fmt.Sprintf("%d-year term at %.2f%% with %.0f%% down",
				fin.TermYears, fin.AnnualRatePercent, fin.DownPaymentPercent), props.Text{Size: 7, Align: align.Left, Color: grey})),
		),
	)
	m.AddRows(row.New(4))
}

func addWarnings(m core.Maroto, r Report) {
	if len(r.Estimate.Warnings) == 0 && !r.Estimate.ConfidenceDegraded {
		return
	}
	m.AddRows(row.New(7).Add(col.New(12).Add(text.New("NOTES", labelStyle)).WithStyle(headerBg)))
	if r.Estimate.ConfidenceDegraded {
		m.AddRows(row.New(6).Add(col.New(12).Add(text.New(
			"Some prices were estimated from fallback data. Items marked * use a substitute tier.", cellLeft))))
	}
	for _, w := range r.Estimate.Warnings {
		m.AddRows(row.New(6).Add(col.New(12).Add(text.New(w.Message, cellLeft))))
	}
}
