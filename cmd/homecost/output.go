package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/homecost/internal/estimate"
	"github.com/Simplici0/homecost/internal/finance"
	"github.com/Simplici0/homecost/internal/money"
)

func newTab(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func printHouse(w io.Writer, in estimate.WholeHouseInput, out houseOutput) {
	res := out.Estimate

	fmt.Fprintf(w, "\nWhole-house estimate: %.0f sq ft, %d stories, %s finish\n\n", in.SquareFeet, in.Stories, in.Finish())

	tw := newTab(w)
	fmt.Fprintln(tw, "DIVISION\tLOW\tHIGH")
	for _, dt := range res.DivisionTotals {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", dt.Label, money.FormatUSD(dt.TotalLow), money.FormatUSD(dt.TotalHigh))
	}
	fmt.Fprintf(tw, "Base estimate\t%s\t%s\n", money.FormatUSD(res.TotalLow), money.FormatUSD(res.TotalHigh))
	if otd := res.OutTheDoor; otd != nil {
		for _, line := range otd.Lines() {
			fmt.Fprintf(tw, "  %s (%s%%)\t%s\t%s\n", line.Label,
				line.Rate.Mul(decimal.NewFromInt(100)).Round(2), money.FormatUSD(line.Cost.Low), money.FormatUSD(line.Cost.High))
		}
		fmt.Fprintf(tw, "Out the door\t%s\t%s\n", money.FormatUSD(otd.Total.Low), money.FormatUSD(otd.Total.High))
	}
	tw.Flush()

	fmt.Fprintf(w, "\nSchedule: %d weeks (about %.1f months)\n", out.Schedule.TotalWeeks, out.Schedule.TotalMonths)

	if len(out.Upsells) > 0 {
		fmt.Fprintln(w, "\nSuggested upgrades:")
		for _, s := range out.Upsells {
			fmt.Fprintf(w, "  + %s: %s more (new total %s)\n", s.Label, money.FormatUSD(s.Delta), money.FormatRange(s.NewTotal))
		}
	}
	if len(out.Achievements) > 0 {
		fmt.Fprintln(w, "\nAchievements:")
		for _, a := range out.Achievements {
			fmt.Fprintf(w, "  %s %s\n", a.Icon, a.Label)
		}
	}
	printWarnings(w, res)
}

func printRooms(w io.Writer, res *estimate.Result) {
	tw := newTab(w)
	fmt.Fprintln(tw, "ROOM\tSQ FT\tLOW\tHIGH")
	for _, rb := range res.RoomBreakdowns {
		fmt.Fprintf(tw, "%s (%s)\t%s\t%s\t%s\n", rb.Name, rb.Key, rb.SquareFeet, money.FormatUSD(rb.TotalLow), money.FormatUSD(rb.TotalHigh))
	}
	fmt.Fprintf(tw, "Total\t\t%s\t%s\n", money.FormatUSD(res.TotalLow), money.FormatUSD(res.TotalHigh))
	tw.Flush()
	printWarnings(w, res)
}

func printFinancing(w io.Writer, fin finance.Financing) {
	tw := newTab(w)
	rows := []struct {
		label string
		value float64
	}{
		{"Home price", fin.HomePrice},
		{"Down payment", fin.DownPayment},
		{"Loan amount", fin.LoanAmount},
		{"Monthly payment", fin.MonthlyPayment},
		{"Total interest", fin.TotalInterest},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", r.label, money.FormatCents(decimal.NewFromFloat(r.value)))
	}
	fmt.Fprintf(tw, "Payments\t%d\n", fin.NumPayments)
	tw.Flush()
}

func printWarnings(w io.Writer, res *estimate.Result) {
	if res.ConfidenceDegraded {
		fmt.Fprintln(w, "\nNote: some prices used fallback data; treat this range as approximate.")
	}
	for _, warn := range res.Warnings {
		fmt.Fprintf(w, "  ! %s: %s\n", warn.Code, warn.Message)
	}
}
