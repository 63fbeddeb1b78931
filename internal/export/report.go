// Package export renders an estimate as a spreadsheet or a printable PDF.
package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/Simplici0/homecost/internal/estimate"
	"github.com/Simplici0/homecost/internal/finance"
	"github.com/Simplici0/homecost/internal/money"
	"github.com/Simplici0/homecost/internal/schedule"
)

const defaultTitle = "Construction Estimate"

// Report bundles everything a rendering needs. Only Estimate is required.
type Report struct {
	Title       string
	Input       *estimate.WholeHouseInput
	Estimate    *estimate.Result
	Schedule    *schedule.Result
	Financing   *finance.Financing
	GeneratedAt time.Time
}

func (r Report) title() string {
	if r.Title == "" {
		return defaultTitle
	}
	return r.Title
}

func (r Report) generated() string {
	at := r.GeneratedAt
	if at.IsZero() {
		at = time.Now()
	}
	return at.Format("January 2, 2006")
}

// summary is a one-line description of the house, or "" without an input.
func (r Report) summary() string {
	if r.Input == nil {
		return ""
	}
	in := r.Input
	s := fmt.Sprintf("%s sq ft, %d %s, %d bed / %s bath, %s finish",
		humanize.Commaf(in.SquareFeet), in.Stories, pluralize(in.Stories, "story", "stories"),
		in.Bedrooms, strconv.FormatFloat(in.Bathrooms, 'f', -1, 64), in.Finish())
	if in.Location != "" {
		s += ", " + in.Location
	}
	return s
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// section is one division with its line items, in output order.
type section struct {
	Total estimate.DivisionTotal
	Items []estimate.LineItem
}

// sections groups line items under their division, skipping divisions with
// no items.
func sections(res *estimate.Result) []section {
	byDivision := make(map[estimate.Division][]estimate.LineItem)
	for _, item := range res.LineItems {
		byDivision[item.Division] = append(byDivision[item.Division], item)
	}

	out := make([]section, 0, len(res.DivisionTotals))
	for _, dt := range res.DivisionTotals {
		items := byDivision[dt.Division]
		if len(items) == 0 {
			continue
		}
		out = append(out, section{Total: dt, Items: items})
	}
	return out
}

func itemName(item estimate.LineItem) string {
	if item.RoomKey == "" {
		return item.DisplayName
	}
	return item.DisplayName + " (" + item.RoomKey + ")"
}

func percent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).Round(2).String() + "%"
}

func cents(d decimal.Decimal) float64 {
	return money.Round(d).InexactFloat64()
}
