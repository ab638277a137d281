package journal

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/trade/accumulator"
)

// FormatDayOrg renders one logged day as an Org-mode block: the end of day
// position in a PROPERTIES drawer, then the operations table and the
// events list when the day has them.
func FormatDayOrg(asset string, day accumulator.DayLog) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** %s %s\n", dayHeading(day.Date), asset)
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":ASSET: %s\n", asset)
	fmt.Fprintf(&b, ":DATE: %s\n", day.Date)
	fmt.Fprintf(&b, ":QUANTITY: %s\n", day.Position.Quantity)
	fmt.Fprintf(&b, ":PRICE: %s\n", day.Position.Price)
	b.WriteString(":END:\n")

	if len(day.Operations) > 0 {
		b.WriteString("\n*** Operations\n")
		b.WriteString("| # | Quantity | Price | Results |\n")
		b.WriteString("|---+----------+-------+---------|\n")
		for i, op := range day.Operations {
			fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", i+1, op.Quantity, op.Price, op.Results)
		}
	}

	if len(day.Events) > 0 {
		b.WriteString("\n*** Events\n")
		for _, ev := range day.Events {
			fmt.Fprintf(&b, "- %s\n", ev.Name)
		}
	}
	return b.String()
}

// FormatLogOrg renders every logged day, separated by blank lines.
func FormatLogOrg(asset string, log *accumulator.Log) string {
	var b strings.Builder
	i := 0
	for day := range log.All() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(FormatDayOrg(asset, day))
		i++
	}
	return b.String()
}

func dayHeading(date string) string {
	if date == "" {
		return "(undated)"
	}
	return date
}
