package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

const ruleWidth = 84

// WriteText renders rep as the classic fixed-width fairness table.
func WriteText(w io.Writer, rep Report) error {
	var b strings.Builder

	if rep.Mismatch() {
		b.WriteString(failureStyle.Render(fmt.Sprintf(
			"Failed to apportion %d seats with the %s method (allocated %d)!",
			rep.RequestedSeats, rep.Historical, rep.AllocatedSeats)))
		b.WriteByte('\n')
	}

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%s), %d seats", rep.Historical, rep.Method, rep.RequestedSeats)))
	b.WriteByte('\n')
	if rep.Divisor > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("    divisor %.2f", rep.Divisor)))
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "    %-15s : #seats           electors    rep over rep       electoral over rep\n", "Region")
	b.WriteString("    " + strings.Repeat("-", ruleWidth) + "\n")
	for _, row := range rep.Rows {
		if row.ZeroSeats {
			fmt.Fprintf(&b, "    %-15s : has zero representatives\n", row.Region)
			continue
		}
		fmt.Fprintf(&b, "    %-15s :  %8d     %8d       %+10.2f       %+10.2f\n",
			row.Region, row.Seats, row.Electors, row.RepDeviation, row.ElectoralDeviation)
	}
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSON encodes reports as an indented JSON array.
func WriteJSON(w io.Writer, reps []Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reps)
}
