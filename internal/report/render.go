package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
)

const (
	tableRule   = "--------------------------------------------------------------------------------------------------------------"
	tableHeader = "|     Suspend Time    |     Resume Time     | Time Asleep (hrs) |    Wh    |   Rate   |   %/hr   |   %/day   |"
	timeLayout  = "2006-01-02 15:04:05"
)

var heading = color.New(color.Bold)

// WriteText prints the "last sleep" summary followed by the table of recent
// sleeps. Times are shown in loc.
func WriteText(w io.Writer, r *Report, loc *time.Location) error {
	var b strings.Builder
	last := r.Last()

	heading.Fprintln(&b, "Last Sleep:")
	fmt.Fprintln(&b, "====================")
	fmt.Fprintf(&b, "Slept for %.2f hours\n", last.Hours)
	fmt.Fprintf(&b, "Used %.2f Wh, an average rate of %.2f W\n", last.EnergyWh, last.PowerW)
	fmt.Fprintf(&b, "For your %.2f Wh battery this is %.2f%%/hr or %.2f%%/day\n",
		r.FullEnergyWh, last.PercentPerHour, last.PercentPerDay)
	fmt.Fprintln(&b)

	heading.Fprintln(&b, fmt.Sprintf("Last (up to) %d Sleeps:", r.Limit))
	fmt.Fprintln(&b, "====================")
	fmt.Fprintln(&b, tableRule)
	fmt.Fprintln(&b, tableHeader)
	fmt.Fprintln(&b, tableRule)
	for _, s := range r.Sleeps {
		fmt.Fprintf(&b, "| %s | %s | %17.2f | %8.2f | %8.2f | %8.2f | %9.2f |\n",
			time.Unix(s.SuspendTime, 0).In(loc).Format(timeLayout),
			time.Unix(s.ResumeTime, 0).In(loc).Format(timeLayout),
			s.Hours, s.EnergyWh, s.PowerW, s.PercentPerHour, s.PercentPerDay)
		fmt.Fprintln(&b, tableRule)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

type jsonReport struct {
	*Report
	Last Sleep `json:"last"`
}

// WriteJSON prints the report as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	data, err := json.MarshalIndent(jsonReport{Report: r, Last: r.Last()}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
