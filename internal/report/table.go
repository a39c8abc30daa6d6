package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/cmake-checker/cmake-checker/internal/types"
	"github.com/cmake-checker/cmake-checker/internal/verifier"
)

// WriteTable renders violations as a bordered table followed by the
// console summary line.
func WriteTable(w io.Writer, results []verifier.Result, opts Options) error {
	rows := Flatten(results, opts.Snippets)
	if len(rows) == 0 {
		if _, err := fmt.Fprintln(w, "No issues found"); err != nil {
			return err
		}
	} else {
		table := tablewriter.NewWriter(w)
		table.Header("Severity", "Kind", "Location", "Source")
		for _, v := range rows {
			sev := string(v.Severity)
			if opts.Color {
				sev = severityStyle(v.Severity).Render(sev)
			}
			if err := table.Append([]string{sev, string(v.Kind), fmt.Sprintf("%s:%d", v.Path, v.Line), v.Source}); err != nil {
				return err
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
	}
	for _, r := range verifier.Failed(results) {
		if _, err := fmt.Fprintf(w, "error: %s: %s\n", r.ID, cause(r.Err)); err != nil {
			return err
		}
	}
	high, med, low := countBySeverity(rows)
	_, err := fmt.Fprintf(w, "\n%s (high: %d, medium: %d, low: %d)\n", Summary(results), high, med, low)
	return err
}

func countBySeverity(rows []JSONViolation) (high, med, low int) {
	for _, v := range rows {
		switch v.Severity {
		case types.SevHigh:
			high++
		case types.SevMed:
			med++
		default:
			low++
		}
	}
	return high, med, low
}
