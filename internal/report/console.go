package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cmake-checker/cmake-checker/internal/types"
	"github.com/cmake-checker/cmake-checker/internal/verifier"
)

var (
	pathStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	sevHighStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	sevMedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	sevLowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// Options carries what renderers need beyond the results themselves.
type Options struct {
	// Color enables ANSI styling in the console renderer.
	Color    bool
	Snippets Snippets
}

// WriteConsole prints each file with violations as a block of annotated
// source lines followed by a one-line summary:
//
//	>>>CMakeLists.txt<<<
//	line:    2 GLOBAL_COMPILE_OPTIONS> add_compile_options(-Wall)
//
//	Scanned 1 file(s). Found 1 issues.
func WriteConsole(w io.Writer, results []verifier.Result, opts Options) error {
	snip := orNone(opts.Snippets)
	var b strings.Builder
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(&b, "\n>>>%s<<<\n", styled(opts.Color, pathStyle, r.ID))
			fmt.Fprintf(&b, "%s\n", styled(opts.Color, errorStyle, "error: "+cause(r.Err)))
			continue
		}
		if len(r.Violations) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n>>>%s<<<\n", styled(opts.Color, pathStyle, r.ID))
		for _, v := range r.Violations {
			kind := fmt.Sprintf("%20s", v.Kind)
			if opts.Color {
				kind = severityStyle(types.SeverityOf(v.Kind)).Render(kind)
			}
			fmt.Fprintf(&b, "line: %4d %s> %s\n", v.Line, kind, snip.Line(r.ID, v.Line))
		}
	}
	fmt.Fprintf(&b, "\n%s\n", Summary(results))
	_, err := io.WriteString(w, b.String())
	return err
}

// Summary is the closing line of the console report.
func Summary(results []verifier.Result) string {
	scanned := len(results) - len(verifier.Failed(results))
	return fmt.Sprintf("Scanned %d file(s). Found %d issues.", scanned, verifier.CountViolations(results))
}

func severityStyle(s types.Severity) lipgloss.Style {
	switch s {
	case types.SevHigh:
		return sevHighStyle
	case types.SevMed:
		return sevMedStyle
	default:
		return sevLowStyle
	}
}

func styled(on bool, st lipgloss.Style, s string) string {
	if !on {
		return s
	}
	return st.Render(s)
}

// cause strips the verifier's "read <id>:" prefix, which the report
// already shows as the block header.
func cause(err error) string {
	var rerr *verifier.ReadError
	if errors.As(err, &rerr) {
		return rerr.Err.Error()
	}
	return err.Error()
}
