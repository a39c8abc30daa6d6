package report

import (
	"encoding/json"
	"io"

	"github.com/cmake-checker/cmake-checker/internal/types"
	"github.com/cmake-checker/cmake-checker/internal/verifier"
)

// JSONViolation is one element of the json report.
type JSONViolation struct {
	Path     string              `json:"path"`
	Line     int                 `json:"line"`
	Kind     types.ViolationKind `json:"kind"`
	Severity types.Severity      `json:"severity"`
	Source   string              `json:"source,omitempty"`
}

// Flatten lists every violation with its file, in result order.
func Flatten(results []verifier.Result, snip Snippets) []JSONViolation {
	snip = orNone(snip)
	out := []JSONViolation{}
	for _, r := range results {
		for _, v := range r.Violations {
			out = append(out, JSONViolation{
				Path:     r.ID,
				Line:     v.Line,
				Kind:     v.Kind,
				Severity: types.SeverityOf(v.Kind),
				Source:   snip.Line(r.ID, v.Line),
			})
		}
	}
	return out
}

// WriteJSON writes a flat array of violations; an empty run yields [].
func WriteJSON(w io.Writer, results []verifier.Result, opts Options) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Flatten(results, opts.Snippets))
}
