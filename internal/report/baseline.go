package report

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/cmake-checker/cmake-checker/internal/types"
	"github.com/cmake-checker/cmake-checker/internal/verifier"
)

// Baseline records accepted violations. Entries are keyed on file, kind and
// the trimmed source line, so unrelated edits that shift line numbers do
// not resurrect them.
type Baseline struct {
	Items map[string]bool `json:"items"`
}

func LoadBaseline(path string) (Baseline, error) {
	b := Baseline{Items: map[string]bool{}}
	f, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}
	if err := json.Unmarshal(f, &b); err != nil {
		return Baseline{Items: map[string]bool{}}, err
	}
	if b.Items == nil {
		b.Items = map[string]bool{}
	}
	return b, nil
}

func SaveBaseline(path string, results []verifier.Result, snip Snippets) error {
	snip = orNone(snip)
	b := Baseline{Items: map[string]bool{}}
	for _, r := range results {
		for _, v := range r.Violations {
			b.Items[key(r.ID, v, snip)] = true
		}
	}
	buf, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}

// FilterNew drops baselined violations. Results themselves, including
// unreadable ones, are kept so file counts stay accurate.
func FilterNew(results []verifier.Result, base Baseline, snip Snippets) []verifier.Result {
	snip = orNone(snip)
	out := make([]verifier.Result, len(results))
	for i, r := range results {
		out[i] = r
		if r.Err != nil || len(base.Items) == 0 {
			continue
		}
		kept := types.ScanResult{}
		for _, v := range r.Violations {
			if !base.Items[key(r.ID, v, snip)] {
				kept = append(kept, v)
			}
		}
		out[i].Violations = kept
	}
	return out
}

func key(id string, v types.Violation, snip Snippets) string {
	return id + "|" + string(v.Kind) + "|" + strings.TrimSpace(snip.Line(id, v.Line))
}
