package core

import (
	"encoding/json"
	"io"
)

// FileReport is the JSON shape of one checked file.
type FileReport struct {
	Path       string     `json:"path"`
	Violations ScanResult `json:"violations"`
	Error      string     `json:"error,omitempty"`
}

// MarshalResults pretty-prints per-file results as JSON for pipelines.
func MarshalResults(w io.Writer, results []FileResult) error {
	out := make([]FileReport, 0, len(results))
	for _, r := range results {
		fr := FileReport{Path: r.ID, Violations: r.Violations}
		if fr.Violations == nil {
			fr.Violations = ScanResult{}
		}
		if r.Err != nil {
			fr.Error = r.Err.Error()
		}
		out = append(out, fr)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// UnmarshalResults decodes the output of MarshalResults, useful for
// ingestion tests.
func UnmarshalResults(r io.Reader) ([]FileReport, error) {
	var fs []FileReport
	if err := json.NewDecoder(r).Decode(&fs); err != nil {
		return nil, err
	}
	return fs, nil
}
