// Package report renders check results (console, junit, sarif, json and
// table), manages baselines and maps results to exit codes.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cmake-checker/cmake-checker/internal/verifier"
)

// Writer renders a finished run to w.
type Writer func(w io.Writer, results []verifier.Result, opts Options) error

var writers = map[string]Writer{
	"console": WriteConsole,
	"junit":   WriteJUnit,
	"sarif":   WriteSARIF,
	"json":    WriteJSON,
	"table":   WriteTable,
}

// Formats lists the accepted reporter names.
func Formats() []string {
	out := make([]string, 0, len(writers))
	for k := range writers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Lookup returns the renderer for name.
func Lookup(name string) (Writer, error) {
	w, ok := writers[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown reporter %q (want one of %s)", name, strings.Join(Formats(), ", "))
	}
	return w, nil
}
