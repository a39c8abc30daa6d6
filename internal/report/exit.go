package report

import (
	"strings"

	"github.com/cmake-checker/cmake-checker/internal/types"
	"github.com/cmake-checker/cmake-checker/internal/verifier"
)

// Process exit codes.
const (
	ExitOK         = 0
	ExitViolations = 1
	ExitError      = 2
)

var severityLevel = map[types.Severity]int{types.SevLow: 1, types.SevMed: 2, types.SevHigh: 3}

// ShouldFail reports whether any violation is at or above failOn, compared
// case-insensitively. An empty or unknown threshold counts every violation.
func ShouldFail(results []verifier.Result, failOn string) bool {
	th := severityLevel[types.Severity(strings.ToLower(strings.TrimSpace(failOn)))]
	if th == 0 {
		th = 1
	}
	for _, r := range results {
		for _, v := range r.Violations {
			if severityLevel[types.SeverityOf(v.Kind)] >= th {
				return true
			}
		}
	}
	return false
}

// ExitCode maps a finished run to the process exit status. Unreadable
// files take precedence; warnOnly suppresses failure on violations only.
func ExitCode(results []verifier.Result, warnOnly bool, failOn string) int {
	if len(verifier.Failed(results)) > 0 {
		return ExitError
	}
	if warnOnly {
		return ExitOK
	}
	if ShouldFail(results, failOn) {
		return ExitViolations
	}
	return ExitOK
}
