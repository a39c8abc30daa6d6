package report

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/cmake-checker/cmake-checker/internal/verifier"
)

type junitSuites struct {
	XMLName  xml.Name     `xml:"testsuites"`
	Tests    int          `xml:"tests,attr"`
	Failures int          `xml:"failures,attr"`
	Errors   int          `xml:"errors,attr"`
	Suites   []junitSuite `xml:"testsuite"`
}

type junitSuite struct {
	Name     string      `xml:"name,attr"`
	Tests    int         `xml:"tests,attr"`
	Failures int         `xml:"failures,attr"`
	Errors   int         `xml:"errors,attr"`
	Cases    []junitCase `xml:"testcase"`
}

type junitCase struct {
	Name    string        `xml:"name,attr"`
	Line    int           `xml:"line,attr,omitempty"`
	Failure *junitProblem `xml:"failure,omitempty"`
	Error   *junitProblem `xml:"error,omitempty"`
}

type junitProblem struct {
	Type    string `xml:"type,attr"`
	Message string `xml:"message,attr"`
}

// emptySuite is reported when no build script was checked, so CI systems
// still see one passing test.
const emptySuite = "cmake-checker"

// WriteJUnit writes one test suite per checked file and one failing test
// case per violation.
func WriteJUnit(w io.Writer, results []verifier.Result, opts Options) error {
	snip := orNone(opts.Snippets)
	var doc junitSuites
	for _, r := range results {
		suite := junitSuite{Name: r.ID}
		if r.Err != nil {
			suite.Cases = append(suite.Cases, junitCase{
				Name:  "read",
				Error: &junitProblem{Type: "error", Message: cause(r.Err)},
			})
			suite.Errors++
		}
		for _, v := range r.Violations {
			msg := fmt.Sprintf("line: %4d %20s> %s", v.Line, v.Kind, snip.Line(r.ID, v.Line))
			suite.Cases = append(suite.Cases, junitCase{
				Name:    string(v.Kind),
				Line:    v.Line,
				Failure: &junitProblem{Type: "failure", Message: msg},
			})
			suite.Failures++
		}
		suite.Tests = len(suite.Cases)
		doc.Suites = append(doc.Suites, suite)
	}
	if len(doc.Suites) == 0 {
		doc.Suites = []junitSuite{{Name: emptySuite, Tests: 1, Cases: []junitCase{{Name: "No cmake files found"}}}}
	}
	for _, s := range doc.Suites {
		doc.Tests += s.Tests
		doc.Failures += s.Failures
		doc.Errors += s.Errors
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "\t")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
