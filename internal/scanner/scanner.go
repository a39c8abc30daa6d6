// Package scanner finds CMake anti-patterns in one build script with a
// table-driven lexical state machine.
package scanner

import (
	"strings"

	"github.com/cmake-checker/cmake-checker/internal/types"
)

// Scanner is a lexical state machine that reports CMake anti-patterns
// without parsing the full grammar. It keeps a stack of lexical modes
// (comments, pragma-disabled regions, function bodies, call arguments) and
// tries the rule table of the current mode at each position. Bytes that no
// rule accepts are skipped one at a time, so Scan is total over all inputs.
//
// A Scanner may be reused for sequential scans; every call to Scan starts
// from a clean state. It must not be used from several goroutines at once.
type Scanner struct {
	text string
	pos  int
	line int

	mode  mode
	stack []mode

	inFunction   bool
	bracketLevel int

	out types.ScanResult
}

// New returns a scanner ready for use.
func New() *Scanner {
	return &Scanner{}
}

// Scan returns the violations found in text in scan order. Unterminated
// comments, disabled regions, function bodies and calls at end of input are
// not errors; scanning simply stops.
func Scan(text string) types.ScanResult {
	return New().Scan(text)
}

// Scan analyzes one source text. See the package-level Scan.
func (s *Scanner) Scan(text string) types.ScanResult {
	s.reset(text)
	for s.pos < len(s.text) {
		s.step()
	}
	out := s.out
	s.reset("")
	return out
}

func (s *Scanner) reset(text string) {
	s.text = text
	s.pos = 0
	s.line = 1
	s.mode = modeDefault
	s.stack = s.stack[:0]
	s.inFunction = false
	s.bracketLevel = 0
	s.out = types.ScanResult{}
}

// step consumes one token, or a single byte when no rule of the current
// mode accepts the input at the current position.
func (s *Scanner) step() {
	rest := s.text[s.pos:]
	table := tables[s.mode]
	for i := range table {
		r := &table[i]
		if r.lit != "" && !strings.HasPrefix(rest, r.lit) {
			continue
		}
		loc := r.re.FindStringSubmatchIndex(rest)
		if loc == nil {
			continue
		}
		m := groups(rest, loc)
		if r.when != nil && !r.when(s, m) {
			continue
		}
		line := s.line
		emit := r.kind != ""
		if r.then != nil {
			emit = r.then(s, m) && emit
		}
		if emit {
			s.out = append(s.out, types.Violation{Kind: r.kind, Line: line})
		}
		s.advance(len(m[0]))
		return
	}
	s.advance(1)
}

func (s *Scanner) advance(n int) {
	s.line += strings.Count(s.text[s.pos:s.pos+n], "\n")
	s.pos += n
}

func groups(text string, loc []int) []string {
	m := make([]string, len(loc)/2)
	for i := range m {
		if loc[2*i] >= 0 {
			m[i] = text[loc[2*i]:loc[2*i+1]]
		}
	}
	return m
}
