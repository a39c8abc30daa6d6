package scanner

// mode is the lexical context that selects the active rule table.
type mode int

const (
	modeDefault mode = iota
	modeLineComment
	modeBracketComment
	modeDisabled
	// modeFunctionBody is inclusive: its table is the default table plus the
	// function closer, so default detection keeps running inside functions.
	modeFunctionBody
	modeDirectoryCall
	modeAssignCall
)

var modeNames = [...]string{
	modeDefault:        "default",
	modeLineComment:    "line-comment",
	modeBracketComment: "bracket-comment",
	modeDisabled:       "disabled",
	modeFunctionBody:   "function-body",
	modeDirectoryCall:  "directory-call",
	modeAssignCall:     "assign-call",
}

func (m mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

func (s *Scanner) push(next mode) {
	s.stack = append(s.stack, s.mode)
	s.mode = next
	s.inFunction = s.functionActive()
}

// pop returns to the previously active mode. Popping an empty stack leaves
// the scanner in the default mode.
func (s *Scanner) pop() {
	if n := len(s.stack); n > 0 {
		s.mode = s.stack[n-1]
		s.stack = s.stack[:n-1]
	} else {
		s.mode = modeDefault
	}
	s.inFunction = s.functionActive()
}

func (s *Scanner) functionActive() bool {
	if s.mode == modeFunctionBody {
		return true
	}
	for _, m := range s.stack {
		if m == modeFunctionBody {
			return true
		}
	}
	return false
}
