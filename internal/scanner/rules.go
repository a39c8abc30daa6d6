package scanner

import (
	"regexp"
	"strings"

	"github.com/cmake-checker/cmake-checker/internal/types"
)

// rule is one entry of a per-mode dispatch table. Rules are tried in table
// order at the current position and the first accepted match wins.
type rule struct {
	name string
	re   *regexp.Regexp
	// lit is the literal prefix of the pattern, checked before running re.
	lit  string
	kind types.ViolationKind
	// when rejects a regex match that is not valid in context; the next
	// rule is then tried.
	when func(s *Scanner, m []string) bool
	// then applies mode transitions and reports whether kind is emitted.
	// A nil then emits kind whenever kind is set.
	then func(s *Scanner, m []string) bool
}

func newRule(name, pattern string) rule {
	lit, _ := regexp.MustCompile(pattern).LiteralPrefix()
	return rule{
		name: name,
		re:   regexp.MustCompile(`^(?:` + pattern + `)`),
		lit:  lit,
	}
}

func (r rule) emits(k types.ViolationKind) rule {
	r.kind = k
	return r
}

func (r rule) guard(fn func(s *Scanner, m []string) bool) rule {
	r.when = fn
	return r
}

func (r rule) action(fn func(s *Scanner, m []string) bool) rule {
	r.then = fn
	return r
}

func pushing(next mode) func(s *Scanner, m []string) bool {
	return func(s *Scanner, _ []string) bool {
		s.push(next)
		return false
	}
}

func popping(s *Scanner, _ []string) bool {
	s.pop()
	return false
}

func hasClause(s *Scanner, m []string) bool {
	return strings.TrimSpace(m[1]) != ""
}

func isIdentByte(b byte) bool {
	return b == '_' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

func isBlankByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n'
}

// atWordStart accepts a match that is not the tail of a longer identifier,
// so "endfunction(" never opens a function and "offset(" never opens set().
func atWordStart(s *Scanner, _ []string) bool {
	return s.pos == 0 || !isIdentByte(s.text[s.pos-1])
}

// atLineStartOrBlank accepts a command name that begins a line or follows a
// space or tab, which keeps target_include_directories( out.
func atLineStartOrBlank(s *Scanner, _ []string) bool {
	return s.pos == 0 || isBlankByte(s.text[s.pos-1])
}

// bareKeyword accepts a keyword preceded by whitespace and not followed by
// more identifier characters.
func bareKeyword(s *Scanner, m []string) bool {
	if s.pos == 0 || !isBlankByte(s.text[s.pos-1]) {
		return false
	}
	end := s.pos + len(m[0])
	return end >= len(s.text) || !isIdentByte(s.text[end])
}

// notEscaped rejects "\#", which does not start a line comment.
func notEscaped(s *Scanner, _ []string) bool {
	return s.pos == 0 || s.text[s.pos-1] != '\\'
}

func openBracket(s *Scanner, m []string) bool {
	s.bracketLevel = len(m[1])
	s.push(modeBracketComment)
	return false
}

func sameStrength(s *Scanner, m []string) bool {
	return len(m[1]) == s.bracketLevel
}

func closeBracket(s *Scanner, _ []string) bool {
	s.bracketLevel = 0
	s.pop()
	return false
}

func closeFunction(s *Scanner, m []string) bool {
	s.pop()
	return hasClause(s, m)
}

func outsideFunction(s *Scanner, _ []string) bool {
	return !s.inFunction
}

var (
	ruleNewline = newRule("newline", `\n+`)

	ruleBracketOpen = newRule("bracket-comment-open", `#\[(=*)\[`).action(openBracket)
	// A closer with a different delimiter strength is rejected and skipped
	// byte by byte, so an overlapping closer of the right strength is found.
	ruleBracketClose = newRule("bracket-comment-close", `\](=*)\]`).guard(sameStrength).action(closeBracket)

	ruleLineComment = newRule("line-comment", `#`).guard(notEscaped).action(pushing(modeLineComment))
	ruleCommentEnd  = newRule("line-comment-end", `\n`).action(popping)
	ruleDisable     = newRule("pragma-disable", `cmake-check[ \t]+disable`).action(pushing(modeDisabled))
	ruleEnable      = newRule("pragma-enable", `cmake-check[ \t]+enable`).action(popping)

	ruleFunctionOpen  = newRule("function-open", `function[ \t]*\(`).guard(atWordStart).action(pushing(modeFunctionBody))
	ruleFunctionClose = newRule("function-close", `endfunction[ \t]*\(([^)\n]*)\)`).
				emits(types.FunctionCloseWithClause).guard(atWordStart).action(closeFunction)
	ruleDirectoryOpen = newRule("target-sources-open", `target_sources[ \t]*\(`).guard(atWordStart).action(pushing(modeDirectoryCall))
	ruleAssignOpen    = newRule("set-open", `(?:un)?set[ \t]*\(`).guard(atWordStart).action(pushing(modeAssignCall))
	ruleCallClose     = newRule("call-close", `\)`).action(popping)

	ruleFileGlob = newRule("file-glob", `file[ \t]*\([ \t]*GLOB`).emits(types.UnsortedGlobIntake).guard(atWordStart)

	ruleCompileOptions     = newRule("add-compile-options", `add_compile_options[ \t]*\(`).emits(types.GlobalCompileOptions)
	ruleDefinitions        = newRule("add-definitions", `add_definitions[ \t]*\(`).emits(types.GlobalDefinitions)
	ruleCompileDefinitions = newRule("add-compile-definitions", `add_compile_definitions[ \t]*\(`).emits(types.GlobalCompileDefinitions)

	ruleIncludeDirectories = newRule("include-directories", `include_directories[ \t]*\(`).emits(types.GlobalIncludeDirectories).guard(atLineStartOrBlank)
	ruleLinkDirectories    = newRule("link-directories", `link_directories[ \t]*\(`).emits(types.GlobalLinkDirectories).guard(atLineStartOrBlank)
	ruleLinkLibraries      = newRule("link-libraries", `link_libraries[ \t]*\(`).emits(types.GlobalLinkLibraries).guard(atLineStartOrBlank)

	ruleFlagsVariable = newRule("flags-variable", `CMAKE_C(?:XX)?_FLAGS`).emits(types.GlobalCompileFlagsVariable)

	ruleClosingCommand = newRule("closing-command", `end(?:if|macro|foreach)[ \t]*\(([^)\n]*)\)`).
				emits(types.ClosingCommandWithClause).guard(atWordStart).action(hasClause)

	ruleEnvironment = newRule("environment", `ENV\{`).emits(types.EnvironmentMutation)
	ruleCache       = newRule("cache", `CACHE`).emits(types.CacheInAssignment).guard(bareKeyword)
	ruleParentScope = newRule("parent-scope", `PARENT_SCOPE`).emits(types.IneffectiveScopeKeyword).guard(bareKeyword).action(outsideFunction)

	ruleParentDirectory = newRule("parent-directory", `\.\./\.\.`).emits(types.ParentDirectoryAccess)
)

var defaultRules = []rule{
	ruleNewline,
	ruleBracketOpen,
	ruleLineComment,
	ruleFunctionOpen,
	ruleDirectoryOpen,
	ruleAssignOpen,
	ruleFileGlob,
	ruleCompileOptions,
	ruleDefinitions,
	ruleCompileDefinitions,
	ruleIncludeDirectories,
	ruleLinkDirectories,
	ruleLinkLibraries,
	ruleFlagsVariable,
	ruleClosingCommand,
}

var functionRules = append([]rule{ruleFunctionClose}, defaultRules...)

var directoryRules = []rule{
	ruleNewline,
	ruleBracketOpen,
	ruleLineComment,
	ruleCallClose,
	ruleParentDirectory,
}

var assignRules = []rule{
	ruleNewline,
	ruleBracketOpen,
	ruleLineComment,
	ruleCallClose,
	ruleEnvironment,
	ruleCache,
	ruleParentScope,
}

var tables = [...][]rule{
	modeDefault:        defaultRules,
	modeLineComment:    {ruleCommentEnd, ruleDisable},
	modeBracketComment: {ruleNewline, ruleBracketClose},
	modeDisabled:       {ruleNewline, ruleEnable},
	modeFunctionBody:   functionRules,
	modeDirectoryCall:  directoryRules,
	modeAssignCall:     assignRules,
}
