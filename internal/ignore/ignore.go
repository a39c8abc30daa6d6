// Package ignore reads .cmakecheckignore files. The syntax is a subset of
// .gitignore: one glob per line, "#" comments, a trailing "/" restricts a
// pattern to directories and a leading "!" re-includes a previously ignored
// path. Patterns match from the right, so "gen/Deps.cmake" matches
// "src/gen/Deps.cmake"; a leading "/" anchors a pattern to the scan root
// instead. The last matching pattern wins.
package ignore

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FileName is the per-root ignore file picked up by discovery.
const FileName = ".cmakecheckignore"

type pattern struct {
	glob    string
	negate  bool
	dirOnly bool
}

// Matcher decides whether a slash-separated path relative to the scan root
// is ignored. The zero value ignores nothing.
type Matcher struct {
	patterns []pattern
}

// Load reads patterns from file. A missing file yields an empty matcher and
// no error.
func Load(file string) (Matcher, error) {
	f, err := os.Open(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Matcher{}, nil
		}
		return Matcher{}, err
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}

// Parse reads patterns, one per line.
func Parse(r io.Reader) (Matcher, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return Matcher{}, err
	}
	return New(lines...), nil
}

// New compiles patterns. Blank lines and comments are dropped, as are
// patterns doublestar rejects.
func New(lines ...string) Matcher {
	var m Matcher
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var p pattern
		if strings.HasPrefix(line, "!") {
			p.negate = true
			line = line[1:]
		}
		if strings.HasSuffix(line, "/") {
			p.dirOnly = true
			line = strings.TrimRight(line, "/")
		}
		anchored := strings.HasPrefix(line, "/")
		line = strings.TrimPrefix(line, "/")
		if line == "" {
			continue
		}
		if !anchored && !strings.HasPrefix(line, "**/") {
			line = "**/" + line
		}
		if !doublestar.ValidatePattern(line) {
			continue
		}
		p.glob = line
		m.patterns = append(m.patterns, p)
	}
	return m
}

// Empty reports whether the matcher has no patterns.
func (m Matcher) Empty() bool { return len(m.patterns) == 0 }

// Match reports whether the file at rel is ignored, either directly or
// because one of its parent directories is.
func (m Matcher) Match(rel string) bool { return m.match(rel, false) }

// MatchDir is Match for a directory.
func (m Matcher) MatchDir(rel string) bool { return m.match(rel, true) }

func (m Matcher) match(rel string, isDir bool) bool {
	if len(m.patterns) == 0 {
		return false
	}
	rel = strings.TrimPrefix(path.Clean(strings.ReplaceAll(rel, "\\", "/")), "./")
	if rel == "." || rel == "" {
		return false
	}
	ignored := false
	for _, p := range m.patterns {
		if p.matches(rel, isDir) {
			ignored = !p.negate
		}
	}
	return ignored
}

func (p pattern) matches(rel string, isDir bool) bool {
	// Every parent directory is a candidate, so "build/" also covers
	// "build/gen/CMakeLists.txt".
	for i := 0; i < len(rel); i++ {
		if rel[i] == '/' {
			if ok, _ := doublestar.Match(p.glob, rel[:i]); ok {
				return true
			}
		}
	}
	if p.dirOnly && !isDir {
		return false
	}
	ok, _ := doublestar.Match(p.glob, rel)
	return ok
}
