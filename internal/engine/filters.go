package engine

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

var defaultExcludeDirs = map[string]bool{
	".git":         true,
	"CMakeFiles":   true,
	"_deps":        true,
	"node_modules": true,
}

// files CMake generates into build trees; never hand written
var defaultExcludeFileNames = map[string]bool{
	"cmake_install.cmake":     true,
	"CTestTestfile.cmake":     true,
	"CPackConfig.cmake":       true,
	"CPackSourceConfig.cmake": true,
}

func isDefaultDirExcluded(name string) bool {
	return defaultExcludeDirs[name] || strings.HasPrefix(name, ".git")
}

func isDefaultFileExcluded(name string) bool {
	return defaultExcludeFileNames[name]
}

// isBuildScript reports whether a file name is picked up when walking a
// directory.
func isBuildScript(name string) bool {
	return name == listsFile || strings.HasSuffix(name, ".cmake")
}

const listsFile = "CMakeLists.txt"

// globFilter applies the comma-separated include and exclude globs of a
// Config. A pattern matches either the relative path or the base name, so
// "*.cmake" selects scripts at any depth.
type globFilter struct {
	include []string
	exclude []string
}

func newGlobFilter(cfg Config) globFilter {
	return globFilter{include: splitGlobs(cfg.IncludeGlobs), exclude: splitGlobs(cfg.ExcludeGlobs)}
}

// allows reports whether rel passes the filter. With no include globs every
// path is a candidate; exclude globs are applied last.
func (f globFilter) allows(rel string) bool {
	rel = strings.ReplaceAll(rel, "\\", "/")
	if len(f.include) > 0 && !anyGlob(f.include, rel) {
		return false
	}
	return !anyGlob(f.exclude, rel)
}

// splitGlobs drops empty entries and invalid patterns and returns every
// pattern in the form "**/<glob>".
func splitGlobs(s string) []string {
	var out []string
	for _, g := range strings.Split(s, ",") {
		g = strings.TrimPrefix(strings.TrimSpace(g), "./")
		for strings.HasPrefix(g, "**/") {
			g = g[3:]
		}
		if g == "" || !doublestar.ValidatePattern(g) {
			continue
		}
		out = append(out, "**/"+g)
	}
	return out
}

func anyGlob(globs []string, rel string) bool {
	base := path.Base(rel)
	for _, g := range globs {
		if doublestar.MatchUnvalidated(g, rel) || doublestar.MatchUnvalidated(g[3:], base) {
			return true
		}
	}
	return false
}
