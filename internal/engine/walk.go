package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cmake-checker/cmake-checker/internal/ignore"
)

// ErrPathNotFound is returned by Discover for a requested path that does
// not exist.
var ErrPathNotFound = errors.New("path not found")

// Discover expands paths into the list of build scripts to verify. A file
// path is taken as-is, whatever its name; a directory contributes its *.cmake
// files followed by its CMakeLists.txt files, each group sorted, minus
// whitelisted files and files rejected by the include/exclude globs.
// Duplicates are dropped.
func Discover(cfg Config, paths []string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	add := func(p string) {
		key := filepath.Clean(p)
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, p)
	}

	for _, root := range paths {
		st, err := os.Stat(root)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrPathNotFound, root)
			}
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}
		if !st.IsDir() {
			add(root)
			continue
		}
		found, err := walkRoot(cfg, root)
		if err != nil {
			return nil, err
		}
		for _, p := range found {
			add(p)
		}
	}
	return out, nil
}

func walkRoot(cfg Config, root string) ([]string, error) {
	local, err := ignore.Load(filepath.Join(root, ignore.FileName))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", ignore.FileName, err)
	}

	globs := newGlobFilter(cfg)
	var scripts, lists []string
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped; the root itself was stat'ed.
			return nil
		}
		rel, _ := filepath.Rel(root, p)
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if p == root {
				return nil
			}
			if cfg.DefaultExcludes && isDefaultDirExcluded(d.Name()) {
				return filepath.SkipDir
			}
			if local.MatchDir(rel) || cfg.Whitelist.MatchDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		name := d.Name()
		if !isBuildScript(name) {
			return nil
		}
		if cfg.DefaultExcludes && isDefaultFileExcluded(name) {
			return nil
		}
		if !globs.allows(rel) || local.Match(rel) || cfg.Whitelist.Match(rel) {
			return nil
		}
		if name == listsFile {
			lists = append(lists, p)
		} else {
			scripts = append(scripts, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortPaths(scripts)
	sortPaths(lists)
	return append(scripts, lists...), nil
}

// sortPaths orders by path components, so "a/b" sorts before "a-b".
func sortPaths(ps []string) {
	sort.Slice(ps, func(i, j int) bool {
		a := strings.Split(filepath.ToSlash(ps[i]), "/")
		b := strings.Split(filepath.ToSlash(ps[j]), "/")
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return len(a) < len(b)
	})
}
