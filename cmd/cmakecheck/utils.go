package cmakecheck

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/cmake-checker/cmake-checker/internal/config"
)

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickInt(cli int, local, global *int) int {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}

// pickBoolDefault is pickBool for flags that default to true: an explicit
// flag wins, then local, then global, then def.
func pickBoolDefault(cli bool, changed bool, local, global *bool, def bool) bool {
	if changed {
		return cli
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return def
}

// configRoot is the directory searched for a repo-local config file: the
// first requested directory, or the parent of the first requested file.
func configRoot(paths []string) string {
	for _, p := range paths {
		if p == stdinPath {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		if st, err := os.Stat(abs); err == nil && !st.IsDir() {
			return filepath.Dir(abs)
		}
		return abs
	}
	abs, _ := filepath.Abs(".")
	return abs
}

// loadConfigs returns the global and local config layers. A missing file is
// not an error; a broken one is.
func loadConfigs(root, explicit string) (global, local config.FileConfig, err error) {
	if c, gerr := config.LoadGlobal(); gerr == nil {
		global = c
	} else if !errors.Is(gerr, config.ErrNotFound) {
		return global, local, gerr
	}
	if explicit != "" {
		local, err = config.LoadFile(explicit)
		return global, local, err
	}
	if c, lerr := config.LoadLocal(root); lerr == nil {
		local = c
	} else if !errors.Is(lerr, config.ErrNotFound) {
		return global, local, lerr
	}
	return global, local, nil
}

// readPatterns loads a whitelist file, one pattern per line.
func readPatterns(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return strings.Split(string(b), "\n"), nil
}
