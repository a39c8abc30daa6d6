package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cmake-checker/cmake-checker/internal/types"
)

// FileConfig is the on-disk YAML configuration shape for cmake-checker.
// Pointer fields distinguish "unset" from the zero value so that layers can
// be merged.
type FileConfig struct {
	Include         *string  `yaml:"include,omitempty"`
	Exclude         *string  `yaml:"exclude,omitempty"`
	Whitelist       []string `yaml:"whitelist,omitempty"`
	Reporter        *string  `yaml:"reporter,omitempty"`
	WarnOnly        *bool    `yaml:"warn_only,omitempty"`
	FailOn          *string  `yaml:"fail_on,omitempty"`
	Threads         *int     `yaml:"threads,omitempty"`
	NoColor         *bool    `yaml:"no_color,omitempty"`
	NoCache         *bool    `yaml:"no_cache,omitempty"`
	DefaultExcludes *bool    `yaml:"default_excludes,omitempty"`
	Disable         *string  `yaml:"disable,omitempty"`
	Baseline        *string  `yaml:"baseline,omitempty"`
	LogLevel        *string  `yaml:"log_level,omitempty"`
	LogFormat       *string  `yaml:"log_format,omitempty"`
}

// LocalNames are the repo-local config file names, in search order.
var LocalNames = []string{".cmake-checker.yml", ".cmake-checker.yaml", "cmake-checker.yml", "cmake-checker.yaml"}

// ErrNotFound is returned by LoadLocal and LoadGlobal when no file exists.
var ErrNotFound = errors.New("no config file")

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadLocal searches for a repo-local config file in the given root.
func LoadLocal(root string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range LocalNames {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, ErrNotFound
}

// GlobalPath returns the global config location under the XDG base
// directory or ~/.config, or "" when neither is known.
func GlobalPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return ""
	}
	return filepath.Join(base, "cmake-checker", "config.yml")
}

// LoadGlobal loads the global config file.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	p := GlobalPath()
	if p == "" {
		return cfg, ErrNotFound
	}
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, ErrNotFound
}

var (
	reporters = []string{"console", "junit", "sarif", "json", "table"}
	failOns   = []string{"low", "medium", "high"}
)

// Validate rejects values no command could honor.
func (fc FileConfig) Validate() error {
	if fc.Reporter != nil && !oneOf(*fc.Reporter, reporters) {
		return fmt.Errorf("reporter %q: want one of %s", *fc.Reporter, strings.Join(reporters, ", "))
	}
	if fc.FailOn != nil && !oneOf(*fc.FailOn, failOns) {
		return fmt.Errorf("fail_on %q: want one of %s", *fc.FailOn, strings.Join(failOns, ", "))
	}
	if fc.Threads != nil && *fc.Threads < 0 {
		return fmt.Errorf("threads must not be negative, got %d", *fc.Threads)
	}
	if fc.Disable != nil {
		if _, err := ParseKinds(*fc.Disable); err != nil {
			return fmt.Errorf("disable: %w", err)
		}
	}
	return nil
}

// ParseKinds parses a comma-separated list of violation kinds.
func ParseKinds(s string) ([]types.ViolationKind, error) {
	var out []types.ViolationKind
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, err := types.ParseKind(part)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}

func oneOf(s string, set []string) bool {
	for _, v := range set {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
