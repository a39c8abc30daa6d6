package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cmake-checker/cmake-checker/internal/ignore"
)

func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func rels(t *testing.T, root string, ps []string) []string {
	t.Helper()
	out := make([]string, len(ps))
	for i, p := range ps {
		r, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatal(err)
		}
		out[i] = filepath.ToSlash(r)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDiscover_OrderScriptsThenLists(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"CMakeLists.txt":          "",
		"src/CMakeLists.txt":      "",
		"cmake/Warnings.cmake":    "",
		"cmake/a/Deps.cmake":      "",
		"README.md":               "",
		"src/main.cpp":            "",
		"src/CMakeLists.txt.orig": "",
	})
	got, err := Discover(Config{}, []string{dir})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"cmake/Warnings.cmake",
		"cmake/a/Deps.cmake",
		"CMakeLists.txt",
		"src/CMakeLists.txt",
	}
	if r := rels(t, dir, got); !equalStrings(r, want) {
		t.Fatalf("Discover order = %v want %v", r, want)
	}
}

func TestDiscover_MissingPath(t *testing.T) {
	_, err := Discover(Config{}, []string{filepath.Join(t.TempDir(), "missing")})
	if !errors.Is(err, ErrPathNotFound) {
		t.Fatalf("expected ErrPathNotFound, got %v", err)
	}
}

func TestDiscover_ExplicitFileTakenAsIs(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"notes.txt": "add_definitions(-DX)"})
	p := filepath.Join(dir, "notes.txt")
	got, err := Discover(Config{}, []string{p, p})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != p {
		t.Fatalf("expected explicit file once, got %v", got)
	}
}

func TestDiscover_DefaultExcludes(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"CMakeLists.txt": "",
		"build/CMakeFiles/3.28/CMakeSystem.cmake": "",
		"build/cmake_install.cmake":               "",
		"build/_deps/fmt-src/CMakeLists.txt":      "",
		".git/hooks/x.cmake":                      "",
	})
	got, err := Discover(Config{DefaultExcludes: true}, []string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if r := rels(t, dir, got); !equalStrings(r, []string{"CMakeLists.txt"}) {
		t.Fatalf("default excludes failed, got %v", r)
	}

	got, err = Discover(Config{}, []string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 5 {
		t.Fatalf("without default excludes expected 5 files, got %v", rels(t, dir, got))
	}
}

func TestDiscover_WhitelistAndIgnoreFile(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"CMakeLists.txt":             "",
		"third_party/CMakeLists.txt": "",
		"cmake/Legacy.cmake":         "",
		"cmake/Modern.cmake":         "",
		ignore.FileName:              "third_party/\n",
	})
	cfg := Config{Whitelist: ignore.New("Legacy.cmake")}
	got, err := Discover(cfg, []string{dir})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"cmake/Modern.cmake", "CMakeLists.txt"}
	if r := rels(t, dir, got); !equalStrings(r, want) {
		t.Fatalf("whitelist failed, got %v want %v", r, want)
	}
}

func TestDiscover_WithIncludeExcludeGlobs(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"CMakeLists.txt":       "",
		"cmake/Warnings.cmake": "",
		"test/CMakeLists.txt":  "",
	})

	got, err := Discover(Config{IncludeGlobs: "**/*.cmake"}, []string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if r := rels(t, dir, got); !equalStrings(r, []string{"cmake/Warnings.cmake"}) {
		t.Fatalf("include globs failed, got %v", r)
	}

	got, err = Discover(Config{ExcludeGlobs: "test/**"}, []string{dir})
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range rels(t, dir, got) {
		if p == "test/CMakeLists.txt" {
			t.Fatalf("exclude globs failed, saw %s", p)
		}
	}
}
