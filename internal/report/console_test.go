package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/cmake-checker/cmake-checker/internal/types"
	"github.com/cmake-checker/cmake-checker/internal/verifier"
)

func sampleResults() ([]verifier.Result, *TextSnippets) {
	src := NewTextSnippets(map[string]string{
		"CMakeLists.txt":     "project(demo)\nadd_compile_options(-Wall) include_directories(inc)\n",
		"src/CMakeLists.txt": "add_library(core a.cpp)\n",
	})
	results := []verifier.Result{
		{ID: "CMakeLists.txt", Violations: types.ScanResult{
			{Kind: types.GlobalCompileOptions, Line: 2},
			{Kind: types.GlobalIncludeDirectories, Line: 2},
		}},
		{ID: "src/CMakeLists.txt", Violations: types.ScanResult{}},
	}
	return results, src
}

func TestWriteConsole_Format(t *testing.T) {
	results, snip := sampleResults()
	var buf bytes.Buffer
	if err := WriteConsole(&buf, results, Options{Snippets: snip}); err != nil {
		t.Fatal(err)
	}
	want := "\n>>>CMakeLists.txt<<<\n" +
		"line:    2 GLOBAL_COMPILE_OPTIONS> add_compile_options(-Wall) include_directories(inc)\n" +
		"line:    2 GLOBAL_INCLUDE_DIRECTORIES> add_compile_options(-Wall) include_directories(inc)\n" +
		"\nScanned 2 file(s). Found 2 issues.\n"
	if got := buf.String(); got != want {
		t.Fatalf("console output mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestWriteConsole_PadsShortKinds(t *testing.T) {
	results := []verifier.Result{{ID: "a.cmake", Violations: types.ScanResult{{Kind: "SHORT", Line: 7}}}}
	var buf bytes.Buffer
	if err := WriteConsole(&buf, results, Options{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "line:    7                SHORT> \n") {
		t.Fatalf("expected right-aligned kind column; got %q", buf.String())
	}
}

func TestWriteConsole_NoFiles(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteConsole(&buf, nil, Options{}); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "\nScanned 0 file(s). Found 0 issues.\n" {
		t.Fatalf("unexpected empty report %q", got)
	}
}

func TestWriteConsole_ReadError(t *testing.T) {
	results := []verifier.Result{
		{ID: "gone.cmake", Err: &verifier.ReadError{ID: "gone.cmake", Err: errors.New("permission denied")}},
		{ID: "ok.cmake", Violations: types.ScanResult{}},
	}
	var buf bytes.Buffer
	if err := WriteConsole(&buf, results, Options{}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, ">>>gone.cmake<<<\nerror: permission denied\n") {
		t.Fatalf("expected read error block; got %q", out)
	}
	if !strings.Contains(out, "Scanned 1 file(s). Found 0 issues.") {
		t.Fatalf("unreadable files must not count as scanned; got %q", out)
	}
}

func TestWriteConsole_ColorKeepsText(t *testing.T) {
	results, snip := sampleResults()
	var buf bytes.Buffer
	if err := WriteConsole(&buf, results, Options{Color: true, Snippets: snip}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "GLOBAL_COMPILE_OPTIONS") || !strings.Contains(buf.String(), "Found 2 issues.") {
		t.Fatalf("colored output lost content: %q", buf.String())
	}
}
