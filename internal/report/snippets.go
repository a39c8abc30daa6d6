package report

import (
	"os"
	"strings"
	"sync"
)

// Snippets returns the source line a violation points at, without its
// line terminator. Unknown sources or lines yield "".
type Snippets interface {
	Line(id string, line int) string
}

// lineCache splits each source once, on first use, and serves later
// lookups from the stored lines.
type lineCache struct {
	mu    sync.Mutex
	lines map[string][]string
	load  func(id string) (string, bool)
}

func (c *lineCache) Line(id string, line int) string {
	c.mu.Lock()
	lines, ok := c.lines[id]
	if !ok {
		if text, found := c.load(id); found {
			lines = splitLines(text)
		}
		c.lines[id] = lines
	}
	c.mu.Unlock()
	return pick(lines, line)
}

// FileSnippets reads checked files from disk on first use.
type FileSnippets struct {
	lineCache
}

func NewFileSnippets() *FileSnippets {
	return &FileSnippets{lineCache{lines: map[string][]string{}, load: readSource}}
}

func readSource(id string) (string, bool) {
	b, err := os.ReadFile(id)
	if err != nil {
		return "", false
	}
	return string(b), true
}

// TextSnippets serves lines from in-memory sources keyed by identifier.
type TextSnippets struct {
	lineCache
}

func NewTextSnippets(sources map[string]string) *TextSnippets {
	load := func(id string) (string, bool) {
		text, ok := sources[id]
		return text, ok
	}
	return &TextSnippets{lineCache{lines: map[string][]string{}, load: load}}
}

func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func pick(lines []string, line int) string {
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

type noSnippets struct{}

func (noSnippets) Line(string, int) string { return "" }

func orNone(s Snippets) Snippets {
	if s == nil {
		return noSnippets{}
	}
	return s
}
