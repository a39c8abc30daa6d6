package verifier

import (
	"fmt"
	"os"
)

// Source is one scannable input: a display identifier plus a readable body.
type Source interface {
	ID() string
	Read() (string, error)
}

// FileSource reads a file from disk. The path doubles as the identifier.
type FileSource string

func (f FileSource) ID() string { return string(f) }

func (f FileSource) Read() (string, error) {
	b, err := os.ReadFile(string(f))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// TextSource is an in-memory source, used for stdin and tests.
type TextSource struct {
	Name string
	Text string
}

func (t TextSource) ID() string            { return t.Name }
func (t TextSource) Read() (string, error) { return t.Text, nil }

// FileSources wraps paths as sources, preserving order.
func FileSources(paths []string) []Source {
	out := make([]Source, len(paths))
	for i, p := range paths {
		out[i] = FileSource(p)
	}
	return out
}

// ReadError reports a source whose body could not be obtained. It is never
// conflated with a source that has zero violations.
type ReadError struct {
	ID  string
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.ID, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
