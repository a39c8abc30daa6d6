package core

import (
	"context"

	"github.com/cmake-checker/cmake-checker/internal/engine"
	"github.com/cmake-checker/cmake-checker/internal/scanner"
	"github.com/cmake-checker/cmake-checker/internal/types"
	"github.com/cmake-checker/cmake-checker/internal/verifier"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
type (
	Config        = engine.Config
	Result        = engine.Result
	FileResult    = verifier.Result
	Violation     = types.Violation
	ViolationKind = types.ViolationKind
	ScanResult    = types.ScanResult
	Rule          = types.Rule
)

// Scan analyzes one build script held in memory.
func Scan(text string) ScanResult {
	return scanner.Scan(text)
}

// Check discovers and verifies the build scripts under paths.
func Check(ctx context.Context, cfg Config, paths []string) (Result, error) {
	return engine.Check(ctx, cfg, paths)
}

// Rules describes every violation kind.
func Rules() []Rule { return types.Rules() }
