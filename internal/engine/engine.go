package engine

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/cmake-checker/cmake-checker/internal/cache"
	"github.com/cmake-checker/cmake-checker/internal/ignore"
	"github.com/cmake-checker/cmake-checker/internal/types"
	"github.com/cmake-checker/cmake-checker/internal/verifier"
)

// Config controls discovery and verification.
type Config struct {
	// Comma-separated doublestar globs applied to paths relative to each
	// walked root.
	IncludeGlobs string
	ExcludeGlobs string
	// Whitelist drops matching files from the scan.
	Whitelist       ignore.Matcher
	DefaultExcludes bool

	// Threads bounds concurrent verification; 0 means GOMAXPROCS.
	Threads int
	NoCache bool
	// CacheRoot is where the verdict cache lives. Defaults to the first
	// requested directory, or the working directory.
	CacheRoot string

	// Disable drops violations of these kinds from the results.
	Disable []types.ViolationKind

	Logger *zap.Logger
}

// Result contains per-file results and basic scan statistics.
type Result struct {
	Files        []verifier.Result
	FilesScanned int
	Duration     time.Duration
}

// Check discovers the build scripts under paths and verifies them.
func Check(ctx context.Context, cfg Config, paths []string) (Result, error) {
	var result Result
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("engine")

	started := time.Now()
	files, err := Discover(cfg, paths)
	if err != nil {
		return result, err
	}
	log.Debug("discovered build scripts", zap.Int("files", len(files)), zap.Strings("paths", paths))

	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	opts := verifier.Options{Workers: threads, Logger: cfg.Logger}
	var store *cache.Store
	if !cfg.NoCache {
		store = cache.Open(cacheRoot(cfg, paths))
		opts.Cache = store
	}

	results := verifier.New(opts).Verify(ctx, verifier.FileSources(files))
	DropKinds(results, cfg.Disable)
	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("check interrupted: %w", err)
	}

	if store != nil {
		if err := store.Flush(); err != nil {
			log.Warn("cache not saved", zap.Error(err))
		}
	}

	result.Files = results
	result.FilesScanned = len(results) - len(verifier.Failed(results))
	result.Duration = time.Since(started)
	log.Debug("check finished",
		zap.Int("files", result.FilesScanned),
		zap.Int("violations", verifier.CountViolations(results)),
		zap.Duration("duration", result.Duration))
	return result, nil
}

func cacheRoot(cfg Config, paths []string) string {
	if cfg.CacheRoot != "" {
		return cfg.CacheRoot
	}
	for _, p := range paths {
		if st, err := os.Stat(p); err == nil && st.IsDir() {
			return p
		}
	}
	return "."
}

// DropKinds removes violations of the disabled kinds from every readable
// result, in place.
func DropKinds(results []verifier.Result, disabled []types.ViolationKind) {
	if len(disabled) == 0 {
		return
	}
	for i := range results {
		if results[i].Err != nil {
			continue
		}
		results[i].Violations = filterKinds(results[i].Violations, disabled)
	}
}

func filterKinds(vs types.ScanResult, disabled []types.ViolationKind) types.ScanResult {
	out := make(types.ScanResult, 0, len(vs))
	for _, v := range vs {
		drop := false
		for _, k := range disabled {
			if v.Kind == k {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, v)
		}
	}
	return out
}
