package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmake-checker/cmake-checker/internal/types"
	"github.com/cmake-checker/cmake-checker/internal/verifier"
)

func TestCheck_Basic(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"CMakeLists.txt":     "project(demo)\nadd_compile_options(-Wall)\n",
		"cmake/Flags.cmake":  "set(CMAKE_CXX_FLAGS \"-O2\")\nlist(APPEND CMAKE_CXX_FLAGS -g)\n",
		"src/CMakeLists.txt": "add_library(core a.cpp)\n",
	})

	res, err := Check(context.Background(), Config{Threads: 2, NoCache: true}, []string{dir})
	require.NoError(t, err)
	require.Len(t, res.Files, 3)
	assert.Equal(t, 3, res.FilesScanned)

	byRel := map[string]types.ScanResult{}
	for _, f := range res.Files {
		r, _ := filepath.Rel(dir, f.ID)
		byRel[filepath.ToSlash(r)] = f.Violations
	}
	assert.Equal(t, types.ScanResult{{Kind: types.GlobalCompileOptions, Line: 2}}, byRel["CMakeLists.txt"])
	assert.Equal(t, types.ScanResult{{Kind: types.GlobalCompileFlagsVariable, Line: 2}}, byRel["cmake/Flags.cmake"])
	assert.Empty(t, byRel["src/CMakeLists.txt"])
	assert.Equal(t, 2, verifier.CountViolations(res.Files))
}

func TestCheck_DisableKinds(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"CMakeLists.txt": "add_definitions(-DA)\nlink_libraries(m)\n",
	})
	cfg := Config{NoCache: true, Disable: []types.ViolationKind{types.GlobalDefinitions}}
	res, err := Check(context.Background(), cfg, []string{dir})
	require.NoError(t, err)
	require.Len(t, res.Files, 1)
	assert.Equal(t, types.ScanResult{{Kind: types.GlobalLinkLibraries, Line: 2}}, res.Files[0].Violations)
}

func TestCheck_UsesCacheAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"CMakeLists.txt": "add_definitions(-DA)\n"})

	first, err := Check(context.Background(), Config{}, []string{dir})
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, ".cmakecheckcache.json"))
	require.NoError(t, err)

	second, err := Check(context.Background(), Config{}, []string{dir})
	require.NoError(t, err)
	assert.Equal(t, first.Files, second.Files)

	// A content change must invalidate the cached verdict.
	writeTree(t, dir, map[string]string{"CMakeLists.txt": "project(x)\n"})
	third, err := Check(context.Background(), Config{}, []string{dir})
	require.NoError(t, err)
	assert.Empty(t, third.Files[0].Violations)
}

func TestCheck_MissingPath(t *testing.T) {
	_, err := Check(context.Background(), Config{NoCache: true}, []string{filepath.Join(t.TempDir(), "gone")})
	assert.ErrorIs(t, err, ErrPathNotFound)
}

func TestCheck_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"CMakeLists.txt": ""})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Check(ctx, Config{NoCache: true}, []string{dir})
	assert.ErrorIs(t, err, context.Canceled)
}
