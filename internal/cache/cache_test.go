package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmake-checker/cmake-checker/internal/types"
)

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	// initial load should return empty DB and error
	db, _ := Load(dir)
	if db.Entries == nil {
		t.Fatalf("expected entries map initialized")
	}
	db.Entries["CMakeLists.txt"] = Entry{Hash: "deadbeef", Violations: types.ScanResult{{Kind: types.GlobalLinkLibraries, Line: 3}}}
	if err := Save(dir, db); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".cmakecheckcache.json")); err != nil {
		t.Fatalf("cache file not written: %v", err)
	}
	db2, err := Load(dir)
	if err != nil {
		t.Fatalf("load after save: %v", err)
	}
	if got := db2.Entries["CMakeLists.txt"]; got.Hash != "deadbeef" || len(got.Violations) != 1 {
		t.Fatalf("unexpected entry: %+v", got)
	}
}

func TestLoad_PrefersGitDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0755))
	require.NoError(t, Save(dir, DB{Entries: map[string]Entry{}}))
	_, err := os.Stat(filepath.Join(dir, ".git", "cmakecheckcache.json"))
	assert.NoError(t, err)
}

func TestLoad_VersionMismatchStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	stale := `{"version":"0","entries":{"a.cmake":{"hash":"x","violations":[]}}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".cmakecheckcache.json"), []byte(stale), 0644))
	db, err := Load(dir)
	assert.Error(t, err)
	assert.Empty(t, db.Entries)
}

func TestStore_LookupRequiresSameContent(t *testing.T) {
	dir := t.TempDir()
	s := Open(dir)
	found := types.ScanResult{{Kind: types.EnvironmentMutation, Line: 1}}
	s.Store("a.cmake", "set(ENV{X} 1)", found)

	got, ok := s.Lookup("a.cmake", "set(ENV{X} 1)")
	require.True(t, ok)
	assert.Equal(t, found, got)

	_, ok = s.Lookup("a.cmake", "set(ENV{X} 2)")
	assert.False(t, ok)
	_, ok = s.Lookup("b.cmake", "set(ENV{X} 1)")
	assert.False(t, ok)
}

func TestStore_FlushRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := Open(dir)
	require.NoError(t, s.Flush()) // nothing to write
	_, err := os.Stat(filepath.Join(dir, ".cmakecheckcache.json"))
	assert.True(t, os.IsNotExist(err))

	s.Store("CMakeLists.txt", "project(x)\n", types.ScanResult{})
	require.NoError(t, s.Flush())

	reopened := Open(dir)
	assert.Equal(t, 1, reopened.Len())
	got, ok := reopened.Lookup("CMakeLists.txt", "project(x)\n")
	require.True(t, ok)
	assert.Empty(t, got)
}

func TestHash(t *testing.T) {
	assert.Equal(t, "0000000000000000", Hash(""))
	assert.Len(t, Hash("abc"), 16)
	assert.NotEqual(t, Hash("a"), Hash("b"))
}
