package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesCoverEveryKind(t *testing.T) {
	kinds := Kinds()
	require.Len(t, kinds, 14)
	seen := map[ViolationKind]bool{}
	for _, k := range kinds {
		assert.False(t, seen[k], "duplicate kind %s", k)
		seen[k] = true
		r, ok := LookupRule(k)
		require.True(t, ok)
		assert.NotEmpty(t, r.Summary)
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" unsorted_glob_intake ")
	require.NoError(t, err)
	assert.Equal(t, UnsortedGlobIntake, k)

	_, err = ParseKind("NOT_A_KIND")
	assert.Error(t, err)
}

func TestSeverityOf(t *testing.T) {
	assert.Equal(t, SevHigh, SeverityOf(GlobalCompileFlagsVariable))
	assert.Equal(t, SevLow, SeverityOf(IneffectiveScopeKeyword))
	assert.Equal(t, SevMed, SeverityOf(ViolationKind("unknown")))
}

func TestScanResultKinds(t *testing.T) {
	r := ScanResult{{Kind: UnsortedGlobIntake, Line: 1}, {Kind: CacheInAssignment, Line: 3}}
	assert.Equal(t, []ViolationKind{UnsortedGlobIntake, CacheInAssignment}, r.Kinds())
	assert.Equal(t, "CACHE_IN_ASSIGNMENT:3", r[1].String())
}
