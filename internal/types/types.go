// Package types defines violation kinds, their severities and rule
// descriptions shared by every other package.
package types

import (
	"fmt"
	"strings"
)

// Severity is a coarse-grained risk level for a violation.
type Severity string

const (
	SevLow  Severity = "low"
	SevMed  Severity = "medium"
	SevHigh Severity = "high"
)

// ViolationKind classifies a detected anti-pattern. The string value is the
// stable identifier renderers display verbatim.
type ViolationKind string

const (
	UnsortedGlobIntake         ViolationKind = "UNSORTED_GLOB_INTAKE"
	GlobalCompileOptions       ViolationKind = "GLOBAL_COMPILE_OPTIONS"
	GlobalDefinitions          ViolationKind = "GLOBAL_DEFINITIONS"
	GlobalCompileDefinitions   ViolationKind = "GLOBAL_COMPILE_DEFINITIONS"
	GlobalIncludeDirectories   ViolationKind = "GLOBAL_INCLUDE_DIRECTORIES"
	GlobalLinkDirectories      ViolationKind = "GLOBAL_LINK_DIRECTORIES"
	GlobalLinkLibraries        ViolationKind = "GLOBAL_LINK_LIBRARIES"
	GlobalCompileFlagsVariable ViolationKind = "GLOBAL_COMPILE_FLAGS_VARIABLE"
	ClosingCommandWithClause   ViolationKind = "CLOSING_COMMAND_WITH_CLAUSE"
	FunctionCloseWithClause    ViolationKind = "FUNCTION_CLOSE_WITH_CLAUSE"
	EnvironmentMutation        ViolationKind = "ENVIRONMENT_MUTATION"
	CacheInAssignment          ViolationKind = "CACHE_IN_ASSIGNMENT"
	ParentDirectoryAccess      ViolationKind = "PARENT_DIRECTORY_ACCESS"
	IneffectiveScopeKeyword    ViolationKind = "INEFFECTIVE_SCOPE_KEYWORD"
)

// Violation is one reported occurrence of an anti-pattern. Line is 1-based
// and points at the line where the triggering token starts.
type Violation struct {
	Kind ViolationKind `json:"kind"`
	Line int           `json:"line"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s:%d", v.Kind, v.Line)
}

// ScanResult is the ordered list of violations produced by a single scan.
type ScanResult []Violation

// Kinds returns the violation kinds in scan order.
func (r ScanResult) Kinds() []ViolationKind {
	out := make([]ViolationKind, len(r))
	for i, v := range r {
		out[i] = v.Kind
	}
	return out
}

// Rule describes a violation kind for listings and machine-readable reports.
type Rule struct {
	Kind     ViolationKind
	Severity Severity
	Summary  string
}

var rules = []Rule{
	{UnsortedGlobIntake, SevHigh, "file(GLOB) collects build inputs non-deterministically; list sources explicitly"},
	{GlobalCompileOptions, SevMed, "add_compile_options() applies to every target; use target_compile_options()"},
	{GlobalDefinitions, SevMed, "add_definitions() applies to every target; use target_compile_definitions()"},
	{GlobalCompileDefinitions, SevMed, "add_compile_definitions() applies to every target; use target_compile_definitions()"},
	{GlobalIncludeDirectories, SevMed, "include_directories() applies to every target; use target_include_directories()"},
	{GlobalLinkDirectories, SevMed, "link_directories() applies to every target; use target_link_directories() or full paths"},
	{GlobalLinkLibraries, SevMed, "link_libraries() applies to every target; use target_link_libraries()"},
	{GlobalCompileFlagsVariable, SevHigh, "CMAKE_C_FLAGS/CMAKE_CXX_FLAGS mutate build-wide flags outside target scope"},
	{ClosingCommandWithClause, SevLow, "closing command repeats its opening condition; leave the parentheses empty"},
	{FunctionCloseWithClause, SevLow, "endfunction() repeats the function name; leave the parentheses empty"},
	{EnvironmentMutation, SevHigh, "ENV{} in set()/unset() depends on or mutates the configure-time environment"},
	{CacheInAssignment, SevMed, "CACHE mixes cache-variable semantics into set()/unset()"},
	{ParentDirectoryAccess, SevMed, "../.. in target_sources() makes the project non-relocatable"},
	{IneffectiveScopeKeyword, SevLow, "PARENT_SCOPE outside a function body has no effect"},
}

// Rules returns metadata for every violation kind in declaration order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Kinds returns every violation kind in declaration order.
func Kinds() []ViolationKind {
	out := make([]ViolationKind, len(rules))
	for i, r := range rules {
		out[i] = r.Kind
	}
	return out
}

// LookupRule returns the rule metadata for a kind.
func LookupRule(k ViolationKind) (Rule, bool) {
	for _, r := range rules {
		if r.Kind == k {
			return r, true
		}
	}
	return Rule{}, false
}

// ParseKind accepts a kind identifier in any case.
func ParseKind(s string) (ViolationKind, error) {
	k := ViolationKind(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := LookupRule(k); !ok {
		return "", fmt.Errorf("unknown violation kind %q", s)
	}
	return k, nil
}

// SeverityOf returns the severity of a kind, defaulting to medium.
func SeverityOf(k ViolationKind) Severity {
	if r, ok := LookupRule(k); ok {
		return r.Severity
	}
	return SevMed
}
