// Package cmakecheck provides the command-line interface for cmake-checker.
// It configures subcommands (check, rules, baseline, etc.), parses flags, and
// executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/cmake-checker/cmake-checker/cmd/cmakecheck"
//	func main() { cmakecheck.Execute() }
package cmakecheck
