// Package core provides a small, stable facade over cmake-checker's internal
// engine for external integrations, so other tools can depend on a stable
// import path without reaching into internal packages.
//
// Example:
//
//	res, err := core.Check(ctx, core.Config{DefaultExcludes: true}, []string{"."})
//	if err != nil { /* handle */ }
//	_ = core.MarshalResults(os.Stdout, res.Files)
package core
