// Package core provides a small, stable facade over the scanner's internal
// engine for external integrations. It deliberately re-exports a narrow API
// surface so embedding tools can depend on a stable import path without
// reaching into internal packages.
//
// Example:
//
//	cfg := core.Config{Root: "./shots", Categories: []string{"phone", "id_card"}}
//	res, err := core.Scan(context.Background(), cfg)
//	if err != nil { /* handle */ }
//	_ = core.MarshalReport(os.Stdout, res.Report)
package core
