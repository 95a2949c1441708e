package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/ccjmqdzj/sensitive-info-scanner/internal/types"
)

// PrintOptions controls human-readable rendering.
type PrintOptions struct {
	NoColor       bool
	ShowContext   bool // include the bracketed context line under each finding
	Unmasked      bool // print raw values instead of masked ones
	Duration      time.Duration
	ImagesScanned int
	CacheHits     int
}

// PrintText writes the batch report as one block per source with
// "category: value (confidence)" lines in finding order. Failed sources are
// flagged with their reason rather than dropped.
func PrintText(w io.Writer, batch types.BatchReport, opts PrintOptions) {
	for _, r := range batch.Reports {
		if r.Failed {
			fmt.Fprintf(w, "== %s == (failed: %s)\n\n", r.Source, r.Reason)
			continue
		}
		if len(r.Findings) == 0 {
			continue
		}
		fmt.Fprintf(w, "== %s ==\n", r.Source)
		for _, f := range r.Findings {
			cat := string(f.Category)
			if !opts.NoColor {
				cat = "\x1b[31m" + cat + "\x1b[0m"
			}
			fmt.Fprintf(w, "%s: %s (%.2f)\n", cat, displayValue(f.Value, opts), f.Confidence)
			if opts.ShowContext && f.Context != "" {
				fmt.Fprintf(w, "    上下文: %s\n", f.Context)
			}
		}
		fmt.Fprintln(w)
	}
	if batch.TotalFindings() == 0 && batch.FailedSources() == 0 {
		fmt.Fprintln(w, "未检测到敏感信息 ✅")
	}
	printFooter(w, batch, opts)
}

func printFooter(w io.Writer, batch types.BatchReport, opts PrintOptions) {
	fmt.Fprintf(w, "Findings: %d across %d sources", batch.TotalFindings(), len(batch.Reports))
	if n := batch.FailedSources(); n > 0 {
		fmt.Fprintf(w, " (%d failed)", n)
	}
	fmt.Fprintln(w)
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
	}
	if opts.ImagesScanned > 0 {
		fmt.Fprintf(w, "Images scanned: %d", opts.ImagesScanned)
		if opts.CacheHits > 0 {
			fmt.Fprintf(w, " (%d from cache)", opts.CacheHits)
		}
		fmt.Fprintln(w)
	}
}

// PrintJSON writes the full batch report, unmasked, for pipelines.
func PrintJSON(w io.Writer, batch types.BatchReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(batch)
}

func displayValue(s string, opts PrintOptions) string {
	if opts.Unmasked {
		return s
	}
	return maskValue(s)
}

// maskValue hides the middle of a sensitive value, keeping just enough to
// recognize it. Rune-aware: addresses and labels are multibyte.
func maskValue(s string) string {
	runes := []rune(s)
	if len(runes) <= 8 {
		return "********"
	}
	return string(runes[:3]) + "****" + string(runes[len(runes)-4:])
}
