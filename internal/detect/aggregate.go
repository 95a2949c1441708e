package detect

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/ccjmqdzj/sensitive-info-scanner/internal/types"
)

// Source is one unit of input: an identifier (usually a file path) and the
// text the upstream OCR pipeline extracted from it. Err carries an upstream
// read failure; such sources become failed ScanReport entries instead of
// aborting the batch.
type Source struct {
	ID   string
	Text string
	Err  error
}

// ScanText runs every active matcher and validator over one source text and
// aggregates the accepted findings into a ScanReport.
func (r *Registry) ScanText(id, text string, specs []PatternSpec) types.ScanReport {
	perCat := make(map[types.Category][]types.Finding, len(specs))
	for _, spec := range specs {
		for _, cand := range spec.match(text, r.opts) {
			f, ok := safeValidate(spec, cand, r.opts)
			if !ok {
				continue
			}
			f.Context = bracketContext(text, cand.Start, cand.End, r.opts.ContextWindow)
			perCat[spec.Category] = append(perCat[spec.Category], f)
		}
	}

	var all []types.Finding
	for _, spec := range specs {
		all = append(all, dedupeOverlaps(perCat[spec.Category])...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Start != all[j].Start {
			return all[i].Start < all[j].Start
		}
		return all[i].End < all[j].End
	})
	return types.ScanReport{Source: id, Findings: all}
}

// Scan processes a batch of sources against the requested categories. Each
// source is independent; they run in parallel bounded by Options.Concurrency.
// An unknown category fails the whole call. A source-level failure (upstream
// read error or cancellation mid-batch) is recorded on that source's report
// and the rest of the batch still completes or retains what completed.
func (r *Registry) Scan(ctx context.Context, sources []Source, cats []types.Category) (types.BatchReport, error) {
	specs, err := r.ActiveSpecs(cats)
	if err != nil {
		return types.BatchReport{}, err
	}

	limit := r.opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	reports := make([]types.ScanReport, len(sources))
	var g errgroup.Group
	g.SetLimit(limit)
	for i, src := range sources {
		g.Go(func() error {
			switch {
			case ctx.Err() != nil:
				reports[i] = failedReport(src.ID, ctx.Err().Error())
			case src.Err != nil:
				reports[i] = failedReport(src.ID, src.Err.Error())
			default:
				reports[i] = r.ScanText(src.ID, src.Text, specs)
			}
			return nil
		})
	}
	_ = g.Wait()
	return types.BatchReport{Reports: reports}, nil
}

func failedReport(id, reason string) types.ScanReport {
	return types.ScanReport{Source: id, Failed: true, Reason: reason}
}

// safeValidate downgrades a validator panic on one candidate to "no finding"
// so a single malformed candidate cannot lose the rest of a source.
func safeValidate(spec PatternSpec, c Candidate, opts Options) (f types.Finding, ok bool) {
	defer func() {
		if recover() != nil {
			f, ok = types.Finding{}, false
		}
	}()
	return spec.validate(c, opts)
}

// dedupeOverlaps resolves overlapping findings within one category: higher
// confidence wins, then the longer span, then the earlier start. Findings of
// different categories may legitimately share text and are never deduplicated
// against each other.
func dedupeOverlaps(fs []types.Finding) []types.Finding {
	if len(fs) <= 1 {
		return fs
	}
	ranked := make([]types.Finding, len(fs))
	copy(ranked, fs)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Confidence != ranked[j].Confidence {
			return ranked[i].Confidence > ranked[j].Confidence
		}
		li, lj := ranked[i].End-ranked[i].Start, ranked[j].End-ranked[j].Start
		if li != lj {
			return li > lj
		}
		return ranked[i].Start < ranked[j].Start
	})
	var kept []types.Finding
	for _, f := range ranked {
		overlaps := false
		for _, k := range kept {
			if f.Start < k.End && k.Start < f.End {
				overlaps = true
				break
			}
		}
		if !overlaps {
			kept = append(kept, f)
		}
	}
	return kept
}
