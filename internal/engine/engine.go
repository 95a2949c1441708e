package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	xxhash "github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/ccjmqdzj/sensitive-info-scanner/internal/cache"
	"github.com/ccjmqdzj/sensitive-info-scanner/internal/detect"
	"github.com/ccjmqdzj/sensitive-info-scanner/internal/ocr"
	"github.com/ccjmqdzj/sensitive-info-scanner/internal/types"
)

// Config controls a batch scan: scope, category selection, performance, and
// filters.
type Config struct {
	Root          string   // directory to walk, or a single image file
	IncludeGlobs  string   // comma-separated include globs
	ExcludeGlobs  string   // comma-separated exclude globs
	MaxBytes      int64    // skip images larger than this (0 = no limit)
	Categories    []string // category tags, or empty/"all" for everything
	Jobs          int      // parallel sources (0 = GOMAXPROCS)
	MinConfidence float64  // drop findings below this confidence
	NoCache       bool     // disable the OCR text cache
	Progress      func(source string)

	// Detect overrides the engine heuristics; nil uses defaults.
	Detect *detect.Options
}

// Result contains the batch report along with scan statistics.
type Result struct {
	Report        types.BatchReport
	ImagesScanned int
	CacheHits     int
	Duration      time.Duration
}

// Scan walks cfg.Root, extracts text from each image (served from cache when
// the image bytes are unchanged), and runs the detection engine over the
// batch. One source's OCR failure is recorded on its report and does not
// block the rest.
func Scan(ctx context.Context, cfg Config, ex ocr.Extractor) (Result, error) {
	var result Result
	started := time.Now()

	cats, err := detect.ParseCategories(cfg.Categories)
	if err != nil {
		return result, err
	}

	paths, err := collectPaths(cfg)
	if err != nil {
		return result, err
	}
	if len(paths) == 0 {
		return result, fmt.Errorf("no image files found under %s", cfg.Root)
	}

	if cfg.Jobs <= 0 {
		cfg.Jobs = runtime.GOMAXPROCS(0)
	}

	cacheRoot := cfg.Root
	if st, err := os.Stat(cfg.Root); err == nil && !st.IsDir() {
		cacheRoot = filepath.Dir(cfg.Root)
	}
	var db cache.DB
	if !cfg.NoCache {
		db, _ = cache.Load(cacheRoot)
	} else {
		db.Entries = map[string]string{}
	}

	sources := extractSources(ctx, cfg, ex, cacheRoot, paths, &db, &result)

	opts := detect.DefaultOptions()
	if cfg.Detect != nil {
		opts = *cfg.Detect
	}
	opts.Concurrency = cfg.Jobs
	registry := detect.NewRegistry(opts)

	report, err := registry.Scan(ctx, sources, cats)
	if err != nil {
		return result, err
	}
	filterByConfidence(&report, cfg.MinConfidence)

	if !cfg.NoCache {
		_ = cache.Save(cacheRoot, db)
	}

	result.Report = report
	result.ImagesScanned = len(paths)
	result.Duration = time.Since(started)
	return result, nil
}

// extractSources runs the OCR stage over every path, bounded by cfg.Jobs.
// Each source keeps its slot so batch order matches submission order; OCR
// failures are carried on the Source and surface as failed reports.
func extractSources(ctx context.Context, cfg Config, ex ocr.Extractor, root string, paths []string, db *cache.DB, result *Result) []detect.Source {
	sources := make([]detect.Source, len(paths))
	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(cfg.Jobs)
	for i, rel := range paths {
		g.Go(func() error {
			abs := filepath.Join(root, rel)
			text, hit, err := extractOne(ctx, ex, abs, db, &mu)
			sources[i] = detect.Source{ID: rel, Text: text, Err: err}
			mu.Lock()
			if hit {
				result.CacheHits++
			}
			mu.Unlock()
			if cfg.Progress != nil {
				cfg.Progress(rel)
			}
			return nil
		})
	}
	_ = g.Wait()
	return sources
}

func extractOne(ctx context.Context, ex ocr.Extractor, abs string, db *cache.DB, mu *sync.Mutex) (string, bool, error) {
	raw, err := os.ReadFile(abs)
	if err != nil {
		return "", false, fmt.Errorf("read image: %w", err)
	}
	key := fastHash(raw)
	mu.Lock()
	text, ok := db.Entries[key]
	mu.Unlock()
	if ok {
		return text, true, nil
	}
	text, err = ex.ExtractText(ctx, abs)
	if err != nil {
		return "", false, err
	}
	mu.Lock()
	db.Entries[key] = text
	mu.Unlock()
	return text, false, nil
}

func collectPaths(cfg Config) ([]string, error) {
	st, err := os.Stat(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", cfg.Root, err)
	}
	if !st.IsDir() {
		return []string{filepath.Base(cfg.Root)}, nil
	}
	return Walk(cfg)
}

func fastHash(b []byte) string {
	if len(b) == 0 {
		return "0000000000000000"
	}
	sum := xxhash.Sum64(b)
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}

func filterByConfidence(b *types.BatchReport, min float64) {
	if min <= 0 {
		return
	}
	for i := range b.Reports {
		var kept []types.Finding
		for _, f := range b.Reports[i].Findings {
			if f.Confidence >= min {
				kept = append(kept, f)
			}
		}
		b.Reports[i].Findings = kept
	}
}
