package core

import (
	"context"

	"github.com/ccjmqdzj/sensitive-info-scanner/internal/detect"
	"github.com/ccjmqdzj/sensitive-info-scanner/internal/engine"
	"github.com/ccjmqdzj/sensitive-info-scanner/internal/ocr"
	"github.com/ccjmqdzj/sensitive-info-scanner/internal/types"
)

// Re-export selected internal types as a stable public API surface. These
// are type aliases so external consumers can depend on a stable path.
type (
	Config      = engine.Config
	Result      = engine.Result
	Category    = types.Category
	Finding     = types.Finding
	ScanReport  = types.ScanReport
	BatchReport = types.BatchReport
	Source      = detect.Source
)

// ErrUnknownCategory mirrors the engine sentinel for errors.Is checks.
var ErrUnknownCategory = detect.ErrUnknownCategory

// Scan runs the full OCR + detection pipeline over cfg.Root.
func Scan(ctx context.Context, cfg Config) (Result, error) {
	return engine.Scan(ctx, cfg, ocr.NewTesseract())
}

// ScanText runs only the detection engine over already-extracted text,
// bypassing OCR. This is the entrypoint for callers that bring their own
// text extraction.
func ScanText(ctx context.Context, sources []Source, categories []string) (BatchReport, error) {
	cats, err := detect.ParseCategories(categories)
	if err != nil {
		return BatchReport{}, err
	}
	return detect.NewRegistry(detect.DefaultOptions()).Scan(ctx, sources, cats)
}

// Categories returns the known category tags in canonical order.
func Categories() []Category { return types.Categories() }
