package sensiscan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccjmqdzj/sensitive-info-scanner/internal/audit"
	"github.com/ccjmqdzj/sensitive-info-scanner/internal/config"
	"github.com/ccjmqdzj/sensitive-info-scanner/internal/detect"
	"github.com/ccjmqdzj/sensitive-info-scanner/internal/engine"
	"github.com/ccjmqdzj/sensitive-info-scanner/internal/ocr"
	"github.com/ccjmqdzj/sensitive-info-scanner/internal/report"
	"github.com/ccjmqdzj/sensitive-info-scanner/internal/types"
)

var (
	flagPath        string
	flagTypes       string
	flagInclude     string
	flagExclude     string
	flagMaxBytes    int64
	flagLanguages   string
	flagOutput      string
	flagShowContext bool
	flagUnmasked    bool
	flagNoAudit     bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan images for sensitive information",
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "image file or directory to scan")
	cmd.Flags().StringVarP(&flagTypes, "types", "t", "", "comma-separated categories to detect (default: all)")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 32<<20, "skip images larger than this")
	cmd.Flags().StringVar(&flagLanguages, "languages", "", "comma-separated tesseract languages (default: chi_sim,eng)")
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "also write the report to this file")
	cmd.Flags().BoolVar(&flagShowContext, "context", false, "show the surrounding context for each finding")
	cmd.Flags().BoolVar(&flagUnmasked, "unmasked", false, "print raw values instead of masked ones")
	cmd.Flags().BoolVar(&flagNoAudit, "no-audit", false, "do not append a record to the audit log")
}

func runScan(cmd *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(flagPath)
	root := abs
	if st, err := os.Stat(abs); err == nil && !st.IsDir() {
		root = filepath.Dir(abs)
	}

	// Load configs: CLI > local > global
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(root); err == nil {
		lcfg = c
	}

	cfg := engine.Config{
		Root:          abs,
		IncludeGlobs:  pickString(flagInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs:  pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		MaxBytes:      pickInt64(flagMaxBytes, lcfg.MaxBytes, gcfg.MaxBytes),
		Categories:    splitList(pickString(flagTypes, lcfg.Types, gcfg.Types)),
		Jobs:          pickInt(flagJobs, lcfg.Jobs, gcfg.Jobs),
		MinConfidence: pickFloat(flagMinConfidence, lcfg.MinConfidence, gcfg.MinConfidence),
		NoCache:       pickBool(flagNoCache, lcfg.NoCache, gcfg.NoCache),
		Progress: func(string) {
			fmt.Fprint(os.Stderr, ".")
		},
	}

	langs := splitList(pickString(flagLanguages, lcfg.Languages, gcfg.Languages))
	res, err := engine.Scan(cmd.Context(), cfg, ocr.NewTesseract(langs...))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		if errors.Is(err, detect.ErrUnknownCategory) {
			return fmt.Errorf("%w (valid: %s, all)", err, joinCategories())
		}
		return err
	}

	noColor := pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor)
	if err := renderScan(res, noColor, pickString(flagOutput, lcfg.Output, gcfg.Output)); err != nil {
		return err
	}

	if !flagNoAudit {
		_ = audit.NewAuditLog(root).LogScan(audit.CreateScanRecord(root, res.Report, res.Duration))
	}

	if flagFailOnFind && res.Report.TotalFindings() > 0 {
		os.Exit(1)
	}
	return nil
}

func renderScan(res engine.Result, noColor bool, output string) error {
	opts := report.PrintOptions{
		NoColor:       noColor,
		ShowContext:   flagShowContext,
		Unmasked:      flagUnmasked,
		Duration:      res.Duration,
		ImagesScanned: res.ImagesScanned,
		CacheHits:     res.CacheHits,
	}
	render := func(w *os.File, toTTY bool) error {
		o := opts
		if !toTTY {
			o.NoColor = true
		}
		switch {
		case flagJSON:
			return report.PrintJSON(w, res.Report)
		case flagTable:
			report.PrintTable(w, res.Report, o)
		default:
			report.PrintText(w, res.Report, o)
		}
		return nil
	}
	if err := render(os.Stdout, true); err != nil {
		return err
	}
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		if err := render(f, false); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "report written to %s\n", output)
	}
	return nil
}

func joinCategories() string {
	var tags []string
	for _, c := range types.Categories() {
		tags = append(tags, string(c))
	}
	return strings.Join(tags, ", ")
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
