package sensiscan

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagJSON          bool
	flagTable         bool
	flagJobs          int
	flagNoColor       bool
	flagMinConfidence float64
	flagNoCache       bool
	flagFailOnFind    bool
)

// rootCmd is the base Cobra command for the sensiscan CLI.
var rootCmd = &cobra.Command{
	Use:           "sensiscan",
	Short:         "Find sensitive information in images",
	Long:          "Sensiscan runs OCR over screenshots and photos and reports phone numbers, ID numbers, bank cards, addresses, emails, passwords and IPs found in the text, with low noise.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the sensiscan CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output in table format with borders")
	rootCmd.PersistentFlags().IntVarP(&flagJobs, "jobs", "j", 0, "worker count (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().Float64Var(&flagMinConfidence, "min-confidence", 0.0, "only show findings with confidence >= value (0-1)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "disable the OCR text cache")
	rootCmd.PersistentFlags().BoolVar(&flagFailOnFind, "fail-on-findings", false, "exit 1 when any finding is reported")
}
