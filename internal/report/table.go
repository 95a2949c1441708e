package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/ccjmqdzj/sensitive-info-scanner/internal/types"
)

// PrintTable renders the batch report as a bordered table, one row per
// finding plus one row per failed source.
func PrintTable(w io.Writer, batch types.BatchReport, opts PrintOptions) {
	if batch.TotalFindings() == 0 && batch.FailedSources() == 0 {
		fmt.Fprintln(w, "未检测到敏感信息 ✅")
		printFooter(w, batch, opts)
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"SOURCE", "CATEGORY", "VALUE", "CONFIDENCE"})
	table.SetAutoWrapText(false)
	for _, r := range batch.Reports {
		if r.Failed {
			table.Append([]string{r.Source, "-", "failed: " + r.Reason, "-"})
			continue
		}
		for _, f := range r.Findings {
			table.Append([]string{
				r.Source,
				string(f.Category),
				displayValue(f.Value, opts),
				fmt.Sprintf("%.2f", f.Confidence),
			})
		}
	}
	table.Render()
	printFooter(w, batch, opts)
}
