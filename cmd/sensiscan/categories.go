package sensiscan

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccjmqdzj/sensitive-info-scanner/internal/types"
)

func init() {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List available sensitive information categories",
		Run: func(_ *cobra.Command, _ []string) {
			for _, c := range types.Categories() {
				fmt.Printf("%-12s %s\n", c, c.DisplayName())
			}
			fmt.Printf("%-12s %s\n", types.CategoryAll, "全部类型")
		},
	}
	rootCmd.AddCommand(cmd)
}
