package cmakecheck

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmake-checker/cmake-checker/internal/types"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the violation kinds cmake-checker reports",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			for _, r := range types.Rules() {
				_, _ = fmt.Fprintf(out, "%-30s %-7s %s\n", r.Kind, r.Severity, r.Summary)
			}
		},
	}
	rootCmd.AddCommand(cmd)
}
